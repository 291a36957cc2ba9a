// Package morph maps Russian word forms to their dictionary base form.
package morph

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
)

// Lemmatizer returns the base form of a single word.
//
// Implementations are case-insensitive and must return the lowercased input
// for words they do not know. They must be safe for concurrent use.
type Lemmatizer interface {
	Lemma(word string) string
}

// Identity lowercases words without further analysis.
type Identity struct{}

// Lemma implements Lemmatizer.
func (Identity) Lemma(word string) string { return strings.ToLower(word) }

// Dictionary is a golem lemmatizer loaded from a lemmatization list on disk.
// The list has one "lemma<TAB>form..." entry per line and may be gzipped.
type Dictionary struct {
	lem *golem.Lemmatizer
}

// filePack exposes a dictionary file as a golem language pack.
type filePack struct {
	path   string
	locale string
}

// GetResource returns the list as plain text, which is what golem parses.
func (p filePack) GetResource() ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	if !isGzip(data) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func isGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

func (p filePack) GetLocale() string { return p.locale }

// LoadDictionary reads a lemmatization list and builds a Dictionary.
func LoadDictionary(path string) (*Dictionary, error) {
	lem, err := golem.New(filePack{path: path, locale: "ru"})
	if err != nil {
		return nil, fmt.Errorf("load morph dictionary %s: %w", path, err)
	}
	return &Dictionary{lem: lem}, nil
}

// Lemma implements Lemmatizer. Among several analyses the first listed
// lemma wins. Lemmas is not used: it sorts the shared entry in place.
func (d *Dictionary) Lemma(word string) string {
	return strings.ToLower(d.lem.LemmaLower(strings.ToLower(word)))
}

// Known reports whether the dictionary has an entry for word.
func (d *Dictionary) Known(word string) bool {
	return d.lem.InDict(strings.ToLower(word))
}

// Cached memoizes lookups of another Lemmatizer.
type Cached struct {
	next  Lemmatizer
	cache sync.Map // string -> string
}

// NewCached wraps next with a concurrency-safe cache.
func NewCached(next Lemmatizer) *Cached {
	return &Cached{next: next}
}

// Lemma implements Lemmatizer.
func (c *Cached) Lemma(word string) string {
	key := strings.ToLower(word)
	if v, ok := c.cache.Load(key); ok {
		return v.(string)
	}
	lemma := c.next.Lemma(key)
	c.cache.Store(key, lemma)
	return lemma
}
