package ingest

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

const (
	nameElement   = "name"
	nameAttribute = "val"
)

// DecodeTaggerOutput returns a UTF-8 reader over the tagger's raw output
// written in the named charset. An empty label means UTF-8.
func DecodeTaggerOutput(label string, data []byte) (io.Reader, error) {
	if label == "" {
		label = "utf-8"
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: charset %q: %v", internalerr.ErrParse, label, err)
	}
	return r, nil
}

// ExtractCandidates reads the tagger's markup and returns the val attribute
// of every <name> element in document order, title-cased.
//
// The markup is parsed as tag soup: unclosed or stray tags never abort the
// parse, they only reduce what can be found. An error is returned only when
// the document cannot be read at all.
func ExtractCandidates(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrParse, err)
	}

	var candidates []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, nameElement) {
			if val, ok := attr(n, nameAttribute); ok {
				candidates = append(candidates, TitleCase(val))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return candidates, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
