package morph

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

func TestIdentity(t *testing.T) {
	var lem Identity
	if got := lem.Lemma("МоСкВа"); got != "москва" {
		t.Errorf("Lemma(МоСкВа) = %q, want москва", got)
	}
}

type countingLemmatizer struct {
	calls atomic.Int64
}

func (c *countingLemmatizer) Lemma(word string) string {
	c.calls.Add(1)
	return word + "!"
}

func TestCachedMemoizes(t *testing.T) {
	next := &countingLemmatizer{}
	cached := NewCached(next)

	for i := 0; i < 3; i++ {
		if got := cached.Lemma("Москве"); got != "москве!" {
			t.Fatalf("Lemma = %q, want москве!", got)
		}
	}
	if n := next.calls.Load(); n != 1 {
		t.Errorf("underlying lemmatizer called %d times, want 1", n)
	}
}

func TestCachedConcurrent(t *testing.T) {
	cached := NewCached(Identity{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range []string{"Иван", "Петров", "Москва"} {
				cached.Lemma(w)
			}
		}()
	}
	wg.Wait()

	if got := cached.Lemma("ИВАН"); got != "иван" {
		t.Errorf("Lemma(ИВАН) = %q, want иван", got)
	}
}

func TestDictionaryPlainList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lemmatization-ru.txt")
	content := "москва\tмоскве\nмосква\tмосквы\nсказать\tсказал\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}

	dict, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}

	tests := []struct {
		word string
		want string
	}{
		{"Москве", "москва"},
		{"москвы", "москва"},
		{"сказал", "сказать"},
		{"Петров", "петров"}, // out of vocabulary
	}
	for _, tt := range tests {
		if got := dict.Lemma(tt.word); got != tt.want {
			t.Errorf("Lemma(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
	if !dict.Known("сказал") {
		t.Error("Known(сказал) = false, want true")
	}
}

func TestDictionaryMissingFile(t *testing.T) {
	if _, err := LoadDictionary(filepath.Join(t.TempDir(), "absent.gz")); err == nil {
		t.Error("LoadDictionary on missing file should fail")
	}
}

func writeDictionary(t *testing.T, name, content string, compress bool) string {
	t.Helper()
	data := []byte(content)
	if compress {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			t.Fatalf("gzip: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
		data = buf.Bytes()
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	return path
}

func TestDictionaryGzipList(t *testing.T) {
	path := writeDictionary(t, "ru.gz", "сказать\tсказал\tскажет\n", true)

	dict, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}
	if got := dict.Lemma("Скажет"); got != "сказать" {
		t.Errorf("Lemma(Скажет) = %q, want сказать", got)
	}
}

func TestDictionaryAmbiguousForm(t *testing.T) {
	// "стали" is a form of both сталь and стать; the first entry wins.
	path := writeDictionary(t, "ru.txt", "сталь\tстали\nстать\tстали\tстал\n", false)

	dict, err := LoadDictionary(path)
	if err != nil {
		t.Fatalf("LoadDictionary failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				if got := dict.Lemma("Стали"); got != "сталь" {
					errs <- got
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("Lemma(Стали) = %q, want сталь", got)
	}
	if got := dict.Lemma("стал"); got != "стать" {
		t.Errorf("Lemma(стал) = %q, want стать", got)
	}
}
