package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

// cyrillicRun matches a maximal run of lowercase Russian letters.
var cyrillicRun = regexp.MustCompile(`[а-яё]+`)

// WordList is an immutable, deduplicated list of lowercase words.
type WordList struct {
	words []string
}

// NewWordList builds a word list, keeping the first occurrence of each word.
// Words are lowercased and empty entries are dropped.
func NewWordList(words []string) *WordList {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return &WordList{words: out}
}

// Words returns a copy of the list contents.
func (w *WordList) Words() []string {
	out := make([]string, len(w.words))
	copy(out, w.words)
	return out
}

// Len returns the number of distinct words.
func (w *WordList) Len() int { return len(w.words) }

// Matcher compiles the list into a membership matcher.
func (w *WordList) Matcher() *Matcher {
	return NewMatcher(w.words)
}

// LoadCommonLemmas walks every file under dir and collects all runs of
// lowercase Cyrillic letters into one deduplicated list.
//
// A directory that does not exist yields an empty list. Any other read
// failure is reported as ErrLexiconLoad.
func LoadCommonLemmas(dir string) (*WordList, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return NewWordList(nil), nil
	}

	var words []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		words = append(words, cyrillicRun.FindAllString(string(data), -1)...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: common lemmas %s: %v", internalerr.ErrLexiconLoad, dir, err)
	}

	return NewWordList(words), nil
}

// LoadLines reads a file line by line, stripping trailing whitespace.
// Empty lines are kept so that line positions match the file.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrLexiconLoad, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRightFunc(scanner.Text(), unicode.IsSpace))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", internalerr.ErrLexiconLoad, path, err)
	}
	return lines, nil
}
