package lexicon

import (
	"sort"
	"strings"
)

// Matcher answers exact membership queries for lemmas.
// It is read-only after construction and safe for concurrent use.
type Matcher struct {
	words map[string]struct{}
}

// NewMatcher creates a matcher over the given words.
// Entries are lowercased; empty entries are ignored.
func NewMatcher(words []string) *Matcher {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return &Matcher{words: set}
}

// Contains reports whether lemma is exactly one of the matcher's words.
func (m *Matcher) Contains(lemma string) bool {
	if m == nil {
		return false
	}
	_, ok := m.words[strings.ToLower(lemma)]
	return ok
}

// Len returns the number of words in the matcher.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.words)
}

// All returns the matcher's words in sorted order.
func (m *Matcher) All() []string {
	if m == nil {
		return nil
	}
	result := make([]string, 0, len(m.words))
	for w := range m.words {
		result = append(result, w)
	}
	sort.Strings(result)
	return result
}
