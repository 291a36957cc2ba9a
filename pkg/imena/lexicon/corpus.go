package lexicon

import (
	"log"
	"regexp"
)

// nonWord is one character that cannot be part of a word.
// \W in RE2 is ASCII-only, so Cyrillic needs an explicit Unicode class.
const nonWord = `[^\p{L}\p{N}_]`

// CorpusNames is the ordered list of curated full names that are looked up
// directly in source text. Patterns are compiled once at construction.
type CorpusNames struct {
	names    []string
	patterns []*regexp.Regexp
}

// NewCorpusNames compiles a whole-phrase pattern for every non-empty name.
// Each pattern requires a non-word character immediately before and after
// the literal name; the match is case-sensitive.
func NewCorpusNames(names []string) *CorpusNames {
	c := &CorpusNames{
		names:    make([]string, 0, len(names)),
		patterns: make([]*regexp.Regexp, 0, len(names)),
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		re, err := regexp.Compile(nonWord + regexp.QuoteMeta(name) + nonWord)
		if err != nil {
			log.Printf("lexicon: skipping corpus name %q: %v", name, err)
			continue
		}
		c.names = append(c.names, name)
		c.patterns = append(c.patterns, re)
	}
	return c
}

// Match returns, in list order, every name that occurs in text as a whole
// phrase. Each name is reported at most once, verbatim.
func (c *CorpusNames) Match(text string) []string {
	if c == nil {
		return nil
	}
	var found []string
	for i, re := range c.patterns {
		if re.MatchString(text) {
			found = append(found, c.names[i])
		}
	}
	return found
}

// Names returns a copy of the names in list order.
func (c *CorpusNames) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of usable names.
func (c *CorpusNames) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
