package ingest

import (
	"strings"

	"github.com/nauchpop/imena/pkg/imena/lexicon"
	"github.com/nauchpop/imena/pkg/imena/morph"
)

// FilterCandidates runs one exclusion pass per matcher, in order. Each pass
// sees only what the previous pass kept.
func FilterCandidates(candidates []string, lem morph.Lemmatizer, matchers ...*lexicon.Matcher) []string {
	names := candidates
	for _, m := range matchers {
		names = filterPass(names, lem, m)
	}
	return names
}

// filterPass removes from every candidate the words whose lemma the matcher
// contains. Candidates left with no words are dropped.
//
// Example: with "компания" in the matcher, "Компания Яндекс" becomes "Яндекс".
func filterPass(candidates []string, lem morph.Lemmatizer, m *lexicon.Matcher) []string {
	kept := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		var words []string
		for _, w := range splitWords(candidate) {
			lemma := lem.Lemma(strings.ToLower(w))
			if m.Contains(lemma) {
				continue
			}
			words = append(words, TitleCase(w))
		}
		if name := strings.Join(words, " "); name != "" {
			kept = append(kept, name)
		}
	}
	return kept
}
