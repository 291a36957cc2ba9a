package ingest

import (
	"strings"
	"testing"

	"github.com/nauchpop/imena/pkg/imena/lexicon"
)

// mapLemmatizer resolves known forms from a table and lowercases the rest.
type mapLemmatizer map[string]string

func (m mapLemmatizer) Lemma(word string) string {
	word = strings.ToLower(word)
	if lemma, ok := m[word]; ok {
		return lemma
	}
	return word
}

func TestFilterDropsAllStopCandidates(t *testing.T) {
	common := lexicon.NewMatcher([]string{"он", "сказать"})
	lem := mapLemmatizer{"сказал": "сказать"}

	got := FilterCandidates([]string{"Он", "Он Сказал", "Сказал"}, lem, common)
	if len(got) != 0 {
		t.Errorf("candidates made only of common words should be dropped, got %q", got)
	}
}

func TestFilterExcisesStopWords(t *testing.T) {
	common := lexicon.NewMatcher([]string{"компания", "господин"})
	lem := mapLemmatizer{"компании": "компания"}

	got := FilterCandidates([]string{
		"Компания Яндекс",
		"Господин Иван Петров",
		"Иван Компании Петров",
	}, lem, common)

	assertStrings(t, "filtered", got, []string{"Яндекс", "Иван Петров", "Иван Петров"})
}

func TestFilterSequentialPasses(t *testing.T) {
	common := lexicon.NewMatcher([]string{"река"})
	geo := lexicon.NewMatcher([]string{"москва"})
	lem := mapLemmatizer{"москве": "москва"}

	got := FilterCandidates([]string{"Река Москва", "Москве", "Лев Ландау", "Река Волга"}, lem, common, geo)
	assertStrings(t, "filtered", got, []string{"Лев Ландау", "Волга"})
}

func TestFilterNormalizesWords(t *testing.T) {
	got := FilterCandidates([]string{"иВАН   петров"}, mapLemmatizer{}, lexicon.NewMatcher(nil))
	assertStrings(t, "filtered", got, []string{"Иван Петров"})
}

func TestFilterNoMatchers(t *testing.T) {
	in := []string{"Иван Петров"}
	got := FilterCandidates(in, mapLemmatizer{})
	assertStrings(t, "filtered", got, in)
}

func TestFilterEmptyCandidate(t *testing.T) {
	got := FilterCandidates([]string{"", "   "}, mapLemmatizer{}, lexicon.NewMatcher(nil))
	if len(got) != 0 {
		t.Errorf("blank candidates should be dropped, got %q", got)
	}
}
