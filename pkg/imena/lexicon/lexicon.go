package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

// Lexicon holds the word lists that drive candidate filtering and corpus
// augmentation:
//   - Common: lemmas of ordinary words the tagger mistakes for names
//   - Geo: geographic terms (город, река, область, ...)
//   - Corpus: curated full names searched for directly in the text
//
// A Lexicon is built once at startup and never mutated afterwards, so a
// single instance can be shared by any number of concurrent pipelines.
type Lexicon struct {
	Common *Matcher
	Geo    *Matcher
	Corpus *CorpusNames
}

// New assembles a lexicon from already built parts. Nil parts are replaced
// with empty ones.
func New(common, geo *Matcher, corpus *CorpusNames) *Lexicon {
	if common == nil {
		common = NewMatcher(nil)
	}
	if geo == nil {
		geo = NewMatcher(nil)
	}
	if corpus == nil {
		corpus = NewCorpusNames(nil)
	}
	return &Lexicon{Common: common, Geo: geo, Corpus: corpus}
}

// Paths locates the lexicon files on disk.
type Paths struct {
	CommonDir   string // directory of free-text files with common lemmas
	GeoTerms    string // one geo term per line
	CorpusNames string // one full name per line
	Extras      string // optional YAML with additional entries
}

// Extras are hand-curated additions merged into the bulk word lists.
//
// Expected format:
//
//	common: [сказать, компания]
//	geo: [посёлок]
//	corpus: [Лев Ландау]
type Extras struct {
	Common []string `yaml:"common"`
	Geo    []string `yaml:"geo"`
	Corpus []string `yaml:"corpus"`
}

// LoadExtrasYAML reads an Extras file.
func LoadExtrasYAML(path string) (*Extras, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var extras Extras
	if err := yaml.Unmarshal(data, &extras); err != nil {
		return nil, err
	}
	return &extras, nil
}

// Load reads every configured file and builds the lexicon. All three bulk
// sources are required: a pipeline without them would keep every tagger
// candidate. Any failure wraps internalerr.ErrLexiconLoad.
func Load(p Paths) (*Lexicon, error) {
	if p.CommonDir == "" || p.GeoTerms == "" || p.CorpusNames == "" {
		return nil, fmt.Errorf("%w: common dir, geo terms and corpus names are required", internalerr.ErrLexiconLoad)
	}

	common, err := LoadCommonLemmas(p.CommonDir)
	if err != nil {
		return nil, err
	}
	geo, err := LoadLines(p.GeoTerms)
	if err != nil {
		return nil, fmt.Errorf("load geo terms: %w", err)
	}
	corpus, err := LoadLines(p.CorpusNames)
	if err != nil {
		return nil, fmt.Errorf("load corpus names: %w", err)
	}

	commonWords := common.Words()
	if p.Extras != "" {
		extras, err := LoadExtrasYAML(p.Extras)
		if err != nil {
			return nil, fmt.Errorf("%w: extras %s: %v", internalerr.ErrLexiconLoad, p.Extras, err)
		}
		commonWords = append(commonWords, extras.Common...)
		geo = append(geo, extras.Geo...)
		corpus = append(corpus, extras.Corpus...)
	}

	return New(
		NewWordList(commonWords).Matcher(),
		NewWordList(geo).Matcher(),
		NewCorpusNames(corpus),
	), nil
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	return LexiconStats{
		CommonLemmas: l.Common.Len(),
		GeoTerms:     l.Geo.Len(),
		CorpusNames:  l.Corpus.Len(),
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	CommonLemmas int
	GeoTerms     int
	CorpusNames  int
}
