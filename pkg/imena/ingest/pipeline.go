package ingest

import (
	"context"
	"log"

	"github.com/nauchpop/imena/pkg/imena/lexicon"
	"github.com/nauchpop/imena/pkg/imena/morph"
	"github.com/nauchpop/imena/pkg/imena/tagger"
)

// Pipeline orchestrates the full extraction flow:
// text → tagger → candidates → common-lemma filter → geo filter → corpus augmentation
//
// A Pipeline holds only read-only state and may be used concurrently.
type Pipeline struct {
	lexicon *lexicon.Lexicon
	lemmas  morph.Lemmatizer
	tagger  tagger.Tagger
	charset string
}

// NewPipeline creates an extraction pipeline with the given components
func NewPipeline(lex *lexicon.Lexicon, lem morph.Lemmatizer, tg tagger.Tagger) *Pipeline {
	if lex == nil {
		lex = lexicon.New(nil, nil, nil)
	}
	if lem == nil {
		lem = morph.Identity{}
	}
	return &Pipeline{
		lexicon: lex,
		lemmas:  lem,
		tagger:  tg,
	}
}

// SetCharset sets the charset label the tagger writes its output in.
// Must be called before the pipeline is shared.
func (p *Pipeline) SetCharset(label string) {
	p.charset = label
}

// Extract runs text through the full pipeline. It never fails: tagger
// problems are reported as StatusTaggerFailed.
func (p *Pipeline) Extract(ctx context.Context, text string) Result {
	// 1. External tagger
	raw, err := p.tagger.Tag(ctx, text)
	if err != nil {
		log.Printf("ingest: %v", err)
		return Result{Status: StatusTaggerFailed}
	}

	// 2. Candidates from markup
	r, err := DecodeTaggerOutput(p.charset, raw)
	if err != nil {
		log.Printf("ingest: %v", err)
		return Result{Status: StatusTaggerFailed}
	}
	candidates, err := ExtractCandidates(r)
	if err != nil {
		log.Printf("ingest: %v", err)
		return Result{Status: StatusTaggerFailed}
	}

	// 3. Drop common words, then geographic terms
	names := FilterCandidates(candidates, p.lemmas, p.lexicon.Common, p.lexicon.Geo)

	// 4. Curated names found in the original text
	names = append(names, p.lexicon.Corpus.Match(text)...)

	if len(names) == 0 {
		return Result{Status: StatusEmpty}
	}
	return Result{Status: StatusFound, Names: names}
}

// Markup runs the extraction and returns text with every occurrence of an
// extracted name wrapped in markers. The text is returned unchanged when
// nothing was found or the tagger failed.
func (p *Pipeline) Markup(ctx context.Context, text string) string {
	res := p.Extract(ctx, text)
	if res.Status != StatusFound {
		return text
	}
	return TagNames(text, res.Names)
}
