package config

import (
	"context"
	"fmt"
	"log"

	"github.com/nauchpop/imena/pkg/imena/ingest"
	"github.com/nauchpop/imena/pkg/imena/lexicon"
	"github.com/nauchpop/imena/pkg/imena/morph"
	"github.com/nauchpop/imena/pkg/imena/store"
	"github.com/nauchpop/imena/pkg/imena/store/memstore"
	"github.com/nauchpop/imena/pkg/imena/store/sqlite"
	"github.com/nauchpop/imena/pkg/imena/tagger"
)

// Loader loads all configured files and constructs components
type Loader struct {
	Config *Config
}

// Components holds all loaded components
type Components struct {
	Lexicon    *lexicon.Lexicon
	Lemmatizer morph.Lemmatizer
	Tagger     tagger.Tagger
	Pipeline   *ingest.Pipeline
}

// Load reads the lexicon and morphology dictionary and returns initialized
// components. Lexicon failures are fatal for the caller.
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{}

	// Load lexicon
	lex, err := lexicon.Load(lexicon.Paths{
		CommonDir:   cfg.Lexicon.CommonDir,
		GeoTerms:    cfg.Lexicon.GeoTerms,
		CorpusNames: cfg.Lexicon.CorpusNames,
		Extras:      cfg.Lexicon.Extras,
	})
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	stats := lex.Stats()
	log.Printf("lexicon: %d common lemmas, %d geo terms, %d corpus names",
		stats.CommonLemmas, stats.GeoTerms, stats.CorpusNames)
	comp.Lexicon = lex

	// Load lemmatizer
	var lem morph.Lemmatizer = morph.Identity{}
	if cfg.Morph.Dictionary != "" {
		dict, err := morph.LoadDictionary(cfg.Morph.Dictionary)
		if err != nil {
			return nil, fmt.Errorf("load morph dictionary: %w", err)
		}
		lem = dict
	} else {
		log.Printf("morph: no dictionary configured, words are only lowercased")
	}
	if cfg.Morph.Cache {
		lem = morph.NewCached(lem)
	}
	comp.Lemmatizer = lem

	// Build tagger
	tg, err := tagger.NewSubprocess(tagger.Options{
		Command:        cfg.Tagger.Command,
		BaseDir:        cfg.Tagger.WorkDir,
		ConfigTemplate: cfg.Tagger.ConfigTemplate,
		ConfigName:     cfg.Tagger.ConfigName,
		InputName:      cfg.Tagger.InputName,
		OutputName:     cfg.Tagger.OutputName,
		Stdout:         cfg.Tagger.Stdout,
		Timeout:        cfg.Tagger.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build tagger: %w", err)
	}
	comp.Tagger = tg

	comp.Pipeline = ingest.NewPipeline(comp.Lexicon, comp.Lemmatizer, comp.Tagger)
	comp.Pipeline.SetCharset(cfg.Tagger.Charset)

	return comp, nil
}

// OpenStore opens the configured document store.
func (l *Loader) OpenStore(ctx context.Context) (store.Store, error) {
	cfg := l.Config
	if cfg == nil {
		cfg = Default()
	}
	switch cfg.Store.Driver {
	case "memory":
		return memstore.New(), nil
	case "sqlite":
		st, err := sqlite.OpenSQLite(ctx, cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store %s: %w", cfg.Store.Path, err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
