package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

// Config is the full service configuration.
type Config struct {
	Lexicon LexiconConfig `yaml:"lexicon"`
	Morph   MorphConfig   `yaml:"morph"`
	Tagger  TaggerConfig  `yaml:"tagger"`
	Store   StoreConfig   `yaml:"store"`
	Workers int           `yaml:"workers"`
}

// LexiconConfig locates the word lists.
type LexiconConfig struct {
	CommonDir   string `yaml:"common_dir"`
	GeoTerms    string `yaml:"geo_terms"`
	CorpusNames string `yaml:"corpus_names"`
	Extras      string `yaml:"extras"`
}

// MorphConfig selects the lemmatizer. An empty Dictionary means words are
// only lowercased.
type MorphConfig struct {
	Dictionary string `yaml:"dictionary"`
	Cache      bool   `yaml:"cache"`
}

// TaggerConfig describes how to run the external tagger.
type TaggerConfig struct {
	Command        []string      `yaml:"command"`
	ConfigTemplate string        `yaml:"config_template"`
	ConfigName     string        `yaml:"config_name"`
	InputName      string        `yaml:"input_name"`
	OutputName     string        `yaml:"output_name"`
	Stdout         bool          `yaml:"stdout"`
	Charset        string        `yaml:"charset"`
	Timeout        time.Duration `yaml:"timeout"`
	WorkDir        string        `yaml:"work_dir"`
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "memory"
	Path   string `yaml:"path"`
}

// Default returns the configuration used when no file overrides a value.
func Default() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			CommonDir:   "ner_lists/slovnik",
			GeoTerms:    "ner_lists/geo_terms.txt",
			CorpusNames: "ner_lists/full_names_list.txt",
		},
		Morph: MorphConfig{Cache: true},
		Tagger: TaggerConfig{
			Command:    []string{"tomitaparser", "{config}"},
			ConfigName: "config.proto",
			InputName:  "input.txt",
			OutputName: "names.xml",
			Charset:    "utf-8",
			Timeout:    30 * time.Second,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "imena.db",
		},
		Workers: 4,
	}
}

// Load reads a YAML config file on top of Default and applies environment
// overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from IMENA_* environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("IMENA_LEXICON_COMMON_DIR", &c.Lexicon.CommonDir)
	str("IMENA_LEXICON_GEO_TERMS", &c.Lexicon.GeoTerms)
	str("IMENA_LEXICON_CORPUS_NAMES", &c.Lexicon.CorpusNames)
	str("IMENA_LEXICON_EXTRAS", &c.Lexicon.Extras)
	str("IMENA_MORPH_DICTIONARY", &c.Morph.Dictionary)
	str("IMENA_TAGGER_CHARSET", &c.Tagger.Charset)
	str("IMENA_TAGGER_CONFIG_TEMPLATE", &c.Tagger.ConfigTemplate)
	str("IMENA_TAGGER_WORK_DIR", &c.Tagger.WorkDir)
	str("IMENA_STORE_DRIVER", &c.Store.Driver)
	str("IMENA_STORE_PATH", &c.Store.Path)

	if v, ok := lookup("IMENA_TAGGER_COMMAND"); ok {
		c.Tagger.Command = strings.Fields(v)
	}
	if v, ok := lookup("IMENA_TAGGER_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: IMENA_TAGGER_TIMEOUT: %v", internalerr.ErrInvalidConfig, err)
		}
		c.Tagger.Timeout = d
	}
	if v, ok := lookup("IMENA_WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: IMENA_WORKERS: %v", internalerr.ErrInvalidConfig, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks that the configuration can start a service.
func (c *Config) Validate() error {
	switch {
	case c.Lexicon.CommonDir == "" || c.Lexicon.GeoTerms == "" || c.Lexicon.CorpusNames == "":
		return fmt.Errorf("%w: lexicon common_dir, geo_terms and corpus_names are required", internalerr.ErrInvalidConfig)
	case len(c.Tagger.Command) == 0:
		return fmt.Errorf("%w: tagger command is required", internalerr.ErrInvalidConfig)
	case c.Tagger.Timeout < 0:
		return fmt.Errorf("%w: tagger timeout must not be negative", internalerr.ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", internalerr.ErrInvalidConfig)
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return fmt.Errorf("%w: sqlite store needs a path", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}
