package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/intcode"
)

// Config describes a search run, loaded from a TOML file.
type Config struct {
	Program string `toml:"program"` // Program file path; "-" is stdin.
	Target  *int64 `toml:"target"`  // Target output; nil runs a single trial.
	Answer  string `toml:"answer"`  // Answer expression.
	Workers int    `toml:"workers"` // Concurrent noun rows.
	Verbose bool   `toml:"verbose"` // Verbose logging.
	Trace   bool   `toml:"trace"`   // Instruction tracing.
	Noun    Range  `toml:"noun"`    // Noun range.
	Verb    Range  `toml:"verb"`    // Verb range.
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() (cfg *Config) {
	cfg = &Config{
		Program: "-",
		Answer:  DEFAULT_ANSWER,
		Workers: 1,
		Noun:    DefaultRange,
		Verb:    DefaultRange,
	}

	return
}

// ParseConfig decodes TOML text over the defaults.
func ParseConfig(text string) (cfg *Config, err error) {
	cfg = DefaultConfig()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = fmt.Errorf("%w: %v", ErrConfigKey, strings.Join(keys, ", "))
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// LoadConfig reads a TOML configuration file.
func LoadConfig(path string) (cfg *Config, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg, err = ParseConfig(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	return
}

// Validate checks the ranges and worker count.
func (cfg *Config) Validate() (err error) {
	ranges := []struct {
		name string
		Range
	}{
		{"noun", cfg.Noun},
		{"verb", cfg.Verb},
	}
	for _, r := range ranges {
		if r.Start < 0 || r.End < r.Start {
			return fmt.Errorf("%w: %v [%d, %d)", ErrConfigRange, r.name, r.Start, r.End)
		}
	}

	if cfg.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrConfigWorkers, cfg.Workers)
	}

	return
}

// Harness creates a harness for source configured by cfg.
func (cfg *Config) Harness(source intcode.Memory) (h *Harness) {
	h = NewHarness(source)
	h.Nouns = cfg.Noun
	h.Verbs = cfg.Verb
	h.Workers = cfg.Workers
	h.Verbose = cfg.Verbose
	h.Trace = cfg.Trace

	return
}
