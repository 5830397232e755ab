// Package config holds tunable parsing policy and service settings.
//
// The heuristics in the parsing engine are deliberately exposed as named
// configuration values rather than inlined magic numbers, so they can be
// tuned against observed input without touching parsing logic.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
}

// ParserConfig tunes the heuristic text-parsing engine.
type ParserConfig struct {
	// StoreCodePrefix is the store-code prefix used by the embedded
	// invoice-number pattern (prefix + digits + slash + digits).
	StoreCodePrefix string `yaml:"store_code_prefix"`

	// StoreTokens are the substrings that identify a store line.
	StoreTokens []string `yaml:"store_tokens"`

	// ExpectedStore is the business's own store token; invoices whose
	// store line does not contain it are flagged for review.
	ExpectedStore string `yaml:"expected_store"`

	// ItemHeaderTokens mark the start of the items table.
	ItemHeaderTokens []string `yaml:"item_header_tokens"`

	// MinItemLineLength: shorter lines inside the items region are
	// treated as noise/footers and skipped, not as end-of-table.
	MinItemLineLength int `yaml:"min_item_line_length"`

	// MinMarkersToSplit: minimum header-marker count before the input is
	// split into multiple documents. Splitting on a single marker is never
	// done; a false split corrupts two invoices while a missed split only
	// produces one oversized invoice.
	MinMarkersToSplit int `yaml:"min_markers_to_split"`

	// CharsPerPage drives the estimated page count heuristic.
	CharsPerPage int `yaml:"chars_per_page"`

	// DebugLineCount is how many raw lines the result's debug block keeps.
	DebugLineCount int `yaml:"debug_line_count"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	Debug        bool          `yaml:"debug"`
}

// LLMConfig configures the optional LLM fallback extractor.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads a YAML config file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	cfg.applyEnvironmentOverrides()
	cfg.fillZeroValues()
	return cfg, nil
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if store := os.Getenv(EnvExpectedStore); store != "" {
		c.Parser.ExpectedStore = store
	}
	if key := os.Getenv(EnvLLMAPIKey); key != "" {
		c.LLM.APIKey = key
	}
	if url := os.Getenv(EnvLLMBaseURL); url != "" {
		c.LLM.BaseURL = url
	}
	if model := os.Getenv(EnvLLMModel); model != "" {
		c.LLM.Model = model
	}
}

// FillDefaults returns a copy with zero-valued policy fields restored to
// their defaults. The parsing engine assumes the numeric policies are
// positive; a hand-built config must not be able to zero them.
func (p ParserConfig) FillDefaults() ParserConfig {
	def := Default().Parser
	if p.StoreCodePrefix == "" {
		p.StoreCodePrefix = def.StoreCodePrefix
	}
	if len(p.StoreTokens) == 0 {
		p.StoreTokens = def.StoreTokens
	}
	if p.ExpectedStore == "" {
		p.ExpectedStore = def.ExpectedStore
	}
	if len(p.ItemHeaderTokens) == 0 {
		p.ItemHeaderTokens = def.ItemHeaderTokens
	}
	if p.MinItemLineLength == 0 {
		p.MinItemLineLength = def.MinItemLineLength
	}
	if p.MinMarkersToSplit == 0 {
		p.MinMarkersToSplit = def.MinMarkersToSplit
	}
	if p.CharsPerPage == 0 {
		p.CharsPerPage = def.CharsPerPage
	}
	if p.DebugLineCount == 0 {
		p.DebugLineCount = def.DebugLineCount
	}
	return p
}

// fillZeroValues restores defaults for values a partial config file zeroed.
func (c *Config) fillZeroValues() {
	def := Default()
	c.Parser = c.Parser.FillDefaults()
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = def.Server.WriteTimeout
	}
}
