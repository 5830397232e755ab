package config

import "time"

// Default values for the parsing policy. Tuned against observed scans.
const (
	DefaultStoreCodePrefix   = "RS"
	DefaultExpectedStore     = "RS MART"
	DefaultMinItemLineLength = 20
	DefaultMinMarkersToSplit = 2
	DefaultCharsPerPage      = 2500
	DefaultDebugLineCount    = 10
)

// Default server values.
const (
	DefaultAddress      = ":8080"
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 2 * time.Minute
)

// Environment variable names.
const (
	EnvExpectedStore = "SCANNER_EXPECTED_STORE"
	EnvLLMAPIKey     = "LLM_API_KEY"
	EnvLLMBaseURL    = "LLM_BASE_URL"
	EnvLLMModel      = "LLM_MODEL"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			StoreCodePrefix:   DefaultStoreCodePrefix,
			StoreTokens:       []string{"RS MART", "RS SUPERMART", "RS HYPERMART"},
			ExpectedStore:     DefaultExpectedStore,
			ItemHeaderTokens:  []string{"sl no", "item code", "item name"},
			MinItemLineLength: DefaultMinItemLineLength,
			MinMarkersToSplit: DefaultMinMarkersToSplit,
			CharsPerPage:      DefaultCharsPerPage,
			DebugLineCount:    DefaultDebugLineCount,
		},
		Server: ServerConfig{
			Address:      DefaultAddress,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
	}
}
