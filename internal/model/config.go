package model

import "time"

// Config holds the complete clausetag configuration
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Store       StoreConfig       `yaml:"store"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CatalogConfig controls clause catalog loading
type CatalogConfig struct {
	Path       string        `yaml:"path"`        // Path to the clause catalog YAML
	CacheTTL   time.Duration `yaml:"cache_ttl"`   // How long a parsed catalog stays cached
	ActiveOnly bool          `yaml:"active_only"` // Skip clauses marked inactive
}

// HTTPConfig controls remote evidence ingestion
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RatePerSecond float64       `yaml:"rate_per_second"` // Per-host request rate
	RateBurst     int           `yaml:"rate_burst"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// CacheConfig controls the parsed-catalog cache
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StoreConfig controls mapping persistence
type StoreConfig struct {
	Dir string `yaml:"dir"` // Directory for the disk store ("" = in-memory only)
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// LLMConfig controls the optional summary provider
type LLMConfig struct {
	Provider    string `yaml:"provider"` // openai, ollama, "" (disabled)
	Model       string `yaml:"model"`
	APIKey      string `yaml:"-"` // From environment only, never persisted
	BaseURL     string `yaml:"base_url,omitempty"`
	MaxTokens   int    `yaml:"max_tokens"`
	TimeoutSecs int    `yaml:"timeout_seconds"`
	StrictScope bool   `yaml:"strict_scope"`
}

// LoggingConfig controls the structured logger
type LoggingConfig struct {
	Level string `yaml:"level"` // DEBUG, INFO, WARN, ERROR
	File  string `yaml:"file"`  // Log file path ("" = stderr)
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:       "clauses.yaml",
			CacheTTL:   10 * time.Minute,
			ActiveOnly: true,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Clausetag/0.1 (+https://github.com/clausetag/clausetag)",
			MaxBodyBytes:  2_000_000,
			RatePerSecond: 2,
			RateBurst:     5,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Store: StoreConfig{
			Dir: "",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Provider:    "",
			MaxTokens:   1000,
			TimeoutSecs: 30,
			StrictScope: true,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}
