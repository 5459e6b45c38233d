package model

import "time"

// Config is the full engine configuration.
// Hierarchy (highest to lowest priority): CLI flags, LUMOS_* environment
// variables, config file (~/.lumos/config.yaml), defaults.
type Config struct {
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	Relevance RelevanceConfig `json:"relevance" yaml:"relevance"`
	Worker    WorkerConfig    `json:"worker" yaml:"worker"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Store     StoreConfig     `json:"store" yaml:"store"`
	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`
	Output    OutputConfig    `json:"output" yaml:"output"`
}

// ScoringConfig selects the visibility scoring strategy and its weights
type ScoringConfig struct {
	// Strategy is "simple" or "multifactor"; downstream callers select
	// explicitly, the two are never blended.
	Strategy string         `json:"strategy" yaml:"strategy"`
	Weights  ScoringWeights `json:"weights" yaml:"weights"`
}

// RelevanceConfig tunes the relevance filter
type RelevanceConfig struct {
	Threshold float64 `json:"threshold" yaml:"threshold"` // Minimum score to keep a candidate
	// Industry enables the industry known-brand boost when it matches a
	// built-in industry brand set (e.g. "saas", "crm", "analytics").
	Industry string `json:"industry,omitempty" yaml:"industry,omitempty"`
}

// WorkerConfig bounds the citation mention worker
type WorkerConfig struct {
	Concurrency    int           `json:"concurrency" yaml:"concurrency"`         // Citations in flight per batch
	BatchDelay     time.Duration `json:"batch_delay" yaml:"batch_delay"`         // Pause between batches
	RobotsTimeout  time.Duration `json:"robots_timeout" yaml:"robots_timeout"`   // Fail-open on expiry
	FetchTimeout   time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`
	MaxBodyBytes   int64         `json:"max_body_bytes" yaml:"max_body_bytes"`   // Hard streaming cap
	ContentBudget  int           `json:"content_budget" yaml:"content_budget"`   // Chars of text scanned per page
	UserAgent      string        `json:"user_agent" yaml:"user_agent"`
}

// CacheConfig configures the worker's URL cache
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	Backend string        `json:"backend" yaml:"backend"` // "memory" or "redis"
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db" yaml:"db"`
}

// ServerConfig configures the worker trigger endpoint
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	// BearerSecret authorizes worker trigger calls; requests without it are
	// rejected with 401. Recommended to set via LUMOS_SERVER_BEARER_SECRET.
	BearerSecret string `json:"bearer_secret,omitempty" yaml:"bearer_secret,omitempty"`
}

// StoreConfig configures the reference response store
type StoreConfig struct {
	Path string `json:"path" yaml:"path"` // SQLite database path
}

// AssistantConfig configures upstream assistant provider clients
type AssistantConfig struct {
	Provider   string        `json:"provider" yaml:"provider"` // "openai" or "perplexity"
	Model      string        `json:"model" yaml:"model"`
	APIKey     string        `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL    string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	MaxRetries int           `json:"max_retries" yaml:"max_retries"` // Rate-limit retries only
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `json:"verbose" yaml:"verbose"`
	IncludeFooter bool `json:"include_footer" yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Strategy: "multifactor",
			Weights:  DefaultScoringWeights(),
		},
		Relevance: RelevanceConfig{
			Threshold: 0.3,
		},
		Worker: WorkerConfig{
			Concurrency:   3,
			BatchDelay:    500 * time.Millisecond,
			RobotsTimeout: 3 * time.Second,
			FetchTimeout:  5 * time.Second,
			MaxBodyBytes:  512 * 1024,
			ContentBudget: 50_000,
			UserAgent:     "Lumos/0.1 (+https://github.com/Cabouraad/lumos-ai-optimize-sub004)",
		},
		Cache: CacheConfig{
			Enabled: true,
			Backend: "memory",
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Addr: ":8787",
		},
		Store: StoreConfig{
			Path: "lumos.db",
		},
		Assistant: AssistantConfig{
			Provider:   "openai",
			Model:      "gpt-4o-mini",
			Timeout:    60 * time.Second,
			MaxRetries: 3,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
