package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete legalyze configuration
type Config struct {
	Analysis     AnalysisConfig     `yaml:"analysis" mapstructure:"analysis"`
	Source       SourceConfig       `yaml:"source" mapstructure:"source"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
	Metrics      MetricsConfig      `yaml:"metrics" mapstructure:"metrics"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// AnalysisConfig bounds the analyzers and toggles optional facets
type AnalysisConfig struct {
	MaxSentimentChars int  `yaml:"max_sentiment_chars" mapstructure:"max_sentiment_chars"`
	MaxTopicChars     int  `yaml:"max_topic_chars" mapstructure:"max_topic_chars"`
	MaxLegalTermChars int  `yaml:"max_legal_term_chars" mapstructure:"max_legal_term_chars"`
	MinClassifyChars  int  `yaml:"min_classify_chars" mapstructure:"min_classify_chars"`
	Entities          bool `yaml:"entities" mapstructure:"entities"`                     // prose named-entity extraction
	BaselineSentiment bool `yaml:"baseline_sentiment" mapstructure:"baseline_sentiment"` // VADER score next to the lexicon score
	IncludeStructure  bool `yaml:"include_structure" mapstructure:"include_structure"`   // emit segmented sections in the report
}

// SourceConfig controls document text extraction
type SourceConfig struct {
	MaxBytes  int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
	Normalize bool  `yaml:"normalize" mapstructure:"normalize"` // NFC normalisation
}

// HTTPConfig controls fetching of URL sources
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RetryAttempts uint          `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls caching of analysis reports
type CacheConfig struct {
	Enabled       bool          `yaml:"enabled" mapstructure:"enabled"`
	Backend       string        `yaml:"backend" mapstructure:"backend"` // memory, disk, layered, redis
	Dir           string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL     time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL       time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
	RedisAddr     string        `yaml:"redis_addr" mapstructure:"redis_addr"`
	RedisPassword string        `yaml:"redis_password,omitempty" mapstructure:"redis_password"`
	RedisDB       int           `yaml:"redis_db" mapstructure:"redis_db"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls per-host fetch rates in batch mode
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// LLMConfig controls the optional summary (never affects scores)
type LLMConfig struct {
	Provider       string `yaml:"provider" mapstructure:"provider"` // "", openai, ollama
	Model          string `yaml:"model" mapstructure:"model"`
	APIKey         string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL        string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout        int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens      int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	MaxInputTokens int    `yaml:"max_input_tokens" mapstructure:"max_input_tokens"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level       string   `yaml:"level" mapstructure:"level"`
	Format      string   `yaml:"format" mapstructure:"format"` // json, console
	OutputPaths []string `yaml:"output_paths" mapstructure:"output_paths"`
}

// MetricsConfig controls prometheus metric export
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Textfile string `yaml:"textfile,omitempty" mapstructure:"textfile"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxSentimentChars: 100_000,
			MaxTopicChars:     100_000,
			MaxLegalTermChars: 80_000,
			MinClassifyChars:  100,
		},
		Source: SourceConfig{
			MaxBytes:  20_000_000,
			Normalize: true,
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Legalyze/0.1 (+https://github.com/ppiankov/legalyze)",
			MaxBodyBytes:  5_000_000,
			RetryAttempts: 3,
			RetryDelay:    time.Second,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Backend:   "layered",
			Dir:       defaultCacheDir(),
			MemoryTTL: time.Hour,
			DiskTTL:   24 * time.Hour,
			RedisAddr: "localhost:6379",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Timeout:        30,
			MaxTokens:      800,
			MaxInputTokens: 2048,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			OutputPaths: []string{"stderr"},
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "legalyze")
	}
	return filepath.Join(dir, "legalyze")
}
