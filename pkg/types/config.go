// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults applied when a configuration value is left at its zero value.
const (
	DefaultSearchEndpoint = "https://api.tavily.com/search"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultContextResults = 2
	DefaultModel          = "gpt-4"
	DefaultSystemPrompt   = "You are a helpful assistant."
	DefaultRateLimitDelay = 5 * time.Second
	DefaultMaxAttempts    = 2
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "answer-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// RequestsPerSecond throttles outbound requests across all stages.
	// Zero or negative disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	// Endpoint is the search provider URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// APIKey authenticates against the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Depth is passed through as the provider's search_depth when set
	// ("basic" or "advanced").
	Depth string `json:"depth,omitempty" yaml:"depth,omitempty"`

	// MaxResults asks the provider for at most this many results.
	// Zero leaves the provider default in place.
	MaxResults int `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// AssemblyConfig holds settings for the context assembly stage.
type AssemblyConfig struct {
	// MaxResults is the number of leading results whose content is used (default 2).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxChars caps the assembled context in characters. Zero means no cap.
	MaxChars int `json:"max_chars,omitempty" yaml:"max_chars,omitempty"`
}

// AIConfig holds settings for the chat-completion provider.
type AIConfig struct {
	// Model is the chat model identifier (default "gpt-4").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint, e.g. for a compatible proxy.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Temperature is the sampling temperature (0 for deterministic output).
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// GenerationConfig holds settings for the answer generation stage.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// SystemPrompt is the fixed system instruction.
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt"`

	// RateLimitDelay is the wait before the single retry after a rate limit.
	RateLimitDelay time.Duration `json:"rate_limit_delay" yaml:"rate_limit_delay"`

	// MaxAttempts bounds the number of provider calls per answer (default 2).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
	Search     SearchConfig     `json:"search" yaml:"search"`
	Assembly   AssemblyConfig   `json:"assemble" yaml:"assemble"`
	Generation GenerationConfig `json:"generation" yaml:"generation"`
}

// WithDefaults returns a copy of cfg with zero values replaced by defaults.
func (cfg PipelineConfig) WithDefaults() PipelineConfig {
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = DefaultHTTPTimeout
	}
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = DefaultSearchEndpoint
	}
	if cfg.Assembly.MaxResults <= 0 {
		cfg.Assembly.MaxResults = DefaultContextResults
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = DefaultModel
	}
	if cfg.Generation.SystemPrompt == "" {
		cfg.Generation.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Generation.RateLimitDelay <= 0 {
		cfg.Generation.RateLimitDelay = DefaultRateLimitDelay
	}
	if cfg.Generation.MaxAttempts <= 0 {
		cfg.Generation.MaxAttempts = DefaultMaxAttempts
	}
	return cfg
}
