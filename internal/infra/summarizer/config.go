// Package summarizer provides model-backed implementations of the pipeline's
// summarization port. It includes adapters for OpenAI and Claude (Anthropic)
// APIs with circuit breaker, retry, and rate limiting, plus a deterministic
// no-op implementation for development and tests.
package summarizer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"doc-digest/internal/usecase/summary"
	"doc-digest/pkg/config"
)

// Provider selects which summarization backend to build.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
	ProviderNoop   Provider = "noop"
)

// Config holds configuration shared by the model adapters.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// Provider selects the backend: openai, claude, or noop.
	Provider Provider

	// OpenAIModel is the OpenAI API model identifier.
	OpenAIModel string

	// ClaudeModel is the Claude API model identifier.
	ClaudeModel string

	// Timeout is the maximum duration for a single summarization API call.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound API calls. Chunked documents can
	// fan out many calls in a burst; the limiter keeps them under provider
	// rate limits.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size.
	Burst int
}

// LoadConfig loads adapter configuration from environment variables.
//
// Environment variables:
//   - SUMMARIZER_PROVIDER: openai | claude | noop (default: noop)
//   - SUMMARIZER_OPENAI_MODEL: OpenAI model id (default: gpt-4o-mini)
//   - SUMMARIZER_CLAUDE_MODEL: Claude model id (default: SDK current Sonnet)
//   - SUMMARIZER_TIMEOUT: per-call timeout (default: 60s)
//   - SUMMARIZER_RATE_LIMIT: max requests per second (default: 2)
//   - SUMMARIZER_RATE_BURST: limiter burst size (default: 4)
func LoadConfig() (Config, error) {
	cfg := Config{
		Provider:          Provider(config.GetEnvString("SUMMARIZER_PROVIDER", string(ProviderNoop))),
		OpenAIModel:       config.GetEnvString("SUMMARIZER_OPENAI_MODEL", "gpt-4o-mini"),
		ClaudeModel:       config.GetEnvString("SUMMARIZER_CLAUDE_MODEL", defaultClaudeModel),
		Timeout:           config.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		RequestsPerSecond: config.GetEnvFloat("SUMMARIZER_RATE_LIMIT", 2),
		Burst:             config.GetEnvInt("SUMMARIZER_RATE_BURST", 4),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration and returns an error if invalid.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderNoop:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst <= 0 {
		return fmt.Errorf("rate burst must be positive, got %d", c.Burst)
	}
	return nil
}

// New builds the summarization model selected by the configuration.
// API keys are read from OPENAI_API_KEY and ANTHROPIC_API_KEY; a missing key
// for the selected provider is an error rather than a silent noop fallback.
func New(cfg Config) (summary.SummarizationModel, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return NewOpenAI(apiKey, cfg), nil

	case ProviderClaude:
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the claude provider")
		}
		return NewClaude(apiKey, cfg), nil

	case ProviderNoop:
		slog.Warn("using noop summarizer, summaries will be extractive truncations")
		return NewNoop(), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
