package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"doc-digest/internal/resilience/circuitbreaker"
	"doc-digest/internal/resilience/retry"
	"doc-digest/internal/usecase/summary"
	"doc-digest/internal/utils/text"
)

const defaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude implements the summarization port using Anthropic's Claude API.
// It includes circuit breaker, retry, and rate limiting for reliability, and
// records per-call metrics for observability.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	limiter         *rate.Limiter
	model           string
	timeout         time.Duration
	metricsRecorder CallMetricsRecorder
}

// NewClaude creates a new Claude adapter with the given API key.
// It automatically configures circuit breaker, retry logic, rate limiting,
// and metrics recording.
func NewClaude(apiKey string, cfg Config) *Claude {
	slog.Info("Initialized Claude summarizer",
		slog.String("model", cfg.ClaudeModel),
		slog.Duration("timeout", cfg.Timeout),
		slog.Float64("rate_limit", cfg.RequestsPerSecond))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.ModelAPIConfig(),
		limiter:         rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		model:           cfg.ClaudeModel,
		timeout:         cfg.Timeout,
		metricsRecorder: NewPrometheusCallMetrics(),
	}
}

// Summarize generates a summary honoring the request's token budget.
// It uses circuit breaker and retry logic for improved reliability.
func (c *Claude) Summarize(ctx context.Context, req summary.ModelRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("claude rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doSummarize(ctx, req)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		c.metricsRecorder.RecordFailure("claude")
		return "", fmt.Errorf("claude summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, req summary.ModelRequest) (string, error) {
	prompt := buildPrompt(req)

	slog.InfoContext(ctx, "Starting summarization call",
		slog.String("provider", "claude"),
		slog.Int("input_runes", text.CountRunes(req.Text)),
		slog.Int("max_tokens", req.MaxTokens),
		slog.Int("min_tokens", req.MinTokens),
		slog.String("strength", req.Strength.String()))

	start := time.Now()

	// Temperature 0 keeps the output deterministic for identical requests.
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(0),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization call failed",
			slog.String("provider", "claude"),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	out := textBlock.Text
	outputRunes := text.CountRunes(out)

	slog.InfoContext(ctx, "Summarization call completed",
		slog.String("provider", "claude"),
		slog.Int("output_runes", outputRunes),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordOutputRunes(outputRunes)
	c.metricsRecorder.RecordDuration(duration)

	return out, nil
}
