package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"doc-digest/internal/resilience/circuitbreaker"
	"doc-digest/internal/resilience/retry"
	"doc-digest/internal/usecase/summary"
	"doc-digest/internal/utils/text"
)

// OpenAI implements the summarization port using OpenAI's chat completion API.
// It includes circuit breaker, retry, and rate limiting for reliability, and
// records per-call metrics for observability.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	limiter         *rate.Limiter
	model           string
	timeout         time.Duration
	metricsRecorder CallMetricsRecorder
}

// NewOpenAI creates a new OpenAI adapter with the given API key.
// It automatically configures circuit breaker, retry logic, rate limiting,
// and metrics recording.
func NewOpenAI(apiKey string, cfg Config) *OpenAI {
	slog.Info("Initialized OpenAI summarizer",
		slog.String("model", cfg.OpenAIModel),
		slog.Duration("timeout", cfg.Timeout),
		slog.Float64("rate_limit", cfg.RequestsPerSecond))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.ModelAPIConfig(),
		limiter:         rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		model:           cfg.OpenAIModel,
		timeout:         cfg.Timeout,
		metricsRecorder: NewPrometheusCallMetrics(),
	}
}

// Summarize generates a summary honoring the request's token budget.
// It uses circuit breaker and retry logic for improved reliability.
func (o *OpenAI) Summarize(ctx context.Context, req summary.ModelRequest) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("openai rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doSummarize(ctx, req)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		o.metricsRecorder.RecordFailure("openai")
		return "", fmt.Errorf("openai summarize failed after retries: %w", retryErr)
	}

	return result, nil
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, req summary.ModelRequest) (string, error) {
	prompt := buildPrompt(req)

	slog.InfoContext(ctx, "Starting summarization call",
		slog.String("provider", "openai"),
		slog.Int("input_runes", text.CountRunes(req.Text)),
		slog.Int("max_tokens", req.MaxTokens),
		slog.Int("min_tokens", req.MinTokens),
		slog.String("strength", req.Strength.String()))

	start := time.Now()

	// Temperature 0 keeps the output deterministic for identical requests.
	// The smallest non-zero float is used because the field is omitted from
	// the wire format when it is exactly zero, which would fall back to the
	// API default of 1.
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		MaxTokens:   req.MaxTokens,
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Summarization call failed",
			slog.String("provider", "openai"),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	out := resp.Choices[0].Message.Content
	outputRunes := text.CountRunes(out)

	slog.InfoContext(ctx, "Summarization call completed",
		slog.String("provider", "openai"),
		slog.Int("output_runes", outputRunes),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordOutputRunes(outputRunes)
	o.metricsRecorder.RecordDuration(duration)

	return out, nil
}
