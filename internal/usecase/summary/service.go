// Package summary implements the adaptive summarization pipeline: budget
// planning from document size, token-window chunking, per-chunk model
// dispatch, and budget-driven combination of the partial results.
package summary

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"doc-digest/internal/observability/tracing"
	"doc-digest/internal/progress"
	"doc-digest/internal/utils/text"
)

// Outcome classifies how a request terminated.
type Outcome string

const (
	// OutcomeSummarized means the pipeline produced a summary.
	OutcomeSummarized Outcome = "summarized"
	// OutcomeTooShort means the document was below the minimum size and the
	// fixed too-short message was returned instead of a summary.
	OutcomeTooShort Outcome = "too_short"
	// OutcomeNoUsableSummary means every chunk failed or was skipped.
	OutcomeNoUsableSummary Outcome = "no_usable_summary"
)

// Request is one summarization job. MaxWords and MinWords are optional caller
// overrides (zero means derive from the document). Tracker may be nil when no
// one is observing progress.
type Request struct {
	Text     string
	MaxWords int
	MinWords int
	Tracker  *progress.Tracker
}

// Result is the outcome of a summarization job. Summary carries the fixed
// fallback message for the too_short and no_usable_summary outcomes.
type Result struct {
	Outcome           Outcome
	Path              CombinePath
	Summary           string
	OriginalWordCount int
	SummaryWordCount  int
	ChunkCount        int
	FailedChunks      int
}

// Service orchestrates the full pipeline. It is stateless across requests and
// safe for concurrent use.
type Service struct {
	tokenizer  Tokenizer
	dispatcher *Dispatcher
	combiner   *Combiner
	policy     Policy
	metrics    MetricsRecorder
}

// NewService wires the pipeline stages around one model and tokenizer.
// A nil metrics recorder is replaced with NopMetrics.
func NewService(tok Tokenizer, model SummarizationModel, policy Policy, metrics MetricsRecorder) *Service {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &Service{
		tokenizer:  tok,
		dispatcher: NewDispatcher(model, policy),
		combiner:   NewCombiner(model, policy),
		policy:     policy,
		metrics:    metrics,
	}
}

// Summarize runs one document through the pipeline.
//
// The too-short and all-chunks-failed cases are results, not errors: the
// caller always gets displayable text. An error is returned only for empty
// input or context cancellation.
func (s *Service) Summarize(ctx context.Context, req Request) (Result, error) {
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "summary.Summarize")
	defer span.End()

	if strings.TrimSpace(req.Text) == "" {
		req.Tracker.Update(progress.StageError, 100, "No text provided")
		s.metrics.RecordOutcome("error")
		return Result{}, ErrEmptyText
	}

	doc := NewDocument(req.Text)
	s.metrics.RecordDocumentWords(doc.WordCount)
	span.SetAttributes(attribute.Int("document.words", doc.WordCount))

	req.Tracker.Update(progress.StageInit, 5, "Preparing document...")

	budget, err := s.policy.PlanBudget(doc.WordCount, Overrides{
		MaxWords: req.MaxWords,
		MinWords: req.MinWords,
	})
	if err != nil {
		return s.finishTooShort(ctx, span, req.Tracker, doc, start), nil
	}

	slog.InfoContext(ctx, "summary budget planned",
		slog.Int("document_words", doc.WordCount),
		slog.Int("min_words", budget.MinWords),
		slog.Int("max_words", budget.MaxWords),
		slog.Int("min_tokens", budget.MinTokens),
		slog.Int("max_tokens", budget.MaxTokens))

	req.Tracker.Update(progress.StageChunking, 10, "Splitting document into chunks...")
	chunks := SplitChunks(s.tokenizer, doc.Text, s.policy.ChunkTokenLimit)
	s.metrics.RecordChunks(len(chunks))
	span.SetAttributes(attribute.Int("chunks", len(chunks)))

	results, err := s.dispatcher.Run(ctx, chunks, budget, req.Tracker)
	if err != nil {
		req.Tracker.Update(progress.StageError, 100, "Summarization cancelled")
		s.metrics.RecordOutcome("error")
		return Result{}, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		s.metrics.RecordChunkFailures(failed)
	}

	partials := Successes(results)
	finalText, path := s.combiner.Combine(ctx, doc, partials, budget, req.Tracker)

	req.Tracker.Update(progress.StageFinalizing, 95, "Finalizing summary...")

	res := Result{
		Path:              path,
		OriginalWordCount: doc.WordCount,
		ChunkCount:        len(chunks),
		FailedChunks:      failed,
	}

	if path == PathNone {
		res.Outcome = OutcomeNoUsableSummary
		res.Summary = NoUsableSummaryMessage
		req.Tracker.Update(progress.StageError, 100, "No usable summary could be generated")
	} else {
		res.Outcome = OutcomeSummarized
		res.Summary = strings.TrimSpace(finalText)
		res.SummaryWordCount = text.CountWords(res.Summary)
		s.metrics.RecordSummaryWords(res.SummaryWordCount)
		req.Tracker.Update(progress.StageComplete, 100, "Summary complete")
	}

	s.metrics.RecordOutcome(string(res.Outcome))
	s.metrics.RecordDuration(time.Since(start))
	span.SetAttributes(
		attribute.String("summary.outcome", string(res.Outcome)),
		attribute.String("summary.path", string(res.Path)),
		attribute.Int("summary.words", res.SummaryWordCount))

	slog.InfoContext(ctx, "summarization finished",
		slog.String("outcome", string(res.Outcome)),
		slog.String("path", string(res.Path)),
		slog.Int("summary_words", res.SummaryWordCount),
		slog.Int("chunks", res.ChunkCount),
		slog.Int("failed_chunks", res.FailedChunks),
		slog.Duration("elapsed", time.Since(start)))

	return res, nil
}

func (s *Service) finishTooShort(ctx context.Context, span trace.Span, tr *progress.Tracker, doc Document, start time.Time) Result {
	slog.InfoContext(ctx, "document below minimum size",
		slog.Int("document_words", doc.WordCount),
		slog.Int("minimum_words", s.policy.MinDocumentWords))

	tr.Update(progress.StageComplete, 100, "Text too short to summarize")

	s.metrics.RecordOutcome(string(OutcomeTooShort))
	s.metrics.RecordDuration(time.Since(start))
	span.SetAttributes(attribute.String("summary.outcome", string(OutcomeTooShort)))

	return Result{
		Outcome:           OutcomeTooShort,
		Path:              PathNone,
		Summary:           TooShortMessage,
		OriginalWordCount: doc.WordCount,
	}
}
