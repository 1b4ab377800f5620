package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"doc-digest/internal/progress"
)

// Progress band occupied by the summarizing stage, matching the reporting
// behavior of the rest of the pipeline (init 5, chunking 10, combining 90).
const (
	summarizingBase = 15
	summarizingSpan = 70
)

// PartialSummary is the summarization result for one chunk, prior to
// combination. ChunkIndex preserves document order for the join.
type PartialSummary struct {
	ChunkIndex int
	Text       string
}

// ChunkResult is the explicit outcome of dispatching one chunk. A chunk
// either succeeds with text, is skipped for having too little content, or
// fails with the model error. Failures are recorded for observability, never
// propagated as request failures.
type ChunkResult struct {
	Index   int
	Summary string
	Skipped bool
	Err     error
}

// Succeeded reports whether the chunk produced a usable partial summary.
func (r ChunkResult) Succeeded() bool {
	return r.Err == nil && !r.Skipped
}

// Successes filters chunk results down to ordered partial summaries.
// The input is already ordered by chunk index, so the output is too.
func Successes(results []ChunkResult) []PartialSummary {
	partials := make([]PartialSummary, 0, len(results))
	for _, r := range results {
		if r.Succeeded() {
			partials = append(partials, PartialSummary{ChunkIndex: r.Index, Text: r.Summary})
		}
	}
	return partials
}

// Dispatcher sends chunks to the external summarization model with a
// per-chunk budget derived from the global budget.
type Dispatcher struct {
	model  SummarizationModel
	policy Policy
}

// NewDispatcher creates a dispatcher for the given model and policy.
func NewDispatcher(model SummarizationModel, policy Policy) *Dispatcher {
	return &Dispatcher{model: model, policy: policy}
}

// ChunkBudget derives the per-chunk token budget for n chunks:
//
//	chunk_max = max(floor, global_max/n + buffer)
//	chunk_min = max(floor, global_min/n), clamped to ratio × chunk_max
//
// The buffer leaves each chunk room to contribute to a joined summary that
// still lands inside the global envelope after the combination pass.
func (d *Dispatcher) ChunkBudget(b Budget, n int) (maxTokens, minTokens int) {
	if n <= 0 {
		n = 1
	}

	maxTokens = max(d.policy.ChunkMaxTokensFloor, b.MaxTokens/n+d.policy.ChunkMaxTokensBuffer)
	minTokens = max(d.policy.ChunkMinTokensFloor, b.MinTokens/n)

	if ceiling := int(d.policy.ChunkMinToMaxRatio * float64(maxTokens)); minTokens > ceiling {
		minTokens = ceiling
	}

	return maxTokens, minTokens
}

// Run dispatches every chunk and returns one ChunkResult per chunk, ordered
// by chunk index. Chunks below the minimum word threshold are skipped; model
// failures are logged and recorded on the result, and the remaining chunks
// still run. The only error Run itself returns is context cancellation.
//
// Dispatch is bounded by Policy.ChunkConcurrency. Results are written into a
// slice indexed by chunk, so parallel dispatch cannot reorder partials.
func (d *Dispatcher) Run(ctx context.Context, chunks []Chunk, b Budget, tr *progress.Tracker) ([]ChunkResult, error) {
	n := len(chunks)
	if n == 0 {
		return nil, nil
	}

	maxTokens, minTokens := d.ChunkBudget(b, n)

	slog.InfoContext(ctx, "dispatching chunks for summarization",
		slog.Int("chunks", n),
		slog.Int("chunk_max_tokens", maxTokens),
		slog.Int("chunk_min_tokens", minTokens),
		slog.Int("concurrency", d.policy.ChunkConcurrency))

	tr.Update(progress.StageSummarizing, summarizingBase, fmt.Sprintf("Processing %d chunk(s)...", n))

	results := make([]ChunkResult, n)
	var processed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(max(1, d.policy.ChunkConcurrency))

	for _, chunk := range chunks {
		g.Go(func() error {
			results[chunk.Index] = d.summarizeChunk(ctx, chunk, maxTokens, minTokens)

			// Percentage reflects completed chunks, so the band is fully
			// traversed once the last chunk finishes.
			done := processed.Add(1)
			pct := summarizingBase + int(float64(done)/float64(n)*summarizingSpan)
			tr.Update(progress.StageSummarizing, pct,
				fmt.Sprintf("Summarized chunk %d of %d...", done, n))
			return nil
		})
	}

	// Goroutines never return errors; failures live on the results.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("chunk dispatch aborted: %w", err)
	}

	return results, nil
}

// summarizeChunk produces the result for one chunk without failing the batch.
func (d *Dispatcher) summarizeChunk(ctx context.Context, chunk Chunk, maxTokens, minTokens int) ChunkResult {
	words := chunk.WordCount()
	if words <= d.policy.MinChunkWords {
		slog.DebugContext(ctx, "skipping chunk with too little content",
			slog.Int("chunk", chunk.Index),
			slog.Int("words", words))
		return ChunkResult{Index: chunk.Index, Skipped: true}
	}

	summaryText, err := d.model.Summarize(ctx, ModelRequest{
		Text:      chunk.Text,
		MaxTokens: maxTokens,
		MinTokens: minTokens,
		Strength:  StrengthStandard,
	})
	if err != nil {
		slog.WarnContext(ctx, "chunk summarization failed, skipping chunk",
			slog.Int("chunk", chunk.Index),
			slog.Any("error", err))
		return ChunkResult{Index: chunk.Index, Err: err}
	}

	return ChunkResult{Index: chunk.Index, Summary: summaryText}
}
