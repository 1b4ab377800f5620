package summary

import (
	"context"
	"log/slog"
	"strings"

	"doc-digest/internal/progress"
	"doc-digest/internal/utils/text"
)

// CombinePath identifies which branch of the combination state machine
// produced the final summary. It is logged and surfaced on the result so the
// shape of an output is always attributable.
type CombinePath string

const (
	// PathNone means no chunk produced a usable partial summary.
	PathNone CombinePath = "none"
	// PathSingle means a lone partial summary was used as-is.
	PathSingle CombinePath = "single"
	// PathSingleRegenerated means the lone partial was too short relative to
	// its budget and was regenerated from the document head.
	PathSingleRegenerated CombinePath = "single_regenerated"
	// PathJoined means multiple partials were concatenated in chunk order.
	PathJoined CombinePath = "joined"
	// PathJoinedRefined means the concatenation overflowed the budget and was
	// condensed with a second model pass.
	PathJoinedRefined CombinePath = "joined_refined"
)

// Combiner turns ordered partial summaries into one final summary, running
// corrective model passes when the draft falls outside the budget envelope.
type Combiner struct {
	model  SummarizationModel
	policy Policy
}

// NewCombiner creates a combiner backed by the given model.
func NewCombiner(model SummarizationModel, policy Policy) *Combiner {
	return &Combiner{model: model, policy: policy}
}

// Combine resolves partial summaries into the final summary text.
//
// Exactly one of five paths is taken:
//
//   - no partials: empty text, PathNone
//   - one partial within budget: used verbatim, PathSingle
//   - one partial below ShortSummaryRatio × min_words, with a source document
//     longer than RegenerationSourceRatio × min_words: regenerated from the
//     first RegenerationWindowRunes runes of the document, PathSingleRegenerated
//   - several partials whose space-join fits: PathJoined
//   - several partials whose join exceeds RefineThresholdRatio × max_words:
//     condensed by one more model call, PathJoinedRefined
//
// A failed corrective pass falls back to the uncorrected draft rather than
// failing the request.
func (c *Combiner) Combine(ctx context.Context, doc Document, partials []PartialSummary, b Budget, tr *progress.Tracker) (string, CombinePath) {
	tr.Update(progress.StageCombining, 90, "Combining results...")

	switch len(partials) {
	case 0:
		return "", PathNone
	case 1:
		return c.resolveSingle(ctx, doc, partials[0].Text, b)
	default:
		return c.resolveJoined(ctx, partials, b)
	}
}

func (c *Combiner) resolveSingle(ctx context.Context, doc Document, draft string, b Budget) (string, CombinePath) {
	words := text.CountWords(draft)
	shortFloor := roundToInt(c.policy.ShortSummaryRatio * float64(b.MinWords))
	sourceFloor := roundToInt(c.policy.RegenerationSourceRatio * float64(b.MinWords))

	if words >= shortFloor || doc.WordCount <= sourceFloor {
		return draft, PathSingle
	}

	slog.InfoContext(ctx, "summary below budget, regenerating from document head",
		slog.Int("summary_words", words),
		slog.Int("min_words", b.MinWords))

	regenerated, err := c.model.Summarize(ctx, ModelRequest{
		Text:      doc.Head(c.policy.RegenerationWindowRunes),
		MaxTokens: b.MaxTokens,
		MinTokens: b.MinTokens,
		Strength:  StrengthAggressive,
	})
	if err != nil || strings.TrimSpace(regenerated) == "" {
		slog.WarnContext(ctx, "regeneration failed, keeping short summary",
			slog.Any("error", err))
		return draft, PathSingle
	}

	return regenerated, PathSingleRegenerated
}

func (c *Combiner) resolveJoined(ctx context.Context, partials []PartialSummary, b Budget) (string, CombinePath) {
	parts := make([]string, 0, len(partials))
	for _, p := range partials {
		parts = append(parts, strings.TrimSpace(p.Text))
	}
	joined := strings.Join(parts, " ")

	words := text.CountWords(joined)
	ceiling := roundToInt(c.policy.RefineThresholdRatio * float64(b.MaxWords))
	if words <= ceiling {
		return joined, PathJoined
	}

	slog.InfoContext(ctx, "joined summary over budget, refining",
		slog.Int("joined_words", words),
		slog.Int("max_words", b.MaxWords))

	refined, err := c.model.Summarize(ctx, ModelRequest{
		Text:      joined,
		MaxTokens: b.MaxTokens,
		MinTokens: b.MinTokens,
		Strength:  StrengthAggressive,
	})
	if err != nil || strings.TrimSpace(refined) == "" {
		slog.WarnContext(ctx, "refinement failed, keeping joined summary",
			slog.Any("error", err))
		return joined, PathJoined
	}

	return refined, PathJoinedRefined
}

// String implements fmt.Stringer for log fields.
func (p CombinePath) String() string {
	return string(p)
}
