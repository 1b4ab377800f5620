package summary

import "math"

// Budget is the target envelope for one summary, expressed both in words
// (caller-facing) and tokens (model-facing). It is computed once per request
// and never mutated afterwards.
type Budget struct {
	MinWords  int
	MaxWords  int
	MinTokens int
	MaxTokens int
}

// Overrides carries the caller's optional word bounds. A zero value means
// "derive from document size".
type Overrides struct {
	MaxWords int
	MinWords int
}

// PlanBudget derives the summary length budget for a document.
//
// Defaults when the caller supplies no override:
//
//	max_words = min(cap, round(DefaultMaxRatio × word_count))
//	min_words = max(floor, round(DefaultMinRatio × word_count))
//
// min_words is then clamped to MinToMaxClampRatio × max_words so the envelope
// stays satisfiable, and both bounds are converted to token budgets with the
// fixed TokensPerWord ratio.
//
// Returns ErrInputTooShort when the document is below MinDocumentWords.
func (p Policy) PlanBudget(wordCount int, ov Overrides) (Budget, error) {
	if wordCount < p.MinDocumentWords {
		return Budget{}, ErrInputTooShort
	}

	maxWords := ov.MaxWords
	if maxWords <= 0 {
		maxWords = min(p.MaxSummaryWordsCap, roundToInt(p.DefaultMaxRatio*float64(wordCount)))
	}

	minWords := ov.MinWords
	if minWords <= 0 {
		minWords = max(p.MinSummaryWordsFloor, roundToInt(p.DefaultMinRatio*float64(wordCount)))
	}

	// Keep the envelope satisfiable even with conflicting overrides.
	minWords = min(minWords, roundToInt(p.MinToMaxClampRatio*float64(maxWords)))

	return Budget{
		MinWords:  minWords,
		MaxWords:  maxWords,
		MinTokens: roundToInt(p.TokensPerWord * float64(minWords)),
		MaxTokens: roundToInt(p.TokensPerWord * float64(maxWords)),
	}, nil
}

// roundToInt rounds half away from zero, matching the behavior callers expect
// for budget arithmetic on positive values.
func roundToInt(f float64) int {
	return int(math.Round(f))
}
