package summary

import "context"

// Tokenizer converts between text and token sequences. Implementations must
// be deterministic: encoding the same text always yields the same sequence,
// and decoding a sequence produced by Encode round-trips within the
// tokenizer's vocabulary.
type Tokenizer interface {
	// Encode converts text into an ordered token sequence.
	Encode(text string) []int

	// Decode converts a token sequence back into text.
	Decode(tokens []int) string
}

// RefinementStrength selects how hard the model is pushed toward the lower
// word bound. The aggressive setting is used only by the single-summary
// regeneration pass.
type RefinementStrength int

const (
	// StrengthStandard is used for per-chunk passes and joined-text refinement.
	StrengthStandard RefinementStrength = iota

	// StrengthAggressive is used when regenerating a too-short single summary.
	StrengthAggressive
)

// String returns a label suitable for logging.
func (s RefinementStrength) String() string {
	if s == StrengthAggressive {
		return "aggressive"
	}
	return "standard"
}

// ModelRequest carries one summarization call to the external model.
// Decoding is always deterministic: identical requests produce identical text.
type ModelRequest struct {
	// Text is the content to summarize.
	Text string

	// MaxTokens is the upper bound for the generated summary.
	MaxTokens int

	// MinTokens is the lower bound the model should aim for.
	MinTokens int

	// Strength selects the length-encouraging configuration.
	Strength RefinementStrength
}

// SummarizationModel is the external summarization service. Calls may fail
// (timeout, resource exhaustion); failures must be returned as errors, never
// panics, so the pipeline can absorb them per chunk.
type SummarizationModel interface {
	Summarize(ctx context.Context, req ModelRequest) (string, error)
}
