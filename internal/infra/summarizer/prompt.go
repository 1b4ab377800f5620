package summarizer

import (
	"fmt"
	"math"

	"doc-digest/internal/usecase/summary"
)

// tokensPerWord mirrors the pipeline's word-to-token conversion so the prompt
// can express the budget in words, which models follow far more reliably than
// token counts.
const tokensPerWord = 1.3

// buildPrompt renders one summarization request as a chat prompt. The budget
// arrives in tokens and is converted back to a word range for the model.
//
// The aggressive variant is used by the corrective passes (regeneration and
// refinement) and pushes the model harder toward the lower bound.
func buildPrompt(req summary.ModelRequest) string {
	minWords := tokensToWords(req.MinTokens)
	maxWords := tokensToWords(req.MaxTokens)

	if req.Strength == summary.StrengthAggressive {
		return fmt.Sprintf(
			"Write a thorough summary of the following text. The summary must be "+
				"at least %d words and at most %d words. Cover every major point. "+
				"Respond with only the summary text.\n\n%s",
			minWords, maxWords, req.Text)
	}

	return fmt.Sprintf(
		"Summarize the following text in %d to %d words. "+
			"Respond with only the summary text.\n\n%s",
		minWords, maxWords, req.Text)
}

func tokensToWords(tokens int) int {
	words := int(math.Round(float64(tokens) / tokensPerWord))
	if words < 1 {
		words = 1
	}
	return words
}
