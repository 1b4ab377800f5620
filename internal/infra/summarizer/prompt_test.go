package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-digest/internal/usecase/summary"
)

func TestBuildPromptStandard(t *testing.T) {
	p := buildPrompt(summary.ModelRequest{
		Text:      "the document body",
		MaxTokens: 260,
		MinTokens: 130,
		Strength:  summary.StrengthStandard,
	})

	assert.Contains(t, p, "100 to 200 words")
	assert.True(t, strings.HasSuffix(p, "the document body"))
}

func TestBuildPromptAggressive(t *testing.T) {
	p := buildPrompt(summary.ModelRequest{
		Text:      "the document body",
		MaxTokens: 260,
		MinTokens: 130,
		Strength:  summary.StrengthAggressive,
	})

	assert.Contains(t, p, "at least 100 words")
	assert.Contains(t, p, "at most 200 words")
}

func TestTokensToWordsFloor(t *testing.T) {
	assert.Equal(t, 1, tokensToWords(0))
	assert.Equal(t, 1, tokensToWords(1))
	assert.Equal(t, 100, tokensToWords(130))
}
