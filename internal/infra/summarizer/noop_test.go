package summarizer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-digest/internal/usecase/summary"
)

func TestNoopSummarizeTruncates(t *testing.T) {
	n := NewNoop()

	input := strings.Repeat("alpha beta gamma delta ", 50)
	// 130 tokens / 1.3 tokens-per-word = 100 words.
	out, err := n.Summarize(context.Background(), summary.ModelRequest{
		Text:      input,
		MaxTokens: 130,
	})
	require.NoError(t, err)

	assert.Len(t, strings.Fields(out), 100)
	assert.True(t, strings.HasSuffix(out, "..."))
}

func TestNoopSummarizeShortInputUnchanged(t *testing.T) {
	n := NewNoop()

	out, err := n.Summarize(context.Background(), summary.ModelRequest{
		Text:      "short input text",
		MaxTokens: 130,
	})
	require.NoError(t, err)
	assert.Equal(t, "short input text", out)
}

func TestNoopSummarizeDeterministic(t *testing.T) {
	n := NewNoop()
	req := summary.ModelRequest{Text: strings.Repeat("word ", 400), MaxTokens: 65}

	first, err := n.Summarize(context.Background(), req)
	require.NoError(t, err)
	second, err := n.Summarize(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
