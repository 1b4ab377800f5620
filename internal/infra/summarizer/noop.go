package summarizer

import (
	"context"
	"strings"

	"doc-digest/internal/usecase/summary"
)

// Noop is a summarization model that extracts the leading words of the input
// up to the request's token budget. It is deterministic and needs no network,
// which makes it useful for development and as a test double outside package
// boundaries.
type Noop struct{}

// NewNoop creates a new Noop model.
func NewNoop() *Noop {
	return &Noop{}
}

// Summarize returns the first max-budget words of the input.
func (n *Noop) Summarize(_ context.Context, req summary.ModelRequest) (string, error) {
	limit := tokensToWords(req.MaxTokens)
	fields := strings.Fields(req.Text)
	if len(fields) <= limit {
		return req.Text, nil
	}
	return strings.Join(fields[:limit], " ") + "...", nil
}
