package generator

import (
	"context"

	"doc-digest/internal/usecase/qa"
)

// Noop is a generative model that returns a fixed response. It keeps the
// question answering endpoints functional in development without API access.
type Noop struct{}

// NewNoop creates a new Noop model.
func NewNoop() *Noop {
	return &Noop{}
}

// Generate returns a canned response regardless of the prompt.
func (n *Noop) Generate(_ context.Context, _ qa.GenerateRequest) (string, error) {
	return "Answer generation is not configured on this deployment.", nil
}
