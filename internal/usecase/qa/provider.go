package qa

import "context"

// GenerateRequest carries one free-form generation call to the external model.
// Unlike summarization, answer generation deliberately samples: a conversational
// answer should read naturally rather than reproduce the document verbatim.
type GenerateRequest struct {
	// Prompt is the full rendered prompt including document context.
	Prompt string

	// MaxNewTokens bounds the generated answer length.
	MaxNewTokens int

	// Temperature controls sampling randomness.
	Temperature float32

	// TopP controls nucleus sampling.
	TopP float32
}

// GenerativeModel is the external text generation service used for answering
// questions about the last processed document.
type GenerativeModel interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
