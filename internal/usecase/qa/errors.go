package qa

import "errors"

var (
	// ErrEmptyQuestion is returned when the question contains no content.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrNoContent is returned when no document has been processed yet.
	ErrNoContent = errors.New("no content available")
)

const (
	// NoContentMessage explains the precondition for asking questions.
	NoContentMessage = "No content available. Please summarize text or upload a PDF first before asking questions."

	// EmptyAnswerFallback is returned when the model produces no text.
	EmptyAnswerFallback = "I couldn't find a specific answer in the document. Please try rephrasing your question."

	// GenerationFailedFallback is returned when the model call fails outright.
	GenerationFailedFallback = "I apologize, but I was unable to generate a response. Please try rephrasing your question."
)
