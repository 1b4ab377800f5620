// Package qa answers questions about the most recently processed document
// using a generative model, keeping a bounded conversation history.
package qa

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"doc-digest/internal/observability/tracing"
	"doc-digest/internal/progress"
)

// Generation parameters for answers. Answers sample with a moderate
// temperature for conversational tone, unlike the deterministic
// summarization calls.
const (
	maxContextWords = 500
	maxNewTokens    = 150
	temperature     = 0.7
	topP            = 0.9
)

// promptTemplate frames the document context and question for the model.
const promptTemplate = `Answer the following question based on the document content provided. Give a detailed, helpful response.

Document Content:
%s

Question: %s

Answer:`

// Service answers questions against the stored document content.
type Service struct {
	model GenerativeModel
	store *ContentStore
}

// NewService creates a question answering service over the given store.
func NewService(model GenerativeModel, store *ContentStore) *Service {
	return &Service{model: model, store: store}
}

// Answer generates a response to the question from the last processed
// document and records the exchange in the conversation history.
//
// Model failures and empty outputs degrade to fixed fallback answers rather
// than errors: the chat always gets a displayable reply. The returned error is
// non-nil only for precondition failures (empty question, no content).
func (s *Service) Answer(ctx context.Context, question string, tr *progress.Tracker) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "qa.Answer")
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	docText, ok := s.store.DocumentText()
	if !ok {
		return "", ErrNoContent
	}

	tr.Update(progress.StageQAProcessing, 20, "Processing your question...")

	docContext := docText
	if words := strings.Fields(docContext); len(words) > maxContextWords {
		docContext = strings.Join(words[:maxContextWords], " ")
	}

	tr.Update(progress.StageQAGenerating, 50, "Generating response...")

	slog.InfoContext(ctx, "generating answer",
		slog.Int("question_length", len(question)),
		slog.Int("context_words", len(strings.Fields(docContext))))

	answer, err := s.model.Generate(ctx, GenerateRequest{
		Prompt:       fmt.Sprintf(promptTemplate, docContext, question),
		MaxNewTokens: maxNewTokens,
		Temperature:  temperature,
		TopP:         topP,
	})
	if err != nil {
		slog.WarnContext(ctx, "answer generation failed, using fallback",
			slog.Any("error", err))
		answer = GenerationFailedFallback
	} else if answer = strings.TrimSpace(answer); answer == "" {
		answer = EmptyAnswerFallback
	}

	tr.Update(progress.StageQAComplete, 100, "Response ready!")

	s.store.AppendExchange(question, answer)
	span.SetAttributes(attribute.Int("answer_length", len(answer)))

	return answer, nil
}

// History exposes the conversation history for the API layer.
func (s *Service) History() []Message {
	return s.store.History()
}

// ClearHistory empties the conversation history.
func (s *Service) ClearHistory() {
	s.store.ClearHistory()
}
