package qa_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-digest/internal/progress"
	"doc-digest/internal/usecase/qa"
)

type fakeModel struct {
	fn       func(req qa.GenerateRequest) (string, error)
	requests []qa.GenerateRequest
}

func (m *fakeModel) Generate(_ context.Context, req qa.GenerateRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.fn == nil {
		return "the answer", nil
	}
	return m.fn(req)
}

func storeWithDocument(text string) *qa.ContentStore {
	store := qa.NewContentStore()
	store.SetDocument(text, "a summary")
	return store
}

func TestAnswerEmptyQuestion(t *testing.T) {
	svc := qa.NewService(&fakeModel{}, storeWithDocument("doc text"))

	_, err := svc.Answer(context.Background(), "  ", nil)
	require.ErrorIs(t, err, qa.ErrEmptyQuestion)
}

func TestAnswerNoContent(t *testing.T) {
	svc := qa.NewService(&fakeModel{}, qa.NewContentStore())

	_, err := svc.Answer(context.Background(), "what is this about?", nil)
	require.ErrorIs(t, err, qa.ErrNoContent)
}

func TestAnswerHappyPath(t *testing.T) {
	model := &fakeModel{
		fn: func(req qa.GenerateRequest) (string, error) {
			return "  It is about widgets.  ", nil
		},
	}
	store := storeWithDocument("the widget manual")
	svc := qa.NewService(model, store)

	tr := progress.NewTracker()
	answer, err := svc.Answer(context.Background(), "what is it about?", tr)
	require.NoError(t, err)
	assert.Equal(t, "It is about widgets.", answer)

	require.Len(t, model.requests, 1)
	req := model.requests[0]
	assert.Contains(t, req.Prompt, "the widget manual")
	assert.Contains(t, req.Prompt, "what is it about?")
	assert.Equal(t, 150, req.MaxNewTokens)
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
	assert.InDelta(t, 0.9, req.TopP, 0.001)

	history := svc.History()
	require.Len(t, history, 2)
	assert.Equal(t, qa.RoleUser, history[0].Role)
	assert.Equal(t, "what is it about?", history[0].Content)
	assert.Equal(t, qa.RoleAssistant, history[1].Role)
	assert.Equal(t, "It is about widgets.", history[1].Content)

	state := tr.State()
	assert.Equal(t, progress.StageQAComplete, state.Stage)
	assert.Equal(t, 100, state.Progress)
}

func TestAnswerContextCapped(t *testing.T) {
	model := &fakeModel{}
	longDoc := strings.TrimSpace(strings.Repeat("word ", 800))
	svc := qa.NewService(model, storeWithDocument(longDoc))

	_, err := svc.Answer(context.Background(), "question?", nil)
	require.NoError(t, err)

	require.Len(t, model.requests, 1)
	assert.NotContains(t, model.requests[0].Prompt, strings.Repeat("word ", 501))
}

func TestAnswerModelFailureFallsBack(t *testing.T) {
	model := &fakeModel{
		fn: func(req qa.GenerateRequest) (string, error) {
			return "", errors.New("model down")
		},
	}
	svc := qa.NewService(model, storeWithDocument("doc"))

	answer, err := svc.Answer(context.Background(), "question?", nil)
	require.NoError(t, err, "generation failure degrades to a fallback answer")
	assert.Equal(t, qa.GenerationFailedFallback, answer)

	// The fallback exchange is still recorded.
	assert.Len(t, svc.History(), 2)
}

func TestAnswerEmptyOutputFallsBack(t *testing.T) {
	model := &fakeModel{
		fn: func(req qa.GenerateRequest) (string, error) {
			return "   ", nil
		},
	}
	svc := qa.NewService(model, storeWithDocument("doc"))

	answer, err := svc.Answer(context.Background(), "question?", nil)
	require.NoError(t, err)
	assert.Equal(t, qa.EmptyAnswerFallback, answer)
}

func TestHistoryCap(t *testing.T) {
	store := storeWithDocument("doc")
	svc := qa.NewService(&fakeModel{}, store)

	for i := 0; i < 15; i++ {
		_, err := svc.Answer(context.Background(), "question?", nil)
		require.NoError(t, err)
	}

	history := svc.History()
	assert.Len(t, history, 20, "history keeps only the most recent messages")
	assert.Equal(t, qa.RoleUser, history[0].Role)
}

func TestClearHistoryKeepsDocument(t *testing.T) {
	store := storeWithDocument("doc")
	svc := qa.NewService(&fakeModel{}, store)

	_, err := svc.Answer(context.Background(), "question?", nil)
	require.NoError(t, err)
	require.NotEmpty(t, svc.History())

	svc.ClearHistory()
	assert.Empty(t, svc.History())

	// The document survives so a fresh conversation can start immediately.
	_, err = svc.Answer(context.Background(), "another question?", nil)
	require.NoError(t, err)
}
