package summary_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-digest/internal/usecase/summary"
)

func TestCombineNoPartials(t *testing.T) {
	c := summary.NewCombiner(&scriptedModel{}, summary.DefaultPolicy())

	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(100)), nil,
		summary.Budget{MinWords: 50, MaxWords: 100}, nil)

	assert.Empty(t, text)
	assert.Equal(t, summary.PathNone, path)
}

func TestCombineSingleWithinBudget(t *testing.T) {
	model := &scriptedModel{}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	draft := wordsText(90)
	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(300)),
		[]summary.PartialSummary{{ChunkIndex: 0, Text: draft}},
		summary.Budget{MinWords: 100, MaxWords: 200}, nil)

	// 90 words is above 0.8 × 100, so no regeneration call happens.
	assert.Equal(t, draft, text)
	assert.Equal(t, summary.PathSingle, path)
	assert.Empty(t, model.calls())
}

func TestCombineSingleRegenerated(t *testing.T) {
	regenerated := wordsText(120)
	model := &scriptedModel{
		fn: func(req summary.ModelRequest) (string, error) {
			return regenerated, nil
		},
	}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	doc := summary.NewDocument(wordsText(300))
	text, path := c.Combine(context.Background(), doc,
		[]summary.PartialSummary{{ChunkIndex: 0, Text: wordsText(70)}},
		summary.Budget{MinWords: 100, MaxWords: 200, MinTokens: 130, MaxTokens: 260}, nil)

	// 70 < 0.8 × 100 and the 300-word source exceeds 2 × 100.
	assert.Equal(t, regenerated, text)
	assert.Equal(t, summary.PathSingleRegenerated, path)

	calls := model.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, summary.StrengthAggressive, calls[0].Strength)
	assert.Equal(t, 260, calls[0].MaxTokens)
	assert.Equal(t, 130, calls[0].MinTokens)
	assert.Equal(t, doc.Text, calls[0].Text, "short documents are fed whole")
}

func TestCombineSingleShortButSourceSmall(t *testing.T) {
	model := &scriptedModel{}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	// Short summary, but the 150-word source is under 2 × min: keep it.
	draft := wordsText(70)
	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(150)),
		[]summary.PartialSummary{{ChunkIndex: 0, Text: draft}},
		summary.Budget{MinWords: 100, MaxWords: 200}, nil)

	assert.Equal(t, draft, text)
	assert.Equal(t, summary.PathSingle, path)
	assert.Empty(t, model.calls())
}

func TestCombineRegenerationWindowBoundsInput(t *testing.T) {
	policy := summary.DefaultPolicy()
	policy.RegenerationWindowRunes = 50

	var seen string
	model := &scriptedModel{
		fn: func(req summary.ModelRequest) (string, error) {
			seen = req.Text
			return wordsText(120), nil
		},
	}
	c := summary.NewCombiner(model, policy)

	doc := summary.NewDocument(wordsText(300))
	_, path := c.Combine(context.Background(), doc,
		[]summary.PartialSummary{{ChunkIndex: 0, Text: wordsText(70)}},
		summary.Budget{MinWords: 100, MaxWords: 200}, nil)

	require.Equal(t, summary.PathSingleRegenerated, path)
	assert.Equal(t, 50, len([]rune(seen)))
	assert.True(t, strings.HasPrefix(doc.Text, seen))
}

func TestCombineRegenerationFailureKeepsDraft(t *testing.T) {
	model := &scriptedModel{
		fn: func(req summary.ModelRequest) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	draft := wordsText(70)
	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(300)),
		[]summary.PartialSummary{{ChunkIndex: 0, Text: draft}},
		summary.Budget{MinWords: 100, MaxWords: 200}, nil)

	assert.Equal(t, draft, text)
	assert.Equal(t, summary.PathSingle, path)
}

func TestCombineJoinedInOrder(t *testing.T) {
	model := &scriptedModel{}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	partials := []summary.PartialSummary{
		{ChunkIndex: 0, Text: "first part."},
		{ChunkIndex: 1, Text: "second part."},
		{ChunkIndex: 2, Text: "third part."},
	}

	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(500)), partials,
		summary.Budget{MinWords: 3, MaxWords: 100}, nil)

	assert.Equal(t, "first part. second part. third part.", text)
	assert.Equal(t, summary.PathJoined, path)
	assert.Empty(t, model.calls())
}

func TestCombineJoinedRefined(t *testing.T) {
	refined := wordsText(95)
	model := &scriptedModel{
		fn: func(req summary.ModelRequest) (string, error) {
			return refined, nil
		},
	}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	// Two 70-word partials join to 140 words, over 1.2 × 100.
	partials := []summary.PartialSummary{
		{ChunkIndex: 0, Text: wordsText(70)},
		{ChunkIndex: 1, Text: wordsText(70)},
	}

	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(500)), partials,
		summary.Budget{MinWords: 50, MaxWords: 100, MinTokens: 65, MaxTokens: 130}, nil)

	assert.Equal(t, refined, text)
	assert.Equal(t, summary.PathJoinedRefined, path)

	calls := model.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, summary.StrengthAggressive, calls[0].Strength)
	assert.Equal(t, 130, calls[0].MaxTokens)
}

func TestCombineRefinementFailureKeepsJoin(t *testing.T) {
	model := &scriptedModel{
		fn: func(req summary.ModelRequest) (string, error) {
			return "", errors.New("timeout")
		},
	}
	c := summary.NewCombiner(model, summary.DefaultPolicy())

	partials := []summary.PartialSummary{
		{ChunkIndex: 0, Text: wordsText(70)},
		{ChunkIndex: 1, Text: wordsText(70)},
	}

	text, path := c.Combine(context.Background(), summary.NewDocument(wordsText(500)), partials,
		summary.Budget{MinWords: 50, MaxWords: 100}, nil)

	assert.Equal(t, summary.PathJoined, path)
	assert.Equal(t, 140, len(strings.Fields(text)))
}
