package summary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-digest/internal/usecase/summary"
)

func TestPlanBudget(t *testing.T) {
	policy := summary.DefaultPolicy()

	tests := []struct {
		name      string
		wordCount int
		overrides summary.Overrides
		want      summary.Budget
	}{
		{
			name:      "defaults for a medium document",
			wordCount: 1000,
			want: summary.Budget{
				MinWords:  250,
				MaxWords:  500,
				MinTokens: 325,
				MaxTokens: 650,
			},
		},
		{
			name:      "max capped for a very long document",
			wordCount: 4000,
			want: summary.Budget{
				MinWords:  1000,
				MaxWords:  1500,
				MinTokens: 1300,
				MaxTokens: 1950,
			},
		},
		{
			name:      "min floored then clamped for a small document",
			wordCount: 60,
			// derived max is 30; the floored min of 50 is clamped to 0.9 × 30.
			want: summary.Budget{
				MinWords:  27,
				MaxWords:  30,
				MinTokens: 35,
				MaxTokens: 39,
			},
		},
		{
			name:      "caller overrides used verbatim when consistent",
			wordCount: 1000,
			overrides: summary.Overrides{MaxWords: 200, MinWords: 100},
			want: summary.Budget{
				MinWords:  100,
				MaxWords:  200,
				MinTokens: 130,
				MaxTokens: 260,
			},
		},
		{
			name:      "conflicting overrides clamped to a satisfiable envelope",
			wordCount: 1000,
			overrides: summary.Overrides{MaxWords: 100, MinWords: 400},
			want: summary.Budget{
				MinWords:  90,
				MaxWords:  100,
				MinTokens: 117,
				MaxTokens: 130,
			},
		},
		{
			name:      "partial override keeps the derived counterpart",
			wordCount: 1000,
			overrides: summary.Overrides{MaxWords: 300},
			want: summary.Budget{
				MinWords:  250,
				MaxWords:  300,
				MinTokens: 325,
				MaxTokens: 390,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.PlanBudget(tt.wordCount, tt.overrides)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlanBudgetTooShort(t *testing.T) {
	policy := summary.DefaultPolicy()

	_, err := policy.PlanBudget(40, summary.Overrides{})
	require.ErrorIs(t, err, summary.ErrInputTooShort)

	// The boundary document is summarizable.
	_, err = policy.PlanBudget(50, summary.Overrides{})
	require.NoError(t, err)
}

func TestPlanBudgetInvariant(t *testing.T) {
	policy := summary.DefaultPolicy()

	for _, words := range []int{50, 75, 120, 500, 1000, 3000, 10000, 100000} {
		b, err := policy.PlanBudget(words, summary.Overrides{})
		require.NoError(t, err)
		assert.LessOrEqual(t, b.MinWords, b.MaxWords, "words=%d", words)
		assert.LessOrEqual(t, b.MinTokens, b.MaxTokens, "words=%d", words)
		assert.Positive(t, b.MinWords, "words=%d", words)
	}
}
