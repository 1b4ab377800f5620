package summary_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"doc-digest/internal/usecase/summary"
)

// fakeTokenizer maps each whitespace-separated word to one token. Determinism
// comes from the shared vocabulary: the same word always gets the same id.
type fakeTokenizer struct {
	mu    sync.Mutex
	ids   map[string]int
	words []string
}

func newFakeTokenizer() *fakeTokenizer {
	return &fakeTokenizer{ids: make(map[string]int)}
}

func (f *fakeTokenizer) Encode(text string) []int {
	f.mu.Lock()
	defer f.mu.Unlock()

	fields := strings.Fields(text)
	tokens := make([]int, 0, len(fields))
	for _, w := range fields {
		id, ok := f.ids[w]
		if !ok {
			id = len(f.words)
			f.ids[w] = id
			f.words = append(f.words, w)
		}
		tokens = append(tokens, id)
	}
	return tokens
}

func (f *fakeTokenizer) Decode(tokens []int) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := make([]string, 0, len(tokens))
	for _, id := range tokens {
		parts = append(parts, f.words[id])
	}
	return strings.Join(parts, " ")
}

// scriptedModel delegates to a function so each test controls the model
// behavior. Calls are recorded for assertions on request parameters.
type scriptedModel struct {
	mu       sync.Mutex
	fn       func(req summary.ModelRequest) (string, error)
	requests []summary.ModelRequest
}

func (m *scriptedModel) Summarize(_ context.Context, req summary.ModelRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.fn == nil {
		return "summary of input", nil
	}
	return m.fn(req)
}

func (m *scriptedModel) calls() []summary.ModelRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]summary.ModelRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// wordsText generates a deterministic document of n distinct words.
func wordsText(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "word%d", i)
	}
	return b.String()
}
