package summary

import "doc-digest/internal/utils/text"

// Chunk is a contiguous, token-bounded slice of the source document,
// summarized independently of the others. Indices are zero-based, contiguous,
// and preserve document order.
type Chunk struct {
	Index      int
	Text       string
	TokenCount int
}

// WordCount returns the whitespace-separated word count of the chunk text.
func (c Chunk) WordCount() int {
	return text.CountWords(c.Text)
}

// SplitChunks tokenizes the full text once and partitions the token sequence
// into contiguous windows of tokenLimit tokens (the final window may be
// shorter), decoding each window back into text independently.
//
// The result is a pure function of (text, tokenLimit, tokenizer): no hidden
// state, restartable, and deterministic. A token sequence of length T yields
// exactly ceil(T / tokenLimit) chunks.
func SplitChunks(tok Tokenizer, raw string, tokenLimit int) []Chunk {
	if tokenLimit <= 0 {
		tokenLimit = DefaultPolicy().ChunkTokenLimit
	}

	tokens := tok.Encode(raw)
	if len(tokens) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (len(tokens)+tokenLimit-1)/tokenLimit)
	for start := 0; start < len(tokens); start += tokenLimit {
		end := min(start+tokenLimit, len(tokens))
		window := tokens[start:end]
		chunks = append(chunks, Chunk{
			Index:      len(chunks),
			Text:       tok.Decode(window),
			TokenCount: len(window),
		})
	}

	return chunks
}
