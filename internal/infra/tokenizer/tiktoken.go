// Package tokenizer adapts the tiktoken BPE encodings to the pipeline's
// tokenizer port.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used when none is configured. It is the
// encoding shared by the current OpenAI chat models.
const DefaultEncoding = "cl100k_base"

// Tiktoken wraps a tiktoken encoding. Encoding and decoding are deterministic
// and the struct is safe for concurrent use.
type Tiktoken struct {
	enc *tiktoken.Tiktoken
}

// New loads the named BPE encoding. An empty name selects DefaultEncoding.
func New(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", encoding, err)
	}

	return &Tiktoken{enc: enc}, nil
}

// Encode converts text into its token sequence.
func (t *Tiktoken) Encode(text string) []int {
	return t.enc.Encode(text, nil, nil)
}

// Decode converts a token sequence back into text.
func (t *Tiktoken) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}
