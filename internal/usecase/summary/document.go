package summary

import "doc-digest/internal/utils/text"

// Document is the input to one summarization request. It exists only for the
// lifetime of the request and is never persisted.
type Document struct {
	Text      string
	WordCount int
}

// NewDocument wraps raw text with its word count.
func NewDocument(raw string) Document {
	return Document{
		Text:      raw,
		WordCount: text.CountWords(raw),
	}
}

// Head returns the first n runes of the document text. Used to bound the
// regeneration pass input without splitting multi-byte characters.
func (d Document) Head(n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(d.Text)
	if len(runes) <= n {
		return d.Text
	}
	return string(runes[:n])
}
