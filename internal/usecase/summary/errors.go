package summary

import "errors"

var (
	// ErrInputTooShort signals that the document is below the minimum word
	// count worth summarizing. The service converts it into the too-short
	// sentinel result rather than surfacing it as a request failure.
	ErrInputTooShort = errors.New("input text is too short to summarize")

	// ErrEmptyText is returned when the input text contains no content at all.
	ErrEmptyText = errors.New("input text cannot be empty")
)

const (
	// TooShortMessage is the sentinel summary returned for documents under
	// the minimum word count.
	TooShortMessage = "Text is too short to summarize meaningfully."

	// NoUsableSummaryMessage is the terminal result when no chunk produced a
	// partial summary.
	NoUsableSummaryMessage = "Unable to generate summary."
)
