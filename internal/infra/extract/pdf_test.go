package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-digest/internal/progress"
)

func TestPDFTextRejectsGarbage(t *testing.T) {
	_, err := PDFText([]byte("this is not a pdf"), nil)
	require.Error(t, err)
}

func TestPDFTextRejectsEmptyInput(t *testing.T) {
	_, err := PDFText(nil, nil)
	require.Error(t, err)
}

func TestPDFTextReportsProgress(t *testing.T) {
	tr := progress.NewTracker()

	_, err := PDFText([]byte("%PDF-1.4 truncated"), tr)
	require.Error(t, err)

	// The extracting stage is entered before the document is parsed, so the
	// tracker reflects the attempt even on failure.
	state := tr.State()
	assert.Equal(t, progress.StageExtracting, state.Stage)
	assert.Equal(t, 5, state.Progress)
}
