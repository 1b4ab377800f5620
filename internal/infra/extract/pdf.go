// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"doc-digest/internal/progress"
)

// Extraction occupies the 5-15% progress band, before the summarization
// pipeline takes over at init.
const (
	extractBase = 5
	extractSpan = 10
)

// PDFText extracts the plain text of every page of a PDF document, in page
// order, separated by newlines. Pages whose text cannot be decoded are
// skipped with a warning rather than failing the whole document.
func PDFText(content []byte, tr *progress.Tracker) (string, error) {
	tr.Update(progress.StageExtracting, extractBase, "Extracting text from PDF...")

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	totalPages := reader.NumPage()
	if totalPages == 0 {
		return "", fmt.Errorf("pdf contains no pages")
	}

	var sb strings.Builder
	for i := 1; i <= totalPages; i++ {
		pct := extractBase + (i-1)*extractSpan/totalPages
		tr.Update(progress.StageExtracting, pct,
			fmt.Sprintf("Extracting page %d of %d...", i, totalPages))

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("skipping unreadable pdf page",
				slog.Int("page", i),
				slog.Any("error", err))
			continue
		}

		sb.WriteString(pageText)
		sb.WriteByte('\n')
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}

	slog.Info("pdf text extracted",
		slog.Int("pages", totalPages),
		slog.Int("bytes", len(text)))

	return text, nil
}
