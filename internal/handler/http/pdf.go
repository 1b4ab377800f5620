package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"doc-digest/internal/handler/http/requestid"
	"doc-digest/internal/handler/http/respond"
	"doc-digest/internal/infra/extract"
	"doc-digest/internal/progress"
)

// maxUploadBytes bounds PDF uploads to keep memory predictable.
const maxUploadBytes = 32 << 20

// SummarizePDF handles POST /api/summarize-pdf. It accepts a multipart form
// with a "file" field plus optional max_words and min_words fields, extracts
// the text, and runs it through the same pipeline as summarize-text.
func (h *Handler) SummarizePDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respond.ErrorMessage(w, http.StatusBadRequest, "No file selected")
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		respond.ErrorMessage(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	maxWords := formInt(r, "max_words")
	minWords := formInt(r, "min_words")

	content, err := io.ReadAll(file)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// Extraction reports its own progress band, so the tracker is registered
	// before the pipeline takes over.
	requestID := requestid.FromContext(r.Context())
	tracker := h.hub.Register(requestID)

	text, err := extract.PDFText(content, tracker)
	if err != nil || len([]rune(strings.TrimSpace(text))) < minRequestRunes {
		tracker.Update(progress.StageError, 100, "Could not extract text from PDF")
		h.hub.Release(requestID)
		respond.ErrorMessage(w, http.StatusBadRequest,
			"Could not extract text from PDF or PDF is empty")
		return
	}

	h.runSummarizeWith(w, r, tracker, requestID, text, maxWords, minWords)
}

// formInt parses an optional integer form field, returning 0 when absent or
// malformed. 0 means "derive from document size" downstream.
func formInt(r *http.Request, key string) int {
	raw := r.FormValue(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
