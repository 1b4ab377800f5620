package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"doc-digest/internal/handler/http/requestid"
	"doc-digest/internal/handler/http/respond"
	"doc-digest/internal/progress"
	"doc-digest/internal/usecase/summary"
)

// minRequestRunes is the smallest input accepted by the API. The pipeline has
// its own word-count threshold; this guard just rejects junk requests early.
const minRequestRunes = 10

type summarizeTextRequest struct {
	Text     string `json:"text"`
	MaxWords int    `json:"max_words"`
	MinWords int    `json:"min_words"`
}

type summarizeResponse struct {
	Summary        string `json:"summary"`
	OriginalLength int    `json:"original_length"`
	SummaryLength  int    `json:"summary_length"`
	RequestID      string `json:"request_id"`
}

// SummarizeText handles POST /api/summarize-text. The summary is produced
// synchronously; clients observe progress concurrently through the progress
// endpoints using the request ID echoed in the response headers.
func (h *Handler) SummarizeText(w http.ResponseWriter, r *http.Request) {
	var req summarizeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if len([]rune(strings.TrimSpace(req.Text))) < minRequestRunes {
		respond.ErrorMessage(w, http.StatusBadRequest,
			"Please provide valid text (at least 10 characters)")
		return
	}

	requestID := requestid.FromContext(r.Context())
	tracker := h.hub.Register(requestID)
	h.runSummarizeWith(w, r, tracker, requestID, req.Text, req.MaxWords, req.MinWords)
}

// runSummarizeWith executes the pipeline for already-validated text on an
// already-registered tracker and writes the API response. Shared by the text
// and PDF endpoints.
func (h *Handler) runSummarizeWith(w http.ResponseWriter, r *http.Request, tracker *progress.Tracker, requestID, text string, maxWords, minWords int) {
	defer h.hub.Release(requestID)

	res, err := h.summaries.Summarize(r.Context(), summary.Request{
		Text:     text,
		MaxWords: maxWords,
		MinWords: minWords,
		Tracker:  tracker,
	})
	if err != nil {
		if errors.Is(err, summary.ErrEmptyText) {
			respond.ErrorMessage(w, http.StatusBadRequest,
				"Please provide valid text (at least 10 characters)")
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	// The document is stored even when the result is a sentinel message, so
	// follow-up questions run against whatever the user last submitted.
	h.store.SetDocument(text, res.Summary)

	respond.JSON(w, http.StatusOK, summarizeResponse{
		Summary:        res.Summary,
		OriginalLength: res.OriginalWordCount,
		SummaryLength:  res.SummaryWordCount,
		RequestID:      requestID,
	})
}
