package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"doc-digest/internal/handler/http/respond"
	"doc-digest/internal/progress"
)

// trackerFor resolves the tracker a progress request refers to. An explicit
// request_id selects that request; without one the most recently started
// request is used, which is what a single-user UI polls.
func (h *Handler) trackerFor(r *http.Request) (*progress.Tracker, bool) {
	if id := r.URL.Query().Get("request_id"); id != "" {
		t, ok := h.hub.Get(id)
		return t, ok
	}
	return h.hub.Latest(), true
}

// GetProgress handles GET /api/progress. It returns the current progress
// snapshot for polling clients.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	tracker, ok := h.trackerFor(r)
	if !ok {
		respond.ErrorMessage(w, http.StatusNotFound, "unknown request id")
		return
	}

	respond.JSON(w, http.StatusOK, tracker.State())
}

// ProgressStream handles GET /api/progress-stream. It streams progress
// updates as Server-Sent Events, one event per state change, and closes the
// stream once progress reaches 100.
func (h *Handler) ProgressStream(w http.ResponseWriter, r *http.Request) {
	tracker, ok := h.trackerFor(r)
	if !ok {
		respond.ErrorMessage(w, http.StatusNotFound, "unknown request id")
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		respond.ErrorMessage(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for state := range tracker.Subscribe(r.Context()) {
		payload, err := json.Marshal(state)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return
		}
		flusher.Flush()
	}
}
