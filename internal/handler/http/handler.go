// Package http exposes the summarization and question answering pipeline as a
// JSON API, plus progress reporting endpoints for long-running requests.
package http

import (
	"net/http"

	"doc-digest/internal/progress"
	"doc-digest/internal/usecase/qa"
	"doc-digest/internal/usecase/summary"
)

// Handler bundles the services behind the API endpoints.
type Handler struct {
	summaries *summary.Service
	answers   *qa.Service
	store     *qa.ContentStore
	hub       *progress.Hub
}

// New creates the API handler.
func New(summaries *summary.Service, answers *qa.Service, store *qa.ContentStore, hub *progress.Hub) *Handler {
	return &Handler{
		summaries: summaries,
		answers:   answers,
		store:     store,
		hub:       hub,
	}
}

// RegisterRoutes attaches all API endpoints to the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /api/summarize-text", h.SummarizeText)
	mux.HandleFunc("POST /api/summarize-pdf", h.SummarizePDF)
	mux.HandleFunc("POST /api/answer-question", h.AnswerQuestion)
	mux.HandleFunc("POST /api/clear-chat", h.ClearChat)
	mux.HandleFunc("GET /api/get-chat-history", h.GetChatHistory)
	mux.HandleFunc("GET /api/progress", h.GetProgress)
	mux.HandleFunc("GET /api/progress-stream", h.ProgressStream)
	mux.HandleFunc("GET /api/health", h.Health)
}
