package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"doc-digest/internal/handler/http/requestid"
	"doc-digest/internal/handler/http/respond"
	"doc-digest/internal/usecase/qa"
)

type answerRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answer  string       `json:"answer"`
	History []qa.Message `json:"history"`
}

type historyResponse struct {
	History []qa.Message `json:"history"`
}

// AnswerQuestion handles POST /api/answer-question. Answers are generated
// against the most recently summarized document.
func (h *Handler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	requestID := requestid.FromContext(r.Context())
	tracker := h.hub.Register(requestID)
	defer h.hub.Release(requestID)

	answer, err := h.answers.Answer(r.Context(), req.Question, tracker)
	if err != nil {
		switch {
		case errors.Is(err, qa.ErrEmptyQuestion):
			respond.ErrorMessage(w, http.StatusBadRequest, "Please provide a question")
		case errors.Is(err, qa.ErrNoContent):
			respond.ErrorMessage(w, http.StatusBadRequest, qa.NoContentMessage)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, answerResponse{
		Answer:  answer,
		History: h.answers.History(),
	})
}

// ClearChat handles POST /api/clear-chat.
func (h *Handler) ClearChat(w http.ResponseWriter, _ *http.Request) {
	h.answers.ClearHistory()
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Chat history cleared",
		"history": []qa.Message{},
	})
}

// GetChatHistory handles GET /api/get-chat-history.
func (h *Handler) GetChatHistory(w http.ResponseWriter, _ *http.Request) {
	history := h.answers.History()
	if history == nil {
		history = []qa.Message{}
	}
	respond.JSON(w, http.StatusOK, historyResponse{History: history})
}
