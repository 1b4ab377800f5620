package http

import (
	"net/http"

	"doc-digest/internal/handler/http/respond"
)

type healthResponse struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
}

// Health handles GET /api/health. Model adapters are constructed at startup
// and the process exits if that fails, so a serving process always reports
// its models as loaded.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{Status: "healthy", ModelsLoaded: true})
}
