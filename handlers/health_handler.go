package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/utils"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// HandleHealth handles GET /health
// Liveness only; reports UP whenever the process can serve requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := utils.WriteJSON(w, http.StatusOK, HealthResponse{Status: "UP"}); err != nil {
		h.logger.Error("failed to write health response", zap.Error(err))
	}
}
