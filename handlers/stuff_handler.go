package handlers

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/middleware"
	"github.com/futureprocessing/auth-gateway/services/stuff"
	"github.com/futureprocessing/auth-gateway/utils"
)

// StuffHandler serves the protected sample resource
type StuffHandler struct {
	gateway stuff.Gateway
	logger  *zap.Logger
}

// NewStuffHandler creates a new StuffHandler
func NewStuffHandler(gateway stuff.Gateway, logger *zap.Logger) *StuffHandler {
	return &StuffHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// HandleGetStuff handles GET /api/stuff. Runs behind RequireToken, so the
// identity is always present in the context.
func (h *StuffHandler) HandleGetStuff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimiddleware.GetReqID(ctx)

	identity := middleware.GetIdentityFromContext(ctx)
	if identity == nil {
		h.logger.Error("identity not found in context",
			zap.String("request_id", requestID))
		_ = utils.WriteUnauthorized(w)
		return
	}

	resource, err := h.gateway.GetStuff(ctx, identity)
	if err != nil {
		h.logger.Error("failed to fetch stuff",
			zap.String("request_id", requestID),
			zap.String("principal", identity.Principal),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	if err := utils.WriteJSON(w, http.StatusOK, resource); err != nil {
		h.logger.Error("failed to write stuff response", zap.Error(err))
	}
}
