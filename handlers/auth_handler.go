package handlers

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/internal/observability"
	"github.com/futureprocessing/auth-gateway/middleware"
	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/services/verifier"
	"github.com/futureprocessing/auth-gateway/utils"
)

// TokenResponse carries a freshly minted bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// TokenIssuer mints opaque tokens bound to an identity
type TokenIssuer interface {
	Issue(identity *models.Identity) string
}

// AttemptRecorder counts authenticate attempts by outcome
type AttemptRecorder interface {
	RecordAuthAttempt(outcome string)
}

// AuthHandler handles the credential-for-token exchange
type AuthHandler struct {
	authenticator verifier.Authenticator
	tokens        TokenIssuer
	recorder      middleware.AuthEventRecorder // optional
	metrics       AttemptRecorder              // optional
	logger        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authenticator verifier.Authenticator, tokens TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		tokens:        tokens,
		logger:        logger,
	}
}

// WithEventRecorder registers an audit recorder for authenticate outcomes.
func (h *AuthHandler) WithEventRecorder(rec middleware.AuthEventRecorder) *AuthHandler {
	h.recorder = rec
	return h
}

// WithAttemptRecorder registers a metrics recorder for authenticate attempts.
func (h *AuthHandler) WithAttemptRecorder(rec AttemptRecorder) *AuthHandler {
	h.metrics = rec
	return h
}

// HandleAuthenticate handles POST /api/authenticate
//
// Credentials arrive in the X-Auth-Username and X-Auth-Password headers.
// A request missing either header is rejected before the verifier is ever
// contacted. Every failure mode produces the same 401 body.
func (h *AuthHandler) HandleAuthenticate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimiddleware.GetReqID(ctx)

	username := r.Header.Get(middleware.HeaderAuthUsername)
	password := r.Header.Get(middleware.HeaderAuthPassword)

	if username == "" || password == "" {
		h.logger.Warn("authenticate request missing credential headers",
			zap.String("request_id", requestID))
		h.countAttempt(observability.OutcomeMissingCredential)
		h.record(r, models.AuthEventCredentialRejected, "")
		_ = utils.WriteUnauthorized(w)
		return
	}

	identity, err := h.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		// Bad credentials and verifier trouble collapse into the same
		// response; only the log distinguishes them.
		h.logger.Warn("authentication failed",
			zap.String("request_id", requestID),
			zap.String("username", username),
			zap.Error(err))
		h.countAttempt(observability.OutcomeRejected)
		h.record(r, models.AuthEventCredentialRejected, username)
		_ = utils.WriteUnauthorized(w)
		return
	}

	identity.EraseCredential()
	token := h.tokens.Issue(identity)

	h.logger.Info("authentication successful",
		zap.String("request_id", requestID),
		zap.String("principal", identity.Principal))
	h.countAttempt(observability.OutcomeIssued)
	h.record(r, models.AuthEventAuthenticated, identity.Principal)

	if err := utils.WriteJSON(w, http.StatusOK, TokenResponse{Token: token}); err != nil {
		h.logger.Error("failed to write token response", zap.Error(err))
	}
}

func (h *AuthHandler) countAttempt(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordAuthAttempt(outcome)
	}
}

func (h *AuthHandler) record(r *http.Request, action models.AuthEventAction, principal string) {
	if h.recorder == nil {
		return
	}
	event := models.NewAuthEvent(action, principal, r.URL.Path).
		WithRequest(chimiddleware.GetReqID(r.Context()), r.RemoteAddr)
	h.recorder.Record(event)
}
