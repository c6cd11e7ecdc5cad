package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/utils"
)

// HeaderAuthToken carries the opaque bearer token on token-protected routes.
// Header names match the wire contract of the external clients.
const HeaderAuthToken = "X-Auth-Token"

// TokenStore resolves an opaque token to its bound identity
type TokenStore interface {
	Lookup(token string) (*models.Identity, error)
}

// AuthEventRecorder receives audit events for authentication outcomes.
// Recording must never block request handling.
type AuthEventRecorder interface {
	Record(event *models.AuthEvent)
}

// TokenAuth enforces the token-required access policy: requests must carry a
// previously issued X-Auth-Token header.
type TokenAuth struct {
	store    TokenStore
	logger   *zap.Logger
	recorder AuthEventRecorder // optional
}

// NewTokenAuth creates a new TokenAuth middleware
func NewTokenAuth(store TokenStore, logger *zap.Logger) *TokenAuth {
	return &TokenAuth{
		store:  store,
		logger: logger,
	}
}

// WithEventRecorder registers an audit recorder for token outcomes.
func (m *TokenAuth) WithEventRecorder(rec AuthEventRecorder) *TokenAuth {
	m.recorder = rec
	return m
}

func (m *TokenAuth) record(r *http.Request, action models.AuthEventAction, principal string) {
	if m.recorder == nil {
		return
	}
	event := models.NewAuthEvent(action, principal, r.URL.Path).
		WithRequest(chimiddleware.GetReqID(r.Context()), r.RemoteAddr)
	m.recorder.Record(event)
}

// RequireToken is a middleware that requires a recognized bearer token.
// Missing header, absent token, and unrecognized token all yield the same
// 401 response.
func (m *TokenAuth) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimiddleware.GetReqID(ctx)

		token := r.Header.Get(HeaderAuthToken)
		if token == "" {
			m.logger.Warn("missing auth token",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path))
			m.record(r, models.AuthEventTokenRejected, "")
			_ = utils.WriteUnauthorized(w)
			return
		}

		identity, err := m.store.Lookup(token)
		if err != nil {
			m.logger.Warn("token not recognized",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path))
			m.record(r, models.AuthEventTokenRejected, "")
			_ = utils.WriteUnauthorized(w)
			return
		}

		m.record(r, models.AuthEventTokenAccepted, identity.Principal)
		ctx = WithIdentity(ctx, identity)

		m.logger.Debug("token authentication successful",
			zap.String("request_id", requestID),
			zap.String("principal", identity.Principal))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthority is a middleware that requires the authenticated identity
// to hold a specific authority. Must run after RequireToken.
func (m *TokenAuth) RequireAuthority(authority string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := chimiddleware.GetReqID(ctx)

			identity := GetIdentityFromContext(ctx)
			if identity == nil {
				m.logger.Error("identity not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w)
				return
			}

			if !identity.HasAuthority(authority) {
				m.logger.Warn("missing required authority",
					zap.String("request_id", requestID),
					zap.String("principal", identity.Principal),
					zap.String("required_authority", authority))
				_ = utils.WriteUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
