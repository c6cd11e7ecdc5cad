package middleware

import (
	"crypto/subtle"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/utils"
)

// Username and password headers used by the authenticate endpoint and the
// static-credential-protected routes.
const (
	HeaderAuthUsername = "X-Auth-Username"
	HeaderAuthPassword = "X-Auth-Password"
)

// StaticCredential enforces the static-credential access policy: requests
// must carry the exact configured admin username/password pair. This is a
// separate trust mechanism from per-user tokens and never touches the
// external verifier or the token store.
type StaticCredential struct {
	username string
	password string
	logger   *zap.Logger
	onReject func()            // optional metrics hook
	recorder AuthEventRecorder // optional
}

// NewStaticCredential creates a new StaticCredential middleware
func NewStaticCredential(username, password string, logger *zap.Logger) *StaticCredential {
	return &StaticCredential{
		username: username,
		password: password,
		logger:   logger,
	}
}

// WithRejectHook registers a callback invoked on every rejected request.
func (m *StaticCredential) WithRejectHook(fn func()) *StaticCredential {
	m.onReject = fn
	return m
}

// WithEventRecorder registers an audit recorder for admin access outcomes.
func (m *StaticCredential) WithEventRecorder(rec AuthEventRecorder) *StaticCredential {
	m.recorder = rec
	return m
}

func (m *StaticCredential) record(r *http.Request, action models.AuthEventAction, principal string) {
	if m.recorder == nil {
		return
	}
	event := models.NewAuthEvent(action, principal, r.URL.Path).
		WithRequest(chimiddleware.GetReqID(r.Context()), r.RemoteAddr)
	m.recorder.Record(event)
}

// Require is a middleware that rejects any request whose credential headers
// do not exactly match the configured pair.
func (m *StaticCredential) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := chimiddleware.GetReqID(r.Context())

		username := r.Header.Get(HeaderAuthUsername)
		password := r.Header.Get(HeaderAuthPassword)

		// Constant-time comparison; both are checked even when the first
		// fails so timing does not reveal which header was wrong.
		usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1
		passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
		if !usernameOK || !passwordOK {
			m.logger.Warn("static credential rejected",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path))
			if m.onReject != nil {
				m.onReject()
			}
			m.record(r, models.AuthEventAdminRejected, "")
			_ = utils.WriteUnauthorized(w)
			return
		}

		m.record(r, models.AuthEventAdminAccess, m.username)
		next.ServeHTTP(w, r)
	})
}
