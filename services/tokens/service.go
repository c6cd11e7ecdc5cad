// Package tokens implements the in-memory bearer token store. Tokens are
// opaque crypto-random strings bound 1:1 to an authenticated identity for
// the lifetime of the process.
package tokens

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/services"
)

// Service issues and resolves bearer tokens. The token map is the only
// shared mutable state in the gateway core; all access goes through the
// RWMutex here rather than ad hoc locking in handlers.
type Service struct {
	mu       sync.RWMutex
	byToken  map[string]*models.Identity
	logger   *zap.Logger
	onIssue  func() // optional metrics hooks
	onLookup func(hit bool)
}

// Option configures a Service.
type Option func(*Service)

// WithIssueHook registers a callback invoked after every successful issue.
func WithIssueHook(fn func()) Option {
	return func(s *Service) { s.onIssue = fn }
}

// WithLookupHook registers a callback invoked after every lookup.
func WithLookupHook(fn func(hit bool)) Option {
	return func(s *Service) { s.onLookup = fn }
}

// NewService creates a new token Service
func NewService(logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		byToken: make(map[string]*models.Identity),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints a fresh opaque token and records its binding to identity.
// Each call mints a new token, even for an identity that already holds one.
func (s *Service) Issue(identity *models.Identity) string {
	// uuid.NewString draws from crypto/rand; collisions are not a
	// practical concern but the loop keeps the uniqueness invariant
	// explicit.
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	for {
		if _, exists := s.byToken[token]; !exists {
			break
		}
		token = uuid.NewString()
	}
	s.byToken[token] = identity

	s.logger.Debug("token issued",
		zap.String("principal", identity.Principal),
		zap.Int("active_tokens", len(s.byToken)))

	if s.onIssue != nil {
		s.onIssue()
	}
	return token
}

// Lookup resolves a token to its bound identity. Unrecognized tokens return
// services.ErrUnknownToken.
func (s *Service) Lookup(token string) (*models.Identity, error) {
	s.mu.RLock()
	identity, ok := s.byToken[token]
	s.mu.RUnlock()

	if s.onLookup != nil {
		s.onLookup(ok)
	}
	if !ok {
		return nil, services.ErrUnknownToken
	}
	return identity, nil
}

// Count returns the number of live tokens.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}
