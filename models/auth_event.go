package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthEventAction represents the type of authentication event being audited
type AuthEventAction string

const (
	AuthEventAuthenticated      AuthEventAction = "authenticated"
	AuthEventCredentialRejected AuthEventAction = "credential_rejected"
	AuthEventTokenAccepted      AuthEventAction = "token_accepted"
	AuthEventTokenRejected      AuthEventAction = "token_rejected"
	AuthEventAdminAccess        AuthEventAction = "admin_access"
	AuthEventAdminRejected      AuthEventAction = "admin_rejected"
)

// AuthEvent represents an authentication audit trail entry. Events record
// outcomes only; passwords and tokens never appear in an event.
type AuthEvent struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	Action    AuthEventAction `json:"action" db:"action"`
	Principal string          `json:"principal" db:"principal"` // empty when the caller never identified itself
	Route     string          `json:"route" db:"route"`
	IPAddress string          `json:"ip_address" db:"ip_address"`
	RequestID string          `json:"request_id" db:"request_id"`
	Timestamp time.Time       `json:"timestamp" db:"timestamp"`
}

// TableName returns the table name for the AuthEvent model
func (AuthEvent) TableName() string {
	return "auth_events"
}

// NewAuthEvent creates a new AuthEvent instance
func NewAuthEvent(action AuthEventAction, principal, route string) *AuthEvent {
	return &AuthEvent{
		ID:        uuid.New(),
		Action:    action,
		Principal: principal,
		Route:     route,
		Timestamp: time.Now(),
	}
}

// WithRequest attaches request-scoped metadata to the event
func (e *AuthEvent) WithRequest(requestID, ipAddress string) *AuthEvent {
	e.RequestID = requestID
	e.IPAddress = ipAddress
	return e
}
