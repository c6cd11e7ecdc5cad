// Package repositories defines the data access interfaces consumed by the
// services layer.
package repositories

import (
	"context"

	"github.com/futureprocessing/auth-gateway/models"
)

// AuthEventRepository persists authentication audit events
type AuthEventRepository interface {
	// Insert inserts a new auth event
	Insert(ctx context.Context, event *models.AuthEvent) error

	// GetByPrincipal retrieves recent events for a principal, newest first
	GetByPrincipal(ctx context.Context, principal string, limit, offset int) ([]*models.AuthEvent, error)
}
