package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/repositories"
)

// AuthEventRepository implements the repositories.AuthEventRepository interface
type AuthEventRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAuthEventRepository creates a new auth event repository
func NewAuthEventRepository(db *DB, logger *zap.Logger) repositories.AuthEventRepository {
	return &AuthEventRepository{
		db:     db,
		logger: logger,
	}
}

// Insert inserts a new auth event
func (r *AuthEventRepository) Insert(ctx context.Context, event *models.AuthEvent) error {
	query := `
		INSERT INTO auth_events (
			id, action, principal, route, ip_address, request_id, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Action,
		event.Principal,
		event.Route,
		event.IPAddress,
		event.RequestID,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert auth event: %w", err)
	}

	r.logger.Debug("auth event inserted",
		zap.String("id", event.ID.String()),
		zap.String("action", string(event.Action)))
	return nil
}

// GetByPrincipal retrieves recent events for a principal, newest first
func (r *AuthEventRepository) GetByPrincipal(ctx context.Context, principal string, limit, offset int) ([]*models.AuthEvent, error) {
	query := `
		SELECT id, action, principal, route, ip_address, request_id, timestamp
		FROM auth_events
		WHERE principal = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, principal, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query auth events: %w", err)
	}
	defer rows.Close()

	var events []*models.AuthEvent
	for rows.Next() {
		event := &models.AuthEvent{}
		if err := rows.Scan(
			&event.ID,
			&event.Action,
			&event.Principal,
			&event.Route,
			&event.IPAddress,
			&event.RequestID,
			&event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan auth event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auth events: %w", err)
	}

	return events, nil
}
