package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/models"
)

func newMockRepo(t *testing.T) (*AuthEventRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := &AuthEventRepository{
		db:     &DB{DB: db, logger: zap.NewNop()},
		logger: zap.NewNop(),
	}
	return repo, mock
}

func TestAuthEventRepository_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)

	event := models.NewAuthEvent(models.AuthEventAuthenticated, "test_user_2", "/api/authenticate").
		WithRequest("req-1", "10.0.0.1")

	mock.ExpectExec("INSERT INTO auth_events").
		WithArgs(
			event.ID,
			event.Action,
			event.Principal,
			event.Route,
			event.IPAddress,
			event.RequestID,
			event.Timestamp,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), event)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthEventRepository_Insert_error(t *testing.T) {
	repo, mock := newMockRepo(t)

	event := models.NewAuthEvent(models.AuthEventTokenRejected, "", "/api/stuff")

	mock.ExpectExec("INSERT INTO auth_events").
		WillReturnError(assert.AnError)

	err := repo.Insert(context.Background(), event)
	assert.ErrorContains(t, err, "failed to insert auth event")
}

func TestAuthEventRepository_GetByPrincipal(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	first := models.NewAuthEvent(models.AuthEventAuthenticated, "test_user_2", "/api/authenticate")
	second := models.NewAuthEvent(models.AuthEventTokenAccepted, "test_user_2", "/api/stuff")

	rows := sqlmock.NewRows([]string{"id", "action", "principal", "route", "ip_address", "request_id", "timestamp"}).
		AddRow(second.ID, second.Action, second.Principal, second.Route, "", "", now).
		AddRow(first.ID, first.Action, first.Principal, first.Route, "", "", now.Add(-time.Minute))

	mock.ExpectQuery("SELECT (.+) FROM auth_events").
		WithArgs("test_user_2", 10, 0).
		WillReturnRows(rows)

	events, err := repo.GetByPrincipal(context.Background(), "test_user_2", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.AuthEventTokenAccepted, events[0].Action)
	assert.Equal(t, models.AuthEventAuthenticated, events[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthEventRepository_GetByPrincipal_queryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM auth_events").
		WillReturnError(assert.AnError)

	events, err := repo.GetByPrincipal(context.Background(), "nobody", 10, 0)
	assert.Nil(t, events)
	assert.ErrorContains(t, err, "failed to query auth events")
}
