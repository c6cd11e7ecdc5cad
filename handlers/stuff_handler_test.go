package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/middleware"
	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/services/stuff"
)

type failingGateway struct{}

func (failingGateway) GetStuff(context.Context, *models.Identity) (*stuff.Stuff, error) {
	return nil, errors.New("downstream unavailable")
}

func TestHandleGetStuff(t *testing.T) {
	handler := NewStuffHandler(stuff.NewStaticGateway(), zap.NewNop())

	identity := models.NewIdentity("johny", []string{"ROLE_DOMAIN_USER"}, "")
	req := httptest.NewRequest(http.MethodGet, "/api/stuff", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	handler.HandleGetStuff(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"stuff for johny"}`, rec.Body.String())
}

func TestHandleGetStuff_noIdentityInContext(t *testing.T) {
	handler := NewStuffHandler(stuff.NewStaticGateway(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/stuff", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetStuff(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetStuff_gatewayError(t *testing.T) {
	handler := NewStuffHandler(failingGateway{}, zap.NewNop())

	identity := models.NewIdentity("johny", nil, "")
	req := httptest.NewRequest(http.MethodGet, "/api/stuff", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))

	rec := httptest.NewRecorder()
	handler.HandleGetStuff(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "downstream unavailable")
}
