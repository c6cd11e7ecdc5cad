package verifier

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/services"
)

const testIssuer = "https://auth.internal"

var testSecret = []byte("assertion-test-secret")

// signAssertion mints an assertion the way the external identity service does.
func signAssertion(t *testing.T, secret []byte, issuer, subject, authorities string, expiresIn time.Duration) string {
	t.Helper()

	claims := assertionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		Authorities: authorities,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func newTestAuthenticator(t *testing.T, handler http.HandlerFunc) *ExternalAuthenticator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewExternalAuthenticator(Config{
		BaseURL:         srv.URL,
		Issuer:          testIssuer,
		AssertionSecret: testSecret,
		HTTPTimeout:     2 * time.Second,
	}, zap.NewNop())
}

func TestAuthenticate_validCredentials(t *testing.T) {
	auth := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/authenticate", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "test_user_2", r.PostFormValue("username"))
		require.Equal(t, "ValidPassword", r.PostFormValue("password"))

		assertion := signAssertion(t, testSecret, testIssuer, "test_user_2", "ROLE_DOMAIN_USER", time.Minute)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"assertion":"` + assertion + `"}`))
	})

	identity, err := auth.Authenticate(context.Background(), "test_user_2", "ValidPassword")
	require.NoError(t, err)
	assert.Equal(t, "test_user_2", identity.Principal)
	assert.Equal(t, []string{"ROLE_DOMAIN_USER"}, identity.Authorities)
}

func TestAuthenticate_multipleAuthorities(t *testing.T) {
	auth := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		assertion := signAssertion(t, testSecret, testIssuer, "ops_user", "ROLE_DOMAIN_USER, ROLE_AUDITOR", time.Minute)
		_, _ = w.Write([]byte(`{"assertion":"` + assertion + `"}`))
	})

	identity, err := auth.Authenticate(context.Background(), "ops_user", "pw")
	require.NoError(t, err)
	assert.Equal(t, []string{"ROLE_DOMAIN_USER", "ROLE_AUDITOR"}, identity.Authorities)
}

func TestAuthenticate_rejectedCredentials(t *testing.T) {
	auth := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	identity, err := auth.Authenticate(context.Background(), "test_user_2", "InvalidPassword")
	assert.Nil(t, identity)
	assert.True(t, errors.Is(err, services.ErrBadCredentials))
}

func TestAuthenticate_serverError(t *testing.T) {
	auth := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	identity, err := auth.Authenticate(context.Background(), "user", "pw")
	assert.Nil(t, identity)
	assert.True(t, services.IsExternalError(err))
}

func TestAuthenticate_unreachableService(t *testing.T) {
	auth := NewExternalAuthenticator(Config{
		BaseURL:         "http://127.0.0.1:1", // nothing listens here
		Issuer:          testIssuer,
		AssertionSecret: testSecret,
		HTTPTimeout:     500 * time.Millisecond,
	}, zap.NewNop())

	identity, err := auth.Authenticate(context.Background(), "user", "pw")
	assert.Nil(t, identity)
	assert.True(t, services.IsExternalError(err))
}

func TestAuthenticate_assertionValidation(t *testing.T) {
	tests := []struct {
		name      string
		assertion func(t *testing.T) string
	}{
		{
			name: "wrong signing key",
			assertion: func(t *testing.T) string {
				return signAssertion(t, []byte("not-the-shared-secret"), testIssuer, "test_user_2", "ROLE_DOMAIN_USER", time.Minute)
			},
		},
		{
			name: "wrong issuer",
			assertion: func(t *testing.T) string {
				return signAssertion(t, testSecret, "https://rogue.example", "test_user_2", "ROLE_DOMAIN_USER", time.Minute)
			},
		},
		{
			name: "expired",
			assertion: func(t *testing.T) string {
				return signAssertion(t, testSecret, testIssuer, "test_user_2", "ROLE_DOMAIN_USER", -time.Minute)
			},
		},
		{
			name: "subject mismatch",
			assertion: func(t *testing.T) string {
				return signAssertion(t, testSecret, testIssuer, "somebody_else", "ROLE_DOMAIN_USER", time.Minute)
			},
		},
		{
			name: "not a jwt",
			assertion: func(t *testing.T) string {
				return "garbage"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertion := tt.assertion(t)
			auth := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"assertion":"` + assertion + `"}`))
			})

			identity, err := auth.Authenticate(context.Background(), "test_user_2", "ValidPassword")
			assert.Nil(t, identity)
			assert.True(t, errors.Is(err, services.ErrBadCredentials), "expected credential error, got %v", err)
		})
	}
}

func TestAuthenticate_malformedResponseBody(t *testing.T) {
	auth := newTestAuthenticator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	})

	identity, err := auth.Authenticate(context.Background(), "user", "pw")
	assert.Nil(t, identity)
	assert.True(t, services.IsExternalError(err))
}
