package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/futureprocessing/auth-gateway/models"
	"github.com/futureprocessing/auth-gateway/services"
)

// assertionResponse is the body returned by the external authenticator on a
// successful credential check. The assertion is a signed JWT carrying the
// principal and its authorities.
type assertionResponse struct {
	Assertion string `json:"assertion"`
}

// assertionClaims are the claims the gateway expects inside the assertion
type assertionClaims struct {
	jwt.RegisteredClaims
	Authorities string `json:"authorities"` // comma-separated, e.g. "ROLE_DOMAIN_USER"
}

// Config holds configuration for the ExternalAuthenticator
type Config struct {
	// BaseURL is the external authenticator endpoint, e.g.
	// https://auth.internal:9443. Credentials are POSTed to
	// {BaseURL}/authenticate.
	BaseURL string

	// Issuer is the expected "iss" claim of the returned assertion.
	Issuer string

	// AssertionSecret is the shared HMAC key used to verify the
	// assertion signature.
	AssertionSecret []byte

	// HTTPTimeout bounds the round trip to the external service.
	HTTPTimeout time.Duration
}

// ExternalAuthenticator verifies credentials against the external identity
// service over HTTPS and validates the signed assertion it returns.
type ExternalAuthenticator struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewExternalAuthenticator creates a new ExternalAuthenticator
func NewExternalAuthenticator(cfg Config, logger *zap.Logger) *ExternalAuthenticator {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	return &ExternalAuthenticator{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Authenticate implements Authenticator. Any rejection by the external
// service surfaces as services.ErrBadCredentials; transport and response
// failures surface as external errors. Callers treat both the same way.
func (a *ExternalAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.Identity, error) {
	authURL := strings.TrimSuffix(a.cfg.BaseURL, "/") + "/authenticate"
	data := url.Values{
		"username": {username},
		"password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, authURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeExternal, "create authenticate request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Warn("external authenticator unreachable", zap.Error(err))
		return nil, services.NewDomainError(services.ErrorTypeExternal, "external authenticator unavailable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// No detail is propagated: unknown user and wrong password look
		// identical to the caller.
		return nil, services.NewDomainError(services.ErrorTypeInvalidCredential, "credentials rejected", nil)
	case resp.StatusCode != http.StatusOK:
		return nil, services.NewDomainError(services.ErrorTypeExternal,
			fmt.Sprintf("external authenticator returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, services.NewDomainError(services.ErrorTypeExternal, "read authenticate response", err)
	}

	var assertion assertionResponse
	if err := json.Unmarshal(body, &assertion); err != nil || assertion.Assertion == "" {
		return nil, services.NewDomainError(services.ErrorTypeExternal, "malformed authenticate response", err)
	}

	identity, err := a.parseAssertion(assertion.Assertion, username)
	if err != nil {
		a.logger.Warn("assertion validation failed",
			zap.String("username", username),
			zap.Error(err))
		return nil, err
	}
	return identity, nil
}

// parseAssertion validates the signed assertion and builds the Identity.
func (a *ExternalAuthenticator) parseAssertion(tokenString, username string) (*models.Identity, error) {
	claims := &assertionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.cfg.AssertionSecret, nil
	}, jwt.WithIssuer(a.cfg.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		if err == nil {
			err = errors.New("assertion not valid")
		}
		return nil, services.NewDomainError(services.ErrorTypeInvalidCredential, "invalid identity assertion", err)
	}

	principal := claims.Subject
	if principal == "" {
		return nil, services.NewDomainError(services.ErrorTypeInvalidCredential, "assertion missing subject", nil)
	}
	if principal != username {
		// The assertion must be for the user who presented credentials.
		return nil, services.NewDomainError(services.ErrorTypeInvalidCredential, "assertion subject mismatch", nil)
	}

	identity := models.NewIdentity(principal, models.ParseAuthorities(claims.Authorities), "")
	identity.EraseCredential()
	return identity, nil
}
