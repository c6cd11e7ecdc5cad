// Package verifier defines the external credential verifier consumed by the
// gateway and the HTTP-backed implementation used in production. The gateway
// never inspects passwords itself; credential checking is delegated in full
// to the external authenticator behind this interface.
package verifier

import (
	"context"

	"github.com/futureprocessing/auth-gateway/models"
)

// Authenticator verifies a username/password pair against the external
// identity backend and yields the authenticated identity.
//
// Implementations must return an error wrapping services.ErrBadCredentials
// when the credentials are rejected, without distinguishing unknown
// username from wrong password. The gateway collapses every failure from
// this call into a uniform Unauthorized response.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.Identity, error)
}
