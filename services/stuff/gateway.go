// Package stuff provides the sample protected resource served behind the
// token-required policy.
package stuff

import (
	"context"
	"fmt"

	"github.com/futureprocessing/auth-gateway/models"
)

// Stuff is the resource returned to authenticated callers.
type Stuff struct {
	Name string `json:"name"`
}

// Gateway fetches the protected resource for an authenticated identity.
type Gateway interface {
	GetStuff(ctx context.Context, identity *models.Identity) (*Stuff, error)
}

// StaticGateway serves a canned resource derived from the caller's
// principal. It stands in for a downstream domain service.
type StaticGateway struct{}

// NewStaticGateway creates a new StaticGateway
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{}
}

// GetStuff returns the resource for the given identity.
func (g *StaticGateway) GetStuff(_ context.Context, identity *models.Identity) (*Stuff, error) {
	if identity == nil {
		return nil, fmt.Errorf("no identity")
	}
	return &Stuff{Name: fmt.Sprintf("stuff for %s", identity.Principal)}, nil
}
