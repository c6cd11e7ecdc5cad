package models

import "strings"

// Identity represents an authenticated principal and its granted authorities.
// An Identity is only ever produced by a successful verifier call; handlers
// and middleware treat it as immutable once constructed.
type Identity struct {
	// Principal is the authenticated user name. Never empty.
	Principal string `json:"principal"`

	// Authorities are the authority strings granted by the external
	// authenticator (e.g. "ROLE_DOMAIN_USER").
	Authorities []string `json:"authorities"`

	// credential is an opaque reference to the credential used during
	// verification. It is kept out of JSON and is never persisted.
	credential string
}

// NewIdentity builds an Identity for a verified principal.
func NewIdentity(principal string, authorities []string, credential string) *Identity {
	return &Identity{
		Principal:   principal,
		Authorities: authorities,
		credential:  credential,
	}
}

// HasAuthority reports whether the identity was granted the given authority.
func (i *Identity) HasAuthority(authority string) bool {
	for _, a := range i.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// EraseCredential drops the opaque credential reference. Called once the
// verification exchange has completed.
func (i *Identity) EraseCredential() {
	i.credential = ""
}

// ParseAuthorities splits a comma-separated authority list as produced by
// the external authenticator, dropping empty entries.
func ParseAuthorities(s string) []string {
	parts := strings.Split(s, ",")
	authorities := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			authorities = append(authorities, trimmed)
		}
	}
	return authorities
}
