// Package policy records the per-route access policy of the gateway. The
// chi router wiring in routes.SetupRoutes is the enforcement point; this
// table is the single statement of which credential form each route
// requires, and the route tests assert the wiring against it.
package policy

// Kind is the credential form a route requires.
type Kind int

const (
	// Public routes bypass all checks.
	Public Kind = iota
	// StaticCredential routes require the configured admin
	// username/password header pair.
	StaticCredential
	// CredentialExchange routes accept username/password headers and
	// exchange them for a token via the external verifier.
	CredentialExchange
	// TokenRequired routes require a previously issued X-Auth-Token.
	TokenRequired
)

// String returns the policy kind name
func (k Kind) String() string {
	switch k {
	case Public:
		return "public"
	case StaticCredential:
		return "static_credential"
	case CredentialExchange:
		return "credential_exchange"
	case TokenRequired:
		return "token_required"
	default:
		return "unknown"
	}
}

// Route paths served by the gateway.
const (
	HealthRoute       = "/health"
	MetricsRoute      = "/metrics"
	AuthenticateRoute = "/api/authenticate"
	StuffRoute        = "/api/stuff"
)

// table maps each route to its required credential form. Unlisted routes
// are not served.
var table = map[string]Kind{
	HealthRoute:       Public,
	MetricsRoute:      StaticCredential,
	AuthenticateRoute: CredentialExchange,
	StuffRoute:        TokenRequired,
}

// Classify returns the policy kind for a route and whether the route is
// served at all.
func Classify(route string) (Kind, bool) {
	kind, ok := table[route]
	return kind, ok
}

// Routes returns all served routes and their policy kinds.
func Routes() map[string]Kind {
	out := make(map[string]Kind, len(table))
	for route, kind := range table {
		out[route] = kind
	}
	return out
}
