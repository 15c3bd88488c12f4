// Package accesspolicy decides what to do with a browser request based only on
// session cookie presence: let it through, redirect to login, or redirect an
// already signed-in user away from the auth pages.
package accesspolicy

import "context"

// Decision is the outcome of evaluating a request path.
type Decision string

const (
	// DecisionAllow lets the request through.
	DecisionAllow Decision = "allow"
	// DecisionLogin redirects to the login page, carrying the original path.
	DecisionLogin Decision = "login"
	// DecisionHome redirects a signed-in user from an auth page to the feed.
	DecisionHome Decision = "home"
)

// Routes lists the path prefixes the policy acts on. Protected prefixes
// require a session cookie; Auth prefixes bounce signed-in users to the feed.
type Routes struct {
	Protected []string
	Auth      []string
}

// DefaultRoutes matches the application's page structure.
func DefaultRoutes() Routes {
	return Routes{
		Protected: []string{"/feed", "/directory", "/companies", "/profile", "/admin"},
		Auth:      []string{"/login", "/signup"},
	}
}

// Evaluator classifies request paths. hasSession is cookie presence only; the
// cookie value is never inspected here.
type Evaluator interface {
	Evaluate(ctx context.Context, path string, hasSession bool) (Decision, error)
}
