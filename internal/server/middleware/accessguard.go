package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"alumni-network/backend/internal/accesspolicy"
	sessionhandler "alumni-network/backend/internal/session/handler"
)

// AccessGuard is the coarse tier: it routes browsers by session cookie
// presence only, without verifying the cookie. Unauthenticated requests to
// protected pages redirect to /login?next=<path>; authenticated requests to
// the auth pages redirect to /feed. API paths are exempt, they answer with
// status codes instead of redirects.
func AccessGuard(policy accesspolicy.Evaluator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			hasSession := false
			if cookie, err := r.Cookie(sessionhandler.CookieName); err == nil && cookie.Value != "" {
				hasSession = true
			}

			decision, err := policy.Evaluate(r.Context(), r.URL.Path, hasSession)
			if err != nil {
				log.Printf("accessguard: evaluate %s failed: %v", r.URL.Path, err)
				decision = accesspolicy.DecisionAllow
			}

			switch decision {
			case accesspolicy.DecisionLogin:
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusFound)
			case accesspolicy.DecisionHome:
				http.Redirect(w, r, "/feed", http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
