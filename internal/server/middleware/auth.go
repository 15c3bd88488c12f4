package middleware

import (
	"net/http"

	"alumni-network/backend/internal/platform/httpjson"
	sessionhandler "alumni-network/backend/internal/session/handler"
	sessionsvc "alumni-network/backend/internal/session/service"
)

// RequireSession verifies the session cookie cryptographically and attaches
// the principal to the request context. Requests without a valid session get
// 401. This is the strict tier; the access guard only checks presence.
func RequireSession(gateway *sessionsvc.Gateway) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionhandler.CookieName)
			if err != nil || cookie.Value == "" {
				httpjson.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			principal, err := gateway.Verify(r.Context(), cookie.Value)
			if err != nil {
				httpjson.Error(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}
