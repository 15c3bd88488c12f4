package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"alumni-network/backend/internal/telemetry"
)

// Telemetry emits an http_request event per request. Best-effort and async;
// it never delays the response.
func Telemetry(emitter telemetry.EventEmitter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now().UTC()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			var userID string
			if p := PrincipalFrom(r.Context()); p != nil {
				userID = p.UID
			}
			metadata, _ := json.Marshal(map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
			})
			telemetry.EmitAsync(emitter, r.Context(), &telemetry.Event{
				UserID:    userID,
				EventType: "http_request",
				Source:    "server",
				Metadata:  metadata,
				CreatedAt: start,
			})
		})
	}
}
