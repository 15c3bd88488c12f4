// Package handler exposes the health endpoint.
package handler

import (
	"context"
	"net/http"

	"alumni-network/backend/internal/platform/httpjson"
)

// Pinger checks database connectivity.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker verifies the access policy engine evaluates.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler serves GET /healthz.
type Handler struct {
	db     Pinger
	policy PolicyChecker
}

// NewHandler constructs the health handler. Either dependency may be nil.
func NewHandler(db Pinger, policy PolicyChecker) *Handler {
	return &Handler{db: db, policy: policy}
}

// Check reports overall health: 200 when all checks pass, 503 otherwise.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}
	if h.policy != nil {
		if err := h.policy.HealthCheck(r.Context()); err != nil {
			checks["policy"] = err.Error()
			healthy = false
		} else {
			checks["policy"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	httpjson.Write(w, status, map[string]any{"healthy": healthy, "checks": checks})
}
