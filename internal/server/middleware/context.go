// Package middleware provides the HTTP middleware chain: coarse access guard,
// strict session verification, and request telemetry.
package middleware

import (
	"context"

	sessionsvc "alumni-network/backend/internal/session/service"
)

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the verified session principal.
func WithPrincipal(ctx context.Context, p *sessionsvc.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom returns the verified principal, or nil if the request did not
// pass strict session verification.
func PrincipalFrom(ctx context.Context) *sessionsvc.Principal {
	p, _ := ctx.Value(principalKey).(*sessionsvc.Principal)
	return p
}
