// Package rbac resolves caller roles for admin-only operations.
package rbac

import (
	"context"
	"errors"
	"strings"

	"alumni-network/backend/internal/server/middleware"
	sessionsvc "alumni-network/backend/internal/session/service"
)

var (
	// ErrUnauthenticated means no verified principal is on the context.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is authenticated but not an admin.
	ErrForbidden = errors.New("admin required")
)

// RoleGetter returns a member's role by uid. Used by RequireAdmin to resolve
// the caller role; returns "" when no profile exists.
type RoleGetter interface {
	RoleByUID(ctx context.Context, uid string) (string, error)
}

// RequireAdmin ensures the caller is authenticated and is an admin: either the
// configured admin email or a profile with role "admin". Returns the principal
// on success.
func RequireAdmin(ctx context.Context, roles RoleGetter, adminEmail string) (*sessionsvc.Principal, error) {
	principal := middleware.PrincipalFrom(ctx)
	if principal == nil || principal.UID == "" {
		return nil, ErrUnauthenticated
	}
	if adminEmail != "" && strings.EqualFold(principal.Email, adminEmail) {
		return principal, nil
	}
	role, err := roles.RoleByUID(ctx, principal.UID)
	if err != nil {
		return nil, err
	}
	if role != "admin" {
		return nil, ErrForbidden
	}
	return principal, nil
}
