// Package repository provides persistence for invitations.
package repository

import (
	"context"
	"errors"
	"time"

	"alumni-network/backend/internal/invitation/domain"
)

var (
	// ErrNotFound is returned by MarkUsed when no invitation has the code.
	ErrNotFound = errors.New("invitation not found")
	// ErrAlreadyUsed is returned by MarkUsed when the invitation was already redeemed.
	ErrAlreadyUsed = errors.New("invitation already used")
)

// InvitationRepository stores invitations. Lookups return (nil, nil) when no
// invitation matches. MarkUsed must be atomic: of two concurrent calls for the
// same code, exactly one succeeds.
type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByCode(ctx context.Context, code string) (*domain.Invitation, error)
	// LatestOpenByEmail returns the most recently sent unused invitation for
	// the email, or (nil, nil) if none is open.
	LatestOpenByEmail(ctx context.Context, email string) (*domain.Invitation, error)
	// MarkUsed marks the invitation used at usedAt if and only if it is still
	// unused. Returns ErrNotFound or ErrAlreadyUsed otherwise.
	MarkUsed(ctx context.Context, code string, usedAt time.Time) error
}
