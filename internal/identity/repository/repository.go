// Package repository provides persistence for identity accounts.
package repository

import (
	"context"
	"errors"

	"alumni-network/backend/internal/identity/domain"
)

// ErrDuplicateEmail is returned by Create when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository stores login accounts. Lookups return (nil, nil) when no
// account matches.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByUID(ctx context.Context, uid string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}
