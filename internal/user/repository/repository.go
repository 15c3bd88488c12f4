// Package repository provides persistence for member profiles.
package repository

import (
	"context"

	"alumni-network/backend/internal/user/domain"
)

// ProfileRepository stores member profiles. Lookups return (nil, nil) when no
// profile matches.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUID(ctx context.Context, uid string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	// List returns all profiles ordered by last name then first name.
	List(ctx context.Context) ([]*domain.Profile, error)
	// ListSubscriberEmails returns the emails of members who opted in to
	// email notifications, excluding excludeUID.
	ListSubscriberEmails(ctx context.Context, excludeUID string) ([]string, error)
}
