// Package repository provides persistence for feed posts.
package repository

import (
	"context"
	"errors"

	"alumni-network/backend/internal/post/domain"
)

// ErrNotFound is returned when no post has the id.
var ErrNotFound = errors.New("post not found")

// PostRepository stores feed posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	// List returns posts newest first, with their likes.
	List(ctx context.Context) ([]*domain.Post, error)
	// Like records that uid liked the post. Liking twice is a no-op.
	Like(ctx context.Context, postID, uid string) error
	// Unlike removes uid's like. Unliking a post that was not liked is a no-op.
	Unlike(ctx context.Context, postID, uid string) error
}
