// Package domain defines the feed post data model.
package domain

import "time"

// Post is a feed post.
type Post struct {
	ID          string
	AuthorID    string
	Title       string
	Description string
	CreatedAt   time.Time
	LikedBy     []string
}
