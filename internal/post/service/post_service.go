// Package service implements feed posts with batched new-post notifications.
package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alumni-network/backend/internal/notification"
	"alumni-network/backend/internal/post/domain"
	"alumni-network/backend/internal/post/repository"
)

var (
	// ErrInvalidInput covers empty or oversized post fields.
	ErrInvalidInput = errors.New("invalid post fields")
	// ErrNotFound means no post has the id.
	ErrNotFound = errors.New("post not found")
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 5000
	notifyBatchSize      = 100
	notifyTimeout        = 30 * time.Second
)

// SubscriberLister returns the emails of members to notify about a new post.
type SubscriberLister interface {
	SubscriberEmails(ctx context.Context, excludeUID string) ([]string, error)
}

// Service manages feed posts.
type Service struct {
	posts       repository.PostRepository
	subscribers SubscriberLister
	sender      notification.Sender
	appURL      string
}

// NewService constructs the post service.
func NewService(posts repository.PostRepository, subscribers SubscriberLister, sender notification.Sender, appURL string) *Service {
	return &Service{
		posts:       posts,
		subscribers: subscribers,
		sender:      sender,
		appURL:      strings.TrimRight(appURL, "/"),
	}
}

// Create stores a new post and notifies subscribed members in the background.
// Notification failures never fail the post.
func (s *Service) Create(ctx context.Context, authorID, title, description string) (*domain.Post, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || len(title) > maxTitleLength || len(description) > maxDescriptionLength {
		return nil, ErrInvalidInput
	}

	post := &domain.Post{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		LikedBy:     []string{},
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	go s.notifySubscribers(post)
	return post, nil
}

// notifySubscribers emails opted-in members in batches. Runs detached from
// the request.
func (s *Service) notifySubscribers(post *domain.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	emails, err := s.subscribers.SubscriberEmails(ctx, post.AuthorID)
	if err != nil {
		log.Printf("post: list subscribers for %s failed: %v", post.ID, err)
		return
	}
	if len(emails) == 0 {
		return
	}

	body := fmt.Sprintf(
		`<p>A new post was shared on the alumni network: <strong>%s</strong></p><p><a href="%s/feed">Read it on the feed</a></p>`,
		html.EscapeString(post.Title), s.appURL,
	)
	msgs := make([]notification.Message, 0, len(emails))
	for _, email := range emails {
		msgs = append(msgs, notification.Message{
			To:      email,
			Subject: "New post: " + post.Title,
			HTML:    body,
		})
	}

	for start := 0; start < len(msgs); start += notifyBatchSize {
		end := start + notifyBatchSize
		if end > len(msgs) {
			end = len(msgs)
		}
		if err := s.sender.SendBatch(ctx, msgs[start:end]); err != nil {
			log.Printf("post: notify batch for %s failed: %v", post.ID, err)
		}
	}
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// Like records uid's like on the post.
func (s *Service) Like(ctx context.Context, postID, uid string) error {
	err := s.posts.Like(ctx, postID, uid)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// Unlike removes uid's like from the post.
func (s *Service) Unlike(ctx context.Context, postID, uid string) error {
	return s.posts.Unlike(ctx, postID, uid)
}
