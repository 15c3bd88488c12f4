// Package notification sends transactional email to members: invitation links
// and new-post notifications.
package notification

import "context"

// Message is a single email to send.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers email. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	// SendBatch delivers many messages in one provider call where supported.
	SendBatch(ctx context.Context, msgs []Message) error
}
