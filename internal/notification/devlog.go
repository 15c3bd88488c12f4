package notification

import (
	"context"
	"log"
)

// DevLogSender logs messages instead of delivering them. Used in development
// when no email provider is configured.
type DevLogSender struct{}

func (DevLogSender) Send(_ context.Context, msg Message) error {
	log.Printf("notification (dev): to=%s subject=%q", msg.To, msg.Subject)
	return nil
}

func (DevLogSender) SendBatch(_ context.Context, msgs []Message) error {
	for _, msg := range msgs {
		log.Printf("notification (dev): to=%s subject=%q", msg.To, msg.Subject)
	}
	return nil
}
