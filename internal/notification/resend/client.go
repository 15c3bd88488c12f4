// Package resend implements notification.Sender against the Resend email API.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"alumni-network/backend/internal/notification"
)

const defaultTimeout = 15 * time.Second

// Client sends email through the Resend HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	client  *http.Client
}

// New returns a Resend client. baseURL is normally "https://api.resend.com";
// from is the sender address for all messages.
func New(baseURL, apiKey, from string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

type emailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers a single email via POST /emails.
func (c *Client) Send(ctx context.Context, msg notification.Message) error {
	payload := emailPayload{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	return c.post(ctx, "/emails", payload)
}

// SendBatch delivers up to 100 emails in one call via POST /emails/batch.
func (c *Client) SendBatch(ctx context.Context, msgs []notification.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	payload := make([]emailPayload, 0, len(msgs))
	for _, msg := range msgs {
		payload = append(payload, emailPayload{
			From:    c.from,
			To:      []string{msg.To},
			Subject: msg.Subject,
			HTML:    msg.HTML,
		})
	}
	return c.post(ctx, "/emails/batch", payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("resend: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}
	return nil
}
