package resend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"alumni-network/backend/internal/notification"
)

func TestSend(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "test-key", "noreply@example.com")
	err := c.Send(context.Background(), notification.Message{
		To:      "alice@example.com",
		Subject: "Welcome",
		HTML:    "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotPath != "/emails" {
		t.Errorf("path = %q, want %q", gotPath, "/emails")
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}

	var payload struct {
		From    string   `json:"from"`
		To      []string `json:"to"`
		Subject string   `json:"subject"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if payload.From != "noreply@example.com" {
		t.Errorf("from = %q, want %q", payload.From, "noreply@example.com")
	}
	if len(payload.To) != 1 || payload.To[0] != "alice@example.com" {
		t.Errorf("to = %v, want [alice@example.com]", payload.To)
	}
}

func TestSendBatch(t *testing.T) {
	var gotPath string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL, "test-key", "noreply@example.com")
	msgs := []notification.Message{
		{To: "a@example.com", Subject: "s1", HTML: "<p>1</p>"},
		{To: "b@example.com", Subject: "s2", HTML: "<p>2</p>"},
	}
	if err := c.SendBatch(context.Background(), msgs); err != nil {
		t.Fatalf("SendBatch() error = %v", err)
	}

	if gotPath != "/emails/batch" {
		t.Errorf("path = %q, want %q", gotPath, "/emails/batch")
	}
	var payload []map[string]any
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if len(payload) != 2 {
		t.Errorf("batch size = %d, want 2", len(payload))
	}
}

func TestSendBatch_Empty(t *testing.T) {
	c := New("http://127.0.0.1:1", "test-key", "noreply@example.com")
	if err := c.SendBatch(context.Background(), nil); err != nil {
		t.Errorf("SendBatch(nil) error = %v, want nil", err)
	}
}

func TestSend_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	c := New(server.URL, "test-key", "noreply@example.com")
	err := c.Send(context.Background(), notification.Message{To: "a@example.com"})
	if err == nil {
		t.Error("Send() with 422 response returned nil, want error")
	}
}
