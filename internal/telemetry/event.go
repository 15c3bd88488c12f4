// Package telemetry defines the application telemetry event and emitter
// contract. Events flow to OTel logs and optionally to Kafka for the worker.
package telemetry

import "time"

// Event is a single telemetry event. Metadata is free-form JSON.
type Event struct {
	UserID    string    `json:"userId,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	EventType string    `json:"eventType"`
	Source    string    `json:"source"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
