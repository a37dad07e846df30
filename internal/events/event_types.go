package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated  EventType = "user_created"
	EventUserDeleted  EventType = "user_deleted"
	EventUserRestored EventType = "user_restored"
)

// Event represents a user lifecycle event emitted by services.
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	UserUUID   string         `json:"user_uuid"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}
