package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded EventType = "login_succeeded"
	EventLoginFailed    EventType = "login_failed"
	EventLoginThrottled EventType = "login_throttled"
	EventCitizenAdded   EventType = "citizen_added"
	EventCitizenDeleted EventType = "citizen_deleted"
)

// Actor identifies who triggered an event. Anonymous login attempts only carry the
// submitted username.
type Actor struct {
	UserID   int64  `json:"user_id,omitempty"`
	RoleID   int64  `json:"role_id,omitempty"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// CitizenPayload names the citizen an event is about.
type CitizenPayload struct {
	NationalID string `json:"national_id"`
}
