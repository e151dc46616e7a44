package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	LeadID    int64  `json:"lead_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LeadStatusChangedPayload payload. The names are resolved best-effort;
// when resolution fails the raw ids are carried instead.
type LeadStatusChangedPayload struct {
	LeadID    int64  `json:"lead_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// LoginPayload payload for both login outcomes.
type LoginPayload struct {
	Username string `json:"username"`
	ClientIP string `json:"client_ip"`
	Reason   string `json:"reason,omitempty"`
}
