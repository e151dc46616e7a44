package domain

import "time"

// ActivityType classifies entries in the user activity log.
type ActivityType string

const (
	ActivityLeadCreated       ActivityType = "lead_created"
	ActivityLeadStatusChanged ActivityType = "lead_status_changed"
	ActivityLoginSucceeded    ActivityType = "login_succeeded"
	ActivityLoginFailed       ActivityType = "login_failed"
)

// Activity is a read-only log row describing something a user did.
// Rows are produced by the activity worker from domain events.
type Activity struct {
	ID          int64
	UserID      int64
	Type        ActivityType
	Description string
	EntityType  *string
	EntityID    *int64
	IPAddress   *string
	CreatedAt   time.Time
}
