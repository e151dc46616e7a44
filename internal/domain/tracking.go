package domain

import "time"

// StatusChangeRecord is an append-only audit row written whenever a
// lead's status actually changes. Rows are never mutated or deleted
// except by cascade when the parent lead is removed.
type StatusChangeRecord struct {
	ID        int64
	LeadID    int64
	UserID    int64
	OldStatus *int64
	NewStatus int64
	ChangedAt time.Time

	// Resolved names, populated on read via left join. A record whose
	// status row was since deleted keeps a nil name rather than being
	// dropped from history.
	OldStatusName *StatusName
	NewStatusName *StatusName
}

// AssignmentChangeRecord is the append-only reassignment trail. The
// engine currently never reassigns leads (the capability is disabled),
// but existing rows remain readable and the writer stays available.
type AssignmentChangeRecord struct {
	ID            int64
	LeadID        int64
	AssignedBy    int64
	AssignedTo    int64
	OldAssignedTo *int64
	AssignedAt    time.Time
}
