package domain

import "time"

// Comment is a note left on a lead by an operator.
type Comment struct {
	ID        int64
	LeadID    int64
	UserID    int64
	UserName  string
	Comment   string
	CreatedAt time.Time
}
