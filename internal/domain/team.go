package domain

import "time"

// Team groups agents for reporting. Leads inherit the creator's team.
type Team struct {
	ID        int64
	TeamName  string
	Status    string
	CreatedAt time.Time
}
