package domain

import "fmt"

// StatusName identifies a workflow stage by name. All engine logic
// resolves stages through the catalog; numeric ids exist only as
// database identity and are never compared literally.
type StatusName string

const (
	StatusNew             StatusName = "New"
	StatusQAReview        StatusName = "QA Review"
	StatusQAManagerReview StatusName = "QA Manager Review"
	StatusApproved        StatusName = "Approved"
	StatusPending         StatusName = "Pending"
	StatusRejected        StatusName = "Rejected"
	StatusFinalRejected   StatusName = "Final Rejected"
	StatusLicenseAgent    StatusName = "License Agent"
)

// Terminal reports whether leads in this stage leave the review flow.
// Rejected (QA) and Final Rejected are kept as distinct terminal states.
func (s StatusName) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusFinalRejected:
		return true
	}
	return false
}

// Status is a row of the leads_statuses table.
type Status struct {
	ID          int64
	Name        StatusName
	Description string
	SortOrder   int
}

// StatusCatalog is the immutable name<->id mapping loaded once at
// startup. The table is configuration data; ids may differ between
// deployments, so lookups always go through the catalog.
type StatusCatalog struct {
	byName map[StatusName]Status
	byID   map[int64]Status
	all    []Status
}

// NewStatusCatalog builds a catalog from loaded rows.
func NewStatusCatalog(statuses []Status) *StatusCatalog {
	c := &StatusCatalog{
		byName: make(map[StatusName]Status, len(statuses)),
		byID:   make(map[int64]Status, len(statuses)),
		all:    statuses,
	}
	for _, s := range statuses {
		c.byName[s.Name] = s
		c.byID[s.ID] = s
	}
	return c
}

// IDByName resolves a stage name to its catalog id.
func (c *StatusCatalog) IDByName(name StatusName) (int64, error) {
	s, ok := c.byName[name]
	if !ok {
		return 0, fmt.Errorf("status %q not in catalog", name)
	}
	return s.ID, nil
}

// NameByID resolves a catalog id to its stage name.
func (c *StatusCatalog) NameByID(id int64) (StatusName, bool) {
	s, ok := c.byID[id]
	return s.Name, ok
}

// Contains reports whether the id references a catalog entry.
func (c *StatusCatalog) Contains(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns the catalog in seed order.
func (c *StatusCatalog) All() []Status {
	return c.all
}
