package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
)

// AuditService writes the append-only lead history. All writes are
// fire-and-forget relative to the primary mutation: a failed history
// insert is logged and swallowed, never rolled into the caller's error.
type AuditService struct {
	tracking repository.LeadTrackingRepository
	logger   *zap.Logger
}

// NewAuditService builds the service.
func NewAuditService(tracking repository.LeadTrackingRepository, logger *zap.Logger) *AuditService {
	return &AuditService{tracking: tracking, logger: logger}
}

// RecordStatusChange appends one status-change row.
func (s *AuditService) RecordStatusChange(ctx context.Context, leadID, actorID int64, oldStatus *int64, newStatus int64) {
	rec := &domain.StatusChangeRecord{
		LeadID:    leadID,
		UserID:    actorID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
	if err := s.tracking.CreateStatusChange(ctx, rec); err != nil {
		s.logger.Error("status change audit write failed",
			zap.Int64("lead_id", leadID),
			zap.Int64("actor_id", actorID),
			zap.Int64("new_status", newStatus),
			zap.Error(err))
	}
}

// RecordAssignment appends one reassignment row. The status engine does
// not currently reassign leads, but the writer stays available for the
// administrative tooling that still does.
func (s *AuditService) RecordAssignment(ctx context.Context, leadID, actorID, newAssignee int64, oldAssignee *int64) {
	rec := &domain.AssignmentChangeRecord{
		LeadID:        leadID,
		AssignedBy:    actorID,
		AssignedTo:    newAssignee,
		OldAssignedTo: oldAssignee,
	}
	if err := s.tracking.CreateAssignmentChange(ctx, rec); err != nil {
		s.logger.Error("assignment audit write failed",
			zap.Int64("lead_id", leadID),
			zap.Int64("actor_id", actorID),
			zap.Error(err))
	}
}

// StatusHistory returns the trail for a lead, newest first.
func (s *AuditService) StatusHistory(ctx context.Context, leadID int64) ([]domain.StatusChangeRecord, error) {
	return s.tracking.ListStatusHistory(ctx, leadID)
}
