package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// LeadTrackingRepository stores the append-only audit trail.
type LeadTrackingRepository interface {
	CreateStatusChange(ctx context.Context, rec *domain.StatusChangeRecord) error
	CreateAssignmentChange(ctx context.Context, rec *domain.AssignmentChangeRecord) error
	ListStatusHistory(ctx context.Context, leadID int64) ([]domain.StatusChangeRecord, error)
}

type leadTrackingRepository struct {
	pool *pgxpool.Pool
}

// NewLeadTrackingRepository builds repository.
func NewLeadTrackingRepository(pool *pgxpool.Pool) LeadTrackingRepository {
	return &leadTrackingRepository{pool: pool}
}

func (r *leadTrackingRepository) CreateStatusChange(ctx context.Context, rec *domain.StatusChangeRecord) error {
	const query = `
        INSERT INTO leads_status_tracking (lead_id, user_id, old_status, new_status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, changed_at`
	return r.pool.QueryRow(ctx, query,
		rec.LeadID,
		rec.UserID,
		rec.OldStatus,
		rec.NewStatus,
	).Scan(&rec.ID, &rec.ChangedAt)
}

func (r *leadTrackingRepository) CreateAssignmentChange(ctx context.Context, rec *domain.AssignmentChangeRecord) error {
	const query = `
        INSERT INTO leads_assigned_tracking (lead_id, assigned_by_user_id, assigned_to_user_id, old_assigned_to)
        VALUES ($1,$2,$3,$4)
        RETURNING id, assigned_at`
	return r.pool.QueryRow(ctx, query,
		rec.LeadID,
		rec.AssignedBy,
		rec.AssignedTo,
		rec.OldAssignedTo,
	).Scan(&rec.ID, &rec.AssignedAt)
}

// ListStatusHistory returns the trail newest first. Both status names
// come from left joins: a record whose stage row was deleted still
// appears, with a nil name.
func (r *leadTrackingRepository) ListStatusHistory(ctx context.Context, leadID int64) ([]domain.StatusChangeRecord, error) {
	const query = `
        SELECT t.id, t.lead_id, t.user_id, t.old_status, t.new_status,
               old_s.status_name, new_s.status_name, t.changed_at
        FROM leads_status_tracking t
        LEFT JOIN leads_statuses old_s ON t.old_status = old_s.id
        LEFT JOIN leads_statuses new_s ON t.new_status = new_s.id
        WHERE t.lead_id = $1
        ORDER BY t.changed_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusChangeRecord
	for rows.Next() {
		var rec domain.StatusChangeRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.LeadID,
			&rec.UserID,
			&rec.OldStatus,
			&rec.NewStatus,
			&rec.OldStatusName,
			&rec.NewStatusName,
			&rec.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
