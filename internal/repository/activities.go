package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// ActivityRepository stores the read-only user activity log.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository builds repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	const query = `
        INSERT INTO users_activities (user_id, activity_type, activity_description, entity_type, entity_id, ip_address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		activity.UserID,
		activity.Type,
		activity.Description,
		activity.EntityType,
		activity.EntityID,
		activity.IPAddress,
	).Scan(&activity.ID, &activity.CreatedAt)
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `
        SELECT id, user_id, activity_type, activity_description, entity_type, entity_id, ip_address, created_at
        FROM users_activities
        ORDER BY created_at DESC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &a.EntityType, &a.EntityID, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
