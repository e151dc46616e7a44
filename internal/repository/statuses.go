package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// StatusRepository reads the workflow stage catalog.
type StatusRepository interface {
	ListAll(ctx context.Context) ([]domain.Status, error)
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository builds repository.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) ListAll(ctx context.Context) ([]domain.Status, error) {
	const query = `
        SELECT id, status_name, COALESCE(description, ''), COALESCE(sort_order, 0)
        FROM leads_statuses ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var s domain.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.SortOrder); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
