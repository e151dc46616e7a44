package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// RoleRepository reads the fixed role catalog.
type RoleRepository interface {
	ListAll(ctx context.Context) ([]domain.RoleRecord, error)
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository builds repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

func (r *roleRepository) ListAll(ctx context.Context) ([]domain.RoleRecord, error) {
	const query = `
        SELECT id, TRIM(role), COALESCE(description, ''), COALESCE(TRIM(status), '')
        FROM roles ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RoleRecord
	for rows.Next() {
		var rec domain.RoleRecord
		if err := rows.Scan(&rec.ID, &rec.Role, &rec.Description, &rec.Status); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
