package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// TeamRepository stores agent teams.
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	ListAll(ctx context.Context) ([]domain.Team, error)
}

type teamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository builds repository.
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *domain.Team) error {
	const query = `
        INSERT INTO teams (team_name, status)
        VALUES ($1,$2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, team.TeamName, team.Status).
		Scan(&team.ID, &team.CreatedAt)
}

func (r *teamRepository) ListAll(ctx context.Context) ([]domain.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, team_name, COALESCE(status, 'active'), created_at FROM teams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.TeamName, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
