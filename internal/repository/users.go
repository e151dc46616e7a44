package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// UserRepository defines persistence access for identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdateAssignedIP(ctx context.Context, id int64, assignedIP *string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userSelect = `
    SELECT u.id, u.name, u.username, u.email, u.password, u.status,
           u.role_id, COALESCE(TRIM(r.role), ''), u.assigned_ip, u.team_id,
           u.created_at, u.updated_at
    FROM users u
    LEFT JOIN roles r ON u.role_id = r.id`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, username, email, password, status, role_id, assigned_ip, team_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Status,
		user.RoleID,
		user.AssignedIP,
		user.TeamID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, username=$2, email=$3, password=$4, status=$5,
            role_id=$6, assigned_ip=$7, team_id=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Status,
		user.RoleID,
		user.AssignedIP,
		user.TeamID,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateAssignedIP(ctx context.Context, id int64, assignedIP *string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE users SET assigned_ip=$1, updated_at=NOW() WHERE id=$2`, assignedIP, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, userSelect+` WHERE u.id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, userSelect+` WHERE u.username=$1`, username)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	var status string
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&status,
		&user.RoleID,
		&user.Role,
		&user.AssignedIP,
		&user.TeamID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Status = domain.UserStatus(strings.TrimSpace(status))
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, userSelect+` ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		var status string
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&status,
			&user.RoleID,
			&user.Role,
			&user.AssignedIP,
			&user.TeamID,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		user.Status = domain.UserStatus(strings.TrimSpace(status))
		result = append(result, user)
	}
	return result, rows.Err()
}
