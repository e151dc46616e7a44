package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// CommentRepository stores lead comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByLead(ctx context.Context, leadID int64) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository builds repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO leads_comments (lead_id, user_id, comment)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		comment.LeadID,
		comment.UserID,
		comment.Comment,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByLead(ctx context.Context, leadID int64) ([]domain.Comment, error) {
	const query = `
        SELECT c.id, c.lead_id, c.user_id, COALESCE(u.name, ''), c.comment, c.created_at
        FROM leads_comments c
        LEFT JOIN users u ON c.user_id = u.id
        WHERE c.lead_id = $1
        ORDER BY c.created_at DESC`

	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.LeadID, &c.UserID, &c.UserName, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
