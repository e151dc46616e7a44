package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientfirst/crm-backend/internal/domain"
)

// LeadFilter carries the scoped, AND-combined conditions for a listing
// plus pagination. Role-rule predicates and user-filter predicates sit
// in the same list; WhereClause combines them.
type LeadFilter struct {
	Predicates PredicateList
	Limit      int
	Offset     int
}

// LeadRepository encapsulates lead persistence.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, int64, error)
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[int64]int64, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

var leadHeadColumns = []string{
	"first_name", "last_name", "middle_initial", "date_of_birth", "phone",
	"email", "address", "state_of_birth", "ssn",
	"height", "weight", "insurance_provider", "policy_number", "medical_notes",
	"doctor_name", "doctor_phone", "doctor_address",
	"beneficiary_details", "plan_details", "quote_type",
}

var leadTailColumns = []string{
	"health_comments",
	"bank_name", "account_name", "account_number", "routing_number",
	"account_type", "banking_comments", "initial_draft", "future_draft",
	"status", "assigned_to", "created_by", "team_id",
}

func leadColumns() []string {
	cols := make([]string, 0, 1+len(leadHeadColumns)+len(domain.HealthQuestionColumns)+len(leadTailColumns)+2)
	cols = append(cols, "id")
	cols = append(cols, leadHeadColumns...)
	cols = append(cols, domain.HealthQuestionColumns...)
	cols = append(cols, leadTailColumns...)
	cols = append(cols, "created_at", "updated_at")
	return cols
}

var leadSelect = "SELECT " + strings.Join(leadColumns(), ", ") + " FROM leads"

// scanDest lays out scan targets in leadColumns order, with the health
// answers landing in the provided buffer.
func scanDest(l *domain.Lead, health []bool) []any {
	dest := []any{
		&l.ID,
		&l.FirstName, &l.LastName, &l.MiddleInitial, &l.DateOfBirth, &l.Phone,
		&l.Email, &l.Address, &l.StateOfBirth, &l.SSN,
		&l.Height, &l.Weight, &l.InsuranceProvider, &l.PolicyNumber, &l.MedicalNotes,
		&l.DoctorName, &l.DoctorPhone, &l.DoctorAddress,
		&l.BeneficiaryDetails, &l.PlanDetails, &l.QuoteType,
	}
	for i := range health {
		dest = append(dest, &health[i])
	}
	dest = append(dest,
		&l.HealthComments,
		&l.BankName, &l.AccountName, &l.AccountNumber, &l.RoutingNumber,
		&l.AccountType, &l.BankingComments, &l.InitialDraft, &l.FutureDraft,
		&l.StatusID, &l.AssignedTo, &l.CreatedBy, &l.TeamID,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return dest
}

func packHealth(l *domain.Lead, health []bool) {
	l.HealthAnswers = make(map[string]bool, len(domain.HealthQuestionColumns))
	for i, col := range domain.HealthQuestionColumns {
		l.HealthAnswers[col] = health[i]
	}
}

// writeValues lays out bind values in leadColumns order minus id and
// the timestamps.
func writeValues(l *domain.Lead) []any {
	values := []any{
		l.FirstName, l.LastName, l.MiddleInitial, l.DateOfBirth, l.Phone,
		l.Email, l.Address, l.StateOfBirth, l.SSN,
		l.Height, l.Weight, l.InsuranceProvider, l.PolicyNumber, l.MedicalNotes,
		l.DoctorName, l.DoctorPhone, l.DoctorAddress,
		l.BeneficiaryDetails, l.PlanDetails, l.QuoteType,
	}
	for _, col := range domain.HealthQuestionColumns {
		values = append(values, l.HealthAnswers[col])
	}
	values = append(values,
		l.HealthComments,
		l.BankName, l.AccountName, l.AccountNumber, l.RoutingNumber,
		l.AccountType, l.BankingComments, l.InitialDraft, l.FutureDraft,
		l.StatusID, l.AssignedTo, l.CreatedBy, l.TeamID,
	)
	return values
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	cols := leadColumns()
	cols = cols[1 : len(cols)-2] // drop id and timestamps

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO leads (%s) VALUES (%s) RETURNING id, created_at, updated_at",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	return r.pool.QueryRow(ctx, query, writeValues(lead)...).
		Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	cols := leadColumns()
	cols = cols[1 : len(cols)-2]

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s=$%d", col, i+1)
	}

	query := fmt.Sprintf("UPDATE leads SET %s, updated_at=NOW() WHERE id=$%d",
		strings.Join(sets, ", "), len(cols)+1)

	args := append(writeValues(lead), lead.ID)
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var lead domain.Lead
	health := make([]bool, len(domain.HealthQuestionColumns))
	if err := r.pool.QueryRow(ctx, leadSelect+" WHERE id=$1", id).
		Scan(scanDest(&lead, health)...); err != nil {
		return nil, err
	}
	packHealth(&lead, health)
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, int64, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 25
	}
	if limit > 500 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	countArgs := []any{}
	countQuery := "SELECT COUNT(*) FROM leads WHERE " + filter.Predicates.WhereClause(&countArgs)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := []any{}
	where := filter.Predicates.WhereClause(&args)
	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		leadSelect, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		health := make([]bool, len(domain.HealthQuestionColumns))
		if err := rows.Scan(scanDest(&lead, health)...); err != nil {
			return nil, 0, err
		}
		packHealth(&lead, health)
		result = append(result, lead)
	}
	return result, total, rows.Err()
}

func (r *leadRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM leads WHERE id=$1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) CountByStatus(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx, "SELECT status, COUNT(*) FROM leads GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var statusID, n int64
		if err := rows.Scan(&statusID, &n); err != nil {
			return nil, err
		}
		counts[statusID] = n
	}
	return counts, rows.Err()
}
