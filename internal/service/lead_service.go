package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/events"
	"github.com/patientfirst/crm-backend/internal/repository"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

// ManualDecision is the coarse-grained directive a reviewer can submit
// instead of a raw status id.
type ManualDecision string

const (
	DecisionNone     ManualDecision = ""
	DecisionApproved ManualDecision = "approved"
	DecisionRejected ManualDecision = "rejected"
)

// LeadInput carries the caller-supplied lead fields for intake and
// update. There is deliberately no assignee field: reassignment is a
// disabled capability, and any assigned_to in a payload is dropped
// before it reaches the engine.
type LeadInput struct {
	FirstName     string
	LastName      string
	MiddleInitial *string
	DateOfBirth   string
	Phone         string
	Email         string
	Address       string
	StateOfBirth  string
	SSN           string

	Height            *string
	Weight            *string
	InsuranceProvider *string
	PolicyNumber      *string
	MedicalNotes      *string
	DoctorName        *string
	DoctorPhone       *string
	DoctorAddress     *string

	BeneficiaryDetails string
	PlanDetails        string
	QuoteType          *string

	HealthAnswers  map[string]bool
	HealthComments *string

	BankName        string
	AccountName     string
	AccountNumber   string
	RoutingNumber   string
	AccountType     string
	BankingComments *string
	InitialDraft    *string
	FutureDraft     *string

	StatusID       *int64
	ManualDecision ManualDecision
}

// ListQuery carries caller-supplied listing filters.
type ListQuery struct {
	StatusID  *int64
	Search    string
	TeamID    *int64
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// LeadService runs the lead lifecycle: intake, role-scoped reads, the
// status state machine, and the audit trail around it.
type LeadService struct {
	leads      repository.LeadRepository
	catalog    *domain.StatusCatalog
	scope      *LeadScope
	audit      *AuditService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLeadService constructs the service.
func NewLeadService(leads repository.LeadRepository, catalog *domain.StatusCatalog, scope *LeadScope, audit *AuditService, dispatcher events.Dispatcher, logger *zap.Logger) *LeadService {
	return &LeadService{
		leads:      leads,
		catalog:    catalog,
		scope:      scope,
		audit:      audit,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateLead performs intake. The starting status defaults to New but
// an explicit catalog id from the caller wins; the creator and their
// team are stamped from the authenticated identity.
func (s *LeadService) CreateLead(ctx context.Context, actor *domain.User, input LeadInput) (*domain.Lead, error) {
	statusID, err := s.initialStatus(input.StatusID)
	if err != nil {
		return nil, err
	}

	lead := &domain.Lead{StatusID: statusID}
	applyInput(lead, input)

	if actor != nil {
		lead.CreatedBy = &actor.ID
		lead.TeamID = actor.TeamID
	}

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventLeadCreated, actorID(actor), events.LeadCreatedPayload{
		LeadID:    lead.ID,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
	})
	return lead, nil
}

// ListLeads returns the role-scoped, filtered, paginated listing.
func (s *LeadService) ListLeads(ctx context.Context, actor *domain.User, query ListQuery) ([]domain.Lead, int64, error) {
	preds, err := s.scope.Predicates(actor)
	if err != nil {
		return nil, 0, err
	}

	// License agents are pinned to their hand-off stage; a caller
	// status filter cannot widen or shift it.
	statusFilterAllowed := actor == nil || actor.Role != domain.RoleLicenseAgent
	if query.StatusID != nil && statusFilterAllowed {
		preds = append(preds, repository.ColumnEq(repository.OriginUserFilter, "status", *query.StatusID))
	}
	if query.Search != "" {
		preds = append(preds, repository.SearchTerm(repository.OriginUserFilter, query.Search,
			"first_name", "last_name", "email", "phone"))
	}
	if query.TeamID != nil {
		preds = append(preds, repository.ColumnEq(repository.OriginUserFilter, "team_id", *query.TeamID))
	}
	if query.StartDate != "" {
		preds = append(preds, repository.DateOnOrAfter(repository.OriginUserFilter, "created_at", query.StartDate))
	}
	if query.EndDate != "" {
		preds = append(preds, repository.DateOnOrBefore(repository.OriginUserFilter, "created_at", query.EndDate))
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 25
	}

	filter := repository.LeadFilter{
		Predicates: preds,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	}
	return s.leads.List(ctx, filter)
}

// GetLead fetches one lead, applying the identical visibility rule the
// listing uses. An existing but out-of-scope lead is forbidden, not
// hidden.
func (s *LeadService) GetLead(ctx context.Context, actor *domain.User, id int64) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead")
		}
		return nil, err
	}

	visible, err := s.scope.Visible(actor, lead)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewForbidden("Access denied: lead is outside your visibility scope")
	}
	return lead, nil
}

// UpdateLead validates and applies a transition plus field edits. The
// audit row is written after the primary update and its failure never
// fails the request.
func (s *LeadService) UpdateLead(ctx context.Context, actor *domain.User, id int64, input LeadInput) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead")
		}
		return nil, err
	}

	visible, err := s.scope.Visible(actor, lead)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewForbidden("Access denied: lead is outside your visibility scope")
	}

	// Agents may edit only their own leads, and only while the lead is
	// still at New. Creator ownership is already guaranteed by the
	// visibility rule above.
	if actor != nil && actor.Role == domain.RoleAgent {
		name, ok := s.catalog.NameByID(lead.StatusID)
		if !ok || name != domain.StatusNew {
			return nil, apperrors.NewForbidden(`Access denied: Agents can only edit leads with "New" status`)
		}
	}

	oldStatusID := lead.StatusID
	newStatusID, err := s.resolveStatus(actor, lead, input)
	if err != nil {
		return nil, err
	}

	applyInput(lead, input)
	lead.StatusID = newStatusID

	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, err
	}

	if newStatusID != oldStatusID {
		// The legacy flow attributed anonymous mutations to the bootstrap
		// account; kept so the audit row never loses its actor.
		auditActor := actorID(actor)
		if auditActor == 0 {
			auditActor = 1
		}
		old := oldStatusID
		s.audit.RecordStatusChange(ctx, lead.ID, auditActor, &old, newStatusID)

		s.publish(ctx, events.EventLeadStatusChanged, actorID(actor), events.LeadStatusChangedPayload{
			LeadID:    lead.ID,
			FirstName: lead.FirstName,
			LastName:  lead.LastName,
			OldStatus: s.statusLabel(oldStatusID),
			NewStatus: s.statusLabel(newStatusID),
		})
	}

	return lead, nil
}

// DeleteLead removes a lead; history rows cascade with it.
func (s *LeadService) DeleteLead(ctx context.Context, actor *domain.User, id int64) error {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("lead")
		}
		return err
	}

	visible, err := s.scope.Visible(actor, lead)
	if err != nil {
		return err
	}
	if !visible {
		return apperrors.NewForbidden("Access denied: lead is outside your visibility scope")
	}

	return s.leads.Delete(ctx, lead.ID)
}

// StatusHistory returns the audit trail for a lead, newest first.
func (s *LeadService) StatusHistory(ctx context.Context, leadID int64) ([]domain.StatusChangeRecord, error) {
	return s.audit.StatusHistory(ctx, leadID)
}

// DashboardSummary returns lead counts keyed by stage name.
func (s *LeadService) DashboardSummary(ctx context.Context) (map[string]int64, error) {
	counts, err := s.leads.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]int64, len(counts))
	for statusID, n := range counts {
		summary[s.statusLabel(statusID)] = n
	}
	return summary, nil
}

// initialStatus resolves the intake status: New unless the caller
// supplied a valid catalog id.
func (s *LeadService) initialStatus(requested *int64) (int64, error) {
	if requested == nil {
		id, err := s.catalog.IDByName(domain.StatusNew)
		if err != nil {
			return 0, apperrors.NewInternalError(err)
		}
		return id, nil
	}
	if !s.catalog.Contains(*requested) {
		return 0, apperrors.NewInvalidStatus(*requested)
	}
	return *requested, nil
}

// resolveStatus maps the update payload to the target status. A manual
// decision wins over a raw status id; both resolve through the catalog
// by name, never by literal number.
func (s *LeadService) resolveStatus(actor *domain.User, lead *domain.Lead, input LeadInput) (int64, error) {
	switch input.ManualDecision {
	case DecisionApproved:
		// QA review approval hands the lead to license agents; any
		// other approver settles it as Approved.
		if actor != nil && actor.Role == domain.RoleQAReviewer {
			return s.statusID(domain.StatusLicenseAgent)
		}
		return s.statusID(domain.StatusApproved)
	case DecisionRejected:
		// Two distinct terminal rejection stages: QA rejection stays
		// separate from the final rejection used by everyone else.
		if actor != nil && actor.Role == domain.RoleQAReviewer {
			return s.statusID(domain.StatusRejected)
		}
		return s.statusID(domain.StatusFinalRejected)
	case DecisionNone:
	default:
		return 0, apperrors.NewValidationError("lead_manual_status must be \"approved\" or \"rejected\"", nil)
	}

	if input.StatusID == nil {
		return lead.StatusID, nil
	}
	if !s.catalog.Contains(*input.StatusID) {
		return 0, apperrors.NewInvalidStatus(*input.StatusID)
	}
	return *input.StatusID, nil
}

func (s *LeadService) statusID(name domain.StatusName) (int64, error) {
	id, err := s.catalog.IDByName(name)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return id, nil
}

// statusLabel resolves a stage name for logs and events, falling back
// to the raw id when the catalog row is gone.
func (s *LeadService) statusLabel(statusID int64) string {
	if name, ok := s.catalog.NameByID(statusID); ok {
		return string(name)
	}
	return strconv.FormatInt(statusID, 10)
}

func (s *LeadService) publish(ctx context.Context, eventType events.EventType, userID int64, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func actorID(actor *domain.User) int64 {
	if actor == nil {
		return 0
	}
	return actor.ID
}

// applyInput copies caller-editable fields onto the lead. StatusID and
// assignment are handled by the engine, and created_by never changes
// after intake.
func applyInput(lead *domain.Lead, input LeadInput) {
	lead.FirstName = input.FirstName
	lead.LastName = input.LastName
	lead.MiddleInitial = input.MiddleInitial
	lead.DateOfBirth = input.DateOfBirth
	lead.Phone = input.Phone
	lead.Email = input.Email
	lead.Address = input.Address
	lead.StateOfBirth = input.StateOfBirth
	lead.SSN = input.SSN
	lead.Height = input.Height
	lead.Weight = input.Weight
	lead.InsuranceProvider = input.InsuranceProvider
	lead.PolicyNumber = input.PolicyNumber
	lead.MedicalNotes = input.MedicalNotes
	lead.DoctorName = input.DoctorName
	lead.DoctorPhone = input.DoctorPhone
	lead.DoctorAddress = input.DoctorAddress
	lead.BeneficiaryDetails = input.BeneficiaryDetails
	lead.PlanDetails = input.PlanDetails
	lead.QuoteType = input.QuoteType
	lead.HealthComments = input.HealthComments
	lead.BankName = input.BankName
	lead.AccountName = input.AccountName
	lead.AccountNumber = input.AccountNumber
	lead.RoutingNumber = input.RoutingNumber
	lead.AccountType = input.AccountType
	lead.BankingComments = input.BankingComments
	lead.InitialDraft = input.InitialDraft
	lead.FutureDraft = input.FutureDraft

	answers := make(map[string]bool, len(domain.HealthQuestionColumns))
	for _, col := range domain.HealthQuestionColumns {
		answers[col] = input.HealthAnswers[col]
	}
	lead.HealthAnswers = answers
}
