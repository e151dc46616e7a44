package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/domain"
	apperrors "github.com/patientfirst/crm-backend/pkg/util"
)

type leadFixture struct {
	svc      *LeadService
	leads    *fakeLeadRepo
	tracking *fakeTrackingRepo
	catalog  *domain.StatusCatalog
}

func newLeadFixture(leads ...*domain.Lead) *leadFixture {
	catalog := testCatalog()
	leadRepo := newFakeLeadRepo(leads...)
	tracking := &fakeTrackingRepo{}
	logger := zap.NewNop()
	scope := NewLeadScope(catalog, legacyID)
	audit := NewAuditService(tracking, logger)
	return &leadFixture{
		svc:      NewLeadService(leadRepo, catalog, scope, audit, nil, logger),
		leads:    leadRepo,
		tracking: tracking,
		catalog:  catalog,
	}
}

func minimalInput() LeadInput {
	return LeadInput{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: "1960-04-01",
		Phone:       "555-0100",
	}
}

func TestCreateLeadDefaultsToNew(t *testing.T) {
	f := newLeadFixture()
	team := int64(3)
	actor := &domain.User{ID: 10, Role: domain.RoleAgent, TeamID: &team}

	lead, err := f.svc.CreateLead(context.Background(), actor, minimalInput())
	if err != nil {
		t.Fatalf("CreateLead: %v", err)
	}

	if lead.StatusID != mustStatusID(f.catalog, domain.StatusNew) {
		t.Errorf("StatusID = %d, want New", lead.StatusID)
	}
	if lead.CreatedBy == nil || *lead.CreatedBy != actor.ID {
		t.Errorf("CreatedBy = %v, want %d", lead.CreatedBy, actor.ID)
	}
	if lead.TeamID == nil || *lead.TeamID != team {
		t.Errorf("TeamID = %v, want %d", lead.TeamID, team)
	}
}

func TestCreateLeadRejectsUnknownStatus(t *testing.T) {
	f := newLeadFixture()
	input := minimalInput()
	bogus := int64(999)
	input.StatusID = &bogus

	_, err := f.svc.CreateLead(context.Background(), nil, input)
	if err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeInvalidStatus {
		t.Errorf("error = %v, want INVALID_STATUS", err)
	}
}

func TestAgentEditLock(t *testing.T) {
	catalog := testCatalog()
	creator := int64(10)
	newID := mustStatusID(catalog, domain.StatusNew)
	qaID := mustStatusID(catalog, domain.StatusQAReview)

	tests := []struct {
		name     string
		statusID int64
		wantErr  bool
	}{
		{"own lead at new is editable", newID, false},
		{"own lead past new is locked", qaID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLeadFixture(&domain.Lead{ID: 1, CreatedBy: &creator, StatusID: tt.statusID})
			actor := &domain.User{ID: creator, Role: domain.RoleAgent}

			_, err := f.svc.UpdateLead(context.Background(), actor, 1, minimalInput())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected edit to be forbidden")
				}
				var domainErr *apperrors.DomainError
				if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeForbidden {
					t.Errorf("error = %v, want FORBIDDEN", err)
				}
			} else if err != nil {
				t.Fatalf("UpdateLead: %v", err)
			}
		})
	}
}

func TestManualDecisionMapping(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		role     domain.Role
		decision ManualDecision
		want     domain.StatusName
	}{
		{"qa reviewer approval hands off", domain.RoleQAReviewer, DecisionApproved, domain.StatusLicenseAgent},
		{"manager approval settles", domain.RoleManager, DecisionApproved, domain.StatusApproved},
		{"qa reviewer rejection", domain.RoleQAReviewer, DecisionRejected, domain.StatusRejected},
		{"manager rejection is final", domain.RoleManager, DecisionRejected, domain.StatusFinalRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startID := mustStatusID(catalog, domain.StatusQAReview)
			f := newLeadFixture(&domain.Lead{ID: 1, StatusID: startID})
			actor := &domain.User{ID: 2, Role: tt.role}

			input := minimalInput()
			input.ManualDecision = tt.decision

			lead, err := f.svc.UpdateLead(context.Background(), actor, 1, input)
			if err != nil {
				t.Fatalf("UpdateLead: %v", err)
			}
			if want := mustStatusID(f.catalog, tt.want); lead.StatusID != want {
				t.Errorf("StatusID = %d, want %q (%d)", lead.StatusID, tt.want, want)
			}
		})
	}
}

func TestManualDecisionInvalidValue(t *testing.T) {
	f := newLeadFixture(&domain.Lead{ID: 1, StatusID: mustStatusID(testCatalog(), domain.StatusNew)})
	input := minimalInput()
	input.ManualDecision = ManualDecision("maybe")

	_, err := f.svc.UpdateLead(context.Background(), &domain.User{ID: 2, Role: domain.RoleManager}, 1, input)
	if err == nil {
		t.Fatal("expected invalid manual decision to be rejected")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeValidationFailed {
		t.Errorf("error = %v, want VALIDATION_FAILED", err)
	}
}

func TestUpdateWritesAuditOnlyOnChange(t *testing.T) {
	catalog := testCatalog()
	newID := mustStatusID(catalog, domain.StatusNew)
	qaID := mustStatusID(catalog, domain.StatusQAReview)

	f := newLeadFixture(&domain.Lead{ID: 1, StatusID: newID})
	actor := &domain.User{ID: 2, Role: domain.RoleManager}

	// Same status, no audit row.
	input := minimalInput()
	if _, err := f.svc.UpdateLead(context.Background(), actor, 1, input); err != nil {
		t.Fatalf("UpdateLead: %v", err)
	}
	if len(f.tracking.statusChanges) != 0 {
		t.Fatalf("expected no audit rows, got %d", len(f.tracking.statusChanges))
	}

	// Real transition, one audit row with old and new values.
	input.StatusID = &qaID
	if _, err := f.svc.UpdateLead(context.Background(), actor, 1, input); err != nil {
		t.Fatalf("UpdateLead: %v", err)
	}
	if len(f.tracking.statusChanges) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(f.tracking.statusChanges))
	}
	rec := f.tracking.statusChanges[0]
	if rec.OldStatus == nil || *rec.OldStatus != newID || rec.NewStatus != qaID {
		t.Errorf("audit row = %+v", rec)
	}
	if rec.UserID != actor.ID {
		t.Errorf("audit actor = %d, want %d", rec.UserID, actor.ID)
	}
}

func TestUpdateSucceedsWhenAuditWriteFails(t *testing.T) {
	catalog := testCatalog()
	newID := mustStatusID(catalog, domain.StatusNew)
	qaID := mustStatusID(catalog, domain.StatusQAReview)

	f := newLeadFixture(&domain.Lead{ID: 1, StatusID: newID})
	f.tracking.failWrites = errors.New("tracking table unavailable")

	input := minimalInput()
	input.StatusID = &qaID

	lead, err := f.svc.UpdateLead(context.Background(), &domain.User{ID: 2, Role: domain.RoleManager}, 1, input)
	if err != nil {
		t.Fatalf("expected primary update to survive audit failure, got %v", err)
	}
	if lead.StatusID != qaID {
		t.Errorf("StatusID = %d, want %d", lead.StatusID, qaID)
	}
}

func TestAnonymousStatusChangeFallsBackToBootstrapActor(t *testing.T) {
	catalog := testCatalog()
	newID := mustStatusID(catalog, domain.StatusNew)
	qaID := mustStatusID(catalog, domain.StatusQAReview)

	f := newLeadFixture(&domain.Lead{ID: 1, StatusID: newID})

	input := minimalInput()
	input.StatusID = &qaID
	if _, err := f.svc.UpdateLead(context.Background(), nil, 1, input); err != nil {
		t.Fatalf("UpdateLead: %v", err)
	}
	if len(f.tracking.statusChanges) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(f.tracking.statusChanges))
	}
	if got := f.tracking.statusChanges[0].UserID; got != 1 {
		t.Errorf("audit actor = %d, want bootstrap account 1", got)
	}
}

func TestGetLeadVisibility(t *testing.T) {
	catalog := testCatalog()
	creator := int64(10)
	f := newLeadFixture(&domain.Lead{ID: 1, CreatedBy: &creator, StatusID: mustStatusID(catalog, domain.StatusNew)})

	// Out-of-scope access reports forbidden, not missing.
	outsider := &domain.User{ID: 99, Role: domain.RoleAgent}
	_, err := f.svc.GetLead(context.Background(), outsider, 1)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeForbidden {
		t.Errorf("error = %v, want FORBIDDEN", err)
	}

	// A missing lead is simply missing.
	_, err = f.svc.GetLead(context.Background(), outsider, 77)
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeNotFound {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestListLeadsIgnoresStatusFilterForLicenseAgent(t *testing.T) {
	f := newLeadFixture()
	actor := &domain.User{ID: 11, Role: domain.RoleLicenseAgent}
	requested := mustStatusID(f.catalog, domain.StatusApproved)

	_, _, err := f.svc.ListLeads(context.Background(), actor, ListQuery{StatusID: &requested})
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}

	// Only the role rule survives; the caller's status filter is dropped.
	preds := f.leads.lastFilter.Predicates
	args := []any{}
	clause := preds.WhereClause(&args)
	if len(preds) != 1 {
		t.Fatalf("predicates = %d (%s), want only the role rule", len(preds), clause)
	}
	if len(args) != 1 || args[0] != mustStatusID(f.catalog, domain.StatusLicenseAgent) {
		t.Errorf("bound args = %v, want the hand-off stage id", args)
	}
}

func TestDashboardSummaryKeysByStageName(t *testing.T) {
	catalog := testCatalog()
	newID := mustStatusID(catalog, domain.StatusNew)
	f := newLeadFixture(
		&domain.Lead{ID: 1, StatusID: newID},
		&domain.Lead{ID: 2, StatusID: newID},
	)

	summary, err := f.svc.DashboardSummary(context.Background())
	if err != nil {
		t.Fatalf("DashboardSummary: %v", err)
	}
	if summary[string(domain.StatusNew)] != 2 {
		t.Errorf("summary = %v, want New:2", summary)
	}
}
