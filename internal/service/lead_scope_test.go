package service

import (
	"testing"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
)

const legacyID = int64(5)

func TestScopePredicatesByRole(t *testing.T) {
	catalog := testCatalog()
	scope := NewLeadScope(catalog, legacyID)

	tests := []struct {
		name      string
		user      *domain.User
		wantRules int
	}{
		{"anonymous sees everything", nil, 0},
		{"superadmin unrestricted", &domain.User{ID: 1, Role: domain.RoleSuperAdmin}, 0},
		{"manager unrestricted", &domain.User{ID: 2, Role: domain.RoleManager}, 0},
		{"agent pinned to own leads", &domain.User{ID: 10, Role: domain.RoleAgent}, 1},
		{"license agent pinned to hand-off stage", &domain.User{ID: 11, Role: domain.RoleLicenseAgent}, 1},
		{"qa reviewer pinned to review stages", &domain.User{ID: 12, Role: domain.RoleQAReviewer}, 1},
		{"qa manager pinned to review stages", &domain.User{ID: 13, Role: domain.RoleQAManager}, 1},
		{"legacy account gets extra exclusions", &domain.User{ID: legacyID, Role: domain.RoleQAReviewer}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preds, err := scope.Predicates(tt.user)
			if err != nil {
				t.Fatalf("Predicates: %v", err)
			}
			rules := preds.ByOrigin(repository.OriginRoleRule)
			if len(rules) != tt.wantRules {
				t.Errorf("role rules = %d, want %d", len(rules), tt.wantRules)
			}
		})
	}
}

func TestScopeVisibleMirrorsPredicates(t *testing.T) {
	catalog := testCatalog()
	scope := NewLeadScope(catalog, legacyID)

	newID := mustStatusID(catalog, domain.StatusNew)
	qaID := mustStatusID(catalog, domain.StatusQAReview)
	licenseID := mustStatusID(catalog, domain.StatusLicenseAgent)
	approvedID := mustStatusID(catalog, domain.StatusApproved)
	rejectedID := mustStatusID(catalog, domain.StatusRejected)
	finalID := mustStatusID(catalog, domain.StatusFinalRejected)

	creator := int64(10)
	other := int64(99)

	tests := []struct {
		name string
		user *domain.User
		lead domain.Lead
		want bool
	}{
		{"anonymous sees anything", nil, domain.Lead{StatusID: approvedID}, true},
		{"manager sees anything", &domain.User{ID: 2, Role: domain.RoleManager}, domain.Lead{StatusID: finalID}, true},
		{"agent sees own lead", &domain.User{ID: creator, Role: domain.RoleAgent}, domain.Lead{CreatedBy: &creator, StatusID: newID}, true},
		{"agent blocked from others lead", &domain.User{ID: creator, Role: domain.RoleAgent}, domain.Lead{CreatedBy: &other, StatusID: newID}, false},
		{"agent blocked from orphan lead", &domain.User{ID: creator, Role: domain.RoleAgent}, domain.Lead{StatusID: newID}, false},
		{"license agent sees hand-off stage", &domain.User{ID: 11, Role: domain.RoleLicenseAgent}, domain.Lead{StatusID: licenseID}, true},
		{"license agent blocked elsewhere", &domain.User{ID: 11, Role: domain.RoleLicenseAgent}, domain.Lead{StatusID: newID}, false},
		{"qa reviewer sees new", &domain.User{ID: 12, Role: domain.RoleQAReviewer}, domain.Lead{StatusID: newID}, true},
		{"qa reviewer sees qa review", &domain.User{ID: 12, Role: domain.RoleQAReviewer}, domain.Lead{StatusID: qaID}, true},
		{"qa reviewer blocked from approved", &domain.User{ID: 12, Role: domain.RoleQAReviewer}, domain.Lead{StatusID: approvedID}, false},
		{"qa manager sees qa review", &domain.User{ID: 13, Role: domain.RoleQAManager}, domain.Lead{StatusID: qaID}, true},
		{"legacy account blocked from approved", &domain.User{ID: legacyID, Role: domain.RoleManager}, domain.Lead{StatusID: approvedID}, false},
		{"legacy account blocked from rejected", &domain.User{ID: legacyID, Role: domain.RoleManager}, domain.Lead{StatusID: rejectedID}, false},
		{"legacy account sees pending work", &domain.User{ID: legacyID, Role: domain.RoleManager}, domain.Lead{StatusID: newID}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scope.Visible(tt.user, &tt.lead)
			if err != nil {
				t.Fatalf("Visible: %v", err)
			}
			if got != tt.want {
				t.Errorf("Visible = %v, want %v", got, tt.want)
			}
		})
	}
}
