package service

import (
	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/repository"
)

// LeadScope computes the subset of leads an identity may see or act
// on. Listings get the rules as predicates; single-record access gets
// the same rules evaluated in memory so both paths cannot drift apart.
type LeadScope struct {
	catalog            *domain.StatusCatalog
	legacyRestrictedID int64
}

// NewLeadScope builds the scope from the loaded status catalog.
func NewLeadScope(catalog *domain.StatusCatalog, legacyRestrictedID int64) *LeadScope {
	return &LeadScope{catalog: catalog, legacyRestrictedID: legacyRestrictedID}
}

// Predicates returns the role-derived filter conditions for the
// identity. More than one rule can apply; they combine with AND.
func (s *LeadScope) Predicates(user *domain.User) (repository.PredicateList, error) {
	if user == nil {
		return nil, nil
	}

	var preds repository.PredicateList

	switch user.Role {
	case domain.RoleAgent:
		// Agents see only leads they created.
		preds = append(preds, repository.ColumnEq(repository.OriginRoleRule, "created_by", user.ID))
	case domain.RoleLicenseAgent:
		// License agents see every lead parked at their hand-off stage,
		// regardless of creator or assignee.
		id, err := s.catalog.IDByName(domain.StatusLicenseAgent)
		if err != nil {
			return nil, err
		}
		preds = append(preds, repository.ColumnEq(repository.OriginRoleRule, "status", id))
	case domain.RoleQAReviewer, domain.RoleQAManager:
		newID, err := s.catalog.IDByName(domain.StatusNew)
		if err != nil {
			return nil, err
		}
		qaID, err := s.catalog.IDByName(domain.StatusQAReview)
		if err != nil {
			return nil, err
		}
		preds = append(preds, repository.ColumnIn(repository.OriginRoleRule, "status", newID, qaID))
	}

	// Legacy account restriction: settled leads stay hidden.
	if user.ID == s.legacyRestrictedID {
		approvedID, err := s.catalog.IDByName(domain.StatusApproved)
		if err != nil {
			return nil, err
		}
		rejectedID, err := s.catalog.IDByName(domain.StatusRejected)
		if err != nil {
			return nil, err
		}
		preds = append(preds,
			repository.ColumnNe(repository.OriginRoleRule, "status", approvedID),
			repository.ColumnNe(repository.OriginRoleRule, "status", rejectedID))
	}

	return preds, nil
}

// Visible evaluates the same rules against one lead. Out-of-scope
// single-record access is reported as forbidden by callers, which
// intentionally reveals that the lead exists.
func (s *LeadScope) Visible(user *domain.User, lead *domain.Lead) (bool, error) {
	if user == nil {
		return true, nil
	}

	switch user.Role {
	case domain.RoleAgent:
		if lead.CreatedBy == nil || *lead.CreatedBy != user.ID {
			return false, nil
		}
	case domain.RoleLicenseAgent:
		id, err := s.catalog.IDByName(domain.StatusLicenseAgent)
		if err != nil {
			return false, err
		}
		if lead.StatusID != id {
			return false, nil
		}
	case domain.RoleQAReviewer, domain.RoleQAManager:
		newID, err := s.catalog.IDByName(domain.StatusNew)
		if err != nil {
			return false, err
		}
		qaID, err := s.catalog.IDByName(domain.StatusQAReview)
		if err != nil {
			return false, err
		}
		if lead.StatusID != newID && lead.StatusID != qaID {
			return false, nil
		}
	}

	if user.ID == s.legacyRestrictedID {
		approvedID, err := s.catalog.IDByName(domain.StatusApproved)
		if err != nil {
			return false, err
		}
		rejectedID, err := s.catalog.IDByName(domain.StatusRejected)
		if err != nil {
			return false, err
		}
		if lead.StatusID == approvedID || lead.StatusID == rejectedID {
			return false, nil
		}
	}

	return true, nil
}
