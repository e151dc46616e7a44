package dto

import (
	"time"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/service"
)

// LeadRequest is the intake/update payload. An assigned_to key, if a
// client still sends one, is not represented here and is dropped on
// decode: reassignment is a disabled capability.
type LeadRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	MiddleInitial *string `json:"middle_initial"`
	DateOfBirth   string  `json:"date_of_birth" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Address       string  `json:"address"`
	StateOfBirth  string  `json:"state_of_birth"`
	SSN           string  `json:"ssn"`

	Height            *string `json:"height"`
	Weight            *string `json:"weight"`
	InsuranceProvider *string `json:"insurance_provider"`
	PolicyNumber      *string `json:"policy_number"`
	MedicalNotes      *string `json:"medical_notes"`
	DoctorName        *string `json:"doctor_name"`
	DoctorPhone       *string `json:"doctor_phone"`
	DoctorAddress     *string `json:"doctor_address"`

	BeneficiaryDetails string  `json:"beneficiary_details"`
	PlanDetails        string  `json:"plan_details"`
	QuoteType          *string `json:"quote_type"`

	HealthAnswers  map[string]bool `json:"health_answers"`
	HealthComments *string         `json:"health_comments"`

	BankName        string  `json:"bank_name"`
	AccountName     string  `json:"account_name"`
	AccountNumber   string  `json:"account_number"`
	RoutingNumber   string  `json:"routing_number"`
	AccountType     string  `json:"account_type"`
	BankingComments *string `json:"banking_comments"`
	InitialDraft    *string `json:"initial_draft"`
	FutureDraft     *string `json:"future_draft"`

	Status           *int64 `json:"status"`
	LeadManualStatus string `json:"lead_manual_status" validate:"omitempty,oneof=approved rejected"`
}

// ToInput maps the request onto the service input.
func (r LeadRequest) ToInput() service.LeadInput {
	return service.LeadInput{
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		MiddleInitial:      r.MiddleInitial,
		DateOfBirth:        r.DateOfBirth,
		Phone:              r.Phone,
		Email:              r.Email,
		Address:            r.Address,
		StateOfBirth:       r.StateOfBirth,
		SSN:                r.SSN,
		Height:             r.Height,
		Weight:             r.Weight,
		InsuranceProvider:  r.InsuranceProvider,
		PolicyNumber:       r.PolicyNumber,
		MedicalNotes:       r.MedicalNotes,
		DoctorName:         r.DoctorName,
		DoctorPhone:        r.DoctorPhone,
		DoctorAddress:      r.DoctorAddress,
		BeneficiaryDetails: r.BeneficiaryDetails,
		PlanDetails:        r.PlanDetails,
		QuoteType:          r.QuoteType,
		HealthAnswers:      r.HealthAnswers,
		HealthComments:     r.HealthComments,
		BankName:           r.BankName,
		AccountName:        r.AccountName,
		AccountNumber:      r.AccountNumber,
		RoutingNumber:      r.RoutingNumber,
		AccountType:        r.AccountType,
		BankingComments:    r.BankingComments,
		InitialDraft:       r.InitialDraft,
		FutureDraft:        r.FutureDraft,
		StatusID:           r.Status,
		ManualDecision:     service.ManualDecision(r.LeadManualStatus),
	}
}

// LeadResponse is the outward lead shape.
type LeadResponse struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	MiddleInitial *string `json:"middle_initial,omitempty"`
	DateOfBirth   string  `json:"date_of_birth"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	Address       string  `json:"address"`
	StateOfBirth  string  `json:"state_of_birth"`
	SSN           string  `json:"ssn"`

	Height            *string `json:"height,omitempty"`
	Weight            *string `json:"weight,omitempty"`
	InsuranceProvider *string `json:"insurance_provider,omitempty"`
	PolicyNumber      *string `json:"policy_number,omitempty"`
	MedicalNotes      *string `json:"medical_notes,omitempty"`
	DoctorName        *string `json:"doctor_name,omitempty"`
	DoctorPhone       *string `json:"doctor_phone,omitempty"`
	DoctorAddress     *string `json:"doctor_address,omitempty"`

	BeneficiaryDetails string  `json:"beneficiary_details"`
	PlanDetails        string  `json:"plan_details"`
	QuoteType          *string `json:"quote_type,omitempty"`

	HealthAnswers  map[string]bool `json:"health_answers"`
	HealthComments *string         `json:"health_comments,omitempty"`

	BankName        string  `json:"bank_name"`
	AccountName     string  `json:"account_name"`
	AccountNumber   string  `json:"account_number"`
	RoutingNumber   string  `json:"routing_number"`
	AccountType     string  `json:"account_type"`
	BankingComments *string `json:"banking_comments,omitempty"`
	InitialDraft    *string `json:"initial_draft,omitempty"`
	FutureDraft     *string `json:"future_draft,omitempty"`

	Status     int64     `json:"status"`
	StatusName string    `json:"status_name,omitempty"`
	AssignedTo *int64    `json:"assigned_to,omitempty"`
	CreatedBy  *int64    `json:"created_by,omitempty"`
	TeamID     *int64    `json:"team_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLeadResponse maps a domain lead outward, resolving its stage name
// through the catalog.
func NewLeadResponse(lead *domain.Lead, catalog *domain.StatusCatalog) LeadResponse {
	resp := LeadResponse{
		ID:                 lead.ID,
		FirstName:          lead.FirstName,
		LastName:           lead.LastName,
		MiddleInitial:      lead.MiddleInitial,
		DateOfBirth:        lead.DateOfBirth,
		Phone:              lead.Phone,
		Email:              lead.Email,
		Address:            lead.Address,
		StateOfBirth:       lead.StateOfBirth,
		SSN:                lead.SSN,
		Height:             lead.Height,
		Weight:             lead.Weight,
		InsuranceProvider:  lead.InsuranceProvider,
		PolicyNumber:       lead.PolicyNumber,
		MedicalNotes:       lead.MedicalNotes,
		DoctorName:         lead.DoctorName,
		DoctorPhone:        lead.DoctorPhone,
		DoctorAddress:      lead.DoctorAddress,
		BeneficiaryDetails: lead.BeneficiaryDetails,
		PlanDetails:        lead.PlanDetails,
		QuoteType:          lead.QuoteType,
		HealthAnswers:      lead.HealthAnswers,
		HealthComments:     lead.HealthComments,
		BankName:           lead.BankName,
		AccountName:        lead.AccountName,
		AccountNumber:      lead.AccountNumber,
		RoutingNumber:      lead.RoutingNumber,
		AccountType:        lead.AccountType,
		BankingComments:    lead.BankingComments,
		InitialDraft:       lead.InitialDraft,
		FutureDraft:        lead.FutureDraft,
		Status:             lead.StatusID,
		AssignedTo:         lead.AssignedTo,
		CreatedBy:          lead.CreatedBy,
		TeamID:             lead.TeamID,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
	if catalog != nil {
		if name, ok := catalog.NameByID(lead.StatusID); ok {
			resp.StatusName = string(name)
		}
	}
	return resp
}

// NewLeadResponses maps a listing.
func NewLeadResponses(leads []domain.Lead, catalog *domain.StatusCatalog) []LeadResponse {
	result := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		result = append(result, NewLeadResponse(&leads[i], catalog))
	}
	return result
}

// StatusHistoryEntry is one audit trail row, newest first.
type StatusHistoryEntry struct {
	ID            int64     `json:"id"`
	LeadID        int64     `json:"lead_id"`
	UserID        int64     `json:"user_id"`
	OldStatus     *int64    `json:"old_status"`
	NewStatus     int64     `json:"new_status"`
	OldStatusName *string   `json:"old_status_name"`
	NewStatusName *string   `json:"new_status_name"`
	ChangedAt     time.Time `json:"changed_at"`
}

// NewStatusHistory maps audit rows outward.
func NewStatusHistory(records []domain.StatusChangeRecord) []StatusHistoryEntry {
	result := make([]StatusHistoryEntry, 0, len(records))
	for _, rec := range records {
		entry := StatusHistoryEntry{
			ID:        rec.ID,
			LeadID:    rec.LeadID,
			UserID:    rec.UserID,
			OldStatus: rec.OldStatus,
			NewStatus: rec.NewStatus,
			ChangedAt: rec.ChangedAt,
		}
		if rec.OldStatusName != nil {
			name := string(*rec.OldStatusName)
			entry.OldStatusName = &name
		}
		if rec.NewStatusName != nil {
			name := string(*rec.NewStatusName)
			entry.NewStatusName = &name
		}
		result = append(result, entry)
	}
	return result
}
