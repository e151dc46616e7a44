package domain

import "time"

// Lead is an insurance application moving through the review workflow.
// The personal, medical and banking sections are opaque to the status
// engine; only Status, CreatedBy and the timestamps participate in
// workflow decisions. CreatedBy is immutable after creation.
type Lead struct {
	ID int64

	// Personal information
	FirstName     string
	LastName      string
	MiddleInitial *string
	DateOfBirth   string
	Phone         string
	Email         string
	Address       string
	StateOfBirth  string
	SSN           string

	// Medical information
	Height            *string
	Weight            *string
	InsuranceProvider *string
	PolicyNumber      *string
	MedicalNotes      *string
	DoctorName        *string
	DoctorPhone       *string
	DoctorAddress     *string

	// Plan and beneficiary
	BeneficiaryDetails string
	PlanDetails        string
	QuoteType          *string

	// Health questionnaire answers, keyed by question column name.
	HealthAnswers  map[string]bool
	HealthComments *string

	// Banking information
	BankName        string
	AccountName     string
	AccountNumber   string
	RoutingNumber   string
	AccountType     string
	BankingComments *string
	InitialDraft    *string
	FutureDraft     *string

	StatusID   int64
	AssignedTo *int64
	CreatedBy  *int64
	TeamID     *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HealthQuestionColumns lists the questionnaire columns in schema order.
// Intake accepts answers under exactly these keys.
var HealthQuestionColumns = []string{
	"hospitalized_nursing_oxygen_cancer_assistance",
	"organ_transplant_terminal_condition",
	"aids_hiv_immune_deficiency",
	"diabetes_complications_insulin",
	"kidney_disease_multiple_cancers",
	"pending_tests_surgery_hospitalization",
	"angina_stroke_lupus_copd_hepatitis",
	"heart_attack_aneurysm_surgery",
	"cancer_treatment_2years",
	"substance_abuse_treatment",
	"cardiovascular_events_3years",
	"cancer_respiratory_liver_3years",
	"neurological_conditions_3years",
	"covid_question",
}
