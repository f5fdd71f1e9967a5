package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// SimulateCreditRequest carries the parameters of a simulation run.
type SimulateCreditRequest struct {
	Mode             string          `json:"mode" validate:"required,oneof=STANDARD CUSTOM PROPOSED"`
	CreditType       string          `json:"credit_type" validate:"required,oneof=SPECIALE AIDE FIXE OTHER"`
	Principal        decimal.Decimal `json:"principal" validate:"required"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	FirstPaymentDate time.Time       `json:"first_payment_date" validate:"required"`

	// STANDARD only.
	MonthlyPayment decimal.Decimal `json:"monthly_payment,omitempty"`
	// CUSTOM only.
	CustomInstallments []CustomInstallmentRequest `json:"custom_installments,omitempty" validate:"dive"`
	// PROPOSED only.
	Duration int `json:"duration,omitempty" validate:"min=0"`
}

// CustomInstallmentRequest is one caller-chosen period of a CUSTOM schedule.
type CustomInstallmentRequest struct {
	Period int             `json:"period" validate:"required,min=1"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// CreateDemandRequest carries a member's credit request.
type CreateDemandRequest struct {
	ClientID    string          `json:"client_id" validate:"required"`
	CreditType  string          `json:"credit_type" validate:"required,oneof=SPECIALE AIDE FIXE OTHER"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Motif       string          `json:"motif" validate:"required"`
	GuarantorID string          `json:"guarantor_id,omitempty"`
}

// DecideDemandRequest carries an agent's decision on a pending demand.
type DecideDemandRequest struct {
	DemandID  string `json:"demand_id" validate:"required"`
	Approve   bool   `json:"approve"`
	DecidedBy string `json:"decided_by" validate:"required"`
	Motif     string `json:"motif,omitempty"`
}

// CreateContractRequest turns an approved demand into a contract using the
// repayment plan retained from simulation.
type CreateContractRequest struct {
	DemandID         string          `json:"demand_id" validate:"required"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment" validate:"required"`
	FirstPaymentDate time.Time       `json:"first_payment_date" validate:"required"`
}

// ApplyPaymentRequest records a collected repayment.
type ApplyPaymentRequest struct {
	ContractID string          `json:"contract_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	Mode       string          `json:"mode" validate:"required,oneof=CASH TRANSFER MOBILE_MONEY CHEQUE"`
	PaidAt     time.Time       `json:"paid_at,omitempty"`
	ProofName  string          `json:"proof_name,omitempty"`
	Proof      []byte          `json:"proof,omitempty"`
}

// ValidateDischargeRequest force-marks a contract discharged.
type ValidateDischargeRequest struct {
	ContractID string `json:"contract_id" validate:"required"`
	Motif      string `json:"motif" validate:"required,min=10,max=500"`
	Actor      string `json:"actor" validate:"required"`
}

// CloseContractRequest closes a discharged contract against its quittance.
type CloseContractRequest struct {
	ContractID   string `json:"contract_id" validate:"required"`
	QuittanceRef string `json:"quittance_ref" validate:"required"`
}

// ExtendContractRequest supersedes a contract with a new one carrying the
// remaining balance.
type ExtendContractRequest struct {
	ContractID       string          `json:"contract_id" validate:"required"`
	AdditionalAmount decimal.Decimal `json:"additional_amount"`
	MonthlyRate      decimal.Decimal `json:"monthly_rate"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment" validate:"required"`
	FirstPaymentDate time.Time       `json:"first_payment_date" validate:"required"`
}

// CheckEligibilityRequest asks whether a member may request a given credit.
type CheckEligibilityRequest struct {
	ClientID   string          `json:"client_id" validate:"required"`
	CreditType string          `json:"credit_type" validate:"required,oneof=SPECIALE AIDE FIXE OTHER"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
}

// MarkPenaltyPaidRequest settles a penalty.
type MarkPenaltyPaidRequest struct {
	PenaltyID string `json:"penalty_id" validate:"required"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScheduleRowResponse is one period of a simulated schedule.
type ScheduleRowResponse struct {
	Period   int             `json:"period"`
	DueDate  time.Time       `json:"due_date"`
	Payment  decimal.Decimal `json:"payment"`
	Interest decimal.Decimal `json:"interest"`
	Balance  decimal.Decimal `json:"balance"`
}

// SimulationResponse is the outcome of a simulation run.
type SimulationResponse struct {
	Mode     string                `json:"mode"`
	Valid    bool                  `json:"valid"`
	Reason   string                `json:"reason,omitempty"`
	Schedule []ScheduleRowResponse `json:"schedule"`
	Duration int                   `json:"duration"`

	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalAmount    decimal.Decimal `json:"total_amount"`

	RemainingAtMaxDuration  decimal.Decimal `json:"remaining_at_max_duration,omitempty"`
	SuggestedMonthlyPayment decimal.Decimal `json:"suggested_monthly_payment,omitempty"`

	TotalPlanned decimal.Decimal `json:"total_planned,omitempty"`
	Remaining    decimal.Decimal `json:"remaining,omitempty"`
	Excess       decimal.Decimal `json:"excess,omitempty"`
}

// DemandResponse is the external representation of a credit demand.
type DemandResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	Matricule     string          `json:"matricule"`
	CreditType    string          `json:"credit_type"`
	Amount        decimal.Decimal `json:"amount"`
	Motif         string          `json:"motif"`
	GuarantorID   string          `json:"guarantor_id,omitempty"`
	Reference     string          `json:"reference"`
	Status        string          `json:"status"`
	DecisionBy    string          `json:"decision_by,omitempty"`
	DecisionMotif string          `json:"decision_motif,omitempty"`
	DecidedAt     *time.Time      `json:"decided_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ContractResponse is the external representation of a contract.
type ContractResponse struct {
	ID               string          `json:"id"`
	DemandID         string          `json:"demand_id"`
	ClientID         string          `json:"client_id"`
	CreditType       string          `json:"credit_type"`
	Principal        decimal.Decimal `json:"principal"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Duration         int             `json:"duration"`
	GuarantorID      string          `json:"guarantor_id,omitempty"`
	FirstPaymentDate time.Time       `json:"first_payment_date"`
	NextDueAt        time.Time       `json:"next_due_at"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	AmountRemaining  decimal.Decimal `json:"amount_remaining"`
	Score            decimal.Decimal `json:"score"`
	Status           string          `json:"status"`
	QuittanceRef     string          `json:"quittance_ref,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PaymentResponse is the external representation of a payment.
type PaymentResponse struct {
	ID         string          `json:"id"`
	CreditID   string          `json:"credit_id"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAt     time.Time       `json:"paid_at"`
	Mode       string          `json:"mode"`
	ProofURL   string          `json:"proof_url,omitempty"`
	ReceiptURL string          `json:"receipt_url,omitempty"`
	Reference  string          `json:"reference"`
}

// ApplyPaymentResponse bundles the payment with the refreshed contract.
type ApplyPaymentResponse struct {
	Payment  PaymentResponse  `json:"payment"`
	Contract ContractResponse `json:"contract"`
}

// PenaltyResponse is the external representation of a penalty.
type PenaltyResponse struct {
	ID       string          `json:"id"`
	CreditID string          `json:"credit_id"`
	Amount   decimal.Decimal `json:"amount"`
	DaysLate int             `json:"days_late"`
	DueDate  time.Time       `json:"due_date"`
	Paid     bool            `json:"paid"`
	PaidAt   *time.Time      `json:"paid_at,omitempty"`
}

// EligibilityResponse is the outcome of an eligibility check. Ineligibility
// is data, not an error.
type EligibilityResponse struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// OverdueSweepResponse summarizes one run of the overdue sweep.
type OverdueSweepResponse struct {
	Scanned          int `json:"scanned"`
	PenaltiesCreated int `json:"penalties_created"`
}
