package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Demand events
// ---------------------------------------------------------------------------

// DemandSubmitted is raised when a new credit demand enters the system.
type DemandSubmitted struct {
	events.BaseEvent
	ClientID   string          `json:"client_id"`
	CreditType string          `json:"credit_type"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference"`
}

func NewDemandSubmitted(demandID, clientID, creditType string, amount decimal.Decimal, reference string) DemandSubmitted {
	return DemandSubmitted{
		BaseEvent:  events.NewBaseEvent("credit.demand.submitted", demandID, "CreditDemand"),
		ClientID:   clientID,
		CreditType: creditType,
		Amount:     amount,
		Reference:  reference,
	}
}

// DemandDecided is raised when a demand is approved or rejected.
type DemandDecided struct {
	events.BaseEvent
	ClientID string `json:"client_id"`
	Status   string `json:"status"`
	Motif    string `json:"motif,omitempty"`
}

func NewDemandDecided(demandID, clientID, status, motif string) DemandDecided {
	return DemandDecided{
		BaseEvent: events.NewBaseEvent("credit.demand.decided", demandID, "CreditDemand"),
		ClientID:  clientID,
		Status:    status,
		Motif:     motif,
	}
}

// ---------------------------------------------------------------------------
// Contract events
// ---------------------------------------------------------------------------

// ContractCreated is raised when a contract is created from an approved demand.
type ContractCreated struct {
	events.BaseEvent
	DemandID       string          `json:"demand_id"`
	ClientID       string          `json:"client_id"`
	CreditType     string          `json:"credit_type"`
	Principal      decimal.Decimal `json:"principal"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Duration       int             `json:"duration"`
	NextDueAt      time.Time       `json:"next_due_at"`
}

func NewContractCreated(
	contractID, demandID, clientID, creditType string,
	principal, totalAmount, monthlyPayment decimal.Decimal,
	duration int, nextDueAt time.Time,
) ContractCreated {
	return ContractCreated{
		BaseEvent:      events.NewBaseEvent("credit.contract.created", contractID, "CreditContract"),
		DemandID:       demandID,
		ClientID:       clientID,
		CreditType:     creditType,
		Principal:      principal,
		TotalAmount:    totalAmount,
		MonthlyPayment: monthlyPayment,
		Duration:       duration,
		NextDueAt:      nextDueAt,
	}
}

// PaymentApplied is raised when a payment is applied to a contract.
type PaymentApplied struct {
	events.BaseEvent
	PaymentID       string          `json:"payment_id"`
	Amount          decimal.Decimal `json:"amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountRemaining decimal.Decimal `json:"amount_remaining"`
	Score           decimal.Decimal `json:"score"`
	Status          string          `json:"status"`
}

func NewPaymentApplied(
	contractID, paymentID string,
	amount, amountPaid, amountRemaining, score decimal.Decimal,
	status string,
) PaymentApplied {
	return PaymentApplied{
		BaseEvent:       events.NewBaseEvent("credit.contract.payment_applied", contractID, "CreditContract"),
		PaymentID:       paymentID,
		Amount:          amount,
		AmountPaid:      amountPaid,
		AmountRemaining: amountRemaining,
		Score:           score,
		Status:          status,
	}
}

// ContractDischarged is raised when the full repayable amount has been collected.
type ContractDischarged struct {
	events.BaseEvent
	Motif string `json:"motif,omitempty"`
	Actor string `json:"actor,omitempty"`
}

func NewContractDischarged(contractID, motif, actor string) ContractDischarged {
	return ContractDischarged{
		BaseEvent: events.NewBaseEvent("credit.contract.discharged", contractID, "CreditContract"),
		Motif:     motif,
		Actor:     actor,
	}
}

// ContractClosed is raised when a discharged contract is closed against its
// signed quittance.
type ContractClosed struct {
	events.BaseEvent
	QuittanceRef string `json:"quittance_ref"`
}

func NewContractClosed(contractID, quittanceRef string) ContractClosed {
	return ContractClosed{
		BaseEvent:    events.NewBaseEvent("credit.contract.closed", contractID, "CreditContract"),
		QuittanceRef: quittanceRef,
	}
}

// ContractExtended is raised when a contract is superseded by an extension.
type ContractExtended struct {
	events.BaseEvent
	NewContractID string          `json:"new_contract_id"`
	CarriedOver   decimal.Decimal `json:"carried_over"`
}

func NewContractExtended(contractID, newContractID string, carriedOver decimal.Decimal) ContractExtended {
	return ContractExtended{
		BaseEvent:     events.NewBaseEvent("credit.contract.extended", contractID, "CreditContract"),
		NewContractID: newContractID,
		CarriedOver:   carriedOver,
	}
}

// ---------------------------------------------------------------------------
// Penalty and remuneration events
// ---------------------------------------------------------------------------

// PenaltyCreated is raised when a late-payment penalty is recorded.
type PenaltyCreated struct {
	events.BaseEvent
	ContractID string          `json:"contract_id"`
	Amount     decimal.Decimal `json:"amount"`
	DaysLate   int             `json:"days_late"`
	DueDate    time.Time       `json:"due_date"`
}

func NewPenaltyCreated(penaltyID, contractID string, amount decimal.Decimal, daysLate int, dueDate time.Time) PenaltyCreated {
	return PenaltyCreated{
		BaseEvent:  events.NewBaseEvent("credit.penalty.created", penaltyID, "CreditPenalty"),
		ContractID: contractID,
		Amount:     amount,
		DaysLate:   daysLate,
		DueDate:    dueDate,
	}
}

// RemunerationRecorded is raised when a sponsoring guarantor earns a share of
// a payment.
type RemunerationRecorded struct {
	events.BaseEvent
	ContractID  string          `json:"contract_id"`
	GuarantorID string          `json:"guarantor_id"`
	PaymentID   string          `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	MonthIndex  int             `json:"month_index"`
}

func NewRemunerationRecorded(
	remunerationID, contractID, guarantorID, paymentID string,
	amount decimal.Decimal, monthIndex int,
) RemunerationRecorded {
	return RemunerationRecorded{
		BaseEvent:   events.NewBaseEvent("credit.remuneration.recorded", remunerationID, "GuarantorRemuneration"),
		ContractID:  contractID,
		GuarantorID: guarantorID,
		PaymentID:   paymentID,
		Amount:      amount,
		MonthIndex:  monthIndex,
	}
}
