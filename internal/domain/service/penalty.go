package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// PenaltyEngine – lateness detection and pro-rata penalty amounts
// ---------------------------------------------------------------------------

// PenaltyAssessment is the outcome of checking a contract for lateness.
type PenaltyAssessment struct {
	Late     bool
	DaysLate int
	Amount   decimal.Decimal
	DueDate  time.Time
}

// PenaltyEngine detects overdue contracts and sizes their penalties. Creation
// idempotency (one open penalty per due date) is enforced by the lifecycle
// layer against the penalty store.
type PenaltyEngine struct{}

// NewPenaltyEngine returns a new engine instance.
func NewPenaltyEngine() *PenaltyEngine {
	return &PenaltyEngine{}
}

// Assess compares now against the contract's next due date. When now is past
// due by at least one whole day, the assessment carries the pro-rata amount
// for the contract's monthly installment.
func (p *PenaltyEngine) Assess(nextDueAt, now time.Time, monthlyPaymentAmount decimal.Decimal) PenaltyAssessment {
	if !now.After(nextDueAt) {
		return PenaltyAssessment{DueDate: nextDueAt}
	}

	daysLate := int(now.Sub(nextDueAt).Hours() / 24)
	if daysLate <= 0 {
		return PenaltyAssessment{DueDate: nextDueAt}
	}

	return PenaltyAssessment{
		Late:     true,
		DaysLate: daysLate,
		Amount:   PenaltyAmount(monthlyPaymentAmount, daysLate),
		DueDate:  nextDueAt,
	}
}
