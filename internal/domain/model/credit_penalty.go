package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// CreditPenalty is a late-payment penalty assessed against a contract for a
// specific missed due date. At most one penalty exists per (contract, due
// date) pair; the repository enforces the uniqueness.
type CreditPenalty struct {
	id        string
	creditID  string
	amount    decimal.Decimal
	daysLate  int
	dueDate   time.Time
	paid      bool
	paidAt    *time.Time
	createdAt time.Time
}

// NewCreditPenalty records an unpaid penalty for a missed due date.
func NewCreditPenalty(creditID string, amount decimal.Decimal, daysLate int, dueDate, now time.Time) (*CreditPenalty, error) {
	if creditID == "" {
		return nil, valueobject.NewValidationError("credit id is required")
	}
	if !amount.IsPositive() {
		return nil, valueobject.NewValidationError("penalty amount must be positive")
	}
	if daysLate < 1 {
		return nil, valueobject.NewValidationError("penalty requires at least one whole day late")
	}
	return &CreditPenalty{
		id:        uuid.New().String(),
		creditID:  creditID,
		amount:    amount,
		daysLate:  daysLate,
		dueDate:   dueDate,
		createdAt: now,
	}, nil
}

// ReconstructCreditPenalty rebuilds a penalty from persistence.
func ReconstructCreditPenalty(
	id, creditID string,
	amount decimal.Decimal,
	daysLate int,
	dueDate time.Time,
	paid bool,
	paidAt *time.Time,
	createdAt time.Time,
) *CreditPenalty {
	return &CreditPenalty{
		id:        id,
		creditID:  creditID,
		amount:    amount,
		daysLate:  daysLate,
		dueDate:   dueDate,
		paid:      paid,
		paidAt:    paidAt,
		createdAt: createdAt,
	}
}

// MarkPaid settles the penalty. Settling an already-paid penalty fails.
func (p *CreditPenalty) MarkPaid(now time.Time) (*CreditPenalty, error) {
	if p.paid {
		return nil, valueobject.NewPreconditionError("penalty is already settled")
	}
	next := *p
	next.paid = true
	next.paidAt = &now
	return &next, nil
}

func (p *CreditPenalty) ID() string              { return p.id }
func (p *CreditPenalty) CreditID() string        { return p.creditID }
func (p *CreditPenalty) Amount() decimal.Decimal { return p.amount }
func (p *CreditPenalty) DaysLate() int           { return p.daysLate }
func (p *CreditPenalty) DueDate() time.Time      { return p.dueDate }
func (p *CreditPenalty) Paid() bool              { return p.paid }
func (p *CreditPenalty) PaidAt() *time.Time      { return p.paidAt }
func (p *CreditPenalty) CreatedAt() time.Time    { return p.createdAt }
