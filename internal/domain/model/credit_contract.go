package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

const (
	dischargeMotifMinLen = 10
	dischargeMotifMaxLen = 500

	initialScore = "5"
)

// CreditContract is the aggregate root of a running credit. It carries the
// agreed repayment plan, the collected amounts, the next due date used by
// penalty detection, and the member's per-contract reliability score.
//
// Contracts are immutable: every transition returns a new copy with a bumped
// version, leaving the receiver untouched. The repository uses the version
// for optimistic locking.
type CreditContract struct {
	id             string
	demandID       string
	clientID       string
	creditType     valueobject.CreditType
	principal      decimal.Decimal
	interestRate   decimal.Decimal
	monthlyPayment decimal.Decimal
	totalAmount    decimal.Decimal
	duration       int
	guarantorID    string

	firstPaymentDate time.Time
	nextDueAt        time.Time

	amountPaid      decimal.Decimal
	amountRemaining decimal.Decimal
	score           decimal.Decimal

	status         valueobject.ContractStatus
	dischargeMotif string
	dischargedBy   string
	dischargedAt   *time.Time
	quittanceRef   string
	closedAt       *time.Time

	createdAt time.Time
	updatedAt time.Time
	version   int

	events []event.DomainEvent
}

// NewCreditContract creates a pending contract from an approved demand and
// the repayment plan agreed during simulation. The first due date is one
// month after the first payment date.
func NewCreditContract(
	demand *CreditDemand,
	interestRate, monthlyPayment, totalAmount decimal.Decimal,
	duration int,
	firstPaymentDate time.Time,
	now time.Time,
) (*CreditContract, error) {
	if demand == nil {
		return nil, valueobject.NewValidationError("demand is required")
	}
	if demand.Status() != valueobject.DemandStatusApproved {
		return nil, valueobject.NewPreconditionError("contract requires an approved demand")
	}
	if duration <= 0 {
		return nil, valueobject.NewValidationError("duration must be positive")
	}
	if !monthlyPayment.IsPositive() {
		return nil, valueobject.NewValidationError("monthly payment must be positive")
	}
	if totalAmount.LessThan(demand.Amount()) {
		return nil, valueobject.NewValidationError("total amount cannot be below the principal")
	}
	if firstPaymentDate.IsZero() {
		return nil, valueobject.NewValidationError("first payment date is required")
	}

	c := &CreditContract{
		id:               uuid.New().String(),
		demandID:         demand.ID(),
		clientID:         demand.ClientID(),
		creditType:       demand.CreditType(),
		principal:        demand.Amount(),
		interestRate:     interestRate,
		monthlyPayment:   monthlyPayment,
		totalAmount:      totalAmount,
		duration:         duration,
		guarantorID:      demand.GuarantorID(),
		firstPaymentDate: firstPaymentDate,
		nextDueAt:        firstPaymentDate.AddDate(0, 1, 0),
		amountPaid:       decimal.Zero,
		amountRemaining:  totalAmount,
		score:            decimal.RequireFromString(initialScore),
		status:           valueobject.ContractStatusPending,
		createdAt:        now,
		updatedAt:        now,
		version:          1,
	}
	c.events = append(c.events, event.NewContractCreated(
		c.id, c.demandID, c.clientID, c.creditType.String(),
		c.principal, c.totalAmount, c.monthlyPayment,
		c.duration, c.nextDueAt,
	))
	return c, nil
}

// NewExtensionContract creates the successor contract of an extension. The
// new principal is the old contract's remaining balance plus any additional
// amount granted, repaid under a freshly simulated plan.
func NewExtensionContract(
	old *CreditContract,
	principal, interestRate, monthlyPayment, totalAmount decimal.Decimal,
	duration int,
	firstPaymentDate time.Time,
	now time.Time,
) (*CreditContract, error) {
	if old == nil {
		return nil, valueobject.NewValidationError("contract to extend is required")
	}
	if !old.status.AcceptsPayments() {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	if duration <= 0 {
		return nil, valueobject.NewValidationError("duration must be positive")
	}
	if !monthlyPayment.IsPositive() {
		return nil, valueobject.NewValidationError("monthly payment must be positive")
	}
	if totalAmount.LessThan(principal) {
		return nil, valueobject.NewValidationError("total amount cannot be below the principal")
	}
	if firstPaymentDate.IsZero() {
		return nil, valueobject.NewValidationError("first payment date is required")
	}

	c := &CreditContract{
		id:               uuid.New().String(),
		demandID:         old.demandID,
		clientID:         old.clientID,
		creditType:       old.creditType,
		principal:        principal,
		interestRate:     interestRate,
		monthlyPayment:   monthlyPayment,
		totalAmount:      totalAmount,
		duration:         duration,
		guarantorID:      old.guarantorID,
		firstPaymentDate: firstPaymentDate,
		nextDueAt:        firstPaymentDate.AddDate(0, 1, 0),
		amountPaid:       decimal.Zero,
		amountRemaining:  totalAmount,
		score:            old.score,
		status:           valueobject.ContractStatusPending,
		createdAt:        now,
		updatedAt:        now,
		version:          1,
	}
	c.events = append(c.events, event.NewContractCreated(
		c.id, c.demandID, c.clientID, c.creditType.String(),
		c.principal, c.totalAmount, c.monthlyPayment,
		c.duration, c.nextDueAt,
	))
	return c, nil
}

// ReconstructCreditContract rebuilds a contract from persistence without
// raising events.
func ReconstructCreditContract(
	id, demandID, clientID string,
	creditType valueobject.CreditType,
	principal, interestRate, monthlyPayment, totalAmount decimal.Decimal,
	duration int,
	guarantorID string,
	firstPaymentDate, nextDueAt time.Time,
	amountPaid, amountRemaining, score decimal.Decimal,
	status valueobject.ContractStatus,
	dischargeMotif, dischargedBy string,
	dischargedAt *time.Time,
	quittanceRef string,
	closedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) *CreditContract {
	return &CreditContract{
		id:               id,
		demandID:         demandID,
		clientID:         clientID,
		creditType:       creditType,
		principal:        principal,
		interestRate:     interestRate,
		monthlyPayment:   monthlyPayment,
		totalAmount:      totalAmount,
		duration:         duration,
		guarantorID:      guarantorID,
		firstPaymentDate: firstPaymentDate,
		nextDueAt:        nextDueAt,
		amountPaid:       amountPaid,
		amountRemaining:  amountRemaining,
		score:            score,
		status:           status,
		dischargeMotif:   dischargeMotif,
		dischargedBy:     dischargedBy,
		dischargedAt:     dischargedAt,
		quittanceRef:     quittanceRef,
		closedAt:         closedAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		version:          version,
	}
}

// Activate moves a pending contract to ACTIVE once the funds are disbursed.
func (c *CreditContract) Activate(now time.Time) (*CreditContract, error) {
	if c.status != valueobject.ContractStatusPending {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	next := c.copy(now)
	next.status = valueobject.ContractStatusActive
	return next, nil
}

// ApplyPayment credits a payment against the contract and advances the due
// date by one month. The remaining amount is floored at zero; collecting the
// full repayable amount moves the contract to DISCHARGED, any other positive
// collection to PARTIAL.
func (c *CreditContract) ApplyPayment(paymentID string, amount, newScore decimal.Decimal, now time.Time) (*CreditContract, error) {
	if !c.status.AcceptsPayments() {
		return nil, valueobject.NewPreconditionError(
			"contract in status " + c.status.String() + " does not accept payments")
	}
	if !amount.IsPositive() {
		return nil, valueobject.NewValidationError("payment amount must be positive")
	}

	remaining := c.amountRemaining.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	next := c.copy(now)
	next.amountPaid = c.amountPaid.Add(amount)
	next.amountRemaining = remaining
	next.nextDueAt = c.nextDueAt.AddDate(0, 1, 0)
	next.score = newScore

	switch {
	case next.amountRemaining.IsZero():
		next.status = valueobject.ContractStatusDischarged
		next.dischargedAt = &now
		next.events = append(next.events, event.NewContractDischarged(next.id, "", ""))
	case next.amountPaid.IsPositive():
		next.status = valueobject.ContractStatusPartial
	}

	next.events = append(next.events, event.NewPaymentApplied(
		next.id, paymentID, amount, next.amountPaid, next.amountRemaining, next.score, next.status.String(),
	))
	return next, nil
}

// ValidateDischarge force-marks a contract DISCHARGED with an audit motif.
// The motif must be between 10 and 500 characters and the amount actually
// collected, recomputed from stored payments, must cover the total repayable
// amount.
func (c *CreditContract) ValidateDischarge(motif, actor string, totalCollected decimal.Decimal, now time.Time) (*CreditContract, error) {
	if c.status.IsTerminal() || c.status == valueobject.ContractStatusDischarged {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	motif = strings.TrimSpace(motif)
	if n := len(motif); n < dischargeMotifMinLen || n > dischargeMotifMaxLen {
		return nil, valueobject.NewValidationError("discharge motif must be between 10 and 500 characters")
	}
	if actor == "" {
		return nil, valueobject.NewValidationError("discharge actor is required")
	}
	if totalCollected.LessThan(c.totalAmount) {
		return nil, valueobject.NewPreconditionError(
			"collected payments do not cover the total repayable amount")
	}

	next := c.copy(now)
	next.status = valueobject.ContractStatusDischarged
	next.dischargeMotif = motif
	next.dischargedBy = actor
	next.dischargedAt = &now
	next.amountRemaining = decimal.Zero
	next.events = append(next.events, event.NewContractDischarged(next.id, motif, actor))
	return next, nil
}

// AttachQuittance records the reference of the signed quittance document.
func (c *CreditContract) AttachQuittance(ref string, now time.Time) (*CreditContract, error) {
	if c.status != valueobject.ContractStatusDischarged {
		return nil, valueobject.NewPreconditionError("quittance requires a discharged contract")
	}
	if strings.TrimSpace(ref) == "" {
		return nil, valueobject.NewValidationError("quittance reference is required")
	}
	next := c.copy(now)
	next.quittanceRef = strings.TrimSpace(ref)
	return next, nil
}

// Close moves a discharged contract with a signed quittance to CLOSED.
func (c *CreditContract) Close(now time.Time) (*CreditContract, error) {
	if c.status != valueobject.ContractStatusDischarged {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	if c.quittanceRef == "" {
		return nil, valueobject.NewPreconditionError("closing requires a signed quittance")
	}
	next := c.copy(now)
	next.status = valueobject.ContractStatusClosed
	next.closedAt = &now
	next.events = append(next.events, event.NewContractClosed(next.id, next.quittanceRef))
	return next, nil
}

// MarkExtended marks the contract superseded by an extension contract that
// carries over the remaining balance.
func (c *CreditContract) MarkExtended(newContractID string, now time.Time) (*CreditContract, error) {
	if !c.status.AcceptsPayments() {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	if newContractID == "" {
		return nil, valueobject.NewValidationError("extension contract id is required")
	}
	next := c.copy(now)
	next.status = valueobject.ContractStatusExtended
	next.events = append(next.events, event.NewContractExtended(next.id, newContractID, next.amountRemaining))
	return next, nil
}

// MarkTransformed marks the contract replaced by a contract of a different
// credit type.
func (c *CreditContract) MarkTransformed(now time.Time) (*CreditContract, error) {
	if !c.status.AcceptsPayments() {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	next := c.copy(now)
	next.status = valueobject.ContractStatusTransformed
	return next, nil
}

// Cancel voids a contract before any payment has been collected.
func (c *CreditContract) Cancel(now time.Time) (*CreditContract, error) {
	if c.status != valueobject.ContractStatusPending && c.status != valueobject.ContractStatusActive {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	if c.amountPaid.IsPositive() {
		return nil, valueobject.NewPreconditionError("contract with payments cannot be canceled")
	}
	next := c.copy(now)
	next.status = valueobject.ContractStatusCanceled
	return next, nil
}

func (c *CreditContract) copy(now time.Time) *CreditContract {
	next := *c
	next.events = nil
	next.updatedAt = now
	next.version = c.version + 1
	return &next
}

func (c *CreditContract) ID() string                         { return c.id }
func (c *CreditContract) DemandID() string                   { return c.demandID }
func (c *CreditContract) ClientID() string                   { return c.clientID }
func (c *CreditContract) CreditType() valueobject.CreditType { return c.creditType }
func (c *CreditContract) Principal() decimal.Decimal         { return c.principal }
func (c *CreditContract) InterestRate() decimal.Decimal      { return c.interestRate }
func (c *CreditContract) MonthlyPayment() decimal.Decimal    { return c.monthlyPayment }
func (c *CreditContract) TotalAmount() decimal.Decimal       { return c.totalAmount }
func (c *CreditContract) Duration() int                      { return c.duration }
func (c *CreditContract) GuarantorID() string                { return c.guarantorID }
func (c *CreditContract) FirstPaymentDate() time.Time        { return c.firstPaymentDate }
func (c *CreditContract) NextDueAt() time.Time               { return c.nextDueAt }
func (c *CreditContract) AmountPaid() decimal.Decimal        { return c.amountPaid }
func (c *CreditContract) AmountRemaining() decimal.Decimal   { return c.amountRemaining }
func (c *CreditContract) Score() decimal.Decimal             { return c.score }
func (c *CreditContract) Status() valueobject.ContractStatus { return c.status }
func (c *CreditContract) DischargeMotif() string             { return c.dischargeMotif }
func (c *CreditContract) DischargedBy() string               { return c.dischargedBy }
func (c *CreditContract) DischargedAt() *time.Time           { return c.dischargedAt }
func (c *CreditContract) QuittanceRef() string               { return c.quittanceRef }
func (c *CreditContract) ClosedAt() *time.Time               { return c.closedAt }
func (c *CreditContract) CreatedAt() time.Time               { return c.createdAt }
func (c *CreditContract) UpdatedAt() time.Time               { return c.updatedAt }
func (c *CreditContract) Version() int                       { return c.version }

// Events returns the domain events raised since construction or the last
// transition.
func (c *CreditContract) Events() []event.DomainEvent { return c.events }
