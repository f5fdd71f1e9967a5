package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/event"
	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// CreditDemand is a member's request for credit. A demand is decided exactly
// once; an approved demand can back at most one contract.
type CreditDemand struct {
	id            string
	clientID      string
	matricule     string
	creditType    valueobject.CreditType
	amount        decimal.Decimal
	motif         string
	guarantorID   string
	reference     string
	status        valueobject.DemandStatus
	decisionBy    string
	decisionMotif string
	decidedAt     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
	version       int

	events []event.DomainEvent
}

// NewCreditDemand creates a pending demand. The amount must be a positive
// whole-franc value and the motif is required.
func NewCreditDemand(
	clientID, matricule string,
	creditType valueobject.CreditType,
	amount decimal.Decimal,
	motif, guarantorID string,
	now time.Time,
) (*CreditDemand, error) {
	if clientID == "" {
		return nil, valueobject.NewValidationError("client id is required")
	}
	if matricule == "" {
		return nil, valueobject.NewValidationError("matricule is required")
	}
	if !amount.IsPositive() {
		return nil, valueobject.NewValidationError("amount must be positive")
	}
	if strings.TrimSpace(motif) == "" {
		return nil, valueobject.NewValidationError("motif is required")
	}

	d := &CreditDemand{
		id:          uuid.New().String(),
		clientID:    clientID,
		matricule:   matricule,
		creditType:  creditType,
		amount:      amount,
		motif:       strings.TrimSpace(motif),
		guarantorID: guarantorID,
		reference:   valueobject.DemandReference(matricule, now),
		status:      valueobject.DemandStatusPending,
		createdAt:   now,
		updatedAt:   now,
		version:     1,
	}
	d.events = append(d.events, event.NewDemandSubmitted(
		d.id, d.clientID, d.creditType.String(), d.amount, d.reference,
	))
	return d, nil
}

// ReconstructCreditDemand rebuilds a demand from persistence without raising
// events.
func ReconstructCreditDemand(
	id, clientID, matricule string,
	creditType valueobject.CreditType,
	amount decimal.Decimal,
	motif, guarantorID, reference string,
	status valueobject.DemandStatus,
	decisionBy, decisionMotif string,
	decidedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) *CreditDemand {
	return &CreditDemand{
		id:            id,
		clientID:      clientID,
		matricule:     matricule,
		creditType:    creditType,
		amount:        amount,
		motif:         motif,
		guarantorID:   guarantorID,
		reference:     reference,
		status:        status,
		decisionBy:    decisionBy,
		decisionMotif: decisionMotif,
		decidedAt:     decidedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
	}
}

// Approve marks a pending demand approved. Deciding an already-decided demand
// fails with ErrInvalidStatusTransition.
func (d *CreditDemand) Approve(decidedBy string, now time.Time) (*CreditDemand, error) {
	return d.decide(valueobject.DemandStatusApproved, decidedBy, "", now)
}

// Reject marks a pending demand rejected with a decision motif.
func (d *CreditDemand) Reject(decidedBy, motif string, now time.Time) (*CreditDemand, error) {
	if strings.TrimSpace(motif) == "" {
		return nil, valueobject.NewValidationError("rejection motif is required")
	}
	return d.decide(valueobject.DemandStatusRejected, decidedBy, strings.TrimSpace(motif), now)
}

func (d *CreditDemand) decide(status valueobject.DemandStatus, decidedBy, motif string, now time.Time) (*CreditDemand, error) {
	if d.status != valueobject.DemandStatusPending {
		return nil, valueobject.ErrInvalidStatusTransition
	}
	if decidedBy == "" {
		return nil, valueobject.NewValidationError("decision author is required")
	}

	next := d.copy()
	next.status = status
	next.decisionBy = decidedBy
	next.decisionMotif = motif
	next.decidedAt = &now
	next.updatedAt = now
	next.version = d.version + 1
	next.events = append(next.events, event.NewDemandDecided(
		next.id, next.clientID, status.String(), motif,
	))
	return next, nil
}

func (d *CreditDemand) copy() *CreditDemand {
	c := *d
	c.events = nil
	return &c
}

func (d *CreditDemand) ID() string                         { return d.id }
func (d *CreditDemand) ClientID() string                   { return d.clientID }
func (d *CreditDemand) Matricule() string                  { return d.matricule }
func (d *CreditDemand) CreditType() valueobject.CreditType { return d.creditType }
func (d *CreditDemand) Amount() decimal.Decimal            { return d.amount }
func (d *CreditDemand) Motif() string                      { return d.motif }
func (d *CreditDemand) GuarantorID() string                { return d.guarantorID }
func (d *CreditDemand) Reference() string                  { return d.reference }
func (d *CreditDemand) Status() valueobject.DemandStatus   { return d.status }
func (d *CreditDemand) DecisionBy() string                 { return d.decisionBy }
func (d *CreditDemand) DecisionMotif() string              { return d.decisionMotif }
func (d *CreditDemand) DecidedAt() *time.Time              { return d.decidedAt }
func (d *CreditDemand) CreatedAt() time.Time               { return d.createdAt }
func (d *CreditDemand) UpdatedAt() time.Time               { return d.updatedAt }
func (d *CreditDemand) Version() int                       { return d.version }

// Events returns the domain events raised since construction or the last
// mutation.
func (d *CreditDemand) Events() []event.DomainEvent { return d.events }
