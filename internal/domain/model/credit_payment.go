package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// PaymentMode identifies how a payment was collected.
type PaymentMode string

const (
	PaymentModeCash     PaymentMode = "CASH"
	PaymentModeTransfer PaymentMode = "TRANSFER"
	PaymentModeMobile   PaymentMode = "MOBILE_MONEY"
	PaymentModeCheque   PaymentMode = "CHEQUE"
)

var validPaymentModes = map[PaymentMode]struct{}{
	PaymentModeCash:     {},
	PaymentModeTransfer: {},
	PaymentModeMobile:   {},
	PaymentModeCheque:   {},
}

// ParsePaymentMode validates a raw payment mode value.
func ParsePaymentMode(raw string) (PaymentMode, error) {
	m := PaymentMode(raw)
	if _, ok := validPaymentModes[m]; !ok {
		return "", valueobject.NewValidationError("unknown payment mode: " + raw)
	}
	return m, nil
}

// CreditPayment is an immutable record of a collected repayment.
type CreditPayment struct {
	id         string
	creditID   string
	amount     decimal.Decimal
	paidAt     time.Time
	mode       PaymentMode
	proofURL   string
	receiptURL string
	reference  string
	createdAt  time.Time
}

// NewCreditPayment records a payment against a contract.
func NewCreditPayment(
	creditID, matricule string,
	amount decimal.Decimal,
	paidAt time.Time,
	mode PaymentMode,
	proofURL string,
	now time.Time,
) (*CreditPayment, error) {
	if creditID == "" {
		return nil, valueobject.NewValidationError("credit id is required")
	}
	if !amount.IsPositive() {
		return nil, valueobject.NewValidationError("payment amount must be positive")
	}
	if _, ok := validPaymentModes[mode]; !ok {
		return nil, valueobject.NewValidationError("unknown payment mode: " + string(mode))
	}
	if paidAt.IsZero() {
		paidAt = now
	}

	return &CreditPayment{
		id:        uuid.New().String(),
		creditID:  creditID,
		amount:    amount,
		paidAt:    paidAt,
		mode:      mode,
		proofURL:  proofURL,
		reference: valueobject.PaymentReference(matricule, now),
		createdAt: now,
	}, nil
}

// ReconstructCreditPayment rebuilds a payment from persistence.
func ReconstructCreditPayment(
	id, creditID string,
	amount decimal.Decimal,
	paidAt time.Time,
	mode PaymentMode,
	proofURL, receiptURL, reference string,
	createdAt time.Time,
) *CreditPayment {
	return &CreditPayment{
		id:         id,
		creditID:   creditID,
		amount:     amount,
		paidAt:     paidAt,
		mode:       mode,
		proofURL:   proofURL,
		receiptURL: receiptURL,
		reference:  reference,
		createdAt:  createdAt,
	}
}

// WithReceipt returns a copy carrying the generated receipt location.
func (p *CreditPayment) WithReceipt(receiptURL string) *CreditPayment {
	next := *p
	next.receiptURL = receiptURL
	return &next
}

func (p *CreditPayment) ID() string              { return p.id }
func (p *CreditPayment) CreditID() string        { return p.creditID }
func (p *CreditPayment) Amount() decimal.Decimal { return p.amount }
func (p *CreditPayment) PaidAt() time.Time       { return p.paidAt }
func (p *CreditPayment) Mode() PaymentMode       { return p.mode }
func (p *CreditPayment) ProofURL() string        { return p.proofURL }
func (p *CreditPayment) ReceiptURL() string      { return p.receiptURL }
func (p *CreditPayment) Reference() string       { return p.reference }
func (p *CreditPayment) CreatedAt() time.Time    { return p.createdAt }
