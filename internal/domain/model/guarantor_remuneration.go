package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

// GuarantorRemuneration is the share of a collected payment owed to the
// member who sponsored the credit. One row is recorded per remunerated
// payment, tagged with the 1-based month index of the payment relative to
// the contract's first payment date.
type GuarantorRemuneration struct {
	id          string
	creditID    string
	guarantorID string
	paymentID   string
	amount      decimal.Decimal
	monthIndex  int
	createdAt   time.Time
}

// NewGuarantorRemuneration records a guarantor's share of a payment.
func NewGuarantorRemuneration(
	creditID, guarantorID, paymentID string,
	amount decimal.Decimal,
	monthIndex int,
	now time.Time,
) (*GuarantorRemuneration, error) {
	if creditID == "" || guarantorID == "" || paymentID == "" {
		return nil, valueobject.NewValidationError("credit, guarantor and payment ids are required")
	}
	if !amount.IsPositive() {
		return nil, valueobject.NewValidationError("remuneration amount must be positive")
	}
	if monthIndex < 1 {
		return nil, valueobject.NewValidationError("month index starts at 1")
	}
	return &GuarantorRemuneration{
		id:          uuid.New().String(),
		creditID:    creditID,
		guarantorID: guarantorID,
		paymentID:   paymentID,
		amount:      amount,
		monthIndex:  monthIndex,
		createdAt:   now,
	}, nil
}

// ReconstructGuarantorRemuneration rebuilds a remuneration from persistence.
func ReconstructGuarantorRemuneration(
	id, creditID, guarantorID, paymentID string,
	amount decimal.Decimal,
	monthIndex int,
	createdAt time.Time,
) *GuarantorRemuneration {
	return &GuarantorRemuneration{
		id:          id,
		creditID:    creditID,
		guarantorID: guarantorID,
		paymentID:   paymentID,
		amount:      amount,
		monthIndex:  monthIndex,
		createdAt:   createdAt,
	}
}

// PaymentMonthIndex computes the 1-based month index of a payment date
// relative to the contract's first payment date. Payments before the first
// payment date count as month 1.
func PaymentMonthIndex(firstPaymentDate, paidAt time.Time) int {
	months := (paidAt.Year()-firstPaymentDate.Year())*12 + int(paidAt.Month()-firstPaymentDate.Month())
	if paidAt.Day() < firstPaymentDate.Day() {
		months--
	}
	idx := months + 1
	if idx < 1 {
		idx = 1
	}
	return idx
}

func (r *GuarantorRemuneration) ID() string              { return r.id }
func (r *GuarantorRemuneration) CreditID() string        { return r.creditID }
func (r *GuarantorRemuneration) GuarantorID() string     { return r.guarantorID }
func (r *GuarantorRemuneration) PaymentID() string       { return r.paymentID }
func (r *GuarantorRemuneration) Amount() decimal.Decimal { return r.amount }
func (r *GuarantorRemuneration) MonthIndex() int         { return r.monthIndex }
func (r *GuarantorRemuneration) CreatedAt() time.Time    { return r.createdAt }
