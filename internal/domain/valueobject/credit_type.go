package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// CreditType – immutable value object
// ---------------------------------------------------------------------------

// CreditType identifies a credit product. Each product carries a hard cap on
// schedule duration; a capped product's schedule may never exceed its cap.
type CreditType struct {
	value string
}

const (
	creditTypeSpeciale = "SPECIALE"
	creditTypeAide     = "AIDE"
	creditTypeFixe     = "FIXE"
	creditTypeOther    = "OTHER"
)

var (
	CreditTypeSpeciale = CreditType{value: creditTypeSpeciale}
	CreditTypeAide     = CreditType{value: creditTypeAide}
	CreditTypeFixe     = CreditType{value: creditTypeFixe}
	CreditTypeOther    = CreditType{value: creditTypeOther}
)

var validCreditTypes = map[string]CreditType{
	creditTypeSpeciale: CreditTypeSpeciale,
	creditTypeAide:     CreditTypeAide,
	creditTypeFixe:     CreditTypeFixe,
	creditTypeOther:    CreditTypeOther,
}

// maxDurations maps each capped product to its maximum number of monthly
// periods. OTHER is absent: it is uncapped.
var maxDurations = map[string]int{
	creditTypeSpeciale: 7,
	creditTypeAide:     3,
	creditTypeFixe:     14,
}

// MaxFixeInterestRate is the highest one-time interest rate (percent)
// accepted for the FIXE product.
const MaxFixeInterestRate = 50.0

// NewCreditType creates a CreditType from a raw string.
func NewCreditType(s string) (CreditType, error) {
	v, ok := validCreditTypes[s]
	if !ok {
		return CreditType{}, fmt.Errorf("invalid credit type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the credit type.
func (t CreditType) String() string { return t.value }

// IsZero returns true if the credit type has not been initialised.
func (t CreditType) IsZero() bool { return t.value == "" }

// Equal returns true when both types carry the same value.
func (t CreditType) Equal(other CreditType) bool { return t.value == other.value }

// MaxDuration returns the product's duration cap in months. capped is false
// for products without a cap.
func (t CreditType) MaxDuration() (months int, capped bool) {
	months, capped = maxDurations[t.value]
	return months, capped
}
