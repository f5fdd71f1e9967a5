package model

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

func newTestContract(t *testing.T) *CreditContract {
	t.Helper()
	d := newTestDemand(t)
	approved, err := d.Approve("agent-7", testNow)
	require.NoError(t, err)

	c, err := NewCreditContract(
		approved,
		decimal.NewFromInt(5),       // 5% monthly
		decimal.NewFromInt(87_500),  // agreed installment
		decimal.NewFromInt(612_500), // total repayable
		7,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		testNow,
	)
	require.NoError(t, err)
	return c
}

func TestNewCreditContract(t *testing.T) {
	c := newTestContract(t)

	assert.Equal(t, valueobject.ContractStatusPending, c.Status())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), c.NextDueAt(),
		"first due date is one month after the first payment date")
	assert.True(t, c.AmountPaid().IsZero())
	assert.True(t, c.AmountRemaining().Equal(c.TotalAmount()))
	assert.Equal(t, "5", c.Score().String())
	require.Len(t, c.Events(), 1)
	assert.Equal(t, "credit.contract.created", c.Events()[0].EventType())
}

func TestNewCreditContract_RequiresApprovedDemand(t *testing.T) {
	d := newTestDemand(t)

	_, err := NewCreditContract(
		d,
		decimal.NewFromInt(5), decimal.NewFromInt(87_500), decimal.NewFromInt(612_500),
		7, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), testNow,
	)
	assert.True(t, valueobject.IsPrecondition(err))
}

func TestCreditContract_ApplyPayment(t *testing.T) {
	c := newTestContract(t)
	score := decimal.NewFromInt(6)

	partial, err := c.ApplyPayment("pay-1", decimal.NewFromInt(87_500), score, testNow)
	require.NoError(t, err)

	assert.Equal(t, valueobject.ContractStatusPartial, partial.Status())
	assert.Equal(t, "87500", partial.AmountPaid().String())
	assert.Equal(t, "525000", partial.AmountRemaining().String())
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), partial.NextDueAt())
	assert.Equal(t, "6", partial.Score().String())
	assert.Equal(t, c.Version()+1, partial.Version())
}

func TestCreditContract_ApplyPayment_Discharges(t *testing.T) {
	c := newTestContract(t)

	discharged, err := c.ApplyPayment("pay-1", decimal.NewFromInt(612_500), decimal.NewFromInt(6), testNow)
	require.NoError(t, err)

	assert.Equal(t, valueobject.ContractStatusDischarged, discharged.Status())
	assert.True(t, discharged.AmountRemaining().IsZero())
	require.NotNil(t, discharged.DischargedAt())

	types := make([]string, 0, len(discharged.Events()))
	for _, e := range discharged.Events() {
		types = append(types, e.EventType())
	}
	assert.Contains(t, types, "credit.contract.discharged")
	assert.Contains(t, types, "credit.contract.payment_applied")
}

func TestCreditContract_ApplyPayment_OverpaymentFloorsAtZero(t *testing.T) {
	c := newTestContract(t)

	over, err := c.ApplyPayment("pay-1", decimal.NewFromInt(700_000), decimal.NewFromInt(6), testNow)
	require.NoError(t, err)

	assert.True(t, over.AmountRemaining().IsZero())
	assert.Equal(t, "700000", over.AmountPaid().String())
	assert.Equal(t, valueobject.ContractStatusDischarged, over.Status())
}

func TestCreditContract_ApplyPayment_RejectedWhenTerminal(t *testing.T) {
	c := newTestContract(t)
	canceled, err := c.Cancel(testNow)
	require.NoError(t, err)

	_, err = canceled.ApplyPayment("pay-1", decimal.NewFromInt(1000), decimal.NewFromInt(5), testNow)
	assert.True(t, valueobject.IsPrecondition(err))
}

func TestCreditContract_ValidateDischarge(t *testing.T) {
	c := newTestContract(t)

	_, err := c.ValidateDischarge("too short", "agent-7", c.TotalAmount(), testNow)
	assert.True(t, valueobject.IsValidation(err), "motif below 10 characters")

	_, err = c.ValidateDischarge(strings.Repeat("x", 501), "agent-7", c.TotalAmount(), testNow)
	assert.True(t, valueobject.IsValidation(err), "motif above 500 characters")

	_, err = c.ValidateDischarge("settled via payroll deduction", "agent-7", decimal.NewFromInt(1000), testNow)
	assert.True(t, valueobject.IsPrecondition(err), "collected amount below total")

	discharged, err := c.ValidateDischarge("settled via payroll deduction", "agent-7", c.TotalAmount(), testNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ContractStatusDischarged, discharged.Status())
	assert.Equal(t, "agent-7", discharged.DischargedBy())
	assert.True(t, discharged.AmountRemaining().IsZero())

	_, err = discharged.ValidateDischarge("settled via payroll deduction", "agent-7", c.TotalAmount(), testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestCreditContract_Close(t *testing.T) {
	c := newTestContract(t)

	_, err := c.Close(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition, "closing requires DISCHARGED")

	discharged, err := c.ApplyPayment("pay-1", c.TotalAmount(), decimal.NewFromInt(6), testNow)
	require.NoError(t, err)

	_, err = discharged.Close(testNow)
	assert.True(t, valueobject.IsPrecondition(err), "closing requires a signed quittance")

	withQuittance, err := discharged.AttachQuittance("docs/quittance-1.pdf", testNow)
	require.NoError(t, err)

	closed, err := withQuittance.Close(testNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ContractStatusClosed, closed.Status())
	require.NotNil(t, closed.ClosedAt())

	_, err = closed.ApplyPayment("pay-2", decimal.NewFromInt(1000), decimal.NewFromInt(5), testNow)
	assert.Error(t, err)
}

func TestCreditContract_Extend(t *testing.T) {
	c := newTestContract(t)

	extended, err := c.MarkExtended("contract-2", testNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ContractStatusExtended, extended.Status())

	_, err = extended.MarkExtended("contract-3", testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestCreditContract_Cancel(t *testing.T) {
	c := newTestContract(t)

	paid, err := c.ApplyPayment("pay-1", decimal.NewFromInt(1000), decimal.NewFromInt(5), testNow)
	require.NoError(t, err)

	_, err = paid.Cancel(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition,
		"PARTIAL contracts cannot be canceled")

	canceled, err := c.Cancel(testNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ContractStatusCanceled, canceled.Status())
	assert.True(t, canceled.Status().IsTerminal())
}

func TestPaymentMonthIndex(t *testing.T) {
	first := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		paidAt time.Time
		want   int
	}{
		{"on the first payment date", first, 1},
		{"before the first payment date", first.AddDate(0, 0, -10), 1},
		{"mid first month", time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), 1},
		{"exactly one month in", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 2},
		{"mid fourth month", time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), 4},
		{"a year later", time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentMonthIndex(first, tt.paidAt))
		})
	}
}

func TestCreditPenalty_MarkPaid(t *testing.T) {
	p, err := NewCreditPenalty("credit-1", decimal.NewFromInt(16_667), 10, testNow, testNow)
	require.NoError(t, err)
	assert.False(t, p.Paid())

	paid, err := p.MarkPaid(testNow)
	require.NoError(t, err)
	assert.True(t, paid.Paid())
	require.NotNil(t, paid.PaidAt())

	_, err = paid.MarkPaid(testNow)
	assert.True(t, valueobject.IsPrecondition(err))
}
