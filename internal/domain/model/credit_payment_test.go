package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karacoop/credit-service/internal/domain/model"
)

func TestNewCreditPayment_ReferenceIsNotAnIdentity(t *testing.T) {
	at := time.Date(2026, 1, 15, 9, 30, 12, 0, time.UTC)

	first, err := model.NewCreditPayment("contract-001", "M0042",
		decimal.NewFromInt(50_000), at, model.PaymentModeCash, "", at)
	require.NoError(t, err)

	// A second payment in the same minute mints the same reference but
	// remains a distinct record.
	second, err := model.NewCreditPayment("contract-001", "M0042",
		decimal.NewFromInt(37_500), at.Add(20*time.Second), model.PaymentModeCash, "", at.Add(20*time.Second))
	require.NoError(t, err)

	assert.Equal(t, first.Reference(), second.Reference())
	assert.NotEqual(t, first.ID(), second.ID())
}

func TestParsePaymentMode(t *testing.T) {
	mode, err := model.ParsePaymentMode("MOBILE_MONEY")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentModeMobile, mode)

	_, err = model.ParsePaymentMode("BARTER")
	assert.Error(t, err)
}
