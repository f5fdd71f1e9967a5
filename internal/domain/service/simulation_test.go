package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
)

func specialeInput(principal int64, rate string) SimulationInput {
	return SimulationInput{
		CreditType:       valueobject.CreditTypeSpeciale,
		Principal:        decimal.NewFromInt(principal),
		MonthlyRate:      decimal.RequireFromString(rate),
		FirstPaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func fixeInput(principal int64, rate string) SimulationInput {
	return SimulationInput{
		CreditType:       valueobject.CreditTypeFixe,
		Principal:        decimal.NewFromInt(principal),
		MonthlyRate:      decimal.RequireFromString(rate),
		FirstPaymentDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestStandard_SpecialeAlwaysSevenRows(t *testing.T) {
	engine := NewSimulationEngine()

	t.Run("installment clears the balance early", func(t *testing.T) {
		// 700,000 at 0% with a 200,000 installment clears in 4 periods,
		// but the SPECIALE schedule still spans 7 rows.
		res, err := engine.Standard(specialeInput(700_000, "0"), decimal.NewFromInt(200_000))
		require.NoError(t, err)

		assert.True(t, res.Valid)
		require.Len(t, res.Schedule, 7)
		assert.Equal(t, 7, res.Duration)
		assert.True(t, res.Schedule[6].Balance.IsZero())
		assert.True(t, res.RemainingAtMaxDuration.IsZero())

		// Rows after payoff collect nothing.
		assert.True(t, res.Schedule[4].Payment.IsZero())
		assert.True(t, res.Schedule[5].Payment.IsZero())
	})

	t.Run("installment too small marks the run invalid with a suggestion", func(t *testing.T) {
		res, err := engine.Standard(specialeInput(2_000_000, "3"), decimal.NewFromInt(100_000))
		require.NoError(t, err)

		assert.False(t, res.Valid)
		require.Len(t, res.Schedule, 7)
		assert.True(t, res.RemainingAtMaxDuration.IsPositive())
		require.True(t, res.SuggestedMonthlyPayment.IsPositive())

		// The suggestion must itself amortize within the cap.
		check, err := engine.Standard(specialeInput(2_000_000, "3"), res.SuggestedMonthlyPayment)
		require.NoError(t, err)
		assert.True(t, check.Valid)
	})

	t.Run("due dates advance monthly from the first payment date", func(t *testing.T) {
		res, err := engine.Standard(specialeInput(700_000, "0"), decimal.NewFromInt(100_000))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), res.Schedule[0].DueDate)
		assert.Equal(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), res.Schedule[1].DueDate)
		assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), res.Schedule[6].DueDate)
	})
}

func TestStandard_CappedAndUncapped(t *testing.T) {
	engine := NewSimulationEngine()

	t.Run("AIDE stops once the balance is cleared", func(t *testing.T) {
		in := SimulationInput{
			CreditType:       valueobject.CreditTypeAide,
			Principal:        decimal.NewFromInt(300_000),
			MonthlyRate:      decimal.Zero,
			FirstPaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		}
		res, err := engine.Standard(in, decimal.NewFromInt(150_000))
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, 2, res.Duration)
		require.Len(t, res.Schedule, 2)
	})

	t.Run("AIDE fails past its 3-month cap", func(t *testing.T) {
		in := SimulationInput{
			CreditType:       valueobject.CreditTypeAide,
			Principal:        decimal.NewFromInt(900_000),
			MonthlyRate:      decimal.NewFromInt(2),
			FirstPaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		}
		res, err := engine.Standard(in, decimal.NewFromInt(100_000))
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.True(t, res.RemainingAtMaxDuration.IsPositive())
		assert.True(t, res.SuggestedMonthlyPayment.IsPositive())
		assert.Len(t, res.Schedule, 3)
	})

	t.Run("OTHER runs until payoff with no cap", func(t *testing.T) {
		in := SimulationInput{
			CreditType:       valueobject.CreditTypeOther,
			Principal:        decimal.NewFromInt(1_000_000),
			MonthlyRate:      decimal.NewFromInt(1),
			FirstPaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		}
		res, err := engine.Standard(in, decimal.NewFromInt(120_000))
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Greater(t, res.Duration, 7)
		assert.True(t, res.Schedule[len(res.Schedule)-1].Balance.IsZero())

		// Total repayable equals the sum of schedule payments.
		sum := decimal.Zero
		for _, row := range res.Schedule {
			sum = sum.Add(row.Payment)
		}
		assert.True(t, sum.Equal(res.TotalAmount),
			"sum of payments %s != total %s", sum, res.TotalAmount)
	})

	t.Run("OTHER with a non-amortizing installment is invalid", func(t *testing.T) {
		// 1% monthly on 1,000,000 accrues 10,000 the first month; paying
		// 10,000 never touches the principal.
		in := SimulationInput{
			CreditType:       valueobject.CreditTypeOther,
			Principal:        decimal.NewFromInt(1_000_000),
			MonthlyRate:      decimal.NewFromInt(1),
			FirstPaymentDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		}
		res, err := engine.Standard(in, decimal.NewFromInt(10_000))
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, "installment does not amortize the principal", res.Reason)
	})
}

func TestStandard_Fixe(t *testing.T) {
	engine := NewSimulationEngine()

	// 2,000,000 at 30% one-time: interest 600,000, total 2,600,000,
	// 13 payments of 185,714 and a final payment of 185,718.
	res, err := engine.Standard(fixeInput(2_000_000, "30"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, res.Valid)
	require.Len(t, res.Schedule, 14)
	assert.Equal(t, "600000", res.TotalInterest.String())
	assert.Equal(t, "2600000", res.TotalAmount.String())
	assert.Equal(t, "185714", res.MonthlyPayment.String())
	assert.Equal(t, "185714", res.Schedule[0].Payment.String())
	assert.Equal(t, "185718", res.Schedule[13].Payment.String())
	assert.True(t, res.Schedule[13].Balance.IsZero())

	sum := decimal.Zero
	for _, row := range res.Schedule {
		sum = sum.Add(row.Payment)
	}
	assert.Equal(t, "2600000", sum.String())
}

func TestStandard_FixeRateCap(t *testing.T) {
	engine := NewSimulationEngine()
	_, err := engine.Standard(fixeInput(2_000_000, "51"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, valueobject.IsValidation(err))
}

func TestCustom_Fixe(t *testing.T) {
	engine := NewSimulationEngine()

	t.Run("under-planned schedule reports the remaining to plan", func(t *testing.T) {
		res, err := engine.Custom(fixeInput(2_000_000, "30"), []CustomInstallment{
			{Period: 1, Amount: decimal.NewFromInt(300_000)},
			{Period: 2, Amount: decimal.NewFromInt(400_000)},
		})
		require.NoError(t, err)

		assert.False(t, res.Valid)
		assert.Equal(t, "700000", res.TotalPlanned.String())
		assert.Equal(t, "1900000", res.Remaining.String())
		assert.True(t, res.Excess.IsZero())
	})

	t.Run("exact coverage is valid", func(t *testing.T) {
		entries := make([]CustomInstallment, 13)
		for i := range entries {
			entries[i] = CustomInstallment{Period: i + 1, Amount: decimal.NewFromInt(200_000)}
		}
		res, err := engine.Custom(fixeInput(2_000_000, "30"), entries)
		require.NoError(t, err)
		assert.True(t, res.Valid, res.Reason)
		assert.True(t, res.Remaining.IsZero())
		assert.True(t, res.Excess.IsZero())
	})

	t.Run("surplus reports the excess", func(t *testing.T) {
		res, err := engine.Custom(fixeInput(1_000_000, "30"), []CustomInstallment{
			{Period: 1, Amount: decimal.NewFromInt(1_400_000)},
		})
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, "100000", res.Excess.String())
	})
}

func TestCustom_CompoundProducts(t *testing.T) {
	engine := NewSimulationEngine()

	t.Run("covering schedule is valid", func(t *testing.T) {
		res, err := engine.Custom(specialeInput(500_000, "0"), []CustomInstallment{
			{Period: 1, Amount: decimal.NewFromInt(200_000)},
			{Period: 2, Amount: decimal.NewFromInt(300_000)},
		})
		require.NoError(t, err)
		assert.True(t, res.Valid)
		assert.Equal(t, "500000", res.TotalPlanned.String())
		assert.True(t, res.Remaining.IsZero())
	})

	t.Run("non-contiguous periods are rejected", func(t *testing.T) {
		_, err := engine.Custom(specialeInput(500_000, "0"), []CustomInstallment{
			{Period: 1, Amount: decimal.NewFromInt(200_000)},
			{Period: 3, Amount: decimal.NewFromInt(300_000)},
		})
		require.Error(t, err)
		assert.True(t, valueobject.IsValidation(err))
	})

	t.Run("entries beyond the cap are invalid", func(t *testing.T) {
		entries := make([]CustomInstallment, 8)
		for i := range entries {
			entries[i] = CustomInstallment{Period: i + 1, Amount: decimal.NewFromInt(100_000)}
		}
		res, err := engine.Custom(specialeInput(500_000, "0"), entries)
		require.NoError(t, err)
		assert.False(t, res.Valid)
	})
}

func TestProposed(t *testing.T) {
	engine := NewSimulationEngine()

	t.Run("schedule spans exactly the requested duration with no leftover", func(t *testing.T) {
		res, err := engine.Proposed(specialeInput(1_500_000, "2"), 6)
		require.NoError(t, err)

		assert.True(t, res.Valid)
		require.Len(t, res.Schedule, 6)
		assert.True(t, res.Schedule[5].Balance.IsZero())
		assert.True(t, res.MonthlyPayment.IsPositive())

		sum := decimal.Zero
		for _, row := range res.Schedule {
			sum = sum.Add(row.Payment)
		}
		assert.True(t, sum.Equal(res.TotalAmount),
			"sum of payments %s != total %s", sum, res.TotalAmount)
	})

	t.Run("duration above the cap is rejected", func(t *testing.T) {
		_, err := engine.Proposed(specialeInput(1_500_000, "2"), 8)
		require.Error(t, err)
		assert.True(t, valueobject.IsValidation(err))
	})

	t.Run("FIXE spreads the fixed total over the requested duration", func(t *testing.T) {
		res, err := engine.Proposed(fixeInput(2_000_000, "30"), 10)
		require.NoError(t, err)
		assert.True(t, res.Valid)
		require.Len(t, res.Schedule, 10)
		assert.Equal(t, "260000", res.MonthlyPayment.String())
		assert.True(t, res.Schedule[9].Balance.IsZero())
	})
}

func TestSimulation_InputValidation(t *testing.T) {
	engine := NewSimulationEngine()

	_, err := engine.Standard(SimulationInput{
		CreditType:  valueobject.CreditTypeSpeciale,
		Principal:   decimal.Zero,
		MonthlyRate: decimal.NewFromInt(2),
	}, decimal.NewFromInt(100_000))
	require.Error(t, err)
	assert.True(t, valueobject.IsValidation(err))

	_, err = engine.Standard(specialeInput(100_000, "0"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, valueobject.IsValidation(err))
}
