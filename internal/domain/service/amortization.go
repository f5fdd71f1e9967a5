package service

import (
	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/pkg/money"
)

// ---------------------------------------------------------------------------
// Amortization math – pure numeric routines shared by the simulation,
// penalty and lifecycle engines. No side effects, no state.
// ---------------------------------------------------------------------------

// PeriodResult is the outcome of applying one compound-interest period.
type PeriodResult struct {
	Interest   decimal.Decimal
	Paid       decimal.Decimal
	NewBalance decimal.Decimal
}

// one franc, the rounding-noise guard threshold
var oneFranc = decimal.NewFromInt(1)

var hundred = decimal.NewFromInt(100)

// ApplyPeriod advances a balance through one monthly period: interest is
// accrued at monthlyRatePercent, then the installment is collected, capped at
// the balance-with-interest. A residual below one franc collapses to zero.
func ApplyPeriod(balance, monthlyRatePercent, installment decimal.Decimal) PeriodResult {
	interest := money.Round(balance.Mul(monthlyRatePercent).Div(hundred))
	withInterest := balance.Add(interest)

	paid := money.Min(installment, withInterest)
	newBalance := withInterest.Sub(paid)
	if newBalance.LessThan(oneFranc) {
		newBalance = decimal.Zero
	}

	return PeriodResult{
		Interest:   interest,
		Paid:       paid,
		NewBalance: newBalance,
	}
}

// PenaltyAmount computes a late fee pro-rata to days late over a 30-day
// reference period: monthlyPaymentAmount x daysLate / 30, rounded to whole
// francs. Non-positive daysLate yields zero.
func PenaltyAmount(monthlyPaymentAmount decimal.Decimal, daysLate int) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	return money.Round(
		monthlyPaymentAmount.Mul(decimal.NewFromInt(int64(daysLate))).Div(decimal.NewFromInt(30)),
	)
}

// SolveInstallmentForDuration finds the smallest whole-franc installment that
// drives the balance to zero after exactly duration periods at the given
// monthly rate. Bisection between principal/duration (rounded up) and twice
// the principal; 50 iterations are more than enough for the bounded inputs
// the products allow.
func SolveInstallmentForDuration(principal, monthlyRatePercent decimal.Decimal, duration int) decimal.Decimal {
	if duration <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}

	lo := money.CeilDiv(principal, int64(duration))
	hi := principal.Mul(decimal.NewFromInt(2)).Ceil()

	amortizes := func(installment decimal.Decimal) bool {
		return !endingBalance(principal, monthlyRatePercent, installment, duration).IsPositive()
	}

	for i := 0; i < 50; i++ {
		if lo.GreaterThanOrEqual(hi) {
			break
		}
		mid := money.FloorDiv(lo.Add(hi), 2)
		if amortizes(mid) {
			hi = mid
		} else {
			lo = mid.Add(oneFranc)
		}
	}
	return hi
}

// endingBalance simulates duration periods with a fixed installment and
// returns the remaining balance.
func endingBalance(principal, monthlyRatePercent, installment decimal.Decimal, duration int) decimal.Decimal {
	balance := principal
	for p := 0; p < duration; p++ {
		balance = ApplyPeriod(balance, monthlyRatePercent, installment).NewBalance
	}
	return balance
}
