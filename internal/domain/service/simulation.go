package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/karacoop/credit-service/internal/domain/valueobject"
	"github.com/karacoop/credit-service/pkg/money"
)

// ---------------------------------------------------------------------------
// SimulationEngine – repayment schedule simulation for every credit product
// ---------------------------------------------------------------------------

// SimulationMode identifies how a schedule was produced.
type SimulationMode string

const (
	// ModeStandard fixes the installment and derives the duration.
	ModeStandard SimulationMode = "STANDARD"
	// ModeCustom applies caller-chosen per-period installments.
	ModeCustom SimulationMode = "CUSTOM"
	// ModeProposed fixes the duration and solves for the installment.
	ModeProposed SimulationMode = "PROPOSED"
)

// maxUncappedPeriods bounds STANDARD runs for products without a duration
// cap, so an installment that never amortizes cannot loop forever.
const maxUncappedPeriods = 600

// SimulationInput carries the parameters common to all three modes.
type SimulationInput struct {
	CreditType       valueobject.CreditType
	Principal        decimal.Decimal
	MonthlyRate      decimal.Decimal // percent per month; for FIXE, one-time percent
	FirstPaymentDate time.Time
}

// CustomInstallment is one caller-supplied period of a CUSTOM schedule.
type CustomInstallment struct {
	Period int
	Amount decimal.Decimal
}

// ScheduleRow is one period of a simulated repayment schedule.
type ScheduleRow struct {
	Period   int
	DueDate  time.Time
	Payment  decimal.Decimal
	Interest decimal.Decimal
	Balance  decimal.Decimal // remaining after the payment, floored at zero
}

// SimulationResult is the outcome of a simulation run.
type SimulationResult struct {
	Mode     SimulationMode
	Valid    bool
	Reason   string // why the schedule is invalid, empty when valid
	Schedule []ScheduleRow
	Duration int

	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalAmount    decimal.Decimal // principal + total interest

	// STANDARD mode, capped products only.
	RemainingAtMaxDuration  decimal.Decimal
	SuggestedMonthlyPayment decimal.Decimal

	// CUSTOM mode only.
	TotalPlanned decimal.Decimal
	Remaining    decimal.Decimal
	Excess       decimal.Decimal
}

// SimulationEngine produces repayment schedules. It is stateless; a single
// shared instance is safe for concurrent use.
type SimulationEngine struct{}

// NewSimulationEngine returns a new engine instance.
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{}
}

func (e *SimulationEngine) validate(in SimulationInput) error {
	if in.CreditType.IsZero() {
		return valueobject.NewValidationError("credit type is required")
	}
	if !in.Principal.IsPositive() {
		return valueobject.NewValidationError("principal must be positive")
	}
	if in.MonthlyRate.IsNegative() {
		return valueobject.NewValidationError("interest rate cannot be negative")
	}
	if in.CreditType.Equal(valueobject.CreditTypeFixe) &&
		in.MonthlyRate.GreaterThan(decimal.NewFromFloat(valueobject.MaxFixeInterestRate)) {
		return valueobject.NewValidationError(
			fmt.Sprintf("FIXE interest rate cannot exceed %.0f%%", valueobject.MaxFixeInterestRate))
	}
	return nil
}

func dueDate(in SimulationInput, period int) time.Time {
	return in.FirstPaymentDate.AddDate(0, period-1, 0)
}

// ---------------------------------------------------------------------------
// STANDARD
// ---------------------------------------------------------------------------

// Standard simulates a schedule with a fixed installment and an open
// duration. For SPECIALE the schedule always spans exactly 7 periods; for
// other capped products the run fails when the balance outlives the cap.
func (e *SimulationEngine) Standard(in SimulationInput, installment decimal.Decimal) (SimulationResult, error) {
	if err := e.validate(in); err != nil {
		return SimulationResult{}, err
	}
	if in.CreditType.Equal(valueobject.CreditTypeFixe) {
		return e.standardFixe(in), nil
	}
	if !installment.IsPositive() {
		return SimulationResult{}, valueobject.NewValidationError("installment must be positive")
	}

	res := SimulationResult{Mode: ModeStandard, MonthlyPayment: installment}
	cap, capped := in.CreditType.MaxDuration()

	if in.CreditType.Equal(valueobject.CreditTypeSpeciale) {
		// Product policy: a SPECIALE schedule always shows exactly 7 rows,
		// even when the balance reaches zero earlier.
		balance := in.Principal
		totalInterest := decimal.Zero
		for period := 1; period <= cap; period++ {
			step := ApplyPeriod(balance, in.MonthlyRate, installment)
			balance = step.NewBalance
			totalInterest = totalInterest.Add(step.Interest)
			res.Schedule = append(res.Schedule, ScheduleRow{
				Period:   period,
				DueDate:  dueDate(in, period),
				Payment:  step.Paid,
				Interest: step.Interest,
				Balance:  balance,
			})
		}
		res.Duration = cap
		res.TotalInterest = totalInterest
		res.TotalAmount = in.Principal.Add(totalInterest)
		if balance.IsPositive() {
			res.Reason = fmt.Sprintf("balance not cleared within the SPECIALE cap of %d months", cap)
			res.RemainingAtMaxDuration = balance
			res.SuggestedMonthlyPayment = SolveInstallmentForDuration(in.Principal, in.MonthlyRate, cap)
		} else {
			res.Valid = true
		}
		return res, nil
	}

	limit := maxUncappedPeriods
	if capped {
		limit = cap
	}

	balance := in.Principal
	totalInterest := decimal.Zero
	for period := 1; period <= limit && balance.IsPositive(); period++ {
		step := ApplyPeriod(balance, in.MonthlyRate, installment)
		balance = step.NewBalance
		totalInterest = totalInterest.Add(step.Interest)
		res.Schedule = append(res.Schedule, ScheduleRow{
			Period:   period,
			DueDate:  dueDate(in, period),
			Payment:  step.Paid,
			Interest: step.Interest,
			Balance:  balance,
		})
	}

	res.Duration = len(res.Schedule)
	res.TotalInterest = totalInterest
	res.TotalAmount = in.Principal.Add(totalInterest)

	switch {
	case !balance.IsPositive():
		res.Valid = true
	case capped:
		res.Reason = fmt.Sprintf("duration exceeds the %s cap of %d months", in.CreditType, cap)
		res.RemainingAtMaxDuration = balance
		res.SuggestedMonthlyPayment = SolveInstallmentForDuration(in.Principal, in.MonthlyRate, cap)
	default:
		res.Reason = "installment does not amortize the principal"
	}
	return res, nil
}

// standardFixe divides principal plus one-time interest evenly over the full
// 14-period FIXE term, the last period absorbing the floor-division
// remainder.
func (e *SimulationEngine) standardFixe(in SimulationInput) SimulationResult {
	cap, _ := valueobject.CreditTypeFixe.MaxDuration()

	interest := money.Round(in.Principal.Mul(in.MonthlyRate).Div(hundred))
	total := in.Principal.Add(interest)
	per := money.FloorDiv(total, int64(cap))

	res := SimulationResult{
		Mode:           ModeStandard,
		Valid:          true,
		Duration:       cap,
		MonthlyPayment: per,
		TotalInterest:  interest,
		TotalAmount:    total,
	}

	remaining := total
	for period := 1; period <= cap; period++ {
		payment := per
		if period == cap {
			payment = remaining // absorb the remainder
		}
		remaining = remaining.Sub(payment)
		res.Schedule = append(res.Schedule, ScheduleRow{
			Period:  period,
			DueDate: dueDate(in, period),
			Payment: payment,
			Balance: remaining,
		})
	}
	return res
}

// ---------------------------------------------------------------------------
// CUSTOM
// ---------------------------------------------------------------------------

// Custom applies caller-chosen installments, one per period. Entries must
// cover contiguous periods numbered from 1. Each entry is collected in full,
// even past the balance; the run reports the total planned, the balance left
// unplanned, and any excess over the total owed.
func (e *SimulationEngine) Custom(in SimulationInput, entries []CustomInstallment) (SimulationResult, error) {
	if err := e.validate(in); err != nil {
		return SimulationResult{}, err
	}
	if len(entries) == 0 {
		return SimulationResult{}, valueobject.NewValidationError("at least one installment is required")
	}
	for i, entry := range entries {
		if entry.Period != i+1 {
			return SimulationResult{}, valueobject.NewValidationError(
				"custom schedule periods must be contiguous starting at 1")
		}
		if !entry.Amount.IsPositive() {
			return SimulationResult{}, valueobject.NewValidationError(
				fmt.Sprintf("installment for period %d must be positive", entry.Period))
		}
	}
	if in.CreditType.Equal(valueobject.CreditTypeFixe) {
		return e.customFixe(in, entries), nil
	}

	res := SimulationResult{Mode: ModeCustom, Duration: len(entries)}
	cap, capped := in.CreditType.MaxDuration()

	// balance runs signed here: a negative ending balance is the excess paid
	// beyond the total owed.
	balance := in.Principal
	totalInterest := decimal.Zero
	totalPlanned := decimal.Zero

	for _, entry := range entries {
		interest := decimal.Zero
		if balance.IsPositive() {
			interest = money.Round(balance.Mul(in.MonthlyRate).Div(hundred))
		}
		balance = balance.Add(interest).Sub(entry.Amount)
		if balance.Abs().LessThan(oneFranc) {
			balance = decimal.Zero
		}
		totalInterest = totalInterest.Add(interest)
		totalPlanned = totalPlanned.Add(entry.Amount)

		display := balance
		if display.IsNegative() {
			display = decimal.Zero
		}
		res.Schedule = append(res.Schedule, ScheduleRow{
			Period:   entry.Period,
			DueDate:  dueDate(in, entry.Period),
			Payment:  entry.Amount,
			Interest: interest,
			Balance:  display,
		})
	}

	res.TotalInterest = totalInterest
	res.TotalAmount = in.Principal.Add(totalInterest)
	res.TotalPlanned = totalPlanned
	if balance.IsPositive() {
		res.Remaining = balance
	}
	if balance.IsNegative() {
		res.Excess = balance.Neg()
	}

	switch {
	case capped && len(entries) > cap:
		res.Reason = fmt.Sprintf("duration exceeds the %s cap of %d months", in.CreditType, cap)
	case balance.IsPositive():
		res.Reason = "planned installments do not cover the total owed"
	default:
		res.Valid = true
	}
	return res, nil
}

// customFixe checks caller installments against the fixed total owed:
// principal plus one-time interest, which the planned sum must match exactly.
func (e *SimulationEngine) customFixe(in SimulationInput, entries []CustomInstallment) SimulationResult {
	cap, _ := valueobject.CreditTypeFixe.MaxDuration()

	interest := money.Round(in.Principal.Mul(in.MonthlyRate).Div(hundred))
	total := in.Principal.Add(interest)

	res := SimulationResult{
		Mode:          ModeCustom,
		Duration:      len(entries),
		TotalInterest: interest,
		TotalAmount:   total,
	}

	remaining := total
	totalPlanned := decimal.Zero
	for _, entry := range entries {
		remaining = remaining.Sub(entry.Amount)
		totalPlanned = totalPlanned.Add(entry.Amount)

		display := remaining
		if display.IsNegative() {
			display = decimal.Zero
		}
		res.Schedule = append(res.Schedule, ScheduleRow{
			Period:  entry.Period,
			DueDate: dueDate(in, entry.Period),
			Payment: entry.Amount,
			Balance: display,
		})
	}

	res.TotalPlanned = totalPlanned
	if remaining.IsPositive() {
		res.Remaining = remaining
	}
	if remaining.IsNegative() {
		res.Excess = remaining.Neg()
	}

	switch {
	case len(entries) > cap:
		res.Reason = fmt.Sprintf("duration exceeds the FIXE cap of %d months", cap)
	case !remaining.IsZero():
		res.Reason = "planned installments must cover principal plus interest exactly"
	default:
		res.Valid = true
	}
	return res
}

// ---------------------------------------------------------------------------
// PROPOSED
// ---------------------------------------------------------------------------

// Proposed solves for the installment that clears the balance in exactly the
// requested duration, then re-simulates once with that installment. The final
// period absorbs any residual balance-with-interest so nothing is left over.
func (e *SimulationEngine) Proposed(in SimulationInput, duration int) (SimulationResult, error) {
	if err := e.validate(in); err != nil {
		return SimulationResult{}, err
	}
	if duration <= 0 {
		return SimulationResult{}, valueobject.NewValidationError("duration must be positive")
	}
	if cap, capped := in.CreditType.MaxDuration(); capped && duration > cap {
		return SimulationResult{}, valueobject.NewValidationError(
			fmt.Sprintf("requested duration %d exceeds the %s cap of %d months", duration, in.CreditType, cap))
	}
	if in.CreditType.Equal(valueobject.CreditTypeFixe) {
		return e.proposedFixe(in, duration), nil
	}

	installment := SolveInstallmentForDuration(in.Principal, in.MonthlyRate, duration)

	res := SimulationResult{
		Mode:           ModeProposed,
		Valid:          true,
		Duration:       duration,
		MonthlyPayment: installment,
	}

	balance := in.Principal
	totalInterest := decimal.Zero
	for period := 1; period <= duration; period++ {
		var row ScheduleRow
		if period == duration {
			// Absorb the residual exactly.
			interest := money.Round(balance.Mul(in.MonthlyRate).Div(hundred))
			row = ScheduleRow{
				Period:   period,
				DueDate:  dueDate(in, period),
				Payment:  balance.Add(interest),
				Interest: interest,
				Balance:  decimal.Zero,
			}
			totalInterest = totalInterest.Add(interest)
			balance = decimal.Zero
		} else {
			step := ApplyPeriod(balance, in.MonthlyRate, installment)
			balance = step.NewBalance
			totalInterest = totalInterest.Add(step.Interest)
			row = ScheduleRow{
				Period:   period,
				DueDate:  dueDate(in, period),
				Payment:  step.Paid,
				Interest: step.Interest,
				Balance:  balance,
			}
		}
		res.Schedule = append(res.Schedule, row)
	}

	res.TotalInterest = totalInterest
	res.TotalAmount = in.Principal.Add(totalInterest)
	return res, nil
}

// proposedFixe spreads principal plus one-time interest over the requested
// duration, remainder absorbed by the last period.
func (e *SimulationEngine) proposedFixe(in SimulationInput, duration int) SimulationResult {
	interest := money.Round(in.Principal.Mul(in.MonthlyRate).Div(hundred))
	total := in.Principal.Add(interest)
	per := money.FloorDiv(total, int64(duration))

	res := SimulationResult{
		Mode:           ModeProposed,
		Valid:          true,
		Duration:       duration,
		MonthlyPayment: per,
		TotalInterest:  interest,
		TotalAmount:    total,
	}

	remaining := total
	for period := 1; period <= duration; period++ {
		payment := per
		if period == duration {
			payment = remaining
		}
		remaining = remaining.Sub(payment)
		res.Schedule = append(res.Schedule, ScheduleRow{
			Period:  period,
			DueDate: dueDate(in, period),
			Payment: payment,
			Balance: remaining,
		})
	}
	return res
}
