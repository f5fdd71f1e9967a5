package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// ScoringEngine – per-contract reliability score, 0 to 10
// ---------------------------------------------------------------------------

// Score bounds.
var (
	scoreMin = decimal.Zero
	scoreMax = decimal.NewFromInt(10)
)

var quarterPoint = decimal.RequireFromString("0.25")

// ScoringEngine recomputes a contract's reliability score on each payment
// event. Pure given its inputs; the stored score is mutated only by the
// contract lifecycle.
type ScoringEngine struct{}

// NewScoringEngine returns a new engine instance.
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// RecomputeScore derives the new score from the payment's timing relative to
// the contract's due date:
//
//	on the due date          +1
//	one day late, or early   +0.5
//	more than one day late   -0.25 per day late
//
// Each unpaid penalty subtracts a further 0.25. A payment older than six
// months relative to now counts half. The result is clamped to [0, 10] and
// rounded to one decimal.
func (s *ScoringEngine) RecomputeScore(
	currentScore decimal.Decimal,
	paymentDate, nextDueAt time.Time,
	unpaidPenaltyCount int,
	now time.Time,
) decimal.Decimal {
	daysLate := wholeDaysBetween(nextDueAt, paymentDate)

	var delta decimal.Decimal
	switch {
	case daysLate == 0:
		delta = decimal.NewFromInt(1)
	case daysLate == 1 || daysLate < 0:
		delta = decimal.RequireFromString("0.5")
	default:
		delta = quarterPoint.Mul(decimal.NewFromInt(int64(daysLate))).Neg()
	}

	delta = delta.Sub(quarterPoint.Mul(decimal.NewFromInt(int64(unpaidPenaltyCount))))

	// Recency decay: stale payment events carry half the weight.
	if paymentDate.Before(now.AddDate(0, -6, 0)) {
		delta = delta.Div(decimal.NewFromInt(2))
	}

	score := currentScore.Add(delta)
	if score.LessThan(scoreMin) {
		score = scoreMin
	}
	if score.GreaterThan(scoreMax) {
		score = scoreMax
	}
	return score.Round(1)
}

// wholeDaysBetween counts whole calendar days from a to b, negative when b
// precedes a. Time-of-day is ignored.
func wholeDaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
