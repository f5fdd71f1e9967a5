package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var scoringNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestRecomputeScore(t *testing.T) {
	engine := NewScoringEngine()
	due := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("on-time payment gains a full point", func(t *testing.T) {
		got := engine.RecomputeScore(decimal.NewFromInt(5), due, due, 0, scoringNow)
		assert.Equal(t, "6", got.String())
	})

	t.Run("one day late gains half a point", func(t *testing.T) {
		got := engine.RecomputeScore(decimal.NewFromInt(5), due.AddDate(0, 0, 1), due, 0, scoringNow)
		assert.Equal(t, "5.5", got.String())
	})

	t.Run("early payment gains half a point", func(t *testing.T) {
		got := engine.RecomputeScore(decimal.NewFromInt(5), due.AddDate(0, 0, -10), due, 0, scoringNow)
		assert.Equal(t, "5.5", got.String())
	})

	t.Run("each day beyond one costs a quarter point", func(t *testing.T) {
		// 4 days late: -0.25 x 4 = -1.
		got := engine.RecomputeScore(decimal.NewFromInt(5), due.AddDate(0, 0, 4), due, 0, scoringNow)
		assert.Equal(t, "4", got.String())
	})

	t.Run("unpaid penalties each cost a quarter point", func(t *testing.T) {
		got := engine.RecomputeScore(decimal.NewFromInt(5), due, due, 2, scoringNow)
		// +1 - 0.5 = +0.5
		assert.Equal(t, "5.5", got.String())
	})

	t.Run("payments older than six months count half", func(t *testing.T) {
		oldDue := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)
		got := engine.RecomputeScore(decimal.NewFromInt(5), oldDue, oldDue, 0, scoringNow)
		assert.Equal(t, "5.5", got.String())
	})

	t.Run("score is clamped to ten", func(t *testing.T) {
		got := engine.RecomputeScore(decimal.RequireFromString("9.8"), due, due, 0, scoringNow)
		assert.Equal(t, "10", got.String())
	})

	t.Run("score is clamped to zero", func(t *testing.T) {
		got := engine.RecomputeScore(decimal.RequireFromString("0.5"), due.AddDate(0, 0, 20), due, 3, scoringNow)
		assert.Equal(t, "0", got.String())
	})

	t.Run("stays within bounds across arbitrary sequences", func(t *testing.T) {
		score := decimal.NewFromInt(5)
		offsets := []int{0, 1, -5, 12, 0, 30, 2, -1, 0, 45, 7}
		for i, off := range offsets {
			score = engine.RecomputeScore(score, due.AddDate(0, 0, off), due, i%4, scoringNow)
			assert.False(t, score.IsNegative(), "score went negative at step %d", i)
			assert.False(t, score.GreaterThan(decimal.NewFromInt(10)), "score exceeded 10 at step %d", i)
		}
	})
}

func TestWholeDaysBetween(t *testing.T) {
	a := time.Date(2026, 6, 5, 23, 50, 0, 0, time.UTC)
	b := time.Date(2026, 6, 6, 0, 10, 0, 0, time.UTC)
	// Time-of-day is ignored: crossing midnight is one whole day.
	assert.Equal(t, 1, wholeDaysBetween(a, b))
	assert.Equal(t, -1, wholeDaysBetween(b, a))
	assert.Equal(t, 0, wholeDaysBetween(a, a))
}
