package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"16666.5", "16667"},
		{"16666.4999", "16666"},
		{"16666.6666", "16667"},
		{"-2.5", "-3"},
		{"0", "0"},
	}
	for _, tc := range cases {
		got := Round(decimal.RequireFromString(tc.in))
		assert.Equal(t, tc.want, got.String(), "Round(%s)", tc.in)
	}
}

func TestCeilDiv(t *testing.T) {
	got := CeilDiv(decimal.NewFromInt(100), 7)
	assert.Equal(t, "15", got.String())

	got = CeilDiv(decimal.NewFromInt(140), 7)
	assert.Equal(t, "20", got.String())
}

func TestFloorDiv(t *testing.T) {
	// 2,600,000 / 14 = 185,714.28...
	got := FloorDiv(decimal.NewFromInt(2_600_000), 14)
	assert.Equal(t, "185714", got.String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1 250 000 XOF", Format(decimal.NewFromInt(1_250_000)))
	assert.Equal(t, "950 XOF", Format(decimal.NewFromInt(950)))
	assert.Equal(t, "-16 667 XOF", Format(decimal.RequireFromString("-16666.5")))
}
