package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// The cooperative operates exclusively in CFA francs (XOF), which have no
// minor unit: every amount is a whole number of francs. All rounding in this
// package rounds half away from zero, to whole francs.

// CurrencyCode is the ISO 4217 code for the CFA franc.
const CurrencyCode = "XOF"

// Round rounds an amount to whole francs, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// CeilDiv divides amount by n and rounds the quotient up to whole francs.
func CeilDiv(amount decimal.Decimal, n int64) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(n)).Ceil()
}

// FloorDiv divides amount by n and rounds the quotient down to whole francs.
func FloorDiv(amount decimal.Decimal, n int64) decimal.Decimal {
	return amount.Div(decimal.NewFromInt(n)).Floor()
}

// Format renders a whole-franc decimal with space-grouped thousands and the
// currency code, e.g. "1 250 000 XOF". Used for notifications and receipts.
func Format(amount decimal.Decimal) string {
	s := Round(amount).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return fmt.Sprintf("%s %s", out, CurrencyCode)
}
