package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in Indian Rupee notation.
// After the rightmost 3 digits, digits are grouped in pairs (e.g. ₹1,23,45,678.90).
func FormatINR(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(raw, ".")
	result := "₹" + applyIndianGrouping(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatRupees is FormatINR without the paise, used on the printed document.
func FormatRupees(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	result := "₹" + applyIndianGrouping(amount.Abs().Round(0).StringFixed(0))
	if negative {
		result = "-" + result
	}
	return result
}

func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}
