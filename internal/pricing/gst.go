package pricing

import "github.com/shopspring/decimal"

// DefaultGSTRate is the composite GST percentage applied to rooftop solar systems.
const DefaultGSTRate = "13.8"

var hundred = decimal.NewFromInt(100)

// SplitGST splits a GST-inclusive total into its base and GST components.
// Both are rounded to whole rupees and always add up to total.
// A non-positive rate puts the whole total in the base.
func SplitGST(total, ratePercent decimal.Decimal) (base, gst decimal.Decimal) {
	if !ratePercent.IsPositive() {
		return total, decimal.Zero
	}
	divisor := hundred.Add(ratePercent).Div(hundred)
	base = total.Div(divisor).Round(0)
	return base, total.Sub(base)
}
