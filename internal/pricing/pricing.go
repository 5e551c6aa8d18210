package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Input represents the form values the calculation reads.
type Input struct {
	Category        Category
	SystemSize      string
	UseManualCost   bool
	ManualTotalCost string
}

// Financials contains the derived totals of a quotation.
type Financials struct {
	TotalCost     decimal.Decimal
	SubsidyAmount decimal.Decimal
	FinalAmount   decimal.Decimal
}

// Calculate computes the financials for a quotation.
// It never fails: unparsable amounts and sizes outside the rate tables resolve to zero.
func Calculate(in Input) Financials {
	var total, subsidy decimal.Decimal

	switch {
	case in.UseManualCost && strings.TrimSpace(in.ManualTotalCost) != "":
		total = ParseAmount(in.ManualTotalCost)
		subsidy = SubsidyFor(in.SystemSize)
	case in.Category == Commercial:
		total = CommercialPrice(in.SystemSize)
		subsidy = decimal.Zero
	default:
		rate := ResidentialRateFor(in.SystemSize)
		total = rate.Price
		subsidy = rate.Subsidy
	}

	if in.Category != Residential {
		subsidy = decimal.Zero
	}

	return Financials{
		TotalCost:     total,
		SubsidyAmount: subsidy,
		FinalAmount:   total.Sub(subsidy),
	}
}

// ParseAmount parses a rupee amount, tolerating surrounding spaces, commas and a leading ₹.
// Unparsable input is zero.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
