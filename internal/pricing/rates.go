package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Category selects which rate table prices a quotation.
type Category string

const (
	Residential Category = "Residential"
	Commercial  Category = "Commercial"
)

// Categories lists the accepted categories in display order.
var Categories = []Category{Residential, Commercial}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == Residential || c == Commercial
}

// ResidentialRate is the GST-inclusive price and the government subsidy for one system size.
type ResidentialRate struct {
	Price   decimal.Decimal
	Subsidy decimal.Decimal
}

// CommercialRates maps system size in kW to a flat GST-inclusive price.
var CommercialRates = map[int]decimal.Decimal{
	2:  decimal.NewFromInt(130000),
	3:  decimal.NewFromInt(175000),
	4:  decimal.NewFromInt(225000),
	5:  decimal.NewFromInt(275000),
	6:  decimal.NewFromInt(325000),
	7:  decimal.NewFromInt(375000),
	8:  decimal.NewFromInt(420000),
	9:  decimal.NewFromInt(465000),
	10: decimal.NewFromInt(510000),
}

// ResidentialRates maps system size in kW to price and subsidy.
var ResidentialRates = map[int]ResidentialRate{
	2:  {Price: decimal.NewFromInt(140000), Subsidy: decimal.NewFromInt(60000)},
	3:  {Price: decimal.NewFromInt(190000), Subsidy: decimal.NewFromInt(78000)},
	4:  {Price: decimal.NewFromInt(245000), Subsidy: decimal.NewFromInt(78000)},
	5:  {Price: decimal.NewFromInt(300000), Subsidy: decimal.NewFromInt(78000)},
	6:  {Price: decimal.NewFromInt(355000), Subsidy: decimal.NewFromInt(78000)},
	7:  {Price: decimal.NewFromInt(410000), Subsidy: decimal.NewFromInt(78000)},
	8:  {Price: decimal.NewFromInt(460000), Subsidy: decimal.NewFromInt(78000)},
	9:  {Price: decimal.NewFromInt(510000), Subsidy: decimal.NewFromInt(78000)},
	10: {Price: decimal.NewFromInt(560000), Subsidy: decimal.NewFromInt(78000)},
}

// ParseSize converts a raw system size to a rate-table key.
// Only whole numbers that fit an int32 resolve; anything else reports false.
func ParseSize(raw string) (int, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	if d.LessThan(minSize) || d.GreaterThan(maxSize) {
		return 0, false
	}
	return int(d.IntPart()), true
}

var (
	minSize = decimal.NewFromInt(math.MinInt32)
	maxSize = decimal.NewFromInt(math.MaxInt32)
)

// CommercialPrice returns the commercial price for a raw size, or zero when the size is not listed.
func CommercialPrice(rawSize string) decimal.Decimal {
	size, ok := ParseSize(rawSize)
	if !ok {
		return decimal.Zero
	}
	price, ok := CommercialRates[size]
	if !ok {
		return decimal.Zero
	}
	return price
}

// ResidentialRateFor returns the residential rate for a raw size, or a zero rate when the size is not listed.
func ResidentialRateFor(rawSize string) ResidentialRate {
	size, ok := ParseSize(rawSize)
	if !ok {
		return ResidentialRate{Price: decimal.Zero, Subsidy: decimal.Zero}
	}
	rate, ok := ResidentialRates[size]
	if !ok {
		return ResidentialRate{Price: decimal.Zero, Subsidy: decimal.Zero}
	}
	return rate
}

// SubsidyFor returns the residential subsidy for a raw size.
func SubsidyFor(rawSize string) decimal.Decimal {
	return ResidentialRateFor(rawSize).Subsidy
}
