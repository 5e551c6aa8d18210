package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatINR_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"zero", "0", "₹0.00"},
		{"with decimals", "42.5", "₹42.50"},
		{"thousands", "1234.56", "₹1,234.56"},
		{"lakhs", "123456.78", "₹1,23,456.78"},
		{"crores", "12345678.90", "₹1,23,45,678.90"},
		{"negative lakhs", "-250000.50", "-₹2,50,000.50"},
		{"exact lakh boundary", "100000", "₹1,00,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatINR(decimal.RequireFromString(tt.input))
			if got != tt.expect {
				t.Errorf("FormatINR(%s) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatRupees(t *testing.T) {
	if got := FormatRupees(decimal.NewFromInt(222000)); got != "₹2,22,000" {
		t.Fatalf("FormatRupees = %q", got)
	}
	if got := FormatRupees(decimal.NewFromInt(-78000)); got != "-₹78,000" {
		t.Fatalf("FormatRupees negative = %q", got)
	}
}

func TestApplyIndianGrouping(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"5", "5"},
		{"999", "999"},
		{"1234", "1,234"},
		{"123456", "1,23,456"},
		{"1234567890", "1,23,45,67,890"},
	}

	for _, tt := range tests {
		if got := applyIndianGrouping(tt.input); got != tt.expect {
			t.Errorf("applyIndianGrouping(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
