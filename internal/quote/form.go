// Package quote holds the quotation form state and the rules that change it.
package quote

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Simplici0/solarquote/internal/pricing"
)

// Form is the editable state of one quotation. It is a plain value: updates
// produce a new Form through Apply.
type Form struct {
	// Customer
	ClientName string
	Address    string
	Phone      string
	Date       string
	QuoteRef   string

	Category pricing.Category

	// Technical
	SystemSize       string
	PanelBrand       string
	PanelWattage     string
	InverterBrand    string
	InverterCapacity string
	InverterType     string
	StructureType    string

	// Pricing controls
	UseManualCost   bool
	ManualTotalCost string
	SubsidyAmount   string
	IncludeGST      bool
	GSTRate         string

	// Bank
	BankAccountName   string
	BankName          string
	BankAccountNumber string
	BankIFSCCode      string
	BankBranch        string
	BankAccountType   string
}

// NewForm returns a form populated with the session-start defaults.
func NewForm(now time.Time) Form {
	const defaultSize = "3"
	return Form{
		Date:             now.Format("2006-01-02"),
		QuoteRef:         NewQuoteRef(),
		Category:         pricing.Residential,
		SystemSize:       defaultSize,
		PanelBrand:       "Waree / Adani / Goldi",
		PanelWattage:     "540",
		InverterBrand:    "Growatt / Solis / Sofar",
		InverterCapacity: defaultSize,
		InverterType:     InverterTypes[0],
		StructureType:    StructureTypes[0],
		SubsidyAmount:    pricing.SubsidyFor(defaultSize).String(),
		IncludeGST:       true,
		GSTRate:          pricing.DefaultGSTRate,
		BankAccountType:  BankAccountTypes[0],
	}
}

// NewQuoteRef returns a reference of the form JMS-<0..9999>.
func NewQuoteRef() string {
	return fmt.Sprintf("JMS-%d", rand.IntN(10000))
}

// Financials derives the pricing totals from the current form.
func (f Form) Financials() pricing.Financials {
	return pricing.Calculate(pricing.Input{
		Category:        f.Category,
		SystemSize:      f.SystemSize,
		UseManualCost:   f.UseManualCost,
		ManualTotalCost: f.ManualTotalCost,
	})
}

// IsResidential reports whether subsidy applies to this form.
func (f Form) IsResidential() bool {
	return f.Category == pricing.Residential
}
