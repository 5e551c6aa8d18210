// Package document assembles the three-page printable quotation from a form.
// The same Document feeds the HTML preview and every exporter.
package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Simplici0/solarquote/internal/pricing"
	"github.com/Simplici0/solarquote/internal/profile"
	"github.com/Simplici0/solarquote/internal/quote"
)

// PageCount is the number of pages every quotation prints on.
const PageCount = 3

const (
	notProvided       = "Not Provided"
	maskedAccount     = "XXXX-XXXX-XXXX"
	maskedIFSC        = "XXXX0000000"
	defaultClientName = "Valued Customer"
)

// Pair is a labelled value.
type Pair struct {
	Label string
	Value string
}

// Item is a titled paragraph.
type Item struct {
	Title string
	Text  string
}

// AmountLine is one row of the price table.
type AmountLine struct {
	Label    string
	Amount   string
	Note     string
	Deducted bool
	Total    bool
}

// Customer is the addressee block.
type Customer struct {
	Name    string
	Address string
	Phone   string
}

// Summary is page 1: executive summary with highlights and bank details.
type Summary struct {
	Subject    string
	Greeting   string
	Intro      []string
	Highlights []Pair
	Bank       []Pair
}

// Technical is page 2: bill of materials and scope.
type Technical struct {
	BOM        []quote.BOMLine
	Scope      []Item
	Exclusions []string
}

// Commercial is page 3: pricing, payment terms and signatures.
type Commercial struct {
	Capacity        string
	Lines           []AmountLine
	NetPayable      string
	PaymentSchedule []Pair
	Warranty        []Item
	Terms           []string
	Signatures      []string
}

// Document is a complete quotation ready to render.
type Document struct {
	Letterhead profile.Profile
	Ref        string
	Date       string
	Customer   Customer
	Category   pricing.Category
	Summary    Summary
	Technical  Technical
	Commercial Commercial
}

// Build assembles the document for f with the totals in fin.
func Build(f quote.Form, fin pricing.Financials, letterhead profile.Profile) Document {
	size := strings.TrimSpace(f.SystemSize)

	return Document{
		Letterhead: letterhead,
		Ref:        f.QuoteRef,
		Date:       f.Date,
		Customer: Customer{
			Name:    orDefault(f.ClientName, defaultClientName),
			Address: f.Address,
			Phone:   f.Phone,
		},
		Category:   f.Category,
		Summary:    buildSummary(f, size, letterhead),
		Technical:  buildTechnical(f),
		Commercial: buildCommercial(f, fin, size, letterhead),
	}
}

func buildSummary(f quote.Form, size string, letterhead profile.Profile) Summary {
	return Summary{
		Subject:  fmt.Sprintf("Subject: Proposal for Installation of %skW Grid-Tied Solar PV System.", size),
		Greeting: "Dear Sir/Madam,",
		Intro: []string{
			fmt.Sprintf("Thank you for your interest in %s. We are pleased to submit our techno-commercial proposal for your requirements.", letterhead.Name),
			"Based on our preliminary assessment, we have designed a system that optimizes energy generation and provides maximum return on investment.",
			"Moving to solar is a significant step towards energy independence and environmental sustainability.",
		},
		Highlights: []Pair{
			{Label: "Plant Capacity", Value: size + " kWp"},
			{Label: "Est. Annual Gen", Value: fmt.Sprintf("~%s Units", humanize.Comma(annualGeneration(size)))},
			{Label: "System Type", Value: f.InverterType},
			{Label: "Warranty", Value: "25 Years*"},
		},
		Bank: []Pair{
			{Label: "Account Name", Value: orDefault(f.BankAccountName, notProvided)},
			{Label: "Bank Name", Value: orDefault(f.BankName, notProvided)},
			{Label: "Account Number", Value: orDefault(f.BankAccountNumber, maskedAccount)},
			{Label: "IFSC Code", Value: strings.ToUpper(orDefault(f.BankIFSCCode, maskedIFSC))},
			{Label: "Branch", Value: orDefault(f.BankBranch, notProvided)},
			{Label: "Account Type", Value: orDefault(f.BankAccountType, quote.BankAccountTypes[0])},
		},
	}
}

// annualGeneration estimates yearly units at 4.5 kWh per kW per day over 300 sunny days.
func annualGeneration(size string) int64 {
	kw, err := strconv.ParseFloat(size, 64)
	if err != nil || !(kw > 0) {
		return 0
	}
	units := math.Round(kw * 4.5 * 300)
	if units > math.MaxInt32 {
		return 0
	}
	return int64(units)
}

func buildTechnical(f quote.Form) Technical {
	return Technical{
		BOM: quote.BillOfMaterials(f),
		Scope: []Item{
			{Title: "Design & Engineering", Text: "Complete layout design and shadowing analysis."},
			{Title: "Supply", Text: "Transport and delivery of all materials to the site."},
			{Title: "Installation", Text: "Mounting structure civil work, module fixing, cabling, and termination."},
			{Title: "Liaisoning", Text: "Handling Net Meter application with DISCOM (MSEB) and Inspection coordination."},
			{Title: "Commissioning", Text: "Testing and final handover of the operational plant."},
		},
		Exclusions: []string{
			"Water supply for cleaning modules.",
			"Internet connection for remote monitoring (Inverter WiFi needs stable signal).",
			"Any major civil changes to the roof if required for stability.",
			"Standard Net Meter Fees (Govt challan) to be paid directly by customer.",
		},
	}
}

func buildCommercial(f quote.Form, fin pricing.Financials, size string, letterhead profile.Profile) Commercial {
	lines := make([]AmountLine, 0, 4)

	if f.IncludeGST {
		rate := pricing.ParseAmount(f.GSTRate)
		base, gst := pricing.SplitGST(fin.TotalCost, rate)
		lines = append(lines,
			AmountLine{Label: "Base Price (Material + Installation)", Amount: pricing.FormatRupees(base)},
			AmountLine{Label: fmt.Sprintf("GST (%s%%)", rate.String()), Amount: pricing.FormatRupees(gst)},
		)
	}

	lines = append(lines, AmountLine{
		Label:  totalLabel(f.IncludeGST),
		Amount: pricing.FormatRupees(fin.TotalCost),
		Total:  true,
	})

	if f.IsResidential() {
		lines = append(lines, AmountLine{
			Label:    "Less: Estimated Govt. Subsidy",
			Amount:   "- " + pricing.FormatRupees(fin.SubsidyAmount),
			Note:     "*Subsidy amount is subject to MNRE guidelines and is credited directly to customer account.",
			Deducted: true,
		})
	}

	return Commercial{
		Capacity:   size + " kW",
		Lines:      lines,
		NetPayable: pricing.FormatRupees(fin.FinalAmount),
		PaymentSchedule: []Pair{
			{Label: "Advance along with PO", Value: "70%"},
			{Label: "After Material Delivery", Value: "20%"},
			{Label: "After Installation", Value: "10%"},
		},
		Warranty: []Item{
			{Title: "Solar Panels", Text: "10 Years Product Warranty, 25 Years Performance."},
			{Title: "Inverter", Text: "Standard 10 Years (Extendable)."},
			{Title: "Installation", Text: "5 Years free service maintenance."},
		},
		Terms: []string{
			"Prices are valid for 15 days from the date of quotation.",
			"Delivery of material within 1-2 weeks from the date of advance payment.",
			"Installation completion depends on site clearance and net-meter availability.",
			fmt.Sprintf("Force Majeure clause applicable. Disputes subject to %s jurisdiction.", letterhead.Jurisdiction),
			"Panel and Inverter brands are subject to availability at the time of order.",
		},
		Signatures: []string{"Customer Acceptance", "Authorized Signatory"},
	}
}

func totalLabel(includeGST bool) string {
	if includeGST {
		return "Total Project Value (incl. GST)"
	}
	return "Total Project Value"
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
