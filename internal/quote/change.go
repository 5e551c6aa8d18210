package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/solarquote/internal/pricing"
)

var (
	// ErrUnknownField is returned for a change naming no form attribute.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidOption is returned when a selector receives a value outside its options.
	ErrInvalidOption = errors.New("invalid option")
	// ErrKindMismatch is returned when a checkbox value targets a text field or the reverse.
	ErrKindMismatch = errors.New("input kind does not match field")
)

// Field names one form attribute. The values match the editor's input names.
type Field string

const (
	FieldClientName        Field = "client_name"
	FieldAddress           Field = "address"
	FieldPhone             Field = "phone"
	FieldDate              Field = "date"
	FieldQuoteRef          Field = "quote_ref"
	FieldCategory          Field = "category"
	FieldSystemSize        Field = "system_size"
	FieldPanelBrand        Field = "panel_brand"
	FieldPanelWattage      Field = "panel_wattage"
	FieldInverterBrand     Field = "inverter_brand"
	FieldInverterCapacity  Field = "inverter_capacity"
	FieldInverterType      Field = "inverter_type"
	FieldStructureType     Field = "structure_type"
	FieldUseManualCost     Field = "use_manual_cost"
	FieldManualTotalCost   Field = "manual_total_cost"
	FieldSubsidyAmount     Field = "subsidy_amount"
	FieldIncludeGST        Field = "include_gst"
	FieldGSTRate           Field = "gst_rate"
	FieldBankAccountName   Field = "bank_account_name"
	FieldBankName          Field = "bank_name"
	FieldBankAccountNumber Field = "bank_account_number"
	FieldBankIFSCCode      Field = "bank_ifsc_code"
	FieldBankBranch        Field = "bank_branch"
	FieldBankAccountType   Field = "bank_account_type"
)

// Kind is the kind of input control a change came from.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
)

// Change is a single field edit.
type Change struct {
	Field Field
	Value string
	Kind  Kind
}

type fieldSpec struct {
	kind    Kind
	options func() []string
	text    func(*Form, string)
	check   func(*Form, bool)
}

// Fields lists every form attribute in declaration order. ApplyAll uses this order.
var Fields = []Field{
	FieldClientName, FieldAddress, FieldPhone, FieldDate, FieldQuoteRef,
	FieldCategory, FieldSystemSize, FieldPanelBrand, FieldPanelWattage,
	FieldInverterBrand, FieldInverterCapacity, FieldInverterType, FieldStructureType,
	FieldUseManualCost, FieldManualTotalCost, FieldSubsidyAmount, FieldIncludeGST, FieldGSTRate,
	FieldBankAccountName, FieldBankName, FieldBankAccountNumber, FieldBankIFSCCode,
	FieldBankBranch, FieldBankAccountType,
}

var fieldSpecs = map[Field]fieldSpec{
	FieldClientName: {kind: KindText, text: func(f *Form, v string) { f.ClientName = v }},
	FieldAddress:    {kind: KindText, text: func(f *Form, v string) { f.Address = v }},
	FieldPhone:      {kind: KindText, text: func(f *Form, v string) { f.Phone = v }},
	FieldDate:       {kind: KindDate, text: func(f *Form, v string) { f.Date = v }},
	FieldQuoteRef:   {kind: KindText, text: func(f *Form, v string) { f.QuoteRef = v }},
	FieldCategory: {
		kind:    KindSelect,
		options: categoryOptions,
		text:    func(f *Form, v string) { f.Category = pricing.Category(v) },
	},
	FieldSystemSize:       {kind: KindNumber, text: func(f *Form, v string) { f.SystemSize = v }},
	FieldPanelBrand:       {kind: KindText, text: func(f *Form, v string) { f.PanelBrand = v }},
	FieldPanelWattage:     {kind: KindText, text: func(f *Form, v string) { f.PanelWattage = v }},
	FieldInverterBrand:    {kind: KindText, text: func(f *Form, v string) { f.InverterBrand = v }},
	FieldInverterCapacity: {kind: KindText, text: func(f *Form, v string) { f.InverterCapacity = v }},
	FieldInverterType: {
		kind:    KindSelect,
		options: func() []string { return InverterTypes },
		text:    func(f *Form, v string) { f.InverterType = v },
	},
	FieldStructureType: {
		kind:    KindSelect,
		options: func() []string { return StructureTypes },
		text:    func(f *Form, v string) { f.StructureType = v },
	},
	FieldUseManualCost:     {kind: KindCheckbox, check: func(f *Form, v bool) { f.UseManualCost = v }},
	FieldManualTotalCost:   {kind: KindNumber, text: func(f *Form, v string) { f.ManualTotalCost = v }},
	FieldSubsidyAmount:     {kind: KindNumber, text: func(f *Form, v string) { f.SubsidyAmount = v }},
	FieldIncludeGST:        {kind: KindCheckbox, check: func(f *Form, v bool) { f.IncludeGST = v }},
	FieldGSTRate:           {kind: KindNumber, text: func(f *Form, v string) { f.GSTRate = v }},
	FieldBankAccountName:   {kind: KindText, text: func(f *Form, v string) { f.BankAccountName = v }},
	FieldBankName:          {kind: KindText, text: func(f *Form, v string) { f.BankName = v }},
	FieldBankAccountNumber: {kind: KindText, text: func(f *Form, v string) { f.BankAccountNumber = v }},
	FieldBankIFSCCode:      {kind: KindText, text: func(f *Form, v string) { f.BankIFSCCode = v }},
	FieldBankBranch:        {kind: KindText, text: func(f *Form, v string) { f.BankBranch = v }},
	FieldBankAccountType: {
		kind:    KindSelect,
		options: func() []string { return BankAccountTypes },
		text:    func(f *Form, v string) { f.BankAccountType = v },
	},
}

func categoryOptions() []string {
	options := make([]string, 0, len(pricing.Categories))
	for _, c := range pricing.Categories {
		options = append(options, string(c))
	}
	return options
}

// OptionsOf returns the choices offered for a selector field, or nil.
func OptionsOf(field Field) []string {
	spec, ok := fieldSpecs[field]
	if !ok || spec.options == nil {
		return nil
	}
	return spec.options()
}

// KindOf returns the input kind a field is edited with.
func KindOf(field Field) (Kind, bool) {
	spec, ok := fieldSpecs[field]
	return spec.kind, ok
}

// Apply returns f with the change applied. f itself is never modified.
// On error the returned form equals f.
func Apply(f Form, c Change) (Form, error) {
	spec, ok := fieldSpecs[c.Field]
	if !ok {
		return f, fmt.Errorf("%w: %q", ErrUnknownField, c.Field)
	}
	kind := c.Kind
	if kind == "" {
		kind = spec.kind
	}
	if (kind == KindCheckbox) != (spec.kind == KindCheckbox) {
		return f, fmt.Errorf("%w: %s sent as %s", ErrKindMismatch, c.Field, kind)
	}

	next := f
	if spec.kind == KindCheckbox {
		spec.check(&next, parseChecked(c.Value))
		return next, nil
	}

	if spec.options != nil && !isOption(spec.options(), c.Value) {
		return f, fmt.Errorf("%w: %s=%q", ErrInvalidOption, c.Field, c.Value)
	}
	spec.text(&next, c.Value)

	switch c.Field {
	case FieldSystemSize:
		if next.Category == pricing.Residential {
			next.SubsidyAmount = pricing.SubsidyFor(next.SystemSize).String()
		}
	case FieldCategory:
		if next.Category == pricing.Commercial {
			next.SubsidyAmount = "0"
		} else {
			next.SubsidyAmount = pricing.SubsidyFor(next.SystemSize).String()
		}
	case FieldSubsidyAmount:
		if next.Category == pricing.Commercial {
			next.SubsidyAmount = "0"
		}
	}

	return next, nil
}

// ApplyAll applies changes in order, stopping at the first error.
func ApplyAll(f Form, changes []Change) (Form, error) {
	for _, c := range changes {
		next, err := Apply(f, c)
		if err != nil {
			return f, err
		}
		f = next
	}
	return f, nil
}

// parseChecked interprets checkbox submissions. Browsers send "on" for a checked box.
func parseChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "1", "true", "yes", "checked":
		return true
	}
	return false
}
