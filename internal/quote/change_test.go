package quote

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/Simplici0/solarquote/internal/pricing"
)

func newTestForm() Form {
	return NewForm(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
}

func mustApply(t *testing.T, f Form, c Change) Form {
	t.Helper()
	next, err := Apply(f, c)
	if err != nil {
		t.Fatalf("Apply(%+v): %v", c, err)
	}
	return next
}

func TestNewForm_Defaults(t *testing.T) {
	f := newTestForm()

	if f.Date != "2026-03-14" {
		t.Fatalf("Date = %q", f.Date)
	}
	if f.Category != pricing.Residential || f.SystemSize != "3" || f.PanelWattage != "540" {
		t.Fatalf("unexpected technical defaults: %+v", f)
	}
	if f.SubsidyAmount != "78000" {
		t.Fatalf("SubsidyAmount = %q, want 78000", f.SubsidyAmount)
	}
	if !f.IncludeGST || f.GSTRate != "13.8" || f.UseManualCost {
		t.Fatalf("unexpected pricing defaults: %+v", f)
	}
	if len(f.QuoteRef) < len("JMS-0") || f.QuoteRef[:4] != "JMS-" {
		t.Fatalf("QuoteRef = %q", f.QuoteRef)
	}
}

func TestApply_StoresRawTextAndLeavesInputUntouched(t *testing.T) {
	f := newTestForm()

	next := mustApply(t, f, Change{Field: FieldClientName, Value: "  Ravi Patil ", Kind: KindText})

	if next.ClientName != "  Ravi Patil " {
		t.Fatalf("ClientName = %q", next.ClientName)
	}
	if f.ClientName != "" {
		t.Fatalf("original form mutated: %q", f.ClientName)
	}
}

func TestApply_CheckboxStoresBoolean(t *testing.T) {
	f := newTestForm()

	on := mustApply(t, f, Change{Field: FieldUseManualCost, Value: "on", Kind: KindCheckbox})
	if !on.UseManualCost {
		t.Fatalf("expected manual cost enabled")
	}
	off := mustApply(t, on, Change{Field: FieldUseManualCost, Value: "", Kind: KindCheckbox})
	if off.UseManualCost {
		t.Fatalf("expected manual cost disabled")
	}
}

func TestApply_SizeChangeRecomputesResidentialSubsidy(t *testing.T) {
	f := newTestForm()

	next := mustApply(t, f, Change{Field: FieldSystemSize, Value: "2", Kind: KindNumber})
	if next.SubsidyAmount != "60000" {
		t.Fatalf("SubsidyAmount = %q, want 60000", next.SubsidyAmount)
	}

	offTable := mustApply(t, next, Change{Field: FieldSystemSize, Value: "15", Kind: KindNumber})
	if offTable.SubsidyAmount != "0" {
		t.Fatalf("SubsidyAmount = %q, want 0", offTable.SubsidyAmount)
	}
}

func TestApply_SizeChangeLeavesCommercialSubsidyAtZero(t *testing.T) {
	f := mustApply(t, newTestForm(), Change{Field: FieldCategory, Value: "Commercial", Kind: KindSelect})

	next := mustApply(t, f, Change{Field: FieldSystemSize, Value: "6", Kind: KindNumber})
	if next.SubsidyAmount != "0" {
		t.Fatalf("SubsidyAmount = %q, want 0", next.SubsidyAmount)
	}
}

func TestApply_CategorySwitchZeroesAndRestoresSubsidy(t *testing.T) {
	for _, size := range []string{"2", "5", "10", "12"} {
		f := mustApply(t, newTestForm(), Change{Field: FieldSystemSize, Value: size, Kind: KindNumber})

		commercial := mustApply(t, f, Change{Field: FieldCategory, Value: "Commercial", Kind: KindSelect})
		if commercial.SubsidyAmount != "0" {
			t.Fatalf("size %s: commercial SubsidyAmount = %q", size, commercial.SubsidyAmount)
		}
		if !commercial.Financials().SubsidyAmount.IsZero() {
			t.Fatalf("size %s: commercial financial subsidy = %s", size, commercial.Financials().SubsidyAmount)
		}

		residential := mustApply(t, commercial, Change{Field: FieldCategory, Value: "Residential", Kind: KindSelect})
		if want := pricing.SubsidyFor(size).String(); residential.SubsidyAmount != want {
			t.Fatalf("size %s: restored SubsidyAmount = %q, want %q", size, residential.SubsidyAmount, want)
		}
	}
}

func TestApply_CommercialSubsidyEditStaysZero(t *testing.T) {
	commercial := mustApply(t, newTestForm(), Change{Field: FieldCategory, Value: "Commercial", Kind: KindSelect})

	next := mustApply(t, commercial, Change{Field: FieldSubsidyAmount, Value: "50000", Kind: KindNumber})
	if next.SubsidyAmount != "0" {
		t.Fatalf("SubsidyAmount = %q, want 0", next.SubsidyAmount)
	}

	residential := mustApply(t, newTestForm(), Change{Field: FieldSubsidyAmount, Value: "50000", Kind: KindNumber})
	if residential.SubsidyAmount != "50000" {
		t.Fatalf("residential SubsidyAmount = %q, want 50000", residential.SubsidyAmount)
	}
}

func TestChangesFromValues_CategorySwitchWithSubsidyEdit(t *testing.T) {
	f := newTestForm()
	values := url.Values{}
	values.Set(string(FieldCategory), "Commercial")
	values.Set(string(FieldSubsidyAmount), "50000")
	if f.IncludeGST {
		values.Set(string(FieldIncludeGST), "on")
	}

	next, err := ApplyAll(f, ChangesFromValues(f, values))
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if next.Category != pricing.Commercial || next.SubsidyAmount != "0" {
		t.Fatalf("category=%s subsidy=%q, want Commercial and 0", next.Category, next.SubsidyAmount)
	}
}

func TestApply_NoOtherCoupling(t *testing.T) {
	f := newTestForm()
	next := mustApply(t, f, Change{Field: FieldPanelWattage, Value: "560-590", Kind: KindText})
	next = mustApply(t, next, Change{Field: FieldManualTotalCost, Value: "1", Kind: KindNumber})

	if next.SubsidyAmount != f.SubsidyAmount || next.SystemSize != f.SystemSize || next.Category != f.Category {
		t.Fatalf("unexpected side-effect: %+v", next)
	}
}

func TestApply_Errors(t *testing.T) {
	f := newTestForm()

	tests := []struct {
		name   string
		change Change
		want   error
	}{
		{"unknown field", Change{Field: "colour", Value: "red"}, ErrUnknownField},
		{"bad category", Change{Field: FieldCategory, Value: "Industrial", Kind: KindSelect}, ErrInvalidOption},
		{"bad inverter type", Change{Field: FieldInverterType, Value: "Micro", Kind: KindSelect}, ErrInvalidOption},
		{"checkbox into text", Change{Field: FieldClientName, Value: "on", Kind: KindCheckbox}, ErrKindMismatch},
		{"text into checkbox", Change{Field: FieldIncludeGST, Value: "on", Kind: KindText}, ErrKindMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Apply(f, tt.change)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if next != f {
				t.Fatalf("form changed on error")
			}
		})
	}
}

func TestApplyAll_StopsAtFirstError(t *testing.T) {
	f := newTestForm()

	next, err := ApplyAll(f, []Change{
		{Field: FieldClientName, Value: "Asha"},
		{Field: FieldCategory, Value: "Nope"},
		{Field: FieldPhone, Value: "9876543210"},
	})
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("err = %v", err)
	}
	if next != f {
		t.Fatalf("expected original form on error")
	}
}

func TestChangesFromValues_SkipsUnchangedFields(t *testing.T) {
	f := newTestForm()

	values := url.Values{}
	for _, field := range Fields {
		if v := f.Value(field); v != "" {
			values.Set(string(field), v)
		}
	}
	values.Set(string(FieldSystemSize), "2")
	values.Set(string(FieldClientName), "Meera Joshi")
	values.Del(string(FieldIncludeGST))

	changes := ChangesFromValues(f, values)
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %+v", changes)
	}

	next, err := ApplyAll(f, changes)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if next.ClientName != "Meera Joshi" || next.SystemSize != "2" || next.IncludeGST {
		t.Fatalf("unexpected form: %+v", next)
	}
	// The stale subsidy input (78000) was unchanged, so the recomputed value stands.
	if next.SubsidyAmount != "60000" {
		t.Fatalf("SubsidyAmount = %q, want 60000", next.SubsidyAmount)
	}
}

func TestOptionsOf(t *testing.T) {
	if got := OptionsOf(FieldCategory); len(got) != 2 || got[0] != "Residential" {
		t.Fatalf("category options = %v", got)
	}
	if got := OptionsOf(FieldStructureType); len(got) != len(StructureTypes) {
		t.Fatalf("structure options = %v", got)
	}
	if OptionsOf(FieldClientName) != nil || OptionsOf("nope") != nil {
		t.Fatalf("expected no options for free-text and unknown fields")
	}
}
