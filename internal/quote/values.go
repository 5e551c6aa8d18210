package quote

import "net/url"

// Value returns the form's current value for field as it would be submitted.
// Checked boxes read "on"; unchecked ones read "".
func (f Form) Value(field Field) string {
	switch field {
	case FieldClientName:
		return f.ClientName
	case FieldAddress:
		return f.Address
	case FieldPhone:
		return f.Phone
	case FieldDate:
		return f.Date
	case FieldQuoteRef:
		return f.QuoteRef
	case FieldCategory:
		return string(f.Category)
	case FieldSystemSize:
		return f.SystemSize
	case FieldPanelBrand:
		return f.PanelBrand
	case FieldPanelWattage:
		return f.PanelWattage
	case FieldInverterBrand:
		return f.InverterBrand
	case FieldInverterCapacity:
		return f.InverterCapacity
	case FieldInverterType:
		return f.InverterType
	case FieldStructureType:
		return f.StructureType
	case FieldUseManualCost:
		return checkedValue(f.UseManualCost)
	case FieldManualTotalCost:
		return f.ManualTotalCost
	case FieldSubsidyAmount:
		return f.SubsidyAmount
	case FieldIncludeGST:
		return checkedValue(f.IncludeGST)
	case FieldGSTRate:
		return f.GSTRate
	case FieldBankAccountName:
		return f.BankAccountName
	case FieldBankName:
		return f.BankName
	case FieldBankAccountNumber:
		return f.BankAccountNumber
	case FieldBankIFSCCode:
		return f.BankIFSCCode
	case FieldBankBranch:
		return f.BankBranch
	case FieldBankAccountType:
		return f.BankAccountType
	}
	return ""
}

func checkedValue(b bool) string {
	if b {
		return "on"
	}
	return ""
}

// ChangesFromValues turns a full editor submission into the changes it makes to f,
// in field declaration order. Fields whose submitted value equals the current
// value are skipped, so an untouched subsidy input does not overwrite the
// amount recomputed by an earlier size or category change.
// Absent checkboxes count as unchecked; other absent fields are left alone.
func ChangesFromValues(f Form, values url.Values) []Change {
	changes := make([]Change, 0)
	for _, field := range Fields {
		kind := fieldSpecs[field].kind

		var value string
		if kind == KindCheckbox {
			value = checkedValue(parseChecked(values.Get(string(field))))
		} else {
			if _, ok := values[string(field)]; !ok {
				continue
			}
			value = values.Get(string(field))
		}

		if value == f.Value(field) {
			continue
		}
		changes = append(changes, Change{Field: field, Value: value, Kind: kind})
	}
	return changes
}
