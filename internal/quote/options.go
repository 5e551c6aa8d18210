package quote

import "slices"

// Option lists offered by the editor's selectors.
var (
	StructureTypes = []string{
		"Standard (Low Height)",
		"Elevated (High Rise)",
		"Tin Shed Flush Mount",
		"3000mm Ground Clearance (With Walkway)",
	}
	InverterTypes    = []string{"On-Grid", "Hybrid", "Off-Grid"}
	BankAccountTypes = []string{"Current Account", "Savings Account", "Business Account"}
)

func isOption(options []string, value string) bool {
	return slices.Contains(options, value)
}
