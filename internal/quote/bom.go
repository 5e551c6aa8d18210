package quote

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BOMLine is one row of the bill of materials.
type BOMLine struct {
	Component     string
	Brand         string
	Specification string
	Quantity      string
}

// EffectiveWattage parses a panel wattage given as a single number or a
// "low-high" range, returning the range average. It reports false for
// anything that does not yield a positive wattage.
func EffectiveWattage(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if low, high, ok := strings.Cut(raw, "-"); ok && low != "" {
		lo, errLo := strconv.ParseFloat(strings.TrimSpace(low), 64)
		hi, errHi := strconv.ParseFloat(strings.TrimSpace(high), 64)
		if errLo != nil || errHi != nil {
			return 0, false
		}
		avg := (lo + hi) / 2
		return avg, positiveFinite(avg)
	}

	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || !positiveFinite(w) {
		return 0, false
	}
	return w, true
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// PanelCount returns how many panels of the given wattage cover a system of
// the given size in kW. Unusable inputs give 0.
func PanelCount(systemSize, panelWattage string) int {
	size, err := strconv.ParseFloat(strings.TrimSpace(systemSize), 64)
	if err != nil || !positiveFinite(size) {
		return 0
	}
	watts, ok := EffectiveWattage(panelWattage)
	if !ok {
		return 0
	}
	n := math.Ceil(size * 1000 / watts)
	if n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// BillOfMaterials lists the components quoted for the form's system.
func BillOfMaterials(f Form) []BOMLine {
	inverterCapacity := strings.TrimSpace(f.InverterCapacity)
	if inverterCapacity == "" {
		inverterCapacity = strings.TrimSpace(f.SystemSize)
	}

	return []BOMLine{
		{
			Component:     "Solar Modules",
			Brand:         f.PanelBrand,
			Specification: fmt.Sprintf("Mono PERC / TOPCon, %s Wp", strings.TrimSpace(f.PanelWattage)),
			Quantity:      fmt.Sprintf("%d Nos", PanelCount(f.SystemSize, f.PanelWattage)),
		},
		{
			Component:     "Solar Inverter",
			Brand:         f.InverterBrand,
			Specification: fmt.Sprintf("%s kW %s", inverterCapacity, f.InverterType),
			Quantity:      "1 No",
		},
		{
			Component:     "Mounting Structure",
			Brand:         "Hot Dip Galvanized",
			Specification: f.StructureType,
			Quantity:      "1 Set",
		},
		{
			Component:     "DC Cables",
			Specification: "Polycab / Siechem (UV Protected, Tinned Copper) 4sqmm",
			Quantity:      "Approx 30m",
		},
		{
			Component:     "AC Cables",
			Specification: "Polycab / Havells / Greatwhite (Copper Armored)",
			Quantity:      "Approx 20m",
		},
		{
			Component:     "ACDB / DCDB",
			Specification: "Polycarbonate Box with SPD, MCB, Fuse",
			Quantity:      "1 Set",
		},
		{
			Component:     "Earthing Kit",
			Specification: "Maintenance Free Chemical Earthing (3 Electrodes)",
			Quantity:      "3 Nos",
		},
		{
			Component:     "Lightning Arrester",
			Specification: "Conventional Copper Bonded ESE Type",
			Quantity:      "1 No",
		},
	}
}
