package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/solarquote/internal/document"
)

const (
	bomSheet        = "Bill of Materials"
	commercialSheet = "Commercial"
)

// ExcelExporter writes the bill of materials and commercial offer as a workbook.
type ExcelExporter struct{}

// NewExcelExporter returns an XLSX exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

type excelStyles struct {
	title, header, body, label, total int
}

// Export renders doc as an XLSX workbook. Layout options other than the
// filename do not apply to spreadsheets.
func (e *ExcelExporter) Export(ctx context.Context, doc document.Document, _ Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), bomSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(commercialSheet); err != nil {
		return nil, fmt.Errorf("create commercial sheet: %w", err)
	}

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeBOMSheet(f, doc, styles); err != nil {
		return nil, err
	}
	if err := writeCommercialSheet(f, doc, styles); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "#1E3A8A"},
	}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}

	if s.body, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create body style: %w", err)
	}

	if s.label, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 10},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create label style: %w", err)
	}

	if s.total, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
		Border: thinBorders(),
	}); err != nil {
		return s, fmt.Errorf("create total style: %w", err)
	}

	return s, nil
}

func writeBOMSheet(f *excelize.File, doc document.Document, s excelStyles) error {
	columns := []string{"A", "B", "C", "D"}
	widths := []float64{24, 28, 36, 14}
	for i, c := range columns {
		if err := f.SetColWidth(bomSheet, c, c, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	if err := f.MergeCell(bomSheet, "A1", "D1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(bomSheet, "A1", sanitizeExcelCell(doc.Letterhead.Name))
	f.SetCellStyle(bomSheet, "A1", "A1", s.title)
	f.SetCellValue(bomSheet, "A2", "Quotation Ref:")
	f.SetCellValue(bomSheet, "B2", sanitizeExcelCell(doc.Ref))
	f.SetCellValue(bomSheet, "C2", "Date:")
	f.SetCellValue(bomSheet, "D2", sanitizeExcelCell(doc.Date))
	f.SetCellValue(bomSheet, "A3", "Client:")
	f.SetCellValue(bomSheet, "B3", sanitizeExcelCell(doc.Customer.Name))

	headers := []string{"Component", "Brand / Make", "Specification", "Quantity"}
	for i, h := range headers {
		f.SetCellValue(bomSheet, fmt.Sprintf("%s5", columns[i]), h)
	}
	f.SetCellStyle(bomSheet, "A5", "D5", s.header)

	r := 6
	for _, line := range doc.Technical.BOM {
		values := []string{line.Component, line.Brand, line.Specification, line.Quantity}
		for i, v := range values {
			f.SetCellValue(bomSheet, fmt.Sprintf("%s%d", columns[i], r), sanitizeExcelCell(v))
		}
		f.SetCellStyle(bomSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("D%d", r), s.body)
		r++
	}
	return nil
}

func writeCommercialSheet(f *excelize.File, doc document.Document, s excelStyles) error {
	if err := f.SetColWidth(commercialSheet, "A", "A", 44); err != nil {
		return fmt.Errorf("set col width A: %w", err)
	}
	if err := f.SetColWidth(commercialSheet, "B", "B", 22); err != nil {
		return fmt.Errorf("set col width B: %w", err)
	}

	r := 1
	put := func(label, value string, style int) {
		f.SetCellValue(commercialSheet, fmt.Sprintf("A%d", r), sanitizeExcelCell(label))
		f.SetCellValue(commercialSheet, fmt.Sprintf("B%d", r), sanitizeExcelCell(value))
		f.SetCellStyle(commercialSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("B%d", r), style)
		r++
	}

	f.SetCellValue(commercialSheet, "A1", "Commercial Offer")
	f.SetCellStyle(commercialSheet, "A1", "A1", s.title)
	r = 3

	put("System Capacity", doc.Commercial.Capacity, s.label)
	for _, l := range doc.Commercial.Lines {
		style := s.body
		if l.Total {
			style = s.total
		}
		put(l.Label, l.Amount, style)
	}
	put("Net Payable", doc.Commercial.NetPayable, s.total)

	r++
	put("Payment Schedule", "", s.header)
	for _, p := range doc.Commercial.PaymentSchedule {
		put(p.Label, p.Value, s.body)
	}

	r++
	put("Warranty", "", s.header)
	for _, w := range doc.Commercial.Warranty {
		put(w.Title, w.Text, s.body)
	}

	r++
	put("Bank Details", "", s.header)
	for _, p := range doc.Summary.Bank {
		put(p.Label, p.Value, s.body)
	}
	return nil
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
