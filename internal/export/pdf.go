package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Simplici0/solarquote/internal/document"
)

var (
	navy      = &props.Color{Red: 30, Green: 58, Blue: 138}
	grey      = &props.Color{Red: 100, Green: 100, Blue: 100}
	white     = &props.Color{Red: 255, Green: 255, Blue: 255}
	green     = &props.Color{Red: 21, Green: 128, Blue: 61}
	headerBg  = &props.Color{Red: 33, Green: 37, Blue: 41}
	altBg     = &props.Color{Red: 248, Green: 249, Blue: 250}
	summaryBg = &props.Color{Red: 245, Green: 245, Blue: 245}
)

// PDFExporter renders quotations with maroto.
type PDFExporter struct{}

// NewPDFExporter returns a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// LoadPDF returns a PDF exporter once it has rendered a blank quotation.
func LoadPDF(ctx context.Context) (Exporter, error) {
	e := NewPDFExporter()
	if _, err := e.Export(ctx, document.Document{}, DefaultOptions("")); err != nil {
		return nil, fmt.Errorf("warm up pdf exporter: %w", err)
	}
	return e, nil
}

// Export renders doc as a PDF with one page per section.
func (e *PDFExporter) Export(ctx context.Context, doc document.Document, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := maroto.New(pdfConfig(opts))

	sections := [][]core.Row{
		summaryRows(doc),
		technicalRows(doc),
		commercialRows(doc),
	}

	if opts.PageBreak == BreakAvoidAll {
		for _, rows := range sections {
			m.AddRows(rows...)
		}
	} else {
		for _, rows := range sections {
			m.AddPages(page.New().Add(rows...))
		}
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func pdfConfig(opts Options) *entity.Config {
	margin := opts.Margin
	if margin <= 0 {
		margin = 10
	}

	o := orientation.Vertical
	if opts.Orientation == Landscape {
		o = orientation.Horizontal
	}

	return config.NewBuilder().
		WithOrientation(o).
		WithPageSize(pageSize(opts.PageSize)).
		WithLeftMargin(margin).
		WithTopMargin(margin).
		WithRightMargin(margin).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()
}

func pageSize(raw string) pagesize.Type {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "LETTER":
		return pagesize.Letter
	case "LEGAL":
		return pagesize.Legal
	default:
		return pagesize.A4
	}
}

func letterheadRows(doc document.Document) []core.Row {
	lh := doc.Letterhead
	contact := joinNonEmpty([]string{lh.Phone, lh.Email}, " | ")

	return []core.Row{
		row.New(10).Add(
			col.New(8).Add(text.New(pdfText(lh.Name), props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: navy,
			})),
			col.New(4).Add(text.New("QUOTATION", props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: headerBg,
			})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New(pdfText(lh.Tagline), props.Text{Size: 8, Align: align.Left, Color: grey})),
			col.New(4).Add(text.New("Ref: "+pdfText(doc.Ref), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New(pdfText(joinNonEmpty([]string{lh.Address, contact}, " | ")), props.Text{Size: 7, Align: align.Left, Color: grey})),
			col.New(4).Add(text.New("Date: "+pdfText(doc.Date), props.Text{Size: 9, Align: align.Right})),
		),
		row.New(4),
	}
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: navy,
		})),
	)
}

func paragraph(s string, height float64) core.Row {
	return row.New(height).Add(
		col.New(12).Add(text.New(pdfText(s), props.Text{Size: 8, Align: align.Left})),
	)
}

func pairRows(pairs []document.Pair) []core.Row {
	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: grey}
	valueStyle := props.Text{Size: 8, Align: align.Left}

	rows := make([]core.Row, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		cols := []core.Col{
			col.New(3).Add(text.New(pairs[i].Label+":", labelStyle)),
			col.New(3).Add(text.New(pdfText(pairs[i].Value), valueStyle)),
		}
		if i+1 < len(pairs) {
			cols = append(cols,
				col.New(3).Add(text.New(pairs[i+1].Label+":", labelStyle)),
				col.New(3).Add(text.New(pdfText(pairs[i+1].Value), valueStyle)),
			)
		}
		rows = append(rows, row.New(6).Add(cols...))
	}
	return rows
}

func summaryRows(doc document.Document) []core.Row {
	rows := letterheadRows(doc)

	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: grey}
	rows = append(rows,
		row.New(5).Add(col.New(12).Add(text.New("QUOTATION FOR", label))),
		row.New(8).Add(col.New(12).Add(text.New(pdfText(doc.Customer.Name), props.Text{Size: 13, Style: fontstyle.Bold, Color: navy}))),
		row.New(5).Add(col.New(12).Add(text.New(pdfText(doc.Customer.Address), props.Text{Size: 8}))),
		row.New(5).Add(col.New(12).Add(text.New(pdfText(doc.Customer.Phone), props.Text{Size: 8}))),
		row.New(4),
		row.New(7).Add(col.New(12).Add(text.New(pdfText(doc.Summary.Subject), props.Text{Size: 9, Style: fontstyle.Bold}))),
		paragraph(doc.Summary.Greeting, 6),
	)
	for _, p := range doc.Summary.Intro {
		rows = append(rows, paragraph(p, 9))
	}

	highlightLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: grey}
	highlightValue := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Center, Color: navy}
	labels := make([]core.Col, 0, len(doc.Summary.Highlights))
	values := make([]core.Col, 0, len(doc.Summary.Highlights))
	width := 12 / max(len(doc.Summary.Highlights), 1)
	for _, h := range doc.Summary.Highlights {
		labels = append(labels, col.New(width).Add(text.New(h.Label, highlightLabel)).WithStyle(&props.Cell{BackgroundColor: summaryBg}))
		values = append(values, col.New(width).Add(text.New(pdfText(h.Value), highlightValue)).WithStyle(&props.Cell{BackgroundColor: summaryBg}))
	}
	rows = append(rows,
		row.New(4),
		sectionTitle("System Highlights"),
		row.New(6).Add(labels...),
		row.New(9).Add(values...),
		row.New(6),
		sectionTitle("Bank Details"),
	)
	rows = append(rows, pairRows(doc.Summary.Bank)...)
	return rows
}

func technicalRows(doc document.Document) []core.Row {
	rows := letterheadRows(doc)
	rows = append(rows, sectionTitle("Technical Specification & Bill of Materials"))

	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: white}
	headerCell := props.Cell{BackgroundColor: headerBg}
	rows = append(rows, row.New(8).Add(
		col.New(3).Add(text.New("Component", headerText)).WithStyle(&headerCell),
		col.New(3).Add(text.New("Brand / Make", headerText)).WithStyle(&headerCell),
		col.New(4).Add(text.New("Specification", headerText)).WithStyle(&headerCell),
		col.New(2).Add(text.New("Quantity", headerText)).WithStyle(&headerCell),
	))

	body := props.Text{Size: 7, Align: align.Left}
	for i, line := range doc.Technical.BOM {
		cols := []core.Col{
			col.New(3).Add(text.New(pdfText(line.Component), props.Text{Size: 7, Style: fontstyle.Bold})),
			col.New(3).Add(text.New(pdfText(line.Brand), body)),
			col.New(4).Add(text.New(pdfText(line.Specification), body)),
			col.New(2).Add(text.New(pdfText(line.Quantity), body)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: altBg})
			}
		}
		rows = append(rows, row.New(7).Add(cols...))
	}

	rows = append(rows, row.New(4), sectionTitle("Scope of Work"))
	for _, item := range doc.Technical.Scope {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(item.Title, props.Text{Size: 8, Style: fontstyle.Bold})),
			col.New(9).Add(text.New(item.Text, props.Text{Size: 8})),
		))
	}

	rows = append(rows, row.New(4), sectionTitle("Exclusions"))
	for _, ex := range doc.Technical.Exclusions {
		rows = append(rows, paragraph("- "+ex, 6))
	}
	return rows
}

func commercialRows(doc document.Document) []core.Row {
	rows := letterheadRows(doc)
	rows = append(rows,
		sectionTitle("Commercial Offer"),
		row.New(7).Add(
			col.New(9).Add(text.New("System Capacity", props.Text{Size: 8, Style: fontstyle.Bold})),
			col.New(3).Add(text.New(pdfText(doc.Commercial.Capacity), props.Text{Size: 8, Align: align.Right})),
		),
	)

	summaryCell := &props.Cell{BackgroundColor: summaryBg}
	for _, l := range doc.Commercial.Lines {
		labelStyle := props.Text{Size: 8, Align: align.Left}
		valueStyle := props.Text{Size: 8, Align: align.Right}
		if l.Total {
			labelStyle.Style, valueStyle.Style = fontstyle.Bold, fontstyle.Bold
		}
		if l.Deducted {
			labelStyle.Color, valueStyle.Color = green, green
		}
		rows = append(rows, row.New(7).Add(
			col.New(9).Add(text.New(pdfText(l.Label), labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(pdfText(l.Amount), valueStyle)).WithStyle(summaryCell),
		))
		if l.Note != "" {
			rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(l.Note, props.Text{Size: 6, Color: grey}))))
		}
	}

	grandCell := &props.Cell{BackgroundColor: headerBg}
	grand := props.Text{Size: 10, Style: fontstyle.Bold, Color: white}
	grandRight := grand
	grandRight.Align = align.Right
	rows = append(rows,
		row.New(9).Add(
			col.New(9).Add(text.New("Net Payable", grand)).WithStyle(grandCell),
			col.New(3).Add(text.New(pdfText(doc.Commercial.NetPayable), grandRight)).WithStyle(grandCell),
		),
		row.New(4),
		sectionTitle("Payment Schedule"),
	)
	rows = append(rows, pairRows(doc.Commercial.PaymentSchedule)...)

	rows = append(rows, row.New(3), sectionTitle("Warranty"))
	for _, w := range doc.Commercial.Warranty {
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(w.Title, props.Text{Size: 8, Style: fontstyle.Bold})),
			col.New(9).Add(text.New(w.Text, props.Text{Size: 8})),
		))
	}

	rows = append(rows, row.New(3), sectionTitle("Terms & Conditions"))
	for i, term := range doc.Commercial.Terms {
		rows = append(rows, paragraph(fmt.Sprintf("%d. %s", i+1, term), 6))
	}

	return append(rows, signatureRows(doc.Commercial.Signatures)...)
}

func signatureRows(labels []string) []core.Row {
	if len(labels) == 0 {
		return nil
	}
	width := 12 / len(labels)
	lineStyle := props.Text{Size: 8, Align: align.Center, Color: grey}
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: grey}

	lines := make([]core.Col, 0, len(labels))
	names := make([]core.Col, 0, len(labels))
	for _, l := range labels {
		lines = append(lines, col.New(width).Add(text.New("____________________________", lineStyle)))
		names = append(names, col.New(width).Add(text.New(l, labelStyle)))
	}
	return []core.Row{row.New(14), row.New(6).Add(lines...), row.New(7).Add(names...)}
}

func joinNonEmpty(parts []string, sep string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sep)
}
