package export

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/solarquote/internal/document"
	"github.com/Simplici0/solarquote/internal/profile"
	"github.com/Simplici0/solarquote/internal/quote"
)

func sampleDocument(t *testing.T) document.Document {
	t.Helper()
	f := quote.NewForm(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	f.ClientName = "Ravi <b>Patil</b>"
	f.Address = "=HYPERLINK(\"http://evil\")"
	return document.Build(f, f.Financials(), profile.Default)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ravi Patil", "Ravi_Patil_Solar_Quotation.pdf"},
		{"  Asha   M  Joshi ", "Asha_M_Joshi_Solar_Quotation.pdf"},
		{"", "Client_Solar_Quotation.pdf"},
		{"   ", "Client_Solar_Quotation.pdf"},
		{"../../etc/passwd", "etcpasswd_Solar_Quotation.pdf"},
		{"A/B\\C\"D", "ABCD_Solar_Quotation.pdf"},
		{"अमित", "Client_Solar_Quotation.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.in); got != tt.want {
			t.Fatalf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithExtension(t *testing.T) {
	if got := WithExtension("Ravi_Solar_Quotation.pdf", ".xlsx"); got != "Ravi_Solar_Quotation.xlsx" {
		t.Fatalf("WithExtension = %q", got)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := map[string]string{
		"=SUM(A1:A2)":        "'=SUM(A1:A2)",
		"+91 99600":          "'+91 99600",
		"@cmd":               "'@cmd",
		"<script>x</script>": "",
		"<b>Ravi</b>":        "Ravi",
		"Plain & simple":     "Plain & simple",
	}
	for in, want := range tests {
		if got := sanitizeExcelCell(in); got != want {
			t.Fatalf("sanitizeExcelCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPDFExporter_ProducesPDF(t *testing.T) {
	out, err := NewPDFExporter().Export(context.Background(), sampleDocument(t), DefaultOptions("Ravi Patil"))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestPDFExporter_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPDFExporter().Export(ctx, sampleDocument(t), DefaultOptions("")); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExcelExporter_WritesSheets(t *testing.T) {
	doc := sampleDocument(t)
	out, err := NewExcelExporter().Export(context.Background(), doc, DefaultOptions(""))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 || got[0] != bomSheet || got[1] != commercialSheet {
		t.Fatalf("sheets = %v", got)
	}

	client, _ := f.GetCellValue(bomSheet, "B3")
	if client != "Ravi Patil" {
		t.Fatalf("client cell = %q", client)
	}
	component, _ := f.GetCellValue(bomSheet, "A6")
	if component != doc.Technical.BOM[0].Component {
		t.Fatalf("first BOM component = %q", component)
	}

	rows, err := f.GetRows(commercialSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	found := false
	for _, r := range rows {
		if len(r) == 2 && r[0] == "Net Payable" && r[1] == "₹1,12,000" {
			found = true
		}
	}
	if !found {
		t.Fatalf("net payable row missing: %v", rows)
	}
}

func TestService_NotReadyUntilLoaded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	svc := NewService("fake", func(ctx context.Context) (Exporter, error) {
		<-release
		return ExporterFunc(func(context.Context, document.Document, Options) ([]byte, error) {
			calls.Add(1)
			return []byte("ok"), nil
		}), nil
	})

	if svc.Ready() {
		t.Fatalf("service ready before load")
	}
	if _, err := svc.Export(context.Background(), document.Document{}, Options{}); !errors.Is(err, ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}

	done := make(chan error, 1)
	go func() { done <- svc.Load(context.Background()) }()
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Load: %v", err)
	}

	out, err := svc.Export(context.Background(), document.Document{}, Options{})
	if err != nil || string(out) != "ok" {
		t.Fatalf("Export = %q, %v", out, err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("exporter called %d times", calls.Load())
	}
}

func TestService_LoadFailureStaysNotReady(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService("fake", func(context.Context) (Exporter, error) { return nil, boom })

	if err := svc.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Load err = %v", err)
	}
	if svc.Ready() {
		t.Fatalf("failed load reported ready")
	}
}

func TestService_WrapsExportFailure(t *testing.T) {
	boom := errors.New("renderer crashed")
	svc := NewReadyService("pdf", ExporterFunc(func(context.Context, document.Document, Options) ([]byte, error) {
		return nil, boom
	}))

	if _, err := svc.Export(context.Background(), document.Document{}, Options{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestLoadPDF(t *testing.T) {
	e, err := LoadPDF(context.Background())
	if err != nil || e == nil {
		t.Fatalf("LoadPDF = %v, %v", e, err)
	}
}
