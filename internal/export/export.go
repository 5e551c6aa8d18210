// Package export renders a quotation document into downloadable files.
package export

import (
	"context"
	"errors"

	"github.com/Simplici0/solarquote/internal/document"
)

// ErrNotReady is returned while an exporter is still loading.
var ErrNotReady = errors.New("export: generator is still loading")

// NotReadyMessage is shown to the user when ErrNotReady is returned.
const NotReadyMessage = "PDF generator is still loading, please wait..."

// Orientation of the exported page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// PageBreak selects how sections are split across pages.
type PageBreak string

const (
	// BreakPerSection starts every document section on a new page.
	BreakPerSection PageBreak = "section"
	// BreakAvoidAll flows sections together and only breaks when a page is full.
	BreakAvoidAll PageBreak = "avoid-all"
)

// Options control the layout of an exported file.
type Options struct {
	// Margin is the page margin in millimetres.
	Margin       float64
	Filename     string
	ImageQuality float64
	PageSize     string
	Orientation  Orientation
	PageBreak    PageBreak
}

// DefaultOptions returns the A4 portrait layout used for quotations.
func DefaultOptions(clientName string) Options {
	return Options{
		Margin:       10,
		Filename:     Filename(clientName),
		ImageQuality: 0.98,
		PageSize:     "A4",
		Orientation:  Portrait,
		PageBreak:    BreakPerSection,
	}
}

// Exporter converts a document into a file.
type Exporter interface {
	Export(ctx context.Context, doc document.Document, opts Options) ([]byte, error)
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, doc document.Document, opts Options) ([]byte, error)

func (f ExporterFunc) Export(ctx context.Context, doc document.Document, opts Options) ([]byte, error) {
	return f(ctx, doc, opts)
}
