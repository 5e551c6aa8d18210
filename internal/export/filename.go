package export

import (
	"regexp"
	"strings"
)

const (
	defaultFilenameStem = "Client"
	pdfSuffix           = "_Solar_Quotation.pdf"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
)

// Filename derives the download name for a client's quotation,
// e.g. "Ravi Patil" becomes "Ravi_Patil_Solar_Quotation.pdf".
func Filename(clientName string) string {
	stem := whitespaceRun.ReplaceAllString(strings.TrimSpace(clientName), "_")
	stem = unsafeChars.ReplaceAllString(stem, "")
	stem = strings.Trim(stem, "._-")
	if stem == "" {
		stem = defaultFilenameStem
	}
	return stem + pdfSuffix
}

// WithExtension swaps the extension of a generated filename.
func WithExtension(filename, ext string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	return filename + ext
}
