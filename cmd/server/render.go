package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/Simplici0/solarquote/internal/document"
	"github.com/Simplici0/solarquote/internal/exportlog"
	"github.com/Simplici0/solarquote/internal/logger"
	"github.com/Simplici0/solarquote/internal/pricing"
	"github.com/Simplici0/solarquote/internal/profile"
	"github.com/Simplici0/solarquote/internal/quote"
)

var pageNames = []string{"editor.html", "preview.html", "print.html", "exports.html"}

type summaryView struct {
	TotalCost     string
	SubsidyAmount string
	FinalAmount   string
	Residential   bool
	// SubsidyField is the raw subsidy input value after the last change.
	SubsidyField string
}

type pageData struct {
	Title        string
	BodyClass    string
	ErrorMessage string
	Letterhead   profile.Profile
	Form         quote.Form
	Options      map[string][]string
	Summary      summaryView
	Document     document.Document
	ExportReady  bool
	Fallback     bool
	Query        string
	Entries      []exportlog.Entry
}

type views struct {
	pages    map[string]*template.Template
	partials *template.Template
}

func parseViews(fsys fs.FS) (*views, error) {
	v := &views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, page := range pageNames {
		t, err := template.ParseFS(fsys, "templates/layout.html", "templates/partials.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		v.pages[page] = t
	}

	partials, err := template.ParseFS(fsys, "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	v.partials = partials
	return v, nil
}

// render executes page inside the layout. Output is buffered so a template
// error never leaves a half-written page.
func (v *views) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	t, ok := v.pages[page]
	if !ok {
		logger.FromContext(r.Context()).Error("unknown template", "page", page)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
	v.write(w, r, status, t, "layout", data)
}

func (v *views) renderPartial(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	v.write(w, r, http.StatusOK, v.partials, name, data)
}

func (v *views) write(w http.ResponseWriter, r *http.Request, status int, t *template.Template, name string, data pageData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		logger.FromContext(r.Context()).Error("failed to render template", "template", name, "error", err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func summarize(f quote.Form) summaryView {
	fin := f.Financials()
	return summaryView{
		TotalCost:     pricing.FormatRupees(fin.TotalCost),
		SubsidyAmount: pricing.FormatRupees(fin.SubsidyAmount),
		FinalAmount:   pricing.FormatRupees(fin.FinalAmount),
		Residential:   f.IsResidential(),
		SubsidyField:  f.SubsidyAmount,
	}
}

func editorOptions() map[string][]string {
	options := make(map[string][]string)
	for _, field := range quote.Fields {
		if o := quote.OptionsOf(field); o != nil {
			options[string(field)] = o
		}
	}
	return options
}
