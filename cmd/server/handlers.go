package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Simplici0/solarquote/internal/document"
	"github.com/Simplici0/solarquote/internal/export"
	"github.com/Simplici0/solarquote/internal/exportlog"
	"github.com/Simplici0/solarquote/internal/logger"
	"github.com/Simplici0/solarquote/internal/profile"
	"github.com/Simplici0/solarquote/internal/quote"
	"github.com/Simplici0/solarquote/internal/session"
)

const fallbackPrintPath = "/quote/print?fallback=1"

type server struct {
	sessions   *session.Store
	cookies    *cookieSigner
	letterhead profile.Profile
	journal    *exportlog.Journal
	pdf        *export.Service
	xlsx       *export.Service
	views      *views
}

func (s *server) session(w http.ResponseWriter, r *http.Request) quote.Session {
	return currentSession(w, r, s.sessions, s.cookies)
}

func (s *server) baseData(title string, sess quote.Session) pageData {
	return pageData{
		Title:      title,
		Letterhead: s.letterhead,
		Form:       sess.Form,
		Options:    editorOptions(),
		Summary:    summarize(sess.Form),
	}
}

func (s *server) buildDocument(f quote.Form) document.Document {
	return document.Build(f, f.Financials(), s.letterhead)
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.renderSession(w, r, http.StatusOK, sess, "")
}

func (s *server) renderSession(w http.ResponseWriter, r *http.Request, status int, sess quote.Session, errMsg string) {
	if sess.Mode == quote.ModePreview {
		data := s.baseData("Quotation "+sess.Form.QuoteRef, sess)
		data.BodyClass = "preview"
		data.Document = s.buildDocument(sess.Form)
		data.ExportReady = s.pdf.Ready()
		data.ErrorMessage = errMsg
		s.views.render(w, r, status, "preview.html", data)
		return
	}

	data := s.baseData("Solar Quotation Builder", sess)
	data.BodyClass = "editor"
	data.ErrorMessage = errMsg
	s.views.render(w, r, status, "editor.html", data)
}

// handleFieldChange applies one field edit and returns the refreshed summary fragment.
func (s *server) handleFieldChange(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess := s.session(w, r)
	change := quote.Change{
		Field: quote.Field(r.PostFormValue("field")),
		Value: r.PostFormValue("value"),
		Kind:  quote.Kind(r.PostFormValue("kind")),
	}

	next, err := s.sessions.Update(sess, func(cur quote.Session) (quote.Session, error) {
		form, err := quote.Apply(cur.Form, change)
		cur.Form = form
		return cur, err
	})
	if err != nil {
		logger.FromContext(r.Context()).Info("rejected field change", "field", change.Field, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.views.renderPartial(w, r, "summary", pageData{Summary: summarize(next.Form)})
}

// handleFormSubmit applies a full editor submission, for browsers without scripting.
func (s *server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	sess, err := s.sessions.Update(s.session(w, r), func(cur quote.Session) (quote.Session, error) {
		form, err := quote.ApplyAll(cur.Form, quote.ChangesFromValues(cur.Form, r.PostForm))
		cur.Form = form
		return cur, err
	})
	if err != nil {
		s.renderSession(w, r, http.StatusBadRequest, sess, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleModeSwitch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	mode, err := quote.ParseMode(r.PostFormValue("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, _ = s.sessions.Update(s.session(w, r), func(cur quote.Session) (quote.Session, error) {
		return cur.SwitchTo(mode), nil
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.sessions.Reset(sess.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handlePrint(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	data := s.baseData("Quotation "+sess.Form.QuoteRef, sess)
	data.BodyClass = "print"
	data.Document = s.buildDocument(sess.Form)
	data.Fallback = r.URL.Query().Get("fallback") == "1"
	s.views.render(w, r, http.StatusOK, "print.html", data)
}

func (s *server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, s.pdf, ".pdf", "application/pdf")
}

func (s *server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.export(w, r, s.xlsx, ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// export renders the session's quotation with svc. A generator that has not
// loaded yet is a 503; any other failure falls back to the browser print view.
func (s *server) export(w http.ResponseWriter, r *http.Request, svc *export.Service, ext, contentType string) {
	ctx := r.Context()
	l := logger.FromContext(ctx)
	sess := s.session(w, r)

	fin := sess.Form.Financials()
	doc := document.Build(sess.Form, fin, s.letterhead)
	opts := export.DefaultOptions(sess.Form.ClientName)
	opts.Filename = export.WithExtension(opts.Filename, ext)

	entry := exportlog.Entry{
		QuoteRef:    sess.Form.QuoteRef,
		ClientName:  sess.Form.ClientName,
		Format:      svc.Name(),
		Filename:    opts.Filename,
		FinalAmount: fin.FinalAmount.String(),
		Status:      exportlog.StatusOK,
	}

	out, err := svc.Export(ctx, doc, opts)
	switch {
	case errors.Is(err, export.ErrNotReady):
		entry.Status = exportlog.StatusNotReady
		s.record(ctx, entry)
		http.Error(w, export.NotReadyMessage, http.StatusServiceUnavailable)
		return
	case err != nil:
		l.Error("export failed, falling back to print", "format", svc.Name(), "quote_ref", entry.QuoteRef, "error", err)
		entry.Status = exportlog.StatusFailed
		entry.Error = err.Error()
		s.record(ctx, entry)
		http.Redirect(w, r, fallbackPrintPath, http.StatusSeeOther)
		return
	}

	s.record(ctx, entry)
	l.Info("quotation exported", "format", svc.Name(), "quote_ref", entry.QuoteRef, "bytes", len(out))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+opts.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// record journals an export attempt. Journal failures are logged, never shown.
func (s *server) record(ctx context.Context, e exportlog.Entry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.Record(ctx, e); err != nil {
		logger.FromContext(ctx).Error("failed to journal export", "error", err)
	}
}

func (s *server) handleExportStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{
		"pdf":  s.pdf.Ready(),
		"xlsx": s.xlsx.Ready(),
	})
}

func (s *server) handleExportsList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var entries []exportlog.Entry
	if s.journal != nil {
		var err error
		entries, err = s.journal.List(r.Context(), query, 0)
		if err != nil {
			logger.FromContext(r.Context()).Error("failed to load export journal", "error", err)
			http.Error(w, "failed to load export log", http.StatusInternalServerError)
			return
		}
	}

	s.views.render(w, r, http.StatusOK, "exports.html", pageData{
		Title:      "Export Log",
		Letterhead: s.letterhead,
		Query:      query,
		Entries:    entries,
	})
}
