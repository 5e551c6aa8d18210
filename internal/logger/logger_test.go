package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func restoreGlobal(t *testing.T) {
	t.Helper()
	prevL, prevDefault := L, slog.Default()
	t.Cleanup(func() {
		L = prevL
		slog.SetDefault(prevDefault)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{" WARN ", slog.LevelWarn, true},
		{"", slog.LevelInfo, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestInitWriter_EmitsJSONAndFiltersLevel(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	InitWriter(&buf, "warn")
	buf.Reset()

	L.Info("hidden")
	L.Warn("shown", "k", "v")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["k"] != "v" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	if FromContext(context.Background()) != L {
		t.Fatalf("expected global logger")
	}
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if FromContext(ToContext(context.Background(), l)) != l {
		t.Fatalf("expected context logger")
	}
}

func TestMiddleware_TagsRequestID(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	InitWriter(&buf, "info")
	buf.Reset()

	h := middleware.RequestID(Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	out := buf.String()
	if !strings.Contains(out, `"request_id"`) || !strings.Contains(out, `"status":418`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}
