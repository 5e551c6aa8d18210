package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/Simplici0/solarquote/internal/config"
	"github.com/Simplici0/solarquote/internal/db"
	"github.com/Simplici0/solarquote/internal/export"
	"github.com/Simplici0/solarquote/internal/exportlog"
	"github.com/Simplici0/solarquote/internal/logger"
	"github.com/Simplici0/solarquote/internal/migrations"
	"github.com/Simplici0/solarquote/internal/profile"
	"github.com/Simplici0/solarquote/internal/seed"
	"github.com/Simplici0/solarquote/internal/session"
	"github.com/Simplici0/solarquote/web"
)

func main() {
	cfg := config.Load()
	l := logger.Init(cfg.LogLevel)

	database, err := openDatabase(cfg.DBPath)
	if err != nil {
		l.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	letterhead, err := loadLetterhead(database, cfg)
	if err != nil {
		l.Error("failed to load business profile", "error", err)
		os.Exit(1)
	}

	views, err := parseViews(web.Templates)
	if err != nil {
		l.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &server{
		sessions:   session.NewStore(cfg.SessionTTL),
		cookies:    newCookieSigner(cfg.SessionSecret, cfg.SessionTTL),
		letterhead: letterhead,
		journal:    exportlog.New(database),
		pdf:        export.NewService("pdf", export.LoadPDF),
		xlsx:       export.NewReadyService("xlsx", export.NewExcelExporter()),
		views:      views,
	}
	srv.pdf.LoadAsync(ctx)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(srv, cfg.ExportRateLimit),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	l.Info("listening", "addr", httpServer.Addr, "env", cfg.Env)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openDatabase opens the SQLite database and applies the embedded schema.
func openDatabase(path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return database, nil
}

// loadLetterhead seeds the business profile from config and reads it back.
func loadLetterhead(database *sql.DB, cfg config.Config) (profile.Profile, error) {
	stats, err := seed.Run(database, seed.Config{Profile: profile.Profile{
		Name:         cfg.BusinessName,
		Tagline:      cfg.BusinessTagline,
		Address:      cfg.BusinessAddress,
		Phone:        cfg.BusinessPhone,
		Email:        cfg.BusinessEmail,
		Jurisdiction: cfg.Jurisdiction,
	}})
	if err != nil {
		return profile.Profile{}, err
	}
	logger.L.Info("business profile seeded", "inserts", stats.Inserts, "updates", stats.Updates)

	return profile.Load(context.Background(), database)
}

func newRouter(srv *server, exportsPerSecond float64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", srv.handleHome)
	r.Post("/quote", srv.handleFormSubmit)
	r.Post("/quote/field", srv.handleFieldChange)
	r.Post("/quote/mode", srv.handleModeSwitch)
	r.Post("/quote/reset", srv.handleReset)
	r.Get("/quote/print", srv.handlePrint)
	r.Get("/quote/export/status", srv.handleExportStatus)
	r.Get("/exports", srv.handleExportsList)

	r.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(exportsPerSecond), burst(exportsPerSecond))))
		r.Get("/quote/export.pdf", srv.handleExportPDF)
		r.Get("/quote/export.xlsx", srv.handleExportXLSX)
	})

	return r
}

func burst(perSecond float64) int {
	return max(int(perSecond), 1)
}

// rateLimitMiddleware answers 429 once the limiter is exhausted.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.FromContext(r.Context()).Warn("rate limit exceeded", "path", r.URL.Path)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
