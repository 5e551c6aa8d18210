package export

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Simplici0/solarquote/internal/document"
	"github.com/Simplici0/solarquote/internal/logger"
)

// Loader resolves an exporter. It may be slow, so Service runs it in the background.
type Loader func(ctx context.Context) (Exporter, error)

type loaded struct {
	exporter Exporter
}

// Service guards an exporter that becomes available after startup.
// It is safe for concurrent use.
type Service struct {
	name     string
	load     Loader
	exporter atomic.Pointer[loaded]
	started  atomic.Bool
}

// NewService returns a service that will resolve its exporter with load.
func NewService(name string, load Loader) *Service {
	return &Service{name: name, load: load}
}

// NewReadyService returns a service whose exporter is available immediately.
func NewReadyService(name string, e Exporter) *Service {
	s := &Service{name: name}
	s.exporter.Store(&loaded{exporter: e})
	s.started.Store(true)
	return s
}

// Name identifies the exported format in logs and the journal.
func (s *Service) Name() string { return s.name }

// Ready reports whether Export can be called.
func (s *Service) Ready() bool {
	return s.exporter.Load() != nil
}

// Load resolves the exporter. Calls after the first are no-ops.
// A failed load leaves the service permanently not ready.
func (s *Service) Load(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	start := time.Now()
	e, err := s.load(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("exporter failed to load", "exporter", s.name, "error", err)
		return fmt.Errorf("load %s exporter: %w", s.name, err)
	}
	s.exporter.Store(&loaded{exporter: e})
	logger.FromContext(ctx).Info("exporter ready", "exporter", s.name, "took", time.Since(start).String())
	return nil
}

// LoadAsync starts Load in a goroutine.
func (s *Service) LoadAsync(ctx context.Context) {
	go func() {
		_ = s.Load(ctx)
	}()
}

// Export renders doc, or returns ErrNotReady if the exporter has not loaded yet.
func (s *Service) Export(ctx context.Context, doc document.Document, opts Options) ([]byte, error) {
	l := s.exporter.Load()
	if l == nil {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := l.exporter.Export(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", s.name, err)
	}
	return out, nil
}
