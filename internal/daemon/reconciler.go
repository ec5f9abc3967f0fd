package daemon

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/snaptile/internal/platform"
	"github.com/1broseidon/snaptile/internal/tiling"
)

// SurfaceSink receives surface updates. *gesture.Controller satisfies it.
type SurfaceSink interface {
	Surface() tiling.Rect
	SetSurface(tiling.Rect)
}

// ReconcilerConfig holds configuration for the reconciler.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-reads the surface rectangle (work area changes
// when panels appear or the resolution changes) and pushes it to the sink.
type Reconciler struct {
	interval time.Duration
	logger   *slog.Logger
	sink     SurfaceSink

	mu       sync.Mutex
	provider platform.SurfaceProvider
}

// NewReconciler creates a new reconciler with the given configuration.
func NewReconciler(cfg ReconcilerConfig, provider platform.SurfaceProvider, sink SurfaceSink) *Reconciler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Reconciler{
		interval: interval,
		logger:   logger,
		sink:     sink,
		provider: provider,
	}
}

// SetProvider swaps the surface provider, e.g. after a config reload. The
// previous provider is closed.
func (r *Reconciler) SetProvider(p platform.SurfaceProvider) {
	r.mu.Lock()
	prev := r.provider
	r.provider = p
	r.mu.Unlock()

	if prev != nil && prev != p {
		if err := prev.Close(); err != nil {
			r.logger.Warn("reconciler: failed to close surface provider", "provider", prev.Name(), "error", err)
		}
	}
}

// Run starts the reconciliation loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile()
		}
	}
}

// ReconcileNow triggers an immediate reconciliation pass and reports whether
// the surface changed.
func (r *Reconciler) ReconcileNow() bool {
	return r.reconcile()
}

// reconcile performs a single reconciliation pass.
func (r *Reconciler) reconcile() (changed bool) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
			changed = false
		}
	}()

	r.mu.Lock()
	provider := r.provider
	r.mu.Unlock()
	if provider == nil {
		return false
	}

	rect, err := provider.Surface()
	if err != nil {
		r.logger.Warn("reconciler: failed to read surface", "provider", provider.Name(), "error", err)
		return false
	}
	if rect == r.sink.Surface() {
		return false
	}

	r.logger.Info("surface changed",
		"provider", provider.Name(),
		"x", rect.X,
		"y", rect.Y,
		"width", rect.Width,
		"height", rect.Height)
	r.sink.SetSurface(rect)
	return true
}
