package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Dipto9999/portfolio/internal/assets"
	"github.com/Dipto9999/portfolio/internal/breakpoint"
	"github.com/Dipto9999/portfolio/internal/carousel"
	"github.com/Dipto9999/portfolio/internal/charts"
	"github.com/Dipto9999/portfolio/internal/config"
	"github.com/Dipto9999/portfolio/internal/metrics"
	"github.com/Dipto9999/portfolio/internal/reviews"
	"github.com/Dipto9999/portfolio/internal/session"
	"github.com/Dipto9999/portfolio/internal/storage"
	"github.com/Dipto9999/portfolio/internal/unlock"
	"github.com/Dipto9999/portfolio/internal/viewport"
	"github.com/Dipto9999/portfolio/web"
)

// maxMounts is how many Interests page loads a visitor keeps dashboards for.
// Older ones are torn down as new ones arrive.
const maxMounts = 3

// App holds the process-wide state of the site.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *storage.Store
	metrics *metrics.Metrics
	charts  *charts.Library

	carousel *carousel.Carousel
	reviews  []reviews.Row
	summary  reviews.Summary
	assetFS  fs.FS

	sessions   *session.Store[*visitor]
	adminToken string

	// background tracks fire-and-forget database writes.
	background sync.WaitGroup
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.Open(cfg.Storage.Path, logger.Named("storage"))
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		charts:     charts.NewLibrary(logger.Named("charts")),
		adminToken: generateAdminToken(),
	}
	a.sessions = session.NewStore(a.newVisitor, cfg.Session.GetIdleTTL(), logger.Named("session"))
	a.metrics = metrics.New(func() float64 { return float64(a.sessions.Len()) })

	if err := a.loadCharts(); err != nil {
		store.Close()
		return nil, err
	}
	if err := a.loadCarousel(ctx); err != nil {
		store.Close()
		return nil, err
	}
	if err := a.loadReviews(); err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

func generateAdminToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("generate admin token: %v", err))
	}
	return hex.EncodeToString(b)
}

func (a *App) loadCharts() error {
	var fsys fs.FS
	if a.cfg.Charts.Dir != "" {
		fsys = os.DirFS(a.cfg.Charts.Dir)
	} else {
		sub, err := fs.Sub(web.FS, "charts")
		if err != nil {
			return fmt.Errorf("embedded charts: %w", err)
		}
		fsys = sub
	}
	if err := a.charts.Load(fsys); err != nil {
		return fmt.Errorf("load charts: %w", err)
	}
	a.logger.Info("Charts loaded", zap.Strings("dashboards", a.charts.Names()))
	return nil
}

// loadCarousel resolves the carousel images once at startup. Image paths in
// the manifest are relative to the manifest's directory. Without a manifest
// the prefix_N.ext convention is probed instead.
func (a *App) loadCarousel(ctx context.Context) error {
	if a.cfg.Assets.Dir != "" {
		a.assetFS = os.DirFS(a.cfg.Assets.Dir)
	} else {
		sub, err := fs.Sub(web.FS, "images")
		if err != nil {
			return fmt.Errorf("embedded images: %w", err)
		}
		a.assetFS = sub
	}

	dir := path.Dir(a.cfg.Assets.Manifest)
	sub, err := fs.Sub(a.assetFS, dir)
	if err != nil {
		return fmt.Errorf("asset dir %s: %w", dir, err)
	}
	loader := &assets.Loader{
		FS:      sub,
		BaseURL: path.Join("/images", dir),
		Label:   a.cfg.Assets.Label,
		Prefix:  a.cfg.Assets.Prefix,
		Ext:     a.cfg.Assets.Ext,
		Logger:  a.logger.Named("assets"),
		OnFailure: func(assets.Item, error) {
			a.metrics.AssetFailures.Inc()
		},
	}

	var entries []assets.Entry
	f, err := a.assetFS.Open(a.cfg.Assets.Manifest)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.logger.Info("No asset manifest, probing images", zap.Int("count", a.cfg.Assets.Count))
		entries, err = loader.LoadCount(ctx, a.cfg.Assets.Count)
	case err != nil:
		return fmt.Errorf("open asset manifest: %w", err)
	default:
		var m assets.Manifest
		m, err = assets.ParseManifest(f)
		f.Close()
		if err != nil {
			return err
		}
		entries, err = loader.LoadAll(ctx, m)
	}
	if err != nil {
		return err
	}

	a.carousel = carousel.New(entries)
	a.logger.Info("Carousel loaded", zap.Int("entries", len(entries)))
	return nil
}

func (a *App) loadReviews() error {
	f, err := web.FS.Open("data/goodreads_reviews.csv")
	if err != nil {
		return fmt.Errorf("open reviews: %w", err)
	}
	defer f.Close()

	rows, err := reviews.Parse(f)
	if err != nil {
		return err
	}
	a.reviews = rows
	a.summary = reviews.Summarize(rows, "My Rating")
	return nil
}

// recordAsync runs a database write off the request path.
func (a *App) recordAsync(what string, fn func(ctx context.Context) error) {
	a.background.Add(1)
	go func() {
		defer a.background.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			a.logger.Warn("Failed to record "+what, zap.Error(err))
		}
	}()
}

// cleanupVisitors drops visitor rows past retention now and then daily until
// ctx is done.
func (a *App) cleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		n, err := a.store.CleanupOldVisitors(ctx, time.Now())
		if err != nil && ctx.Err() == nil {
			a.logger.Warn("Visitor cleanup failed", zap.Error(err))
		} else if n > 0 {
			a.logger.Info("Removed expired visitor records", zap.Int64("count", n))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Close tears down every session, waits for pending writes and closes the
// database.
func (a *App) Close() error {
	a.sessions.Close()
	a.background.Wait()
	return a.store.Close()
}

// visitor is the component set owned by one browser session.
type visitor struct {
	id  string
	app *App

	mu      sync.Mutex
	closed  bool
	mounts  []*mount
	tooltip carousel.Tooltip
	guard   *unlock.Guard
}

// mount is one rendering of the Interests page. Its dashboards share a
// viewport tracker.
type mount struct {
	id      string
	tracker *viewport.Tracker
	views   map[string]*dashboardView
}

type dashboardView struct {
	view   *charts.View
	engine *charts.EmbedEngine
	// sent is the render count last delivered to the browser.
	sent uint64
}

func (a *App) newVisitor(id string) *visitor {
	v := &visitor{id: id, app: a}
	gate := unlock.NewGate(a.cfg.Unlock.Secret, a.cfg.Unlock.GetRevealDelay(), v.revealed)
	v.guard = unlock.NewGuard(gate, rate.Limit(a.cfg.Unlock.Rate), a.cfg.Unlock.Burst)
	return v
}

func (v *visitor) revealed() {
	a := v.app
	a.metrics.Unlocks.Inc()
	a.logger.Info("Resume unlocked", zap.String("session", a.store.Hash(v.id)))
	a.recordAsync("unlock", func(ctx context.Context) error {
		return a.store.RecordUnlock(ctx, v.id, time.Now())
	})
}

// mount returns the mount with id, creating it when unknown. Callers hold
// v.mu.
func (v *visitor) mount(id string) *mount {
	for _, m := range v.mounts {
		if m.id == id {
			return m
		}
	}
	m := &mount{
		id:      id,
		tracker: viewport.NewTracker(viewport.Size{}),
		views:   make(map[string]*dashboardView),
	}
	v.mounts = append(v.mounts, m)
	for len(v.mounts) > maxMounts {
		v.mounts[0].close()
		v.mounts = v.mounts[1:]
	}
	return m
}

// view returns the dashboard view for name in m, creating it when missing.
func (v *visitor) view(m *mount, name string) *dashboardView {
	if dv, ok := m.views[name]; ok {
		return dv
	}
	a := v.app
	engine := &charts.EmbedEngine{}
	dv := &dashboardView{
		engine: engine,
		view: charts.NewView(name, a.charts, engine, m.tracker,
			charts.WithLogger(a.logger.Named("charts")),
			charts.WithRenderHook(func(dashboard string, resolved, used breakpoint.Variant) {
				a.metrics.ChartRenders.WithLabelValues(dashboard, resolved.String()).Inc()
			}),
		),
	}
	m.views[name] = dv
	return dv
}

func (m *mount) close() {
	for _, dv := range m.views {
		dv.view.Close()
	}
	m.tracker.Close()
}

// Close releases every subscription and timer the visitor holds.
func (v *visitor) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, m := range v.mounts {
		m.close()
	}
	v.closed = true
	v.mounts = nil
	v.guard.Gate().Close()
}
