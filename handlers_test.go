package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dipto9999/portfolio/internal/config"
)

func viewportForm(w, h, mount string) url.Values {
	return url.Values{"w": {w}, "h": {h}, "mount": {mount}}
}

func TestPagesRender(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	for path, want := range map[string]string{
		"/":            "Resume",
		"/experiences": "TESLA, Inc",
		"/projects":    "Reflow Oven Controller",
		"/interests":   "Recently Read",
	} {
		w := b.get(path)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), want, path)
		assert.Contains(t, w.Body.String(), "text-animate _15", path)
	}

	w := b.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInterestsSkipsMissingImages(t *testing.T) {
	app, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	require.Len(t, app.carousel.Entries, 2)
	assert.Equal(t, "/images/games/Games_1.jpeg", app.carousel.Entries[0].Source)
	assert.Equal(t, "Game 3", app.carousel.Entries[1].Caption)
	assert.Equal(t, 1.0, testutil.ToFloat64(app.metrics.AssetFailures))

	body := b.get("/interests").Body.String()
	assert.Contains(t, body, "/images/games/Games_3.jpeg")
	assert.NotContains(t, body, "Games_2.jpeg")

	w := b.get("/images/games/Games_1.jpeg")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardViewportRendersOnlyOnVariantChange(t *testing.T) {
	app, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	w := b.post("/dashboards/steam/viewport", viewportForm("400", "800", "m1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-variant="portrait"`)
	assert.Contains(t, w.Body.String(), `"variant":"portrait"`)

	// Same variant, different size: nothing to redraw.
	w = b.post("/dashboards/steam/viewport", viewportForm("420", "700", "m1"))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = b.post("/dashboards/steam/viewport", viewportForm("1920", "1080", "m1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-variant="default"`)

	assert.Equal(t, 1.0, testutil.ToFloat64(app.metrics.ChartRenders.WithLabelValues("steam", "portrait")))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.metrics.ChartRenders.WithLabelValues("steam", "default")))
}

func TestDashboardViewportNewMountRendersAgain(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	require.Equal(t, http.StatusOK, b.post("/dashboards/steam/viewport", viewportForm("400", "800", "m1")).Code)
	// A reload gets a fresh mount and must not be left with an empty chart.
	assert.Equal(t, http.StatusOK, b.post("/dashboards/steam/viewport", viewportForm("400", "800", "m2")).Code)
}

func TestDashboardsShareMountTracker(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	require.Equal(t, http.StatusOK, b.post("/dashboards/steam/viewport", viewportForm("400", "800", "m1")).Code)
	require.Equal(t, http.StatusOK, b.post("/dashboards/spotify/viewport", viewportForm("400", "800", "m1")).Code)

	// Steam's resize redraws spotify too; spotify's own request still gets it.
	require.Equal(t, http.StatusOK, b.post("/dashboards/steam/viewport", viewportForm("1920", "1080", "m1")).Code)
	w := b.post("/dashboards/spotify/viewport", viewportForm("1920", "1080", "m1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-variant="default"`)
}

func TestDashboardSpotifyPortraitCards(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	w := b.post("/dashboards/spotify/viewport", viewportForm("400", "800", "m1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spotify-track-card")
	assert.Contains(t, w.Body.String(), "Recently Played")

	w = b.post("/dashboards/spotify/viewport", viewportForm("1920", "1080", "m1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "spotify-track-card")
}

func TestDashboardViewportErrors(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	assert.Equal(t, http.StatusNotFound, b.post("/dashboards/myspace/viewport", viewportForm("400", "800", "m1")).Code)
	assert.Equal(t, http.StatusBadRequest, b.post("/dashboards/steam/viewport", url.Values{"w": {"400"}}).Code)
	assert.Equal(t, http.StatusBadRequest, b.post("/dashboards/steam/viewport", viewportForm("wide", "800", "m1")).Code)
}

func TestMountsAreBoundedAndClosed(t *testing.T) {
	app, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	require.Equal(t, http.StatusOK, b.post("/dashboards/steam/viewport", viewportForm("400", "800", "first")).Code)
	v := b.visitor(app)
	v.mu.Lock()
	first := v.mounts[0].tracker
	v.mu.Unlock()
	require.Equal(t, 1, first.Subscribers())

	for _, id := range []string{"m2", "m3", "m4"} {
		require.Equal(t, http.StatusOK, b.post("/dashboards/steam/viewport", viewportForm("400", "800", id)).Code)
	}

	v.mu.Lock()
	assert.Len(t, v.mounts, maxMounts)
	last := v.mounts[len(v.mounts)-1].tracker
	v.mu.Unlock()
	assert.Equal(t, 0, first.Subscribers())

	// Teardown leaves no listener behind.
	app.sessions.Close()
	assert.Equal(t, 0, last.Subscribers())
}

func TestDashboardPreview(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	w := b.get("/dashboards/steam/preview.png?w=640&h=360")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG", w.Body.String()[:4])

	assert.Equal(t, http.StatusNotFound, b.get("/dashboards/myspace/preview.png").Code)
}

func TestCarouselTooltip(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	w := b.get("/interests/tooltip/1?top=10&left=20")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visible")
	assert.Contains(t, w.Body.String(), "Game 3")
	assert.Contains(t, w.Body.String(), "top: 10px")

	assert.Equal(t, http.StatusNotFound, b.get("/interests/tooltip/2").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/interests/tooltip/first").Code)

	w = b.do(http.MethodDelete, "/interests/tooltip", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "visible")
	assert.NotContains(t, w.Body.String(), "Game 3")
}

func TestResumeUnlock(t *testing.T) {
	app, handler := newTestApp(t, func(cfg *config.Config) {
		cfg.Unlock.RevealDelay = "300ms"
	})
	b := newBrowser(t, handler)

	w := b.post("/resume/unlock", url.Values{"password": {"Racc"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("HX-Redirect"))
	assert.NotContains(t, w.Body.String(), "resume-unlocked")

	w = b.post("/resume/unlock", url.Values{"password": {"Raccoons"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, app.cfg.Unlock.DownloadURL, w.Header().Get("HX-Redirect"))
	assert.Contains(t, w.Body.String(), "resume-unlocked")

	// Retyping while revealed does not download again.
	w = b.post("/resume/unlock", url.Values{"password": {"Raccoons"}})
	assert.Empty(t, w.Header().Get("HX-Redirect"))
	assert.Contains(t, b.get("/resume/status").Body.String(), "resume-unlocked")

	require.Eventually(t, func() bool {
		return !strings.Contains(b.get("/resume/status").Body.String(), "resume-unlocked")
	}, 2*time.Second, 10*time.Millisecond)

	app.background.Wait()
	stats, err := app.store.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUnlocks)
	assert.Equal(t, 1.0, testutil.ToFloat64(app.metrics.Unlocks))
}

func TestResumeUnlockThrottled(t *testing.T) {
	_, handler := newTestApp(t, func(cfg *config.Config) {
		cfg.Unlock.Rate = 0.001
		cfg.Unlock.Burst = 2
	})
	b := newBrowser(t, handler)

	assert.Equal(t, http.StatusOK, b.post("/resume/unlock", url.Values{"password": {"R"}}).Code)
	assert.Equal(t, http.StatusOK, b.post("/resume/unlock", url.Values{"password": {"Ra"}}).Code)
	assert.Equal(t, http.StatusTooManyRequests, b.post("/resume/unlock", url.Values{"password": {"Raccoons"}}).Code)

	// Another visitor has its own budget.
	other := newBrowser(t, handler)
	assert.Equal(t, http.StatusOK, other.post("/resume/unlock", url.Values{"password": {"R"}}).Code)
}

func TestVisitorTracking(t *testing.T) {
	app, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	b.get("/", "User-Agent", "test-agent")
	b.get("/projects", "DNT", "1")
	b.get("/interests/tooltip/0", "HX-Request", "true")
	b.get("/static/site.css")
	b.get("/metrics")

	app.background.Wait()
	stats, err := app.store.Stats(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
	require.Len(t, stats.RecentVisitors, 1)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.Equal(t, "test-agent", stats.RecentVisitors[0].UserAgent)
}

func TestMetricsEndpoint(t *testing.T) {
	_, handler := newTestApp(t, nil)
	b := newBrowser(t, handler)

	b.post("/dashboards/goodreads/viewport", viewportForm("1000", "800", "m1"))
	w := b.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `portfolio_chart_renders_total{dashboard="goodreads",variant="tablet"} 1`)
	assert.Contains(t, w.Body.String(), "portfolio_sessions 1")
	assert.Contains(t, w.Body.String(), "portfolio_http_requests_total")
}
