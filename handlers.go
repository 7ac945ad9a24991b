package main

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/Dipto9999/portfolio/internal/breakpoint"
	"github.com/Dipto9999/portfolio/internal/carousel"
	"github.com/Dipto9999/portfolio/internal/charts"
	"github.com/Dipto9999/portfolio/internal/session"
	"github.com/Dipto9999/portfolio/internal/unlock"
	"github.com/Dipto9999/portfolio/internal/viewport"
	"github.com/Dipto9999/portfolio/internal/views"
)

// headingOffset is the animation class index of a page heading's first letter.
const headingOffset = 15

const (
	defaultPreviewWidth  = 800
	defaultPreviewHeight = 400
	minPreviewSize       = 100
	maxPreviewSize       = 2000
)

// page returns the data every page layout needs.
func (a *App) page(c *gin.Context, title, heading string) gin.H {
	return gin.H{
		"title":     title,
		"path":      c.Request.URL.Path,
		"nav":       views.Nav,
		"social":    views.Social,
		"heading":   views.AnimatedLetters(heading, headingOffset),
		"animateMs": views.AnimateDuration.Milliseconds(),
	}
}

func (a *App) homePage(c *gin.Context) {
	v := visitorFrom(c)
	data := a.page(c, "Home", "Hi, I'm Muntakim")
	data["about"] = AboutMe
	data["languages"] = Languages
	data["revealed"] = v.guard.Gate().State() == unlock.Revealed
	c.HTML(http.StatusOK, "home.html", data)
}

func (a *App) experiencesPage(c *gin.Context) {
	data := a.page(c, "Experiences", "Experiences")
	data["experiences"] = Experiences
	c.HTML(http.StatusOK, "experiences.html", data)
}

func (a *App) projectsPage(c *gin.Context) {
	data := a.page(c, "Projects", "Projects")
	data["projects"] = Projects
	c.HTML(http.StatusOK, "projects.html", data)
}

func (a *App) interestsPage(c *gin.Context) {
	settings, err := json.Marshal(a.carousel.Settings)
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	data := a.page(c, "Interests", "Interests")
	data["carousel"] = a.carousel.Entries
	data["carouselSettings"] = string(settings)
	data["tooltip"] = carousel.Tooltip{}
	data["dashboards"] = Dashboards
	// Each page load gets its own set of dashboard views.
	data["mount"] = session.NewID()
	data["reviews"] = a.reviews
	data["reviewSummary"] = a.summary
	c.HTML(http.StatusOK, "interests.html", data)
}

// dashboardViewport feeds a browser resize into the visitor's dashboard view.
// It answers with the chart fragment when the view drew something the browser
// has not seen yet, and 204 otherwise.
func (a *App) dashboardViewport(c *gin.Context) {
	name := c.Param("name")
	if _, _, err := a.charts.Dashboard(name); err != nil {
		c.String(http.StatusNotFound, "unknown dashboard %q", name)
		return
	}

	size, err := bindSize(c)
	if err != nil {
		c.String(http.StatusBadRequest, "%v", err)
		return
	}
	mountID := c.PostForm("mount")
	if mountID == "" {
		mountID = "default"
	}

	v := visitorFrom(c)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		c.Status(http.StatusGone)
		return
	}

	dv := v.view(v.mount(mountID), name)
	if _, err := dv.view.Resize(size); err != nil {
		if errors.Is(err, charts.ErrUnknownDashboard) {
			c.String(http.StatusNotFound, "unknown dashboard %q", name)
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	renders := dv.view.Renders()
	if renders == dv.sent {
		c.Status(http.StatusNoContent)
		return
	}
	dv.sent = renders

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"name":    name,
		"variant": dv.view.Variant().String(),
		"spec":    template.JS(dv.engine.Document()),
		"cards":   dv.view.Cards(),
	})
}

func bindSize(c *gin.Context) (viewport.Size, error) {
	var size viewport.Size
	if _, ok := c.GetPostForm("w"); !ok {
		return size, errors.New("missing viewport width")
	}
	if _, ok := c.GetPostForm("h"); !ok {
		return size, errors.New("missing viewport height")
	}
	if err := c.ShouldBind(&size); err != nil {
		return size, err
	}
	return size, nil
}

// dashboardPreview renders a PNG of the dashboard's first bar chart at the
// requested size.
func (a *App) dashboardPreview(c *gin.Context) {
	name := c.Param("name")
	d, _, err := a.charts.Dashboard(name)
	if err != nil {
		c.String(http.StatusNotFound, "unknown dashboard %q", name)
		return
	}

	w := previewDimension(c.Query("w"), defaultPreviewWidth)
	h := previewDimension(c.Query("h"), defaultPreviewHeight)
	variant := breakpoint.Resolve(w, h)
	spec, _, err := d.Spec(variant)
	if err != nil {
		c.String(http.StatusNotFound, "%v", err)
		return
	}

	engine := &charts.PreviewEngine{Width: w, Height: h}
	if err := engine.Draw(name, variant, spec.Clone()); err != nil {
		if errors.Is(err, charts.ErrNoBarLayer) {
			c.String(http.StatusNotFound, "%v", err)
			return
		}
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "image/png", engine.PNG())
}

func previewDimension(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return min(max(n, minPreviewSize), maxPreviewSize)
}

func (a *App) showTooltip(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	var at carousel.Position
	if err := c.ShouldBindQuery(&at); err != nil {
		c.String(http.StatusBadRequest, "%v", err)
		return
	}
	t, ok := a.carousel.Hover(index, at)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	v := visitorFrom(c)
	v.mu.Lock()
	v.tooltip = t
	v.mu.Unlock()
	c.HTML(http.StatusOK, "tooltip.html", t)
}

func (a *App) hideTooltip(c *gin.Context) {
	v := visitorFrom(c)
	v.mu.Lock()
	v.tooltip.Hide()
	t := v.tooltip
	v.mu.Unlock()
	c.HTML(http.StatusOK, "tooltip.html", t)
}

// unlockResume runs one keystroke of the resume password field through the
// visitor's gate. The transition to revealed is the only response that
// carries the download redirect.
func (a *App) unlockResume(c *gin.Context) {
	v := visitorFrom(c)
	revealed, err := v.guard.OnInput(c.PostForm("password"))
	if errors.Is(err, unlock.ErrThrottled) {
		c.String(http.StatusTooManyRequests, "%v", err)
		return
	}
	if revealed {
		c.Header("HX-Redirect", a.cfg.Unlock.DownloadURL)
	}
	c.HTML(http.StatusOK, "resume-status.html", gin.H{
		"revealed": v.guard.Gate().State() == unlock.Revealed,
	})
}

func (a *App) resumeStatus(c *gin.Context) {
	v := visitorFrom(c)
	c.HTML(http.StatusOK, "resume-status.html", gin.H{
		"revealed": v.guard.Gate().State() == unlock.Revealed,
	})
}
