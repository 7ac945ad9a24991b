package main

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dipto9999/portfolio/web"
)

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"dict": func(pairs ...any) (map[string]any, error) {
		if len(pairs)%2 != 0 {
			return nil, errors.New("dict needs key/value pairs")
		}
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, errors.New("dict keys must be strings")
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(web.FS, "templates/*.html")
}

// routes builds the gin engine serving the site.
func (a *App) routes() (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), a.requestLogger(), a.countRequests())
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	r.StaticFS("/images", http.FS(a.assetFS))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": a.sessions.Len(), "charts": a.charts.Generation()})
	})

	r.GET("/dashboards/:name/preview.png", a.dashboardPreview)

	a.setupAdminRoutes(r)

	site := r.Group("/", a.trackVisitors(), a.withVisitor())

	site.GET("/", a.homePage)
	site.GET("/experiences", a.experiencesPage)
	site.GET("/projects", a.projectsPage)
	site.GET("/interests", a.interestsPage)

	site.POST("/dashboards/:name/viewport", a.dashboardViewport)

	site.GET("/interests/tooltip/:index", a.showTooltip)
	site.DELETE("/interests/tooltip", a.hideTooltip)

	site.POST("/resume/unlock", a.unlockResume)
	site.GET("/resume/status", a.resumeStatus)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Page not found"})
	})
	return r, nil
}
