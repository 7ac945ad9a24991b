package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dipto9999/portfolio/internal/session"
)

const (
	sessionCookie = "portfolio_session"
	visitorKey    = "visitor"
)

// requestLogger logs every request once it completes.
func (a *App) requestLogger() gin.HandlerFunc {
	logger := a.logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("Request failed", fields...)
		default:
			logger.Debug("Request", fields...)
		}
	}
}

// countRequests feeds the request counter, labelled by route pattern.
func (a *App) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		a.metrics.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// withVisitor attaches the visitor session, issuing a cookie on first visit.
func (a *App) withVisitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
		}

		v, ok := a.sessions.Get(id)
		if !ok {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Set(visitorKey, v)
		c.Next()
	}
}

func visitorFrom(c *gin.Context) *visitor {
	return c.MustGet(visitorKey).(*visitor)
}

// trackVisitors records page views with the client IP hashed. Static files,
// admin pages, HTMX fragment requests and DNT clients are not tracked.
func (a *App) trackVisitors() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet ||
			strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/admin/") ||
			strings.HasPrefix(path, "/favicon") ||
			path == "/metrics" || path == "/healthz" ||
			c.GetHeader("HX-Request") == "true" ||
			c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		ip, userAgent, at := c.ClientIP(), c.GetHeader("User-Agent"), time.Now()
		a.recordAsync("visit", func(ctx context.Context) error {
			return a.store.RecordVisit(ctx, ip, userAgent, path, at)
		})
		c.Next()
	}
}
