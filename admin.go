// admin.go - privacy-conscious admin dashboard
package main

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	adminCookie   = "admin_token"
	recentVisitor = 200
)

// adminAuth checks the admin cookie against this process's token.
func (a *App) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *App) checkAdminCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.Admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.Admin.Password)) == 1
	return userOK && passOK
}

// setupAdminRoutes registers the admin pages. With no password configured
// the admin is disabled entirely.
func (a *App) setupAdminRoutes(r *gin.Engine) {
	logger := a.logger.Named("admin")
	if a.cfg.Admin.Password == "" {
		logger.Warn("Admin disabled, set ADMIN_PASSWORD to enable it")
		return
	}
	logger.Info("Admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		logger.Debug("Admin token (dev only)", zap.String("token", a.adminToken))
	}

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		client := a.store.Hash(c.ClientIP())
		if !a.checkAdminCredentials(c.PostForm("username"), c.PostForm("password")) {
			logger.Warn("Failed admin login attempt", zap.String("client", client))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, a.adminToken, 3600*24, "/admin", "", false, true)
		logger.Info("Admin login successful", zap.String("client", client))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		logger.Info("Admin logout", zap.String("client", a.store.Hash(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin", a.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			logger.Error("Failed to load admin stats", zap.Error(err))
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/api/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), recentVisitor)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, visitors)
	})

	// Privacy cleanup on demand, on top of the daily run.
	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.store.CleanupOldVisitors(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		logger.Info("Admin stats exported", zap.String("client", a.store.Hash(c.ClientIP())))
		c.JSON(http.StatusOK, stats)
	})
}
