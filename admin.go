// admin.go - privacy-conscious page-view tracking and the admin area
package main

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vmiyer/portfolio/internal/analytics"
	"github.com/vmiyer/portfolio/internal/config"
)

const adminCookie = "admin_token"

type adminAuth struct {
	token    string
	username string
	password string
	base     string
}

func newAdminAuth(cfg config.Config, base string) (*adminAuth, error) {
	token, err := generateAdminToken()
	if err != nil {
		return nil, err
	}

	log.Printf("Admin access available at: %s/admin/login", base)
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", token)
		if cfg.DefaultCredentials() {
			log.Println("WARNING: Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD environment variables.")
		}
	}
	log.Println("Privacy: page views are recorded with hashed visitor IDs")

	return &adminAuth{
		token:    token,
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		base:     base,
	}, nil
}

func generateAdminToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (a *adminAuth) path(p string) string {
	return a.base + "/admin" + p
}

func (a *adminAuth) validCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// middleware redirects to the login page unless the admin cookie matches.
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, a.path("/login"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// visitorTrackingMiddleware records successful page renders. Static files,
// media, admin pages and Do Not Track requests are skipped.
func visitorTrackingMiddleware(views *analytics.Store, base string) gin.HandlerFunc {
	skip := []string{
		base + "/static/",
		base + "/media/",
		base + "/admin/",
		"/favicon",
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" || hasAnyPrefix(path, skip) {
			c.Next()
			return
		}

		c.Next()

		if c.Writer.Status() != http.StatusOK {
			return
		}
		if err := views.Record(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), path); err != nil {
			log.Printf("Error recording page view: %v", err)
		}
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// cleanupOldViews drops page views older than the retention window.
func cleanupOldViews(ctx context.Context, views *analytics.Store) int64 {
	n, err := views.Cleanup(ctx, time.Now().Add(-analytics.Retention))
	if err != nil {
		log.Printf("Error cleaning up old page views: %v", err)
		return 0
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d page views older than 12 months", n)
	}
	return n
}

func setupAdminRoutes(g *gin.RouterGroup, admin *adminAuth, views *analytics.Store) {
	g.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
			"base":  admin.base,
		})
	})

	g.POST("/admin/login", func(c *gin.Context) {
		if !admin.validCredentials(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", views.HashVisitor(c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"base":  admin.base,
				"error": InvalidCredentials,
			})
			return
		}

		// Session lasts 24 hours.
		c.SetCookie(adminCookie, admin.token, 3600*24, admin.path(""), "", false, true)
		log.Printf("Admin login successful from %s", views.HashVisitor(c.ClientIP()))
		c.Redirect(http.StatusFound, admin.path("/dashboard"))
	})

	g.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, admin.path(""), "", false, true)
		log.Printf("Admin logout from %s", views.HashVisitor(c.ClientIP()))
		c.Redirect(http.StatusFound, admin.path("/login"))
	})

	protected := g.Group("/admin")
	protected.Use(admin.middleware())

	protected.GET("/dashboard", func(c *gin.Context) {
		stats, err := views.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"title": "Admin",
				"error": StatsUnavailable,
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Page Views",
			"base":  admin.base,
			"stats": stats,
		})
	})

	protected.GET("/api/stats", func(c *gin.Context) {
		stats, err := views.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	protected.GET("/export/stats", func(c *gin.Context) {
		stats, err := views.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=page-view-stats.json")
		log.Printf("Admin stats exported by %s", views.HashVisitor(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	protected.POST("/privacy/cleanup", func(c *gin.Context) {
		removed := cleanupOldViews(c.Request.Context(), views)
		c.JSON(http.StatusOK, gin.H{"message": CleanupDone, "removed": removed})
	})
}
