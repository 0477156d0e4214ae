package main

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/vmiyer/portfolio/internal/analytics"
	"github.com/vmiyer/portfolio/internal/config"
	"github.com/vmiyer/portfolio/internal/content"
	"github.com/vmiyer/portfolio/internal/router"
	"github.com/vmiyer/portfolio/internal/site"
)

type server struct {
	site  *site.Site
	table *router.Table
}

// newRouter wires the portfolio routes, static assets and, when views is
// non-nil, page-view tracking and the admin area.
func newRouter(cfg config.Config, portfolio *content.Portfolio, views *analytics.Store) (*gin.Engine, error) {
	st, err := site.New(portfolio, cfg.BasePath)
	if err != nil {
		return nil, err
	}
	s := &server{site: st, table: st.Table()}
	base := st.Base()

	r := gin.Default()
	r.SetHTMLTemplate(st.Templates())

	if views != nil {
		r.Use(visitorTrackingMiddleware(views, base))
	}

	r.StaticFS(router.Join(base, "/static"), http.FS(site.Static()))
	r.Static(router.Join(base, "/media"), cfg.MediaDir)

	for _, path := range s.table.Paths() {
		r.GET(path, s.page)
	}
	r.NoRoute(s.notFound)

	if views != nil {
		admin, err := newAdminAuth(cfg, base)
		if err != nil {
			return nil, err
		}
		setupAdminRoutes(r.Group(base), admin, views)
	}
	return r, nil
}

// page serves the panel the route table holds for the matched route.
func (s *server) page(c *gin.Context) {
	panel, ok := s.table.Lookup(c.FullPath())
	if !ok {
		s.notFound(c)
		return
	}
	s.render(c, http.StatusOK, panel)
}

// notFound renders the shell with nothing in it.
func (s *server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, nil)
}

// render writes the full page, or for HTMX swaps the panel followed by an
// out-of-band navbar for the new path.
func (s *server) render(c *gin.Context, status int, panel templ.Component) {
	page := site.Page{
		Path:     c.Request.URL.Path,
		MenuOpen: c.Query("menu") == "open",
		Panel:    panel,
	}

	var component templ.Component
	if isPartialRequest(c.Request) {
		parts := make([]templ.Component, 0, 2)
		if panel != nil {
			parts = append(parts, panel)
		}
		component = templ.Join(append(parts, s.site.Nav(page))...)
	} else {
		component = s.site.Layout(page)
	}

	var buf bytes.Buffer
	if err := component.Render(c.Request.Context(), &buf); err != nil {
		log.Printf("Error rendering %s: %v", c.Request.URL.Path, err)
		c.String(http.StatusInternalServerError, RenderFailed)
		return
	}

	c.Header("Vary", "HX-Request")
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// isPartialRequest reports whether HTMX asked for the panel only. History
// restores need the whole page.
func isPartialRequest(r *http.Request) bool {
	if !strings.EqualFold(r.Header.Get("HX-Request"), "true") {
		return false
	}
	return !strings.EqualFold(r.Header.Get("HX-History-Restore-Request"), "true")
}
