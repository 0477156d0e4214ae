package site

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// Page is one full-page render request.
type Page struct {
	// Path is the request path; the menu toggle links back to it.
	Path string
	// MenuOpen is the navbar state. It lives in the query string, not on the server.
	MenuOpen bool
	// Panel is rendered inside <main>. Nil leaves it empty.
	Panel templ.Component
}

type nav struct {
	Owner      string
	Home       string
	Open       bool
	ToggleHref string
	Sections   []navSection
	// OOB marks the navbar for an HTMX out-of-band swap.
	OOB bool
}

type layoutData struct {
	Title string
	Nav   nav
	Body  template.HTML
}

func (s *Site) nav(p Page) nav {
	path := p.Path
	if path == "" {
		path = s.href("/")
	}
	toggle := path
	if !p.MenuOpen {
		toggle = path + "?" + url.Values{"menu": {"open"}}.Encode()
	}
	return nav{
		Owner:      s.portfolio.Site.Owner,
		Home:       s.href("/"),
		Open:       p.MenuOpen,
		ToggleHref: toggle,
		Sections:   navSections,
	}
}

func (s *Site) title() string {
	if s.portfolio.Site.Title != "" {
		return s.portfolio.Site.Title
	}
	return s.portfolio.Site.Owner
}

// Nav renders the navbar alone for panel-only responses. HTMX swaps it in
// out of band so the menu toggle follows the new path.
func (s *Site) Nav(p Page) templ.Component {
	n := s.nav(p)
	n.OOB = true
	return s.partial("navbar", n)
}

// Layout wraps p.Panel in the page shell.
func (s *Site) Layout(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body template.HTML
		if p.Panel != nil {
			var err error
			if body, err = templ.ToGoHTML(ctx, p.Panel); err != nil {
				return fmt.Errorf("rendering panel: %w", err)
			}
		}
		return s.tmpl.ExecuteTemplate(w, "layout", layoutData{
			Title: s.title(),
			Nav:   s.nav(p),
			Body:  body,
		})
	})
}
