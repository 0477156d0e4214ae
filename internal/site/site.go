// Package site renders the portfolio: the home page sections, the detail
// pages and the page shell around them.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/vmiyer/portfolio/internal/content"
	"github.com/vmiyer/portfolio/internal/reveal"
	"github.com/vmiyer/portfolio/internal/router"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/css/*.css static/js/*.js
var staticFS embed.FS

// Static returns the embedded CSS and JS rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type navSection struct {
	ID    string
	Label string
}

var navSections = []navSection{
	{ID: "home", Label: "Home"},
	{ID: "skills", Label: "Skills"},
	{ID: "education", Label: "Education"},
	{ID: "experience", Label: "Experience"},
	{ID: "projects", Label: "Projects"},
	{ID: "contact", Label: "Contact"},
}

// homeSections are rendered top to bottom, each inside its own reveal wrapper.
var homeSections = []struct {
	template string
	class    string
}{
	{template: "hero", class: "pt-24 pb-20"},
	{template: "skills", class: "py-20"},
	{template: "education", class: "py-20"},
	{template: "experience", class: "py-20"},
	{template: "projects", class: "py-20"},
	{template: "contact", class: "py-20"},
}

// Site renders one portfolio under one base path.
type Site struct {
	portfolio *content.Portfolio
	base      string
	tmpl      *template.Template
	now       func() time.Time
}

func New(p *content.Portfolio, base string) (*Site, error) {
	s := &Site{
		portfolio: p,
		base:      router.NormalizeBase(base),
		now:       time.Now,
	}
	tmpl, err := template.New("site").Funcs(s.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	s.tmpl = tmpl
	return s, nil
}

// Templates returns the parsed template set, including the admin pages.
func (s *Site) Templates() *template.Template {
	return s.tmpl
}

func (s *Site) Base() string {
	return s.base
}

type card struct {
	Href     string
	Badge    string
	Title    string
	Subtitle string
	Summary  string
}

func (s *Site) funcs() template.FuncMap {
	return template.FuncMap{
		"href": s.href,
		"add":  func(a, b int) int { return a + b },
		"card": func(href, badge, title, subtitle, summary string) card {
			return card{Href: href, Badge: badge, Title: title, Subtitle: subtitle, Summary: summary}
		},
		"tel": telURL,
	}
}

// href prefixes site-relative paths with the base path. Absolute URLs and
// fragments pass through.
func (s *Site) href(p string) string {
	if strings.Contains(p, "://") || strings.HasPrefix(p, "#") {
		return p
	}
	return router.Join(s.base, p)
}

func telURL(number string) template.URL {
	var b strings.Builder
	for _, r := range number {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return template.URL("tel:" + b.String())
}

func (s *Site) partial(name string, data any) templ.Component {
	t := s.tmpl.Lookup(name)
	if t == nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return fmt.Errorf("template %q not defined", name)
		})
	}
	return templ.FromGoHTML(t, data)
}

// Home is the main page panel.
func (s *Site) Home() templ.Component {
	parts := make([]templ.Component, 0, len(homeSections)+1)
	for _, hs := range homeSections {
		section := reveal.NewSection("reveal-"+hs.template, hs.class)
		parts = append(parts, section.Component(s.partial(hs.template, s.portfolio)))
	}
	parts = append(parts, s.footer())
	return templ.Join(parts...)
}

type footerData struct {
	Year  int
	Owner string
}

// footer reads the clock at render time so the year rolls over.
func (s *Site) footer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return s.tmpl.ExecuteTemplate(w, "footer", footerData{
			Year:  s.now().Year(),
			Owner: s.portfolio.Site.Owner,
		})
	})
}

type detailData struct {
	Back       string
	Heading    string
	Subheading string
	Body       template.HTML
}

func (s *Site) ExperienceDetail(j content.Job) templ.Component {
	sub := j.Role
	if j.Period != "" {
		sub = fmt.Sprintf("%s (%s)", j.Role, j.Period)
	}
	return s.partial("detail", detailData{
		Back:       s.href("/") + "#experience",
		Heading:    j.Company,
		Subheading: sub,
		Body:       j.DetailHTML,
	})
}

func (s *Site) ProjectDetail(p content.Project) templ.Component {
	return s.partial("detail", detailData{
		Back:       s.href("/") + "#projects",
		Heading:    p.Name,
		Subheading: p.Tagline,
		Body:       p.DetailHTML,
	})
}

func (s *Site) EducationDetail() templ.Component {
	return s.partial("detail", detailData{
		Back:    s.href("/") + "#education",
		Heading: "Education",
		Body:    s.portfolio.EducationHTML,
	})
}

// Routes lists every panel relative to the base path: the home page, one
// page per experience and project entry, then education.
func (s *Site) Routes() []router.Entry {
	entries := make([]router.Entry, 0, 2+len(s.portfolio.Experience)+len(s.portfolio.Projects))
	entries = append(entries, router.Entry{Path: "/", Panel: s.Home()})
	for _, j := range s.portfolio.Experience {
		entries = append(entries, router.Entry{Path: "/experience/" + j.Slug, Panel: s.ExperienceDetail(j)})
	}
	for _, p := range s.portfolio.Projects {
		entries = append(entries, router.Entry{Path: "/projects/" + p.Slug, Panel: s.ProjectDetail(p)})
	}
	entries = append(entries, router.Entry{Path: "/education", Panel: s.EducationDetail()})
	return entries
}

// Table builds the route table for this site.
func (s *Site) Table() *router.Table {
	return router.New(s.base, s.Routes()...)
}
