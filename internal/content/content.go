// Package content holds the portfolio copy: the sections of the home page
// and the detail pages linked from its cards.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"regexp"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid content")

type Site struct {
	Owner string `koanf:"owner"`
	Title string `koanf:"title"`
}

type Hero struct {
	Greeting string `koanf:"greeting"`
	Tagline  string `koanf:"tagline"`
	Image    string `koanf:"image"`
	CTA      string `koanf:"cta"`
}

type Tool struct {
	Label string `koanf:"label"`
	Icon  string `koanf:"icon"`
}

type SkillGroup struct {
	Name  string `koanf:"name"`
	Tools []Tool `koanf:"tools"`
}

type School struct {
	Institution string `koanf:"institution"`
	Degree      string `koanf:"degree"`
	Period      string `koanf:"period"`
}

// Job is a work-experience card and its detail page.
type Job struct {
	Slug    string `koanf:"slug"`
	Badge   string `koanf:"badge"`
	Company string `koanf:"company"`
	Role    string `koanf:"role"`
	Period  string `koanf:"period"`
	Summary string `koanf:"summary"`
	Detail  string `koanf:"detail"`

	DetailHTML template.HTML `koanf:"-"`
}

// Project is a gallery card and its detail page.
type Project struct {
	Slug    string `koanf:"slug"`
	Badge   string `koanf:"badge"`
	Name    string `koanf:"name"`
	Tagline string `koanf:"tagline"`
	Summary string `koanf:"summary"`
	Detail  string `koanf:"detail"`

	DetailHTML template.HTML `koanf:"-"`
}

type Link struct {
	Display string `koanf:"display"`
	Dial    string `koanf:"dial"`
	Maps    string `koanf:"maps"`
}

type Contact struct {
	Blurb   string `koanf:"blurb"`
	Email   string `koanf:"email"`
	Phone   Link   `koanf:"phone"`
	Address Link   `koanf:"address"`
}

// Portfolio is the full site copy.
type Portfolio struct {
	Site            Site         `koanf:"site"`
	Hero            Hero         `koanf:"hero"`
	Skills          []SkillGroup `koanf:"skills"`
	Education       []School     `koanf:"education"`
	EducationDetail string       `koanf:"education_detail"`
	Experience      []Job        `koanf:"experience"`
	Projects        []Project    `koanf:"projects"`
	Contact         Contact      `koanf:"contact"`

	EducationHTML template.HTML `koanf:"-"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validate checks the fields that routing and rendering depend on.
func (p *Portfolio) Validate() error {
	if p.Site.Owner == "" {
		return fmt.Errorf("%w: site.owner is required", ErrInvalid)
	}

	seen := make(map[string]bool, len(p.Experience))
	for i, j := range p.Experience {
		if err := checkSlug("experience", i, j.Slug, seen); err != nil {
			return err
		}
	}

	seen = make(map[string]bool, len(p.Projects))
	for i, pr := range p.Projects {
		if err := checkSlug("projects", i, pr.Slug, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkSlug(collection string, i int, slug string, seen map[string]bool) error {
	switch {
	case slug == "":
		return fmt.Errorf("%w: %s[%d].slug is required", ErrInvalid, collection, i)
	case !slugPattern.MatchString(slug):
		return fmt.Errorf("%w: %s[%d].slug %q must match %s", ErrInvalid, collection, i, slug, slugPattern)
	case seen[slug]:
		return fmt.Errorf("%w: duplicate %s slug %q", ErrInvalid, collection, slug)
	}
	seen[slug] = true
	return nil
}

// Job returns the experience entry with the given slug.
func (p *Portfolio) Job(slug string) (Job, bool) {
	for _, j := range p.Experience {
		if j.Slug == slug {
			return j, true
		}
	}
	return Job{}, false
}

// Project returns the project entry with the given slug.
func (p *Portfolio) Project(slug string) (Project, bool) {
	for _, pr := range p.Projects {
		if pr.Slug == slug {
			return pr, true
		}
	}
	return Project{}, false
}
