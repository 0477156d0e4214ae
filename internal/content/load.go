package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

// embedded serves the built-in portfolio.yaml to koanf.
type embedded []byte

func (e embedded) ReadBytes() ([]byte, error) {
	return e, nil
}

func (e embedded) Read() (map[string]interface{}, error) {
	return nil, errors.New("embedded provider does not support Read")
}

// Load reads the portfolio from path, or the built-in copy when path is
// empty, validates it and renders the Markdown detail fields.
func Load(path string) (*Portfolio, error) {
	var (
		provider koanf.Provider = embedded(defaultPortfolio)
		source                  = "embedded portfolio.yaml"
	)
	if path != "" {
		provider = file.Provider(path)
		source = path
	}

	k := koanf.New(".")
	if err := k.Load(provider, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading content %s: %w", source, err)
	}

	var p Portfolio
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("unmarshalling content %s: %w", source, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating content %s: %w", source, err)
	}
	if err := p.renderMarkdown(newMarkdown()); err != nil {
		return nil, fmt.Errorf("rendering content %s: %w", source, err)
	}
	return &p, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
}

func (p *Portfolio) renderMarkdown(md goldmark.Markdown) error {
	var err error
	if p.EducationHTML, err = render(md, p.EducationDetail); err != nil {
		return fmt.Errorf("education_detail: %w", err)
	}
	for i := range p.Experience {
		if p.Experience[i].DetailHTML, err = render(md, p.Experience[i].Detail); err != nil {
			return fmt.Errorf("experience %s: %w", p.Experience[i].Slug, err)
		}
	}
	for i := range p.Projects {
		if p.Projects[i].DetailHTML, err = render(md, p.Projects[i].Detail); err != nil {
			return fmt.Errorf("project %s: %w", p.Projects[i].Slug, err)
		}
	}
	return nil
}

// Raw HTML in the source is dropped by goldmark's default renderer, so the
// output is safe to mark as template.HTML.
func render(md goldmark.Markdown, src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
