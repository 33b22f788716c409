// ABOUTME: Template loading and description rendering for HTML pages.
// ABOUTME: Markdown descriptions are converted to HTML and sanitized.

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

func descriptionSanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}

// renderDescription turns a markdown description into sanitized HTML.
func renderDescription(md string) template.HTML {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipImages})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return template.HTML(descriptionSanitizer().SanitizeBytes(out))
}

type views struct {
	index  *template.Template
	submit *template.Template
}

var funcs = template.FuncMap{
	"description": renderDescription,
}

func loadViews() (*views, error) {
	parse := func(page string) (*template.Template, error) {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		return t, nil
	}
	index, err := parse("index.html")
	if err != nil {
		return nil, err
	}
	submit, err := parse("submit.html")
	if err != nil {
		return nil, err
	}
	return &views{index: index, submit: submit}, nil
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
