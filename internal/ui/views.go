// Package ui renders the dashboard's server-side views and carries the
// transient flash notices between redirects.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine implements fiber.Views on top of html/template. Every page template
// pulls in the shared header/footer partials, so rendering a page by name
// produces the full document.
type Engine struct {
	templates *template.Template
}

func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Load() error {
	t := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"inc":   func(i int) int { return i + 1 },
		"trim": func(s string, max int) string {
			if len(s) <= max {
				return s
			}
			return s[:max] + "..."
		},
		"orderBadge": func(status string) string {
			switch status {
			case "DELIVERED":
				return "badge-green"
			case "CANCELLED":
				return "badge-red"
			case "PENDING":
				return "badge-yellow"
			default:
				return "badge-gray"
			}
		},
		"paymentBadge": func(status string) string {
			switch status {
			case "SUCCESS":
				return "badge-green"
			case "FAILED":
				return "badge-red"
			case "PENDING":
				return "badge-yellow"
			default:
				return "badge-gray"
			}
		},
	})
	t, err := t.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}
	e.templates = t
	return nil
}

func (e *Engine) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if e.templates == nil {
		if err := e.Load(); err != nil {
			return err
		}
	}
	if err := e.templates.ExecuteTemplate(w, name, data); err != nil {
		return errors.Wrapf(err, "render template %s", name)
	}
	return nil
}
