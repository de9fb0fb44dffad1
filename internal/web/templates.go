package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"dashboard",
	"employee_list",
	"employee_form",
	"employee_profile",
	"error",
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("2006-01-02") },
}

// Renderer holds the parsed page templates. Every page is parsed together
// with the shared layout and executed through it.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}

	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.gohtml",
			"templates/"+name+".gohtml",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	return t.ExecuteTemplate(w, "layout", data)
}

// Static returns the content of an embedded asset, e.g. "js/main.js".
func Static(path string) ([]byte, error) {
	return staticFS.ReadFile("static/" + path)
}
