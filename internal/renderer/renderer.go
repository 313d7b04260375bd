// Package renderer renders wizard step templates to HTML.
package renderer

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/civicforms/lfpappeal/pkg/ports"
)

// HTML renders named templates parsed from a filesystem. Every template is
// executed against the view model map the wizard controller builds.
type HTML struct {
	templates *template.Template
}

var _ ports.Renderer = (*HTML)(nil)

// New parses all templates matching the glob from fsys. Each step template
// is looked up by its base name without extension.
func New(fsys fs.FS, glob string) (*HTML, error) {
	tmpl, err := template.ParseFS(fsys, glob)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTML{templates: tmpl}, nil
}

// Render executes the named template. The name is the step's template name;
// the file carries a .html.tmpl suffix.
func (h *HTML) Render(w http.ResponseWriter, name string, data map[string]any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name+".html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return nil
}
