package ports

import "net/http"

// Renderer turns a template name and view data into a response body.
// Template lookup, layout and escaping are entirely the renderer's concern;
// controllers only pass data through.
type Renderer interface {
	Render(w http.ResponseWriter, template string, data map[string]any) error
}
