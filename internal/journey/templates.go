package journey

import (
	"embed"

	"github.com/civicforms/lfpappeal/internal/renderer"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// NewRenderer builds the HTML renderer over the embedded step templates.
func NewRenderer() (*renderer.HTML, error) {
	return renderer.New(templateFS, "templates/*.html.tmpl")
}
