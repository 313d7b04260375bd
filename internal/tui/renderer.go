// Package tui renders the journey's step guidance as styled terminal
// output for the preview command.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/civicforms/lfpappeal/internal/journey"
)

// NewRenderer returns a function rendering markdown for the terminal.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PreviewStep renders one step's guidance as markdown. Unknown templates
// yield a short notice instead of an error.
func PreviewStep(template string) (string, error) {
	g := journey.Guidance(template)
	if g.Heading == "" {
		return fmt.Sprintf("no guidance for step %q\n", template), nil
	}

	var md strings.Builder
	md.WriteString("# " + g.Heading + "\n\n")
	for _, p := range g.Body {
		md.WriteString(p + "\n\n")
	}
	return NewRenderer()(md.String())
}
