package journey

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content/guidance.yaml
var guidanceYAML []byte

// StepGuidance is the static copy rendered above each step's form.
type StepGuidance struct {
	Heading string   `yaml:"heading"`
	Body    []string `yaml:"body"`
}

// guidance is keyed by template name.
var guidance map[string]StepGuidance

func init() {
	if err := yaml.Unmarshal(guidanceYAML, &guidance); err != nil {
		panic(fmt.Sprintf("invalid step guidance: %v", err))
	}
}

// Guidance returns the static copy for a step template. Unknown templates
// get an empty block rather than an error; the page still renders.
func Guidance(template string) StepGuidance {
	return guidance[template]
}
