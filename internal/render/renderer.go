package render

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sourceplane/blendsubmit/internal/model"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for bundle documents
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a flag value or file extension to a Format
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", ".json":
		return FormatJSON, nil
	case "yaml", "yml", ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (want json or yaml)", s)
	}
}

// Extension returns the file extension for the format
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yaml"
}

// Renderer serializes job templates and their companion documents
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render serializes any bundle document in the given format
func (r *Renderer) Render(doc interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.RenderJSON(doc)
	case FormatYAML:
		return r.RenderYAML(doc)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderJSON renders a document as indented JSON
func (r *Renderer) RenderJSON(doc interface{}) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// RenderYAML renders a document as YAML with two-space indentation
func (r *Renderer) RenderYAML(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DebugDump outputs debug information about the template
func (r *Renderer) DebugDump(tmpl *model.JobTemplate) string {
	output := fmt.Sprintf("Template: %s (%s)\n", tmpl.Name, tmpl.SpecificationVersion)
	output += fmt.Sprintf("Parameters: %d\n", len(tmpl.ParameterDefinitions))
	output += fmt.Sprintf("Job environments: %d\n", len(tmpl.JobEnvironments))
	output += fmt.Sprintf("Steps: %d\n\n", len(tmpl.Steps))

	for _, step := range tmpl.Steps {
		output += fmt.Sprintf("Step: %s\n", step.Name)
		output += fmt.Sprintf("  Task parameters: %d\n", len(step.ParameterSpace.TaskParameterDefinitions))
		output += fmt.Sprintf("  Environments: %d\n", len(step.StepEnvironments))
		if step.HostRequirements != nil {
			output += fmt.Sprintf("  Host requirements: %v\n", *step.HostRequirements)
		}
		output += "\n"
	}

	return output
}
