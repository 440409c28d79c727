package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/blendsubmit/internal/model"
)

// TemplateViewer provides human-readable views of a job template
type TemplateViewer struct {
	tmpl *model.JobTemplate
}

// NewTemplateViewer creates a new template viewer
func NewTemplateViewer(tmpl *model.JobTemplate) *TemplateViewer {
	return &TemplateViewer{tmpl: tmpl}
}

// ViewSteps returns a tree of steps with their task parameters and actions
func (tv *TemplateViewer) ViewSteps() string {
	if len(tv.tmpl.Steps) == 0 {
		return "No steps in template"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s)\n", tv.tmpl.Name, tv.tmpl.SpecificationVersion))

	for i, step := range tv.tmpl.Steps {
		isLastStep := i == len(tv.tmpl.Steps)-1
		prefix := "├─ "
		connector := "│  "
		if isLastStep {
			prefix = "└─ "
			connector = "   "
		}

		sb.WriteString(fmt.Sprintf("%s%s\n", prefix, step.Name))

		for _, p := range step.ParameterSpace.TaskParameterDefinitions {
			sb.WriteString(fmt.Sprintf("%s  ├─ %s %s = %v\n", connector, p.Type, p.Name, p.Range))
		}

		for _, env := range step.StepEnvironments {
			sb.WriteString(fmt.Sprintf("%s  ├─ env %s\n", connector, env.Name))
			if env.Script != nil {
				if env.Script.Actions.OnEnter != nil {
					sb.WriteString(fmt.Sprintf("%s  │    onEnter: %s\n", connector, commandLine(*env.Script.Actions.OnEnter)))
				}
				if env.Script.Actions.OnExit != nil {
					sb.WriteString(fmt.Sprintf("%s  │    onExit:  %s\n", connector, commandLine(*env.Script.Actions.OnExit)))
				}
			}
		}

		runPrefix := connector + "  └─ "
		if step.HostRequirements != nil {
			runPrefix = connector + "  ├─ "
		}
		sb.WriteString(fmt.Sprintf("%sonRun: %s\n", runPrefix, commandLine(step.Script.Actions.OnRun)))

		if step.HostRequirements != nil {
			sb.WriteString(fmt.Sprintf("%s  └─ hostRequirements: %v\n", connector, *step.HostRequirements))
		}
	}

	for _, env := range tv.tmpl.JobEnvironments {
		sb.WriteString(fmt.Sprintf("job env %s %v\n", env.Name, env.Variables))
	}

	sb.WriteString("═══════════════════════════════════════════════════════════\n")
	sb.WriteString(fmt.Sprintf("Summary: %d steps, %d parameters\n", len(tv.tmpl.Steps), len(tv.tmpl.ParameterDefinitions)))

	return sb.String()
}

// ViewParameters lists parameter definitions grouped by their UI group label
func (tv *TemplateViewer) ViewParameters() string {
	if len(tv.tmpl.ParameterDefinitions) == 0 {
		return "No parameters in template"
	}

	var sb strings.Builder
	sb.WriteString("Parameters\n")
	sb.WriteString("═══════════════════════════════════════════════════════════\n\n")

	// Keep first-seen group order so the view follows the template
	var groups []string
	byGroup := make(map[string][]model.ParameterDefinition)
	for _, def := range tv.tmpl.ParameterDefinitions {
		group := ""
		if def.UserInterface != nil {
			group = def.UserInterface.GroupLabel
		}
		if _, ok := byGroup[group]; !ok {
			groups = append(groups, group)
		}
		byGroup[group] = append(byGroup[group], def)
	}

	for _, group := range groups {
		title := group
		if title == "" {
			title = "(ungrouped)"
		}
		defs := byGroup[group]
		sb.WriteString(fmt.Sprintf("%s (%d)\n", title, len(defs)))

		for i, def := range defs {
			prefix := "├─ "
			if i == len(defs)-1 {
				prefix = "└─ "
			}

			name := "<unnamed>"
			if def.Name != nil {
				name = *def.Name
			}
			line := fmt.Sprintf("%s%s: %s", prefix, name, def.Type)
			if def.Default != nil {
				line += fmt.Sprintf(" = %v", def.Default)
			}
			if len(def.AllowedValues) > 0 {
				line += fmt.Sprintf(" [%s]", strings.Join(def.AllowedValues, ", "))
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func commandLine(a model.Action) string {
	line := strings.TrimSpace(a.Command + " " + strings.Join(a.Args, " "))
	// Truncate long command lines for readability
	if runes := []rune(line); len(runes) > 80 {
		line = string(runes[:77]) + "..."
	}
	return line
}
