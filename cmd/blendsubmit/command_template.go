package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourceplane/blendsubmit/internal/render"
	"github.com/spf13/cobra"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Fill the job template from a submission",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateTemplate()
	},
}

func registerTemplateCommand(root *cobra.Command) {
	root.AddCommand(templateCmd)

	templateCmd.Flags().StringVarP(&outputFile, "output", "o", "template.yaml", "Output template file path (- for stdout)")
	templateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "Output format (json/yaml, default from extension)")
	templateCmd.Flags().StringVarP(&viewTemplate, "view", "v", "", "View template (steps/parameters)")
}

func generateTemplate() error {
	sub, validator, err := loadSubmission()
	if err != nil {
		return err
	}

	tmpl, err := fillAndValidate(sub, validator)
	if err != nil {
		return err
	}

	renderer := render.NewRenderer()
	if debugMode {
		fmt.Fprintln(os.Stderr, "\n"+renderer.DebugDump(tmpl))
	}

	format, err := templateFormat()
	if err != nil {
		return err
	}
	data, err := renderer.Render(tmpl, format)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}
	if err := writeOutput(data); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Template filled with %d steps\n", len(tmpl.Steps))

	if viewTemplate != "" {
		viewer := render.NewTemplateViewer(tmpl)
		var output string

		switch viewTemplate {
		case "parameters":
			output = viewer.ViewParameters()
		default:
			// Default to step view
			output = viewer.ViewSteps()
		}

		fmt.Fprintln(os.Stderr, "\n"+output)
	}

	return nil
}

// templateFormat uses --format when given, else the output file extension
func templateFormat() (render.Format, error) {
	if outputFormat != "" {
		return render.ParseFormat(outputFormat)
	}
	if ext := filepath.Ext(outputFile); ext != "" {
		return render.ParseFormat(ext)
	}
	return render.FormatYAML, nil
}
