package main

import (
	"fmt"
	"os"

	"github.com/sourceplane/blendsubmit/internal/assets"
	"github.com/sourceplane/blendsubmit/internal/loader"
	"github.com/sourceplane/blendsubmit/internal/model"
	"github.com/sourceplane/blendsubmit/internal/normalize"
	"github.com/sourceplane/blendsubmit/internal/params"
	"github.com/sourceplane/blendsubmit/internal/render"
	"github.com/sourceplane/blendsubmit/internal/schema"
	"github.com/spf13/afero"
)

// fs is swapped for an in-memory filesystem in tests
var fs afero.Fs = afero.NewOsFs()

func loadSubmission() (*model.Submission, *schema.Validator, error) {
	validator, err := schema.NewValidator()
	if err != nil {
		return nil, nil, err
	}

	fmt.Fprintln(os.Stderr, "□ Loading submission...")
	sub, err := loader.LoadSubmission(fs, submissionFile, validator)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load submission: %w", err)
	}

	fmt.Fprintln(os.Stderr, "□ Normalizing submission...")
	normalized, err := normalize.NormalizeSubmission(sub)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to normalize submission: %w", err)
	}

	return normalized, validator, nil
}

// fillAndValidate fills the job template and checks it against the
// job template schema
func fillAndValidate(sub *model.Submission, validator *schema.Validator) (*model.JobTemplate, error) {
	fmt.Fprintln(os.Stderr, "□ Filling job template...")
	tmpl := render.FillJobTemplate(&sub.Settings, sub.ResolvedLayers, sub.HostRequirements)

	fmt.Fprintln(os.Stderr, "□ Validating job template...")
	if err := validator.ValidateJobTemplate(tmpl); err != nil {
		return nil, fmt.Errorf("job template failed schema validation: %w", err)
	}

	return tmpl, nil
}

// layerSettingsFor picks the layer whose values are submitted. An empty
// name selects the first layer.
func layerSettingsFor(sub *model.Submission, name string) (*model.LayerSettings, error) {
	if name == "" {
		return sub.ResolvedLayers[0].Settings, nil
	}
	for _, layer := range sub.ResolvedLayers {
		if layer.Name == name {
			return layer.Settings, nil
		}
	}
	return nil, fmt.Errorf("layer not found: %s", name)
}

func resolveParameterValues(sub *model.Submission, ls *model.LayerSettings) ([]model.ParameterValue, error) {
	fmt.Fprintln(os.Stderr, "□ Resolving parameter values...")
	resolver := params.NewResolver(params.EnvDeviceProvider{})
	values, err := resolver.ParameterValues(&sub.Settings, ls, sub.QueueParameters)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve parameter values: %w", err)
	}
	return values, nil
}

func classifyAssets(sub *model.Submission) (model.AutoDetectedAssets, error) {
	fmt.Fprintln(os.Stderr, "□ Detecting assets...")
	finder := assets.NewDirectoryFinder(fs, logger)
	classifier := assets.NewClassifier(fs, finder, logger)
	detected, err := classifier.Classify(sub.Settings.ProjectPath)
	if err != nil {
		return detected, fmt.Errorf("failed to classify assets: %w", err)
	}
	return detected, nil
}

// writeOutput writes data to outputFile, or stdout when it is empty or "-"
func writeOutput(data []byte) error {
	if outputFile == "" || outputFile == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := afero.WriteFile(fs, outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	fmt.Fprintf(os.Stderr, "✓ Saved to: %s\n", outputFile)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
