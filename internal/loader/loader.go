package loader

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sourceplane/blendsubmit/internal/model"
	"github.com/sourceplane/blendsubmit/internal/schema"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// OCIOEnvVar fills the OCIO config path when a submission leaves it empty
const OCIOEnvVar = "BLENDSUBMIT_OCIO"

// LoadSubmission loads, validates and decodes a submission YAML file.
// Layers that name the same layer settings share one *LayerSettings.
// A nil validator skips schema validation.
func LoadSubmission(fs afero.Fs, path string, validator *schema.Validator) (*model.Submission, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read submission file: %w", err)
	}

	if validator != nil {
		var doc interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse submission YAML: %w", err)
		}
		if err := validator.ValidateSubmission(doc); err != nil {
			return nil, fmt.Errorf("submission %s failed schema validation: %w", path, err)
		}
	}

	var sub model.Submission
	if err := yaml.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to parse submission YAML: %w", err)
	}

	if err := resolveLayers(&sub); err != nil {
		return nil, err
	}

	applyEnvOverrides(&sub)

	return &sub, nil
}

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func resolveLayers(sub *model.Submission) error {
	sub.ResolvedLayers = make([]model.Layer, 0, len(sub.Layers))
	for _, ref := range sub.Layers {
		ls, ok := sub.LayerSettings[ref.Settings]
		if !ok || ls == nil {
			return fmt.Errorf("layer %s references unknown layer settings %q", ref.Name, ref.Settings)
		}
		sub.ResolvedLayers = append(sub.ResolvedLayers, model.Layer{
			Name:     ref.Name,
			Settings: ls,
		})
	}
	return nil
}

func applyEnvOverrides(sub *model.Submission) {
	if sub.Settings.OCIOConfigPath == "" {
		if ocio := os.Getenv(OCIOEnvVar); ocio != "" {
			sub.Settings.OCIOConfigPath = ocio
		}
	}
}
