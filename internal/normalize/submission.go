package normalize

import (
	"fmt"

	"github.com/sourceplane/blendsubmit/internal/model"
	"github.com/sourceplane/blendsubmit/internal/render"
)

const (
	defaultRenderEngine = "cycles"
	defaultFrameRange   = "1-1"
)

// NormalizeSubmission fills defaults and rejects submissions that cannot
// produce a template. Layer settings are updated in place, so layers that
// share settings see the same defaults.
func NormalizeSubmission(sub *model.Submission) (*model.Submission, error) {
	if sub == nil {
		return nil, fmt.Errorf("submission cannot be nil")
	}

	if sub.Settings.Name == "" {
		sub.Settings.Name = render.DefaultJobName
	}
	if sub.Settings.RenderEngine == "" {
		sub.Settings.RenderEngine = defaultRenderEngine
	}

	if len(sub.ResolvedLayers) == 0 {
		return nil, fmt.Errorf("submission must have at least one layer")
	}

	seen := make(map[string]bool, len(sub.ResolvedLayers))
	for _, layer := range sub.ResolvedLayers {
		if layer.Name == "" {
			return nil, fmt.Errorf("layer must have a name")
		}
		if seen[layer.Name] {
			return nil, fmt.Errorf("duplicate layer name: %s", layer.Name)
		}
		seen[layer.Name] = true

		if layer.Settings == nil {
			return nil, fmt.Errorf("layer %s has no settings", layer.Name)
		}

		ls := layer.Settings
		if ls.FrameRange == "" {
			ls.FrameRange = defaultFrameRange
		}
		if ls.RendererName == "" {
			ls.RendererName = sub.Settings.RenderEngine
		}
		if ls.RenderableCameraNames == nil {
			ls.RenderableCameraNames = []string{}
		}
		if ls.OutputDirectories == nil {
			ls.OutputDirectories = []string{}
		}
	}

	return sub, nil
}
