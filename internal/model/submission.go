package model

// Submission is the on-disk description of one render submission
type Submission struct {
	APIVersion       string                    `yaml:"apiVersion" json:"apiVersion"`
	Kind             string                    `yaml:"kind" json:"kind"`
	Settings         SubmitterSettings         `yaml:"settings" json:"settings"`
	LayerSettings    map[string]*LayerSettings `yaml:"layerSettings" json:"layerSettings"`
	Layers           []LayerRef                `yaml:"layers" json:"layers"`
	QueueParameters  []ParameterValue          `yaml:"queueParameters" json:"queueParameters"`
	HostRequirements map[string]interface{}    `yaml:"hostRequirements" json:"hostRequirements"`

	// ResolvedLayers is filled by the loader from Layers and LayerSettings
	ResolvedLayers []Layer `yaml:"-" json:"-"`
}

// LayerRef names a view layer and the layer settings it renders with
type LayerRef struct {
	Name     string `yaml:"name" json:"name"`
	Settings string `yaml:"settings" json:"settings"`
}
