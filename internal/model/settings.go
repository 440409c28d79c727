package model

// SubmitterSettings holds the job-wide choices made in the submitter dialog
type SubmitterSettings struct {
	Name                          string `yaml:"name" json:"name"`
	Description                   string `yaml:"description" json:"description"`
	ProjectPath                   string `yaml:"projectPath" json:"projectPath"` // the .blend scene file
	RenderEngine                  string `yaml:"renderEngine" json:"renderEngine"`
	GPUDevice                     string `yaml:"gpuDevice" json:"gpuDevice"` // empty means ask the host
	OutputFilePrefixParameterName string `yaml:"outputFilePrefixParameterName" json:"outputFilePrefixParameterName"`
	OCIOConfigPath                string `yaml:"ocioConfigPath" json:"ocioConfigPath"`
	IncludeAdaptorWheels          bool   `yaml:"includeAdaptorWheels" json:"includeAdaptorWheels"`
}

// Resolution is an image size in pixels
type Resolution struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// LayerSettings is the render configuration of one or more view layers.
// Layers that share configuration point at the same LayerSettings.
type LayerSettings struct {
	RendererName                  string     `yaml:"rendererName" json:"rendererName"`
	FrameRange                    string     `yaml:"frameRange" json:"frameRange"`
	FramesParameterName           string     `yaml:"framesParameterName" json:"framesParameterName"`
	RenderableCameraNames         []string   `yaml:"renderableCameraNames" json:"renderableCameraNames"`
	OutputDirectories             []string   `yaml:"outputDirectories" json:"outputDirectories"`
	OutputFilePrefix              string     `yaml:"outputFilePrefix" json:"outputFilePrefix"`
	OutputFilePrefixParameterName string     `yaml:"outputFilePrefixParameterName" json:"outputFilePrefixParameterName"`
	UIGroupLabel                  string     `yaml:"uiGroupLabel" json:"uiGroupLabel"`
	ImageWidthParameterName       string     `yaml:"imageWidthParameterName" json:"imageWidthParameterName"`
	ImageHeightParameterName      string     `yaml:"imageHeightParameterName" json:"imageHeightParameterName"`
	ImageResolution               Resolution `yaml:"imageResolution" json:"imageResolution"`
	SceneName                     string     `yaml:"sceneName" json:"sceneName"`
}

// Layer is a named view layer rendered as one step
type Layer struct {
	Name     string
	Settings *LayerSettings
}

// ParameterValue is a resolved job parameter
type ParameterValue struct {
	Name  string      `yaml:"name" json:"name"`
	Value interface{} `yaml:"value" json:"value"`
}

// AutoDetectedAssets are the inputs found next to a scene file
type AutoDetectedAssets struct {
	InputFilenames   map[string]bool
	InputDirectories map[string]bool
}

// NewAutoDetectedAssets returns empty asset sets
func NewAutoDetectedAssets() AutoDetectedAssets {
	return AutoDetectedAssets{
		InputFilenames:   make(map[string]bool),
		InputDirectories: make(map[string]bool),
	}
}
