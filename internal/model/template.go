package model

// JobTemplate is the job-submission document consumed by the render farm
type JobTemplate struct {
	SpecificationVersion string                `yaml:"specificationVersion" json:"specificationVersion"`
	Name                 string                `yaml:"name" json:"name"`
	Description          *string               `yaml:"description" json:"description"`
	ParameterDefinitions []ParameterDefinition `yaml:"parameterDefinitions" json:"parameterDefinitions"`
	Steps                []Step                `yaml:"steps" json:"steps"`
	JobEnvironments      []Environment         `yaml:"jobEnvironments,omitempty" json:"jobEnvironments,omitempty"`
}

// ParameterDefinition declares a job parameter. Name is a pointer because
// the per-group image size definitions carry a null name unless overridden.
type ParameterDefinition struct {
	Name          *string        `yaml:"name" json:"name"`
	Type          string         `yaml:"type" json:"type"` // PATH, STRING, INT
	ObjectType    string         `yaml:"objectType,omitempty" json:"objectType,omitempty"`
	DataFlow      string         `yaml:"dataFlow,omitempty" json:"dataFlow,omitempty"`
	UserInterface *UserInterface `yaml:"userInterface,omitempty" json:"userInterface,omitempty"`
	Default       interface{}    `yaml:"default,omitempty" json:"default,omitempty"`
	AllowedValues []string       `yaml:"allowedValues,omitempty" json:"allowedValues,omitempty"`
	MinValue      *int           `yaml:"minValue,omitempty" json:"minValue,omitempty"`
	Description   string         `yaml:"description,omitempty" json:"description,omitempty"`
}

// UserInterface tells the submitter how to render a parameter
type UserInterface struct {
	Control     string       `yaml:"control" json:"control"`
	Label       string       `yaml:"label,omitempty" json:"label,omitempty"`
	GroupLabel  string       `yaml:"groupLabel,omitempty" json:"groupLabel,omitempty"`
	FileFilters []FileFilter `yaml:"fileFilters,omitempty" json:"fileFilters,omitempty"`
}

// FileFilter is one entry of a file chooser filter list
type FileFilter struct {
	Label    string   `yaml:"label" json:"label"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// Step renders one view layer. HostRequirements is a pointer so an empty
// mapping is still written while an unset one is left off.
type Step struct {
	Name             string                  `yaml:"name" json:"name"`
	ParameterSpace   ParameterSpace          `yaml:"parameterSpace" json:"parameterSpace"`
	StepEnvironments []Environment           `yaml:"stepEnvironments" json:"stepEnvironments"`
	Script           StepScript              `yaml:"script" json:"script"`
	HostRequirements *map[string]interface{} `yaml:"hostRequirements,omitempty" json:"hostRequirements,omitempty"`
}

// ParameterSpace is the task parameter space of a step
type ParameterSpace struct {
	TaskParameterDefinitions []TaskParameterDefinition `yaml:"taskParameterDefinitions" json:"taskParameterDefinitions"`
}

// TaskParameterDefinition declares one task dimension. Range is either a
// range expression string or a list of values.
type TaskParameterDefinition struct {
	Name  string      `yaml:"name" json:"name"`
	Type  string      `yaml:"type" json:"type"`
	Range interface{} `yaml:"range" json:"range"`
}

// Environment is a step or job environment
type Environment struct {
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Script      *EnvironmentScript `yaml:"script,omitempty" json:"script,omitempty"`
	Variables   map[string]string  `yaml:"variables,omitempty" json:"variables,omitempty"`
}

// EnvironmentScript runs when a session enters or leaves an environment
type EnvironmentScript struct {
	EmbeddedFiles []EmbeddedFile     `yaml:"embeddedFiles" json:"embeddedFiles"`
	Actions       EnvironmentActions `yaml:"actions" json:"actions"`
}

// EnvironmentActions are the enter/exit hooks of an environment
type EnvironmentActions struct {
	OnEnter *Action `yaml:"onEnter,omitempty" json:"onEnter,omitempty"`
	OnExit  *Action `yaml:"onExit,omitempty" json:"onExit,omitempty"`
}

// StepScript runs once per task
type StepScript struct {
	EmbeddedFiles []EmbeddedFile `yaml:"embeddedFiles" json:"embeddedFiles"`
	Actions       StepActions    `yaml:"actions" json:"actions"`
}

// StepActions holds the per-task action
type StepActions struct {
	OnRun Action `yaml:"onRun" json:"onRun"`
}

// EmbeddedFile is a file materialized in the session before an action runs
type EmbeddedFile struct {
	Name     string `yaml:"name" json:"name"`
	Filename string `yaml:"filename" json:"filename"`
	Type     string `yaml:"type" json:"type"`
	Data     string `yaml:"data" json:"data"`
}

// Action is a command invocation
type Action struct {
	Command     string      `yaml:"command" json:"command"`
	Args        []string    `yaml:"args" json:"args"`
	Cancelation Cancelation `yaml:"cancelation" json:"cancelation"`
}

// Cancelation is the policy applied when an action is canceled
type Cancelation struct {
	Mode string `yaml:"mode" json:"mode"`
}
