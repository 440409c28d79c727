package render

import (
	"fmt"
	"strings"

	"github.com/sourceplane/blendsubmit/internal/model"
)

const (
	SpecificationVersion = "jobtemplate-2023-09"
	DefaultJobName       = "Blender Submission"

	daemonCommand    = "blender-openjd"
	cancelationMode  = "NOTIFY_THEN_TERMINATE"
	connectionFile   = "{{Session.WorkingDirectory}}/connection.json"
	connectionFileSp = "{{ Session.WorkingDirectory }}/connection.json"

	ocioParameterName   = "OCIOConfigPath"
	ocioEnvironmentName = "Set OCIO Path"
)

// FillJobTemplate builds the job template for the given layers. Each layer
// becomes one step, in order. A nil hostRequirements leaves the key off
// every step.
func FillJobTemplate(settings *model.SubmitterSettings, layers []model.Layer, hostRequirements map[string]interface{}) *model.JobTemplate {
	name := settings.Name
	if name == "" {
		name = DefaultJobName
	}

	var description *string
	if settings.Description != "" {
		d := settings.Description
		description = &d
	}

	tmpl := &model.JobTemplate{
		SpecificationVersion: SpecificationVersion,
		Name:                 name,
		Description:          description,
		ParameterDefinitions: baseParameterDefinitions(),
		Steps:                make([]model.Step, 0, len(layers)),
	}

	seenGroups := make(map[string]bool)
	for _, layer := range layers {
		group := layer.Settings.UIGroupLabel
		if seenGroups[group] {
			continue
		}
		seenGroups[group] = true
		tmpl.ParameterDefinitions = append(tmpl.ParameterDefinitions, imageSizeDefinitions(layer.Settings)...)
	}

	if settings.OCIOConfigPath != "" {
		tmpl.ParameterDefinitions = append(tmpl.ParameterDefinitions, ocioParameterDefinition())
		tmpl.JobEnvironments = append(tmpl.JobEnvironments, model.Environment{
			Name:      ocioEnvironmentName,
			Variables: map[string]string{"OCIO": paramRef(ocioParameterName)},
		})
	}

	for _, layer := range layers {
		step := buildStep(settings, layer)
		if hostRequirements != nil {
			step.HostRequirements = &hostRequirements
		}
		tmpl.Steps = append(tmpl.Steps, step)
	}

	return tmpl
}

func buildStep(settings *model.SubmitterSettings, layer model.Layer) model.Step {
	ls := layer.Settings
	framesParam := firstNonEmpty(ls.FramesParameterName, "Frames")

	return model.Step{
		Name: layer.Name,
		ParameterSpace: model.ParameterSpace{
			TaskParameterDefinitions: []model.TaskParameterDefinition{
				{Name: "Frame", Type: "INT", Range: paramRef(framesParam)},
				// The camera dimension is fixed; the configured camera list does not feed it.
				{Name: "Camera", Type: "STRING", Range: []string{"Camera"}},
			},
		},
		StepEnvironments: []model.Environment{
			{
				Name:        "Blender",
				Description: "Runs Blender in the background.",
				Script: &model.EnvironmentScript{
					EmbeddedFiles: []model.EmbeddedFile{
						{
							Name:     "initData",
							Filename: "init-data.yaml",
							Type:     "TEXT",
							Data:     initData(settings, layer),
						},
					},
					Actions: model.EnvironmentActions{
						OnEnter: &model.Action{
							Command: daemonCommand,
							Args: []string{
								"daemon", "start",
								"--connection-file", connectionFile,
								"--init-data", "file://{{Env.File.initData}}",
							},
							Cancelation: model.Cancelation{Mode: cancelationMode},
						},
						OnExit: &model.Action{
							Command: daemonCommand,
							Args: []string{
								"daemon", "stop",
								"--connection-file", connectionFileSp,
							},
							Cancelation: model.Cancelation{Mode: cancelationMode},
						},
					},
				},
			},
		},
		Script: model.StepScript{
			EmbeddedFiles: []model.EmbeddedFile{
				{
					Name:     "runData",
					Filename: "run-data.yaml",
					Type:     "TEXT",
					Data:     runData(),
				},
			},
			Actions: model.StepActions{
				OnRun: model.Action{
					Command: daemonCommand,
					Args: []string{
						"daemon", "run",
						"--connection-file", connectionFileSp,
						"--run-data", "file://{{ Task.File.runData }}",
					},
					Cancelation: model.Cancelation{Mode: cancelationMode},
				},
			},
		},
	}
}

// initData is the daemon start payload. view_layer and renderer are written
// literally since every step renders a different layer.
func initData(settings *model.SubmitterSettings, layer model.Layer) string {
	ls := layer.Settings
	prefixParam := firstNonEmpty(ls.OutputFilePrefixParameterName, settings.OutputFilePrefixParameterName, "OutputFilePrefix")

	lines := []string{
		"scene_file: " + paramRef("BlenderFile"),
		"render_engine: " + paramRef("RenderEngine"),
		"gpu_device: " + paramRef("GPUDevice"),
		"render_scene: " + paramRef("RenderScene"),
		"view_layer: " + layer.Name,
		"output_dir: " + paramRef("OutputDir"),
		"output_file_name: " + paramRef("OutputFileName"),
		"output_format: " + paramRef("OutputFormat"),
		"renderer: " + ls.RendererName,
		"output_file_prefix: " + paramRef(prefixParam),
		"image_width: " + paramRef(firstNonEmpty(ls.ImageWidthParameterName, "ImageWidth")),
		"image_height: " + paramRef(firstNonEmpty(ls.ImageHeightParameterName, "ImageHeight")),
	}
	return strings.Join(lines, "\n")
}

func runData() string {
	return "frame: {{Task.Param.Frame}}\ncamera: '{{Task.Param.Camera}}'\n"
}

func paramRef(name string) string {
	return fmt.Sprintf("{{Param.%s}}", name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
