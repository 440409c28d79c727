package render

import "github.com/sourceplane/blendsubmit/internal/model"

const blenderSettingsGroup = "Blender Settings"

// OutputFormats are the image formats Blender can write
var OutputFormats = []string{
	"TARGA",
	"TARGA_RAW",
	"JPEG",
	"IRIS",
	"PNG",
	"HDR",
	"TIFF",
	"OPEN_EXR",
	"OPEN_EXR_MULTILAYER",
	"CINEON",
	"DPX",
	"JPEG2000",
	"WEBP",
}

// RenderEngines are the engines the RenderEngine parameter accepts
var RenderEngines = []string{"eevee", "workbench", "cycles"}

// baseParameterDefinitions returns a fresh copy of the fixed parameter catalog
func baseParameterDefinitions() []model.ParameterDefinition {
	return []model.ParameterDefinition{
		{
			Name:       strPtr("BlenderFile"),
			Type:       "PATH",
			ObjectType: "FILE",
			DataFlow:   "IN",
			UserInterface: &model.UserInterface{
				Control: "CHOOSE_INPUT_FILE",
				Label:   "Blender File",
				FileFilters: []model.FileFilter{
					{Label: "Blender Files", Patterns: []string{"*.blend"}},
					{Label: "All Files", Patterns: []string{"*"}},
				},
			},
			Description: "The Blender scene file you want to render.",
		},
		{
			Name:          strPtr("RenderEngine"),
			Type:          "STRING",
			Default:       "cycles",
			AllowedValues: append([]string(nil), RenderEngines...),
		},
		{
			Name: strPtr("RenderScene"),
			Type: "STRING",
			UserInterface: &model.UserInterface{
				Control:    "LINE_EDIT",
				Label:      "Scene",
				GroupLabel: blenderSettingsGroup,
			},
			Default:     "Scene",
			Description: "The scene you want to render (scene name).",
		},
		{
			Name:          strPtr("ViewLayer"),
			Type:          "STRING",
			UserInterface: &model.UserInterface{Control: "LINE_EDIT", Label: "view_layer"},
			Description:   "The layer to render.",
			Default:       "ViewLayer",
		},
		{
			Name: strPtr("Frames"),
			Type: "STRING",
			UserInterface: &model.UserInterface{
				Control:    "LINE_EDIT",
				Label:      "Frames",
				GroupLabel: blenderSettingsGroup,
			},
			Default:     "1-1",
			Description: "The frames to render. E.g. 1-3,8,11-15",
		},
		{
			Name:          strPtr("OutputDir"),
			Type:          "PATH",
			ObjectType:    "DIRECTORY",
			DataFlow:      "OUT",
			UserInterface: &model.UserInterface{Control: "CHOOSE_DIRECTORY", Label: "Output Directory"},
			Description:   "The render output directory.",
		},
		{
			Name:          strPtr("OutputFileName"),
			Type:          "STRING",
			UserInterface: &model.UserInterface{Control: "LINE_EDIT", Label: "Output File Name"},
			Default:       "output_####",
			Description:   "The output filename (without extension).",
		},
		{
			Name:          strPtr("OutputFormat"),
			Type:          "STRING",
			UserInterface: &model.UserInterface{Control: "DROPDOWN_LIST", Label: "Output File Format"},
			Description:   "The file format to render as.",
			Default:       "PNG",
			AllowedValues: append([]string(nil), OutputFormats...),
		},
		{
			Name:          strPtr("GPUDevice"),
			Type:          "STRING",
			UserInterface: &model.UserInterface{Control: "LINE_EDIT", Label: "GPU Device"},
			Description:   "The GPU device type to render with when using the cycles engine.",
			Default:       "NONE",
		},
		{
			Name: strPtr("StrictErrorChecking"),
			Type: "STRING",
			UserInterface: &model.UserInterface{
				Control:    "CHECK_BOX",
				Label:      "Strict Error Checking",
				GroupLabel: blenderSettingsGroup,
			},
			Description:   "Fail when errors occur.",
			Default:       "false",
			AllowedValues: []string{"true", "false"},
		},
	}
}

// imageSizeDefinitions returns the width and height definitions for a UI
// group. Their names come from the layer overrides and stay null otherwise.
func imageSizeDefinitions(ls *model.LayerSettings) []model.ParameterDefinition {
	return []model.ParameterDefinition{
		{
			Name: optionalName(ls.ImageWidthParameterName),
			Type: "INT",
			UserInterface: &model.UserInterface{
				Control:    "SPIN_BOX",
				Label:      "Image Width",
				GroupLabel: ls.UIGroupLabel,
			},
			MinValue:    intPtr(1),
			Description: "The image width.",
		},
		{
			Name: optionalName(ls.ImageHeightParameterName),
			Type: "INT",
			UserInterface: &model.UserInterface{
				Control:    "SPIN_BOX",
				Label:      "Image Height",
				GroupLabel: ls.UIGroupLabel,
			},
			MinValue:    intPtr(1),
			Description: "The image height.",
		},
	}
}

func ocioParameterDefinition() model.ParameterDefinition {
	return model.ParameterDefinition{
		Name:       strPtr(ocioParameterName),
		Type:       "PATH",
		ObjectType: "FILE",
		DataFlow:   "IN",
		UserInterface: &model.UserInterface{
			Control:    "CHOOSE_INPUT_FILE",
			Label:      "OCIO Config",
			GroupLabel: blenderSettingsGroup,
			FileFilters: []model.FileFilter{
				{Label: "OCIO Config Files", Patterns: []string{"*.ocio"}},
				{Label: "All Files", Patterns: []string{"*"}},
			},
		},
		Description: "The OpenColorIO config file used for color management.",
	}
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
