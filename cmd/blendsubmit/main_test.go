package main

import (
	"io"
	"os"
	"testing"

	"github.com/sourceplane/blendsubmit/internal/params"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSubmission = `
apiVersion: blendsubmit.sourceplane.io/v1
kind: BlenderSubmission
settings:
  name: Shot 010
  projectPath: /projects/shot/shot.blend
  gpuDevice: CUDA
  includeAdaptorWheels: true
layerSettings:
  main:
    rendererName: cycles
    frameRange: 1-24
    outputDirectories: [/renders/shot]
    outputFilePrefix: shot_####
    uiGroupLabel: Main
    sceneName: Scene
  fx:
    rendererName: eevee
    uiGroupLabel: FX
    sceneName: Scene
layers:
  - name: beauty
    settings: main
  - name: shadow
    settings: main
  - name: smoke
    settings: fx
queueParameters:
  - name: RezPackages
    value: blender deadline_cloud_for_blender
`

func useMemFs(t *testing.T) {
	t.Helper()
	t.Setenv("BLENDSUBMIT_OCIO", "")
	t.Setenv(params.DeviceEnvVar, "")

	prevFs, prevFile := fs, submissionFile
	t.Cleanup(func() { fs, submissionFile = prevFs, prevFile })

	fs = afero.NewMemMapFs()
	submissionFile = "/projects/shot/submission.yaml"
	require.NoError(t, afero.WriteFile(fs, submissionFile, []byte(testSubmission), 0644))
	require.NoError(t, afero.WriteFile(fs, "/projects/shot/shot.blend", nil, 0644))
	require.NoError(t, afero.WriteFile(fs, "/projects/shot/wood.png", nil, 0644))
	require.NoError(t, fs.MkdirAll("/projects/shot/textures", 0755))
}

func TestPipeline(t *testing.T) {
	useMemFs(t)

	sub, validator, err := loadSubmission()
	require.NoError(t, err)

	tmpl, err := fillAndValidate(sub, validator)
	require.NoError(t, err)
	assert.Equal(t, "Shot 010", tmpl.Name)
	assert.Len(t, tmpl.Steps, 3)

	ls, err := layerSettingsFor(sub, "smoke")
	require.NoError(t, err)
	assert.Equal(t, "eevee", ls.RendererName)

	values, err := resolveParameterValues(sub, ls)
	require.NoError(t, err)

	byName := make(map[string]interface{}, len(values))
	for _, v := range values {
		byName[v.Name] = v.Value
	}
	assert.Equal(t, "/projects/shot/shot.blend", byName["BlenderFile"])
	assert.Equal(t, "eevee", byName["RenderEngine"])
	assert.Equal(t, "CUDA", byName["GPUDevice"])
	assert.Equal(t, "blender", byName["RezPackages"])

	detected, err := classifyAssets(sub)
	require.NoError(t, err)
	assert.True(t, detected.InputFilenames["/projects/shot/wood.png"])
	assert.True(t, detected.InputDirectories["/projects/shot/textures"])
	assert.False(t, detected.InputFilenames["/projects/shot/shot.blend"])
}

func TestLayerSettingsForUnknownLayer(t *testing.T) {
	useMemFs(t)

	sub, _, err := loadSubmission()
	require.NoError(t, err)

	first, err := layerSettingsFor(sub, "")
	require.NoError(t, err)
	assert.Same(t, sub.ResolvedLayers[0].Settings, first)

	_, err = layerSettingsFor(sub, "missing")
	assert.ErrorContains(t, err, "layer not found: missing")
}

func TestExtractLayerInfo(t *testing.T) {
	useMemFs(t)

	sub, _, err := loadSubmission()
	require.NoError(t, err)

	infos := ExtractLayerInfo(sub)
	require.Len(t, infos, 3)

	assert.Equal(t, "beauty", infos[0].Name)
	assert.Equal(t, "main", infos[0].SettingsName)
	assert.Equal(t, []string{"shadow"}, infos[0].SharedWith)
	assert.Equal(t, "1-24", infos[0].FrameRange)

	assert.Equal(t, "smoke", infos[2].Name)
	assert.Equal(t, "fx", infos[2].SettingsName)
	assert.Empty(t, infos[2].SharedWith)
	// Normalization defaults the frame range
	assert.Equal(t, "1-1", infos[2].FrameRange)
}

func TestWriteOutputKeepsStdoutClean(t *testing.T) {
	useMemFs(t)

	prevOut := outputFile
	t.Cleanup(func() { outputFile = prevOut })
	outputFile = "/out/template.yaml"

	r, w, err := os.Pipe()
	require.NoError(t, err)
	prevStdout := os.Stdout
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = prevStdout })

	writeErr := writeOutput([]byte("name: job\n"))
	require.NoError(t, w.Close())
	os.Stdout = prevStdout

	printed, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, writeErr)
	assert.Empty(t, string(printed))

	data, err := afero.ReadFile(fs, "/out/template.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: job\n", string(data))
}
