package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sourceplane/blendsubmit/internal/schema"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submissionYAML = `
apiVersion: blendsubmit.sourceplane.io/v1
kind: BlenderSubmission
settings:
  projectPath: /projects/shot/shot.blend
  gpuDevice: OPTIX
layerSettings:
  main:
    rendererName: cycles
    frameRange: 1-10
    renderableCameraNames: [Camera]
    outputDirectories: [/renders/shot]
    outputFilePrefix: shot_####
    uiGroupLabel: Main
    imageResolution: {width: 1920, height: 1080}
    sceneName: Scene
layers:
  - name: beauty
    settings: main
  - name: shadow
    settings: main
queueParameters:
  - name: CondaPackages
    value: blender=4.2 blender-openjd
hostRequirements:
  amounts:
    - name: amount.worker.gpu
      min: 1
`

func writeSubmission(t *testing.T, content string) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := "/work/submission.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	return fs, path
}

func TestLoadSubmission(t *testing.T) {
	t.Setenv(OCIOEnvVar, "")
	fs, path := writeSubmission(t, submissionYAML)

	v, err := schema.NewValidator()
	require.NoError(t, err)

	sub, err := LoadSubmission(fs, path, v)
	require.NoError(t, err)

	assert.Equal(t, "/projects/shot/shot.blend", sub.Settings.ProjectPath)
	assert.Equal(t, "OPTIX", sub.Settings.GPUDevice)
	require.Len(t, sub.ResolvedLayers, 2)
	assert.Equal(t, "beauty", sub.ResolvedLayers[0].Name)
	assert.Equal(t, "shadow", sub.ResolvedLayers[1].Name)

	// Layers naming the same settings share them
	assert.Same(t, sub.ResolvedLayers[0].Settings, sub.ResolvedLayers[1].Settings)
	assert.Equal(t, 1920, sub.ResolvedLayers[0].Settings.ImageResolution.Width)

	require.Len(t, sub.QueueParameters, 1)
	assert.Equal(t, "blender=4.2 blender-openjd", sub.QueueParameters[0].Value)
	assert.Contains(t, sub.HostRequirements, "amounts")
}

func TestLoadSubmissionErrors(t *testing.T) {
	v, err := schema.NewValidator()
	require.NoError(t, err)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSubmission(afero.NewMemMapFs(), "/nope.yaml", v)
		assert.ErrorContains(t, err, "failed to read submission file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fs, path := writeSubmission(t, "settings: [\n")
		_, err := LoadSubmission(fs, path, v)
		assert.ErrorContains(t, err, "failed to parse submission YAML")
	})

	t.Run("schema violation", func(t *testing.T) {
		fs, path := writeSubmission(t, "settings: {}\nlayerSettings: {main: {}}\nlayers: []\n")
		_, err := LoadSubmission(fs, path, v)
		assert.ErrorContains(t, err, "failed schema validation")
	})

	t.Run("unknown layer settings", func(t *testing.T) {
		fs, path := writeSubmission(t, "settings: {}\nlayerSettings: {main: {}}\nlayers: [{name: a, settings: other}]\n")
		_, err := LoadSubmission(fs, path, nil)
		assert.ErrorContains(t, err, `references unknown layer settings "other"`)
	})
}

func TestLoadSubmissionOCIOFromEnv(t *testing.T) {
	fs, path := writeSubmission(t, submissionYAML)

	t.Run("env fills empty setting", func(t *testing.T) {
		t.Setenv(OCIOEnvVar, "/studio/config.ocio")
		sub, err := LoadSubmission(fs, path, nil)
		require.NoError(t, err)
		assert.Equal(t, "/studio/config.ocio", sub.Settings.OCIOConfigPath)
	})

	t.Run("explicit setting wins", func(t *testing.T) {
		t.Setenv(OCIOEnvVar, "/studio/config.ocio")
		fs, path := writeSubmission(t, "settings: {ocioConfigPath: /shot/config.ocio}\nlayerSettings: {main: {}}\nlayers: [{name: a, settings: main}]\n")
		sub, err := LoadSubmission(fs, path, nil)
		require.NoError(t, err)
		assert.Equal(t, "/shot/config.ocio", sub.Settings.OCIOConfigPath)
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is ignored", func(t *testing.T) {
		assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
		assert.NoError(t, LoadEnvFile(""))
	})

	t.Run("loads values", func(t *testing.T) {
		// Register cleanup for the variable godotenv will set
		t.Setenv("BLENDSUBMIT_TEST_DEVICE", "")
		require.NoError(t, os.Unsetenv("BLENDSUBMIT_TEST_DEVICE"))

		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("BLENDSUBMIT_TEST_DEVICE=CUDA\n"), 0644))

		require.NoError(t, LoadEnvFile(path))
		assert.Equal(t, "CUDA", os.Getenv("BLENDSUBMIT_TEST_DEVICE"))
	})
}
