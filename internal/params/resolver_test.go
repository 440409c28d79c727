package params

import (
	"errors"
	"testing"

	"github.com/sourceplane/blendsubmit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingDevices struct {
	device string
	calls  int
}

func (c *countingDevices) CurrentGPUDevice() string {
	c.calls++
	return c.device
}

func testLayerSettings() *model.LayerSettings {
	return &model.LayerSettings{
		RendererName:      "dummy_renderer",
		FrameRange:        "1-10",
		OutputDirectories: []string{"/dummy/output/directory"},
		OutputFilePrefix:  "dummy_prefix",
		UIGroupLabel:      "dummy_group_label",
		SceneName:         "dummy_scene_name",
	}
}

func TestParameterValues(t *testing.T) {
	settings := &model.SubmitterSettings{ProjectPath: "/projects/shot.blend"}
	ls := testLayerSettings()

	// A host on CPU has no GPU device, so the default applies
	r := NewResolver(StaticDeviceProvider("CPU"))
	got, err := r.ParameterValues(settings, ls, nil)
	require.NoError(t, err)

	assert.Equal(t, []model.ParameterValue{
		{Name: "BlenderFile", Value: "/projects/shot.blend"},
		{Name: "OutputFileName", Value: "dummy_prefix"},
		{Name: "OutputDir", Value: []string{"/dummy/output/directory"}},
		{Name: "RenderScene", Value: "dummy_scene_name"},
		{Name: "RenderEngine", Value: "dummy_renderer"},
		{Name: "GPUDevice", Value: DefaultGPUDevice},
	}, got)
}

func TestParameterValuesRenderEngineFallback(t *testing.T) {
	ls := testLayerSettings()
	ls.RendererName = ""
	settings := &model.SubmitterSettings{RenderEngine: "eevee"}

	got, err := NewResolver(nil).ParameterValues(settings, ls, nil)
	require.NoError(t, err)
	assert.Equal(t, "eevee", valueOf(t, got, "RenderEngine"))
}

func TestGPUDevicePrecedence(t *testing.T) {
	tests := []struct {
		name      string
		explicit  string
		host      string
		want      string
		wantCalls int
	}{
		{name: "explicit wins", explicit: "OPTIX", host: "CUDA", want: "OPTIX", wantCalls: 0},
		{name: "host device when unset", host: "CUDA", want: "CUDA", wantCalls: 1},
		{name: "cpu host falls back", host: "CPU", want: "NONE", wantCalls: 1},
		{name: "empty host falls back", host: "", want: "NONE", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			devices := &countingDevices{device: tt.host}
			r := NewResolver(devices)
			assert.Equal(t, tt.want, r.GPUDevice(tt.explicit))
			assert.Equal(t, tt.wantCalls, devices.calls)
		})
	}

	t.Run("no host", func(t *testing.T) {
		assert.Equal(t, DefaultGPUDevice, NewResolver(nil).GPUDevice(""))
	})
}

func TestConflictingQueueParams(t *testing.T) {
	ls := testLayerSettings()
	queue := []model.ParameterValue{
		{Name: "RenderScene", Value: ls.SceneName + "_some_value"},
	}

	got, err := NewResolver(nil).ParameterValues(&model.SubmitterSettings{}, ls, queue)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrParameterConflict))

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, []string{"RenderScene"}, opErr.Names)
	assert.Contains(t, err.Error(), "RenderScene")
}

func TestConflictWithOCIOParameter(t *testing.T) {
	settings := &model.SubmitterSettings{OCIOConfigPath: "my_ocio_config.ocio"}
	queue := []model.ParameterValue{{Name: "OCIOConfigPath", Value: "other.ocio"}}

	_, err := NewResolver(nil).ParameterValues(settings, testLayerSettings(), queue)
	assert.ErrorIs(t, err, ErrParameterConflict)
}

func TestQueueParamsAppended(t *testing.T) {
	queue := []model.ParameterValue{
		{Name: "SomeParam", Value: "some_value"},
		{Name: "OtherParam", Value: "other_value"},
	}

	got, err := NewResolver(nil).ParameterValues(&model.SubmitterSettings{}, testLayerSettings(), queue)
	require.NoError(t, err)
	require.Len(t, got, 8)
	assert.Equal(t, queue, got[6:])
}

func TestAdaptorWheelsStripPackages(t *testing.T) {
	tests := []struct {
		param   string
		pkg     string
		include bool
		want    string
	}{
		{param: "RezPackages", pkg: "deadline_cloud_for_blender", include: true, want: "some_other_package another_package"},
		{param: "CondaPackages", pkg: "blender-openjd", include: true, want: "some_other_package another_package"},
		{param: "CondaPackages", pkg: "blender-openjd", include: false, want: "some_other_package blender-openjd another_package"},
		{param: "OtherPackages", pkg: "blender-openjd", include: true, want: "some_other_package blender-openjd another_package"},
	}

	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			settings := &model.SubmitterSettings{IncludeAdaptorWheels: tt.include}
			queue := []model.ParameterValue{
				{Name: tt.param, Value: "some_other_package " + tt.pkg + " another_package"},
			}

			got, err := NewResolver(nil).ParameterValues(settings, testLayerSettings(), queue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[len(got)-1].Value)
		})
	}
}

func TestAdaptorWheelsRejectsNonStringPackages(t *testing.T) {
	list := []interface{}{"blender", "blender-openjd"}
	queue := []model.ParameterValue{{Name: "CondaPackages", Value: list}}

	t.Run("stripping enabled", func(t *testing.T) {
		settings := &model.SubmitterSettings{IncludeAdaptorWheels: true}
		got, err := NewResolver(nil).ParameterValues(settings, testLayerSettings(), queue)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrPackageListType)

		var opErr *OperationError
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, []string{"CondaPackages"}, opErr.Names)
	})

	t.Run("stripping disabled", func(t *testing.T) {
		got, err := NewResolver(nil).ParameterValues(&model.SubmitterSettings{}, testLayerSettings(), queue)
		require.NoError(t, err)
		assert.Equal(t, list, got[len(got)-1].Value)
	})

	t.Run("nil value passes through", func(t *testing.T) {
		settings := &model.SubmitterSettings{IncludeAdaptorWheels: true}
		got, err := NewResolver(nil).ParameterValues(settings, testLayerSettings(),
			[]model.ParameterValue{{Name: "RezPackages"}})
		require.NoError(t, err)
		assert.Nil(t, got[len(got)-1].Value)
	})
}

func TestStripPackage(t *testing.T) {
	assert.Equal(t, "a b", StripPackage("  a   X  b X ", "X"))
	assert.Equal(t, "", StripPackage("X", "X"))
	assert.Equal(t, "XY a", StripPackage("XY a X", "X"), "only whole tokens are removed")
}

func TestOCIOParameterValue(t *testing.T) {
	settings := &model.SubmitterSettings{OCIOConfigPath: "my_ocio_config.ocio"}
	got, err := NewResolver(nil).ParameterValues(settings, testLayerSettings(), nil)
	require.NoError(t, err)
	assert.Contains(t, got, model.ParameterValue{Name: "OCIOConfigPath", Value: "my_ocio_config.ocio"})

	got, err = NewResolver(nil).ParameterValues(&model.SubmitterSettings{}, testLayerSettings(), nil)
	require.NoError(t, err)
	for _, v := range got {
		assert.NotEqual(t, "OCIOConfigPath", v.Name)
	}
}

func TestEnvDeviceProvider(t *testing.T) {
	t.Setenv(DeviceEnvVar, "HIP")
	assert.Equal(t, "HIP", EnvDeviceProvider{}.CurrentGPUDevice())
}

func valueOf(t *testing.T, values []model.ParameterValue, name string) interface{} {
	t.Helper()
	for _, v := range values {
		if v.Name == name {
			return v.Value
		}
	}
	t.Fatalf("parameter %s not found", name)
	return nil
}
