package params

import "os"

// DeviceEnvVar names the environment variable read by EnvDeviceProvider
const DeviceEnvVar = "BLENDER_CYCLES_DEVICE"

// StaticDeviceProvider always reports the same device
type StaticDeviceProvider string

func (s StaticDeviceProvider) CurrentGPUDevice() string {
	return string(s)
}

// EnvDeviceProvider reports the device from BLENDER_CYCLES_DEVICE, for
// submissions made outside a Blender session
type EnvDeviceProvider struct{}

func (EnvDeviceProvider) CurrentGPUDevice() string {
	return os.Getenv(DeviceEnvVar)
}
