package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sourceplane/blendsubmit/internal/model"
)

// DefaultGPUDevice is used when neither the settings nor the host name a device
const DefaultGPUDevice = "NONE"

// AdaptorPackages maps a queue packages parameter to the adaptor package it
// must not request when adaptor wheels ship with the job
var AdaptorPackages = map[string]string{
	"RezPackages":   "deadline_cloud_for_blender",
	"CondaPackages": "blender-openjd",
}

// ErrParameterConflict is returned when a queue parameter redefines a
// parameter the submitter already resolved
var ErrParameterConflict = errors.New("parameter name conflict")

// ErrPackageListType is returned when an adaptor package list that must be
// stripped is not a space-delimited string
var ErrPackageListType = errors.New("package list must be a string")

// OperationError reports a submission that cannot proceed
type OperationError struct {
	Op    string
	Names []string
	Err   error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, strings.Join(e.Names, ", "))
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// DeviceProvider reports the GPU device the host scene is configured with
type DeviceProvider interface {
	CurrentGPUDevice() string
}

// Resolver produces parameter values for one layer
type Resolver struct {
	devices DeviceProvider
}

// NewResolver creates a resolver. A nil provider means no host is available.
func NewResolver(devices DeviceProvider) *Resolver {
	return &Resolver{devices: devices}
}

// ParameterValues resolves the submitter's parameters for a layer and
// appends the queue parameters in order. A queue parameter that reuses a
// resolved name fails the whole call.
func (r *Resolver) ParameterValues(settings *model.SubmitterSettings, ls *model.LayerSettings, queueParams []model.ParameterValue) ([]model.ParameterValue, error) {
	values := []model.ParameterValue{
		{Name: "BlenderFile", Value: settings.ProjectPath},
		{Name: "OutputFileName", Value: ls.OutputFilePrefix},
		{Name: "OutputDir", Value: ls.OutputDirectories},
		{Name: "RenderScene", Value: ls.SceneName},
		{Name: "RenderEngine", Value: firstNonEmpty(ls.RendererName, settings.RenderEngine)},
		{Name: "GPUDevice", Value: r.GPUDevice(settings.GPUDevice)},
	}
	if settings.OCIOConfigPath != "" {
		values = append(values, model.ParameterValue{Name: "OCIOConfigPath", Value: settings.OCIOConfigPath})
	}

	if len(queueParams) == 0 {
		return values, nil
	}

	resolved := make(map[string]bool, len(values))
	for _, v := range values {
		resolved[v.Name] = true
	}

	var conflicts []string
	for _, qp := range queueParams {
		if resolved[qp.Name] {
			conflicts = append(conflicts, qp.Name)
		}
	}
	if len(conflicts) > 0 {
		return nil, &OperationError{
			Op:    "resolve parameter values",
			Names: conflicts,
			Err:   ErrParameterConflict,
		}
	}

	for _, qp := range queueParams {
		if settings.IncludeAdaptorWheels {
			if pkg, ok := AdaptorPackages[qp.Name]; ok {
				switch v := qp.Value.(type) {
				case nil:
				case string:
					qp.Value = StripPackage(v, pkg)
				default:
					return nil, &OperationError{
						Op:    "resolve parameter values",
						Names: []string{qp.Name},
						Err:   ErrPackageListType,
					}
				}
			}
		}
		values = append(values, qp)
	}

	return values, nil
}

// GPUDevice applies the device precedence: explicit setting, then the
// device the host reports, then DefaultGPUDevice. A host reporting CPU
// has no GPU device to offer.
func (r *Resolver) GPUDevice(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if r.devices != nil {
		if host := r.devices.CurrentGPUDevice(); host != "" && !strings.EqualFold(host, "CPU") {
			return host
		}
	}
	return DefaultGPUDevice
}

// StripPackage removes every token equal to pkg from a space-delimited
// package list and joins the rest with single spaces
func StripPackage(value, pkg string) string {
	fields := strings.Fields(value)
	kept := fields[:0]
	for _, f := range fields {
		if f != pkg {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
