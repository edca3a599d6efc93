package backend

import (
	"errors"

	"github.com/gogpu/gplot/gpucore"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or failed to create a context.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendSoftware is the name of the pure Go software context.
	BackendSoftware = "software"
	// BackendWGPU is the name of the GPU context on gogpu/wgpu.
	BackendWGPU = "wgpu"
)

// Factory creates a graphics context. Factories for GPU backends open their
// own device and return an error when none is usable.
type Factory func() (gpucore.Context, error)
