//go:build !nogpu

package backend

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gplot/backend/wgpu"
	"github.com/gogpu/gplot/gpucore"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// init registers the wgpu backend on package import. Its factory opens a
// Vulkan device and fails when no adapter is present, so Default falls
// back to software on machines without a GPU.
func init() {
	Register(BackendWGPU, func() (gpucore.Context, error) {
		ctx, err := wgpu.Open(gputypes.BackendVulkan)
		if err != nil {
			return nil, err
		}
		return ctx, nil
	})
}
