package backend

import (
	"github.com/gogpu/gplot/backend/software"
	"github.com/gogpu/gplot/gpucore"
)

// init registers the software backend on package import.
func init() {
	Register(BackendSoftware, func() (gpucore.Context, error) {
		return software.New(), nil
	})
}
