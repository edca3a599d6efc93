// Package backend selects the graphics context gplot lines draw into.
//
// Backends register a Factory under a name from init() functions and are
// selected at runtime. Importing this package registers the software
// backend and, unless built with the nogpu tag, the wgpu backend on a
// Vulkan device:
//
//	import "github.com/gogpu/gplot/backend"
//
// # Backend Selection
//
// Use Default() to get a context of the best available backend, or Get() to
// request a specific one by name:
//
//	ctx, err := backend.Default()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ctx, err = backend.Get("software")
//
// # Available Backends
//
//   - "wgpu": GPU rendering via gogpu/wgpu (own Vulkan device, headless)
//   - "software": pure Go context with a draw log (always available)
package backend
