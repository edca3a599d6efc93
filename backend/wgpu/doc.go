// Package wgpu provides a GPU graphics context for gplot lines using
// gogpu/wgpu.
//
// The context maps the GL-style object model of gpucore onto WebGPU:
//
//	VertexArray  -> hal.Buffer (Vertex|CopyDst), recreated at exact size on upload
//	Shader       -> WGSL module + bind group layout + pipelines per (mode, stride)
//	SetMat4/Vec4 -> CPU uniform block, offsets reflected from WGSL with naga
//	DrawArrays   -> uniform block copied into a ring slot, bound with a dynamic offset
//
// Draws are recorded into a render pass that brackets a frame. Either pass
// an externally owned pass to BeginFrame, or render offscreen with a Target:
//
//	ctx, err := wgpu.Open(gputypes.BackendVulkan)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	shader, _ := ctx.LineShader()
//	target, _ := ctx.NewTarget(800, 600)
//	defer target.Destroy()
//
//	_ = target.Begin(gputypes.Color{A: 1})
//	_ = line.Draw(shader, transform)
//	_ = target.End()
//
// Contexts sharing a device with an application are created with
// NewFromProvider from a gpucontext.DeviceProvider.
//
// The backend package registers this context under the name "wgpu" with a
// factory that opens a Vulkan device.
package wgpu
