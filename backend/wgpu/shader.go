package wgpu

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gplot/gpucore"
)

//go:embed shaders/line.wgsl
var lineShaderSource string

// pipelineKey identifies a render pipeline variant of a shader.
type pipelineKey struct {
	mode   gpucore.Mode
	stride uint32
}

// Shader is a WGSL program of a Context. Uniform values are staged in a CPU
// copy of the uniform block and uploaded per draw.
type Shader struct {
	ctx    *Context
	label  string
	layout *shaderLayout

	module      hal.ShaderModule
	groupLayout hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout
	pipelines   map[pipelineKey]hal.RenderPipeline

	block []byte
	ring  *uniformRing

	destroyed bool
}

var _ gpucore.Shader = (*Shader)(nil)

// LineShader compiles the built-in line shader, which declares the mat4
// transform and vec4 tint uniforms gplot lines set.
func (c *Context) LineShader() (*Shader, error) {
	return c.NewShader("line", lineShaderSource)
}

// NewShader compiles a WGSL program. The source must declare one vertex and
// one fragment entry point, read the position from @location(0) as
// vec2<f32>, and keep its uniforms in a struct bound at @group(0)
// @binding(0). Uniform names are the struct member names.
func (c *Context) NewShader(name, source string) (*Shader, error) {
	if c.closed {
		return nil, gpucore.ErrContextClosed
	}
	layout, err := reflectShader(source)
	if err != nil {
		return nil, err
	}

	s := &Shader{
		ctx:       c,
		label:     c.label("shader_" + name),
		layout:    layout,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
		block:     make([]byte, layout.blockSize),
	}
	if err := s.create(source); err != nil {
		s.Destroy()
		return nil, err
	}
	c.shaders = append(c.shaders, s)

	slogger().Debug("wgpu: shader created",
		slog.String("label", s.label),
		slog.Int("uniform_bytes", int(layout.blockSize)),
		slog.Int("uniforms", len(layout.fields)))
	return s, nil
}

func (s *Shader) create(source string) error {
	device := s.ctx.device

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  s.label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("wgpu: compile %s: %w", s.label, err)
	}
	s.module = module

	groupLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: s.label + "_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:             gputypes.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   uint64(s.layout.blockSize),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create %s uniform layout: %w", s.label, err)
	}
	s.groupLayout = groupLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            s.label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.groupLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create %s pipeline layout: %w", s.label, err)
	}
	s.pipeLayout = pipeLayout

	ring, err := newUniformRing(device, s.ctx.queue, s.groupLayout, s.label,
		s.layout.blockSize, s.ctx.opts.slots)
	if err != nil {
		return err
	}
	s.ring = ring
	return nil
}

// pipeline returns the render pipeline for a primitive mode and vertex
// stride, creating it on first use.
func (s *Shader) pipeline(mode gpucore.Mode, stride uint32) (hal.RenderPipeline, error) {
	key := pipelineKey{mode: mode, stride: stride}
	if p, ok := s.pipelines[key]; ok {
		return p, nil
	}

	premulBlend := gputypes.BlendStatePremultiplied()
	p, err := s.ctx.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_%s_%d", s.label, mode, stride),
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.module,
			EntryPoint: s.layout.vertexEntry,
			Buffers:    positionLayout(stride),
		},
		Fragment: &hal.FragmentState{
			Module:     s.module,
			EntryPoint: s.layout.fragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    s.ctx.opts.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: mode.Topology(),
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s pipeline for %v: %w", s.label, mode, err)
	}
	s.pipelines[key] = p
	return p, nil
}

// positionLayout declares attribute slot 0 as two float32 at offset 0.
func positionLayout(stride uint32) []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(stride),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			},
		},
	}
}

// Use makes s the current program of its context.
func (s *Shader) Use() error {
	if s.destroyed {
		return fmt.Errorf("wgpu: %s: %w", s.label, gpucore.ErrNoProgram)
	}
	if s.ctx.closed {
		return gpucore.ErrContextClosed
	}
	s.ctx.program = s
	return nil
}

func (s *Shader) field(name string, want uniformKind) (uniformField, error) {
	f, ok := s.layout.fields[name]
	if !ok {
		return f, fmt.Errorf("wgpu: %s: %w: %q", s.label, gpucore.ErrUnknownUniform, name)
	}
	if f.kind != want {
		return f, fmt.Errorf("wgpu: %s: %q is %v, not %v: %w", s.label, name, f.kind, want, gpucore.ErrUniformType)
	}
	return f, nil
}

// SetMat4 stages a mat4x4<f32> uniform.
func (s *Shader) SetMat4(name string, m gpucore.Mat4) error {
	f, err := s.field(name, kindMat4)
	if err != nil {
		return err
	}
	m.PutBytes(s.block[f.offset:])
	return nil
}

// SetVec4 stages a vec4<f32> uniform.
func (s *Shader) SetVec4(name string, v [4]float32) error {
	f, err := s.field(name, kindVec4)
	if err != nil {
		return err
	}
	putFloats(s.block[f.offset:], v[:])
	return nil
}

// Uniforms returns the names of the settable uniforms.
func (s *Shader) Uniforms() []string {
	names := make([]string, 0, len(s.layout.fields))
	for name, f := range s.layout.fields {
		if f.kind != kindUnsupported {
			names = append(names, name)
		}
	}
	return names
}

// Destroy releases the shader's GPU objects in reverse creation order.
// Safe to call multiple times.
func (s *Shader) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	if s.ctx.program == s {
		s.ctx.program = nil
	}
	device := s.ctx.device
	for key, p := range s.pipelines {
		device.DestroyRenderPipeline(p)
		delete(s.pipelines, key)
	}
	if s.ring != nil {
		s.ring.destroy()
		s.ring = nil
	}
	if s.pipeLayout != nil {
		device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.groupLayout != nil {
		device.DestroyBindGroupLayout(s.groupLayout)
		s.groupLayout = nil
	}
	if s.module != nil {
		device.DestroyShaderModule(s.module)
		s.module = nil
	}
}
