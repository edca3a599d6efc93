package software

import (
	"fmt"

	"github.com/gogpu/gplot/gpucore"
)

// UniformKind is the declared shape of a uniform input.
type UniformKind uint8

// Uniform kinds.
const (
	UniformMat4 UniformKind = iota + 1
	UniformVec4
)

// String returns the string representation of UniformKind.
func (k UniformKind) String() string {
	switch k {
	case UniformMat4:
		return "mat4"
	case UniformVec4:
		return "vec4"
	default:
		return fmt.Sprintf("UniformKind(%d)", int(k))
	}
}

// Uniform declares a named uniform input of a shader.
type Uniform struct {
	Name string
	Kind UniformKind
}

// Shader is a program of a software context. It holds the last value set
// for each declared uniform.
type Shader struct {
	ctx      *Context
	name     string
	uniforms map[string]UniformKind

	mats map[string]gpucore.Mat4
	vecs map[string][4]float32
}

var _ gpucore.Shader = (*Shader)(nil)

// NewShader creates a program with the given uniform declarations.
func (c *Context) NewShader(name string, uniforms ...Uniform) *Shader {
	s := &Shader{
		ctx:      c,
		name:     name,
		uniforms: make(map[string]UniformKind, len(uniforms)),
		mats:     make(map[string]gpucore.Mat4),
		vecs:     make(map[string][4]float32),
	}
	for _, u := range uniforms {
		s.uniforms[u.Name] = u.Kind
	}
	return s
}

// LineShader creates the program gplot lines are drawn with: a mat4
// transform and a vec4 tint.
func (c *Context) LineShader() *Shader {
	return c.NewShader("line",
		Uniform{Name: gpucore.UniformTransform, Kind: UniformMat4},
		Uniform{Name: gpucore.UniformColor, Kind: UniformVec4},
	)
}

// Name returns the program name.
func (s *Shader) Name() string { return s.name }

// Use makes s the current program of its context.
func (s *Shader) Use() error {
	if s.ctx.closed {
		return gpucore.ErrContextClosed
	}
	s.ctx.program = s
	return nil
}

func (s *Shader) resolve(name string, want UniformKind) error {
	kind, ok := s.uniforms[name]
	if !ok {
		return fmt.Errorf("software: %s: %w: %q", s.name, gpucore.ErrUnknownUniform, name)
	}
	if kind != want {
		return fmt.Errorf("software: %s: %q is %v, not %v: %w", s.name, name, kind, want, gpucore.ErrUniformType)
	}
	return nil
}

// SetMat4 sets a mat4 uniform.
func (s *Shader) SetMat4(name string, m gpucore.Mat4) error {
	if err := s.resolve(name, UniformMat4); err != nil {
		return err
	}
	s.mats[name] = m
	return nil
}

// SetVec4 sets a vec4 uniform.
func (s *Shader) SetVec4(name string, v [4]float32) error {
	if err := s.resolve(name, UniformVec4); err != nil {
		return err
	}
	s.vecs[name] = v
	return nil
}

// Mat4 returns the current value of a mat4 uniform.
func (s *Shader) Mat4(name string) (gpucore.Mat4, bool) {
	m, ok := s.mats[name]
	return m, ok
}

// Vec4 returns the current value of a vec4 uniform.
func (s *Shader) Vec4(name string) ([4]float32, bool) {
	v, ok := s.vecs[name]
	return v, ok
}
