package gpucore

import "errors"

// Context errors.
var (
	// ErrInvalidVertexArray is returned when a vertex array is nil, destroyed,
	// or was created by a different context.
	ErrInvalidVertexArray = errors.New("gpucore: invalid vertex array")

	// ErrNoVertexArray is returned by DrawArrays when no vertex array is bound.
	ErrNoVertexArray = errors.New("gpucore: no vertex array bound")

	// ErrNoProgram is returned by DrawArrays when no shader is in use.
	ErrNoProgram = errors.New("gpucore: no shader program in use")

	// ErrUnknownUniform is returned when a uniform name does not resolve
	// to an input of the shader.
	ErrUnknownUniform = errors.New("gpucore: unknown uniform")

	// ErrUniformType is returned when a uniform is set with a value whose
	// shape does not match its declaration.
	ErrUniformType = errors.New("gpucore: uniform type mismatch")

	// ErrInvalidStride is returned when a vertex stride cannot hold the
	// two-float position attribute.
	ErrInvalidStride = errors.New("gpucore: vertex stride smaller than position attribute")

	// ErrInvalidRange is returned when a draw range exceeds the bound buffer.
	ErrInvalidRange = errors.New("gpucore: draw range out of bounds")

	// ErrInvalidMode is returned when a draw uses an unknown primitive mode.
	ErrInvalidMode = errors.New("gpucore: invalid primitive mode")

	// ErrContextClosed is returned when a closed context is used.
	ErrContextClosed = errors.New("gpucore: context closed")
)

// Uniform inputs of the line shader.
const (
	// UniformTransform is the mat4x4 mapping data space to clip space.
	UniformTransform = "transformViewport"

	// UniformColor is the vec4 RGBA tint.
	UniformColor = "inColor"
)

// PositionSize is the byte size of the position attribute at slot 0:
// two float32 components.
const PositionSize = 8

// VertexArrayDescriptor describes the initial state of a vertex array.
type VertexArrayDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Data is the initial buffer content. It may be empty.
	Data []byte

	// Stride is the byte distance between consecutive vertices.
	// Attribute slot 0 is read as two float32 at offset 0 of each vertex.
	Stride uint32

	// Usage is the update-frequency hint for the buffer.
	Usage Usage
}

// VertexArray is a vertex array object together with its vertex buffer.
type VertexArray interface {
	// Size returns the current byte size of the vertex buffer.
	Size() int

	// Stride returns the byte distance between consecutive vertices.
	Stride() uint32
}

// Shader is an activatable program with named uniform inputs.
//
// Uniform values set on a shader are used by every subsequent draw issued
// while the shader is in use, until they are set again.
type Shader interface {
	// Use makes the shader the current program of its context.
	Use() error

	// SetMat4 sets a 4x4 matrix uniform by name.
	SetMat4(name string, m Mat4) error

	// SetVec4 sets a 4-component vector uniform by name.
	SetVec4(name string, v [4]float32) error
}

// Context is the graphics context a line draws into.
type Context interface {
	// Name returns the backend identifier, e.g. "software" or "wgpu".
	Name() string

	// CreateVertexArray allocates a vertex array and vertex buffer, uploads
	// desc.Data and declares attribute slot 0. The array is left unbound.
	CreateVertexArray(desc *VertexArrayDescriptor) (VertexArray, error)

	// BufferData replaces the entire contents of the array's vertex buffer.
	// The buffer is resized to len(data).
	BufferData(va VertexArray, data []byte) error

	// BindVertexArray binds va for subsequent draws. Passing nil unbinds.
	BindVertexArray(va VertexArray) error

	// DrawArrays draws count vertices starting at first from the bound
	// vertex array using the program in use.
	DrawArrays(mode Mode, first, count int) error

	// DestroyVertexArray releases the array and its buffer. Destroying an
	// already destroyed array is a no-op.
	DestroyVertexArray(va VertexArray)

	// Close releases every object the context still owns.
	Close()
}
