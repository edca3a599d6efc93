package software

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gplot/gpucore"
)

// Name is the backend identifier of the software context.
const Name = "software"

// DrawCall is one entry of the draw log.
type DrawCall struct {
	// Array is the ID of the vertex array that was bound.
	Array uint32

	// Program is the name of the shader in use.
	Program string

	Mode  gpucore.Mode
	First int
	Count int

	// Transform and Color are the uniform values at draw time. They are
	// zero when the shader does not declare them.
	Transform gpucore.Mat4
	Color     [4]float32

	// Vertices holds the (x, y) positions consumed by the draw, two floats
	// per vertex.
	Vertices []float32
}

// Stats counts the work done by a context.
type Stats struct {
	ArraysCreated   int
	ArraysDestroyed int
	Uploads         int
	BytesUploaded   int
	Draws           int
}

// Context is a software graphics context. It is not safe for concurrent use.
type Context struct {
	nextID  uint32
	arrays  map[uint32]*VertexArray
	bound   *VertexArray
	program *Shader

	draws  []DrawCall
	stats  Stats
	canvas *Canvas

	log    *slog.Logger
	closed bool
}

var _ gpucore.Context = (*Context)(nil)

// New creates a software context.
func New() *Context {
	return &Context{
		arrays: make(map[uint32]*VertexArray),
		log:    slog.New(nopHandler{}),
	}
}

// Name returns "software".
func (c *Context) Name() string { return Name }

// VertexArray is a vertex array object with its buffer storage.
type VertexArray struct {
	ctx   *Context
	id    uint32
	label string

	data    []byte
	stride  uint32
	usage   gpucore.Usage
	uploads int

	destroyed bool
}

var _ gpucore.VertexArray = (*VertexArray)(nil)

// ID returns the object name of the array. IDs are never reused by a context.
func (va *VertexArray) ID() uint32 { return va.id }

// Label returns the debug label.
func (va *VertexArray) Label() string { return va.label }

// Size returns the byte size of the buffer.
func (va *VertexArray) Size() int { return len(va.data) }

// Stride returns the byte distance between vertices.
func (va *VertexArray) Stride() uint32 { return va.stride }

// Usage returns the update-frequency hint the array was created with.
func (va *VertexArray) Usage() gpucore.Usage { return va.usage }

// Uploads returns how many times the buffer contents were specified,
// including the initial upload at creation.
func (va *VertexArray) Uploads() int { return va.uploads }

// Bytes returns a copy of the buffer contents.
func (va *VertexArray) Bytes() []byte {
	return append([]byte(nil), va.data...)
}

// Positions decodes attribute slot 0 of every vertex: two float32 at offset
// 0 of each stride.
func (va *VertexArray) Positions() []float32 {
	return va.positions(0, va.vertices())
}

func (va *VertexArray) vertices() int {
	if va.stride == 0 {
		return 0
	}
	return len(va.data) / int(va.stride)
}

func (va *VertexArray) positions(first, count int) []float32 {
	out := make([]float32, 0, 2*count)
	for i := first; i < first+count; i++ {
		off := i * int(va.stride)
		out = append(out,
			math.Float32frombits(binary.LittleEndian.Uint32(va.data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(va.data[off+4:])))
	}
	return out
}

// lookup validates that va is a live array of this context.
func (c *Context) lookup(va gpucore.VertexArray) (*VertexArray, error) {
	sva, ok := va.(*VertexArray)
	if !ok || sva == nil || sva.ctx != c || sva.destroyed {
		return nil, gpucore.ErrInvalidVertexArray
	}
	return sva, nil
}

// CreateVertexArray allocates a vertex array, copies desc.Data into its
// buffer and declares attribute slot 0.
func (c *Context) CreateVertexArray(desc *gpucore.VertexArrayDescriptor) (gpucore.VertexArray, error) {
	if c.closed {
		return nil, gpucore.ErrContextClosed
	}
	if desc == nil {
		desc = &gpucore.VertexArrayDescriptor{}
	}
	stride := desc.Stride
	if stride == 0 {
		stride = gpucore.PositionSize
	}
	if stride < gpucore.PositionSize {
		return nil, fmt.Errorf("software: stride %d: %w", stride, gpucore.ErrInvalidStride)
	}

	c.nextID++
	va := &VertexArray{
		ctx:     c,
		id:      c.nextID,
		label:   desc.Label,
		data:    append([]byte(nil), desc.Data...),
		stride:  stride,
		usage:   desc.Usage,
		uploads: 1,
	}
	c.arrays[va.id] = va
	c.stats.ArraysCreated++
	c.stats.Uploads++
	c.stats.BytesUploaded += len(desc.Data)

	c.log.Debug("software: vertex array created",
		slog.Uint64("id", uint64(va.id)),
		slog.String("label", va.label),
		slog.Int("bytes", len(va.data)),
		slog.String("usage", va.usage.String()))
	return va, nil
}

// BufferData replaces the buffer contents of va with a copy of data.
func (c *Context) BufferData(va gpucore.VertexArray, data []byte) error {
	if c.closed {
		return gpucore.ErrContextClosed
	}
	sva, err := c.lookup(va)
	if err != nil {
		return err
	}
	sva.data = append(sva.data[:0], data...)
	sva.uploads++
	c.stats.Uploads++
	c.stats.BytesUploaded += len(data)

	c.log.Debug("software: buffer data",
		slog.Uint64("id", uint64(sva.id)),
		slog.Int("bytes", len(data)))
	return nil
}

// BindVertexArray binds va. Passing nil unbinds.
func (c *Context) BindVertexArray(va gpucore.VertexArray) error {
	if c.closed {
		return gpucore.ErrContextClosed
	}
	if va == nil {
		c.bound = nil
		return nil
	}
	sva, err := c.lookup(va)
	if err != nil {
		return err
	}
	c.bound = sva
	return nil
}

// Bound returns the currently bound vertex array, or nil.
func (c *Context) Bound() *VertexArray {
	return c.bound
}

// Program returns the shader in use, or nil.
func (c *Context) Program() *Shader {
	return c.program
}

// DrawArrays records a draw of count vertices of the bound array and, when
// a canvas is attached, rasterises it.
func (c *Context) DrawArrays(mode gpucore.Mode, first, count int) error {
	if c.closed {
		return gpucore.ErrContextClosed
	}
	if !mode.Valid() {
		return fmt.Errorf("software: %w: %v", gpucore.ErrInvalidMode, mode)
	}
	if c.bound == nil {
		return gpucore.ErrNoVertexArray
	}
	if c.program == nil {
		return gpucore.ErrNoProgram
	}
	if first < 0 || count < 0 || first+count > c.bound.vertices() {
		return fmt.Errorf("software: draw [%d, %d) of %d vertices: %w",
			first, first+count, c.bound.vertices(), gpucore.ErrInvalidRange)
	}

	d := DrawCall{
		Array:     c.bound.id,
		Program:   c.program.name,
		Mode:      mode,
		First:     first,
		Count:     count,
		Transform: c.program.mats[gpucore.UniformTransform],
		Color:     c.program.vecs[gpucore.UniformColor],
		Vertices:  c.bound.positions(first, count),
	}
	c.draws = append(c.draws, d)
	c.stats.Draws++

	if c.canvas != nil {
		c.canvas.draw(&d)
	}
	return nil
}

// Draws returns the draw log.
func (c *Context) Draws() []DrawCall {
	return c.draws
}

// ResetDraws clears the draw log, typically at the start of a frame.
func (c *Context) ResetDraws() {
	c.draws = c.draws[:0]
}

// Stats returns the work counters of the context.
func (c *Context) Stats() Stats {
	return c.stats
}

// Live returns the number of vertex arrays not yet destroyed.
func (c *Context) Live() int {
	return len(c.arrays)
}

// SetCanvas attaches a canvas that subsequent draws are rasterised into.
// Pass nil to detach.
func (c *Context) SetCanvas(cv *Canvas) {
	c.canvas = cv
}

// DestroyVertexArray releases va. Destroying an array twice is a no-op.
func (c *Context) DestroyVertexArray(va gpucore.VertexArray) {
	sva, err := c.lookup(va)
	if err != nil {
		return
	}
	if c.bound == sva {
		c.bound = nil
	}
	sva.destroyed = true
	sva.data = nil
	delete(c.arrays, sva.id)
	c.stats.ArraysDestroyed++
}

// Close destroys every live vertex array.
func (c *Context) Close() {
	if c.closed {
		return
	}
	for _, va := range c.arrays {
		c.log.Warn("software: vertex array leaked until Close",
			slog.Uint64("id", uint64(va.id)),
			slog.String("label", va.label))
		c.DestroyVertexArray(va)
	}
	c.bound = nil
	c.program = nil
	c.closed = true
}
