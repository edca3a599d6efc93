package wgpu

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gplot/gpucore"
)

// Name is the backend identifier of the wgpu context.
const Name = "wgpu"

// Stats counts the work done by a context.
type Stats struct {
	ArraysCreated   int
	ArraysDestroyed int
	Uploads         int
	BytesUploaded   int
	Draws           int
	Frames          int
}

// Context is a gpucore.Context on a HAL device. Draws are recorded into the
// render pass of the current frame, between BeginFrame and EndFrame.
//
// Context is not safe for concurrent use.
type Context struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	// Set when Open created the device; Close then destroys it.
	instance hal.Instance
	adapter  hal.Adapter
	ownsDev  bool

	nextID  uint32
	arrays  map[uint32]*VertexArray
	bound   *VertexArray
	program *Shader
	shaders []*Shader

	pass    hal.RenderPassEncoder
	garbage []hal.Buffer

	stats  Stats
	closed bool
}

var _ gpucore.Context = (*Context)(nil)

// New creates a context on an existing device and queue. The caller keeps
// ownership of both.
func New(device hal.Device, queue hal.Queue, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		device: device,
		queue:  queue,
		opts:   o,
		arrays: make(map[uint32]*VertexArray),
	}
}

// Name returns "wgpu".
func (c *Context) Name() string { return Name }

// Device returns the HAL device of the context.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue of the context.
func (c *Context) Queue() hal.Queue { return c.queue }

// Stats returns the work counters.
func (c *Context) Stats() Stats { return c.stats }

// Live returns the number of vertex arrays not yet destroyed.
func (c *Context) Live() int { return len(c.arrays) }

func (c *Context) label(name string) string {
	if c.opts.labelPrefix == "" {
		return name
	}
	return c.opts.labelPrefix + "_" + name
}

// VertexArray is a vertex buffer with its position layout. The HAL buffer
// is recreated whenever the data size changes.
type VertexArray struct {
	ctx    *Context
	id     uint32
	label  string
	stride uint32
	usage  gpucore.Usage

	size      int
	buf       hal.Buffer
	uploads   int
	destroyed bool

	// recorded is one past the index of the last frame that drew from buf,
	// or 0 if none did.
	recorded int
}

var _ gpucore.VertexArray = (*VertexArray)(nil)

// ID returns the context-unique identifier of the array.
func (va *VertexArray) ID() uint32 { return va.id }

// Label returns the debug label.
func (va *VertexArray) Label() string { return va.label }

// Size returns the byte size of the last upload.
func (va *VertexArray) Size() int { return va.size }

// Stride returns the byte distance between vertices.
func (va *VertexArray) Stride() uint32 { return va.stride }

// Usage returns the update-frequency hint.
func (va *VertexArray) Usage() gpucore.Usage { return va.usage }

// Uploads returns how many times the buffer was written.
func (va *VertexArray) Uploads() int { return va.uploads }

// Buffer returns the HAL vertex buffer, or nil while the array is empty.
// The buffer is replaced when the size changes.
func (va *VertexArray) Buffer() hal.Buffer { return va.buf }

// CreateVertexArray allocates a vertex array and uploads desc.Data.
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
		return nil, fmt.Errorf("%w: %d", gpucore.ErrInvalidStride, stride)
	}

	c.nextID++
	va := &VertexArray{
		ctx:    c,
		id:     c.nextID,
		label:  desc.Label,
		stride: stride,
		usage:  desc.Usage,
	}
	if va.label == "" {
		va.label = fmt.Sprintf("vertex_array_%d", va.id)
	}
	if err := c.upload(va, desc.Data); err != nil {
		return nil, err
	}
	c.arrays[va.id] = va
	c.stats.ArraysCreated++

	slogger().Debug("wgpu: vertex array created",
		slog.String("label", va.label),
		slog.Int("bytes", va.size),
		slog.String("usage", va.usage.String()))
	return va, nil
}

// BufferData replaces the contents of the array's vertex buffer.
func (c *Context) BufferData(v gpucore.VertexArray, data []byte) error {
	va, err := c.lookup(v)
	if err != nil {
		return err
	}
	return c.upload(va, data)
}

// upload writes data into va, reallocating the buffer when the size
// changed or when the current frame already recorded a draw from it, so
// that draw keeps reading the old contents. A buffer replaced during a
// frame stays alive until EndFrame.
func (c *Context) upload(va *VertexArray, data []byte) error {
	if len(data) != va.size || va.buf == nil || c.drawnThisFrame(va) {
		if va.buf != nil {
			c.release(va.buf)
			va.buf = nil
		}
		va.size = 0
		va.recorded = 0
		if len(data) > 0 {
			buf, err := c.device.CreateBuffer(&hal.BufferDescriptor{
				Label: c.label(va.label),
				Size:  alignUp(uint64(len(data)), 4),
				Usage: va.usage.BufferUsage(),
			})
			if err != nil {
				return fmt.Errorf("wgpu: create vertex buffer %s: %w", va.label, err)
			}
			va.buf = buf
		}
	}
	if len(data) == 0 {
		return nil
	}
	if err := c.queue.WriteBuffer(va.buf, 0, padded(data)); err != nil {
		return fmt.Errorf("wgpu: write vertex buffer %s: %w", va.label, err)
	}
	va.size = len(data)
	va.uploads++
	c.stats.Uploads++
	c.stats.BytesUploaded += len(data)
	return nil
}

// padded extends data to a multiple of four bytes, the copy alignment of
// queue writes.
func padded(data []byte) []byte {
	if rem := len(data) % 4; rem != 0 {
		out := make([]byte, len(data)+4-rem)
		copy(out, data)
		return out
	}
	return data
}

func (c *Context) drawnThisFrame(va *VertexArray) bool {
	return c.pass != nil && va.recorded == c.stats.Frames+1
}

func (c *Context) release(buf hal.Buffer) {
	if c.pass != nil {
		c.garbage = append(c.garbage, buf)
		return
	}
	c.device.DestroyBuffer(buf)
}

func (c *Context) lookup(v gpucore.VertexArray) (*VertexArray, error) {
	if c.closed {
		return nil, gpucore.ErrContextClosed
	}
	va, ok := v.(*VertexArray)
	if !ok || va == nil || va.ctx != c || va.destroyed {
		return nil, gpucore.ErrInvalidVertexArray
	}
	return va, nil
}

// BindVertexArray binds v for subsequent draws. Passing nil unbinds.
func (c *Context) BindVertexArray(v gpucore.VertexArray) error {
	if v == nil {
		c.bound = nil
		return nil
	}
	va, err := c.lookup(v)
	if err != nil {
		return err
	}
	c.bound = va
	return nil
}

// Bound returns the bound vertex array, or nil.
func (c *Context) Bound() *VertexArray { return c.bound }

// Program returns the shader in use, or nil.
func (c *Context) Program() *Shader { return c.program }

// DrawArrays records a draw of count vertices starting at first into the
// current frame. The uniforms staged on the shader in use are snapshotted
// for this draw.
func (c *Context) DrawArrays(mode gpucore.Mode, first, count int) error {
	if c.closed {
		return gpucore.ErrContextClosed
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %v", gpucore.ErrInvalidMode, mode)
	}
	if c.bound == nil {
		return gpucore.ErrNoVertexArray
	}
	if c.program == nil {
		return gpucore.ErrNoProgram
	}
	va := c.bound
	vertices := va.size / int(va.stride)
	if first < 0 || count < 0 || first+count > vertices {
		return fmt.Errorf("%w: [%d, %d) of %d vertices", gpucore.ErrInvalidRange, first, first+count, vertices)
	}
	if count == 0 {
		return nil
	}
	if c.pass == nil {
		return ErrNoFrame
	}

	s := c.program
	pipeline, err := s.pipeline(mode, va.stride)
	if err != nil {
		return err
	}
	off, err := s.ring.push(s.block)
	if err != nil {
		return err
	}

	c.pass.SetPipeline(pipeline)
	c.pass.SetBindGroup(0, s.ring.group, []uint32{off})
	c.pass.SetVertexBuffer(0, va.buf, 0)
	c.pass.Draw(uint32(count), 1, uint32(first), 0)
	va.recorded = c.stats.Frames + 1
	c.stats.Draws++
	return nil
}

// BeginFrame directs subsequent draws into pass. The pass must target a
// color attachment of the context's surface format.
func (c *Context) BeginFrame(pass hal.RenderPassEncoder) error {
	if c.closed {
		return gpucore.ErrContextClosed
	}
	if c.pass != nil {
		return ErrFrameInProgress
	}
	c.pass = pass
	return nil
}

// EndFrame stops recording. Call it after the pass commands were submitted:
// uniform slots are recycled and buffers replaced during the frame freed.
func (c *Context) EndFrame() error {
	if c.pass == nil {
		return ErrNoFrame
	}
	c.pass = nil
	for _, s := range c.shaders {
		if s.ring != nil {
			s.ring.reset()
		}
	}
	for _, buf := range c.garbage {
		c.device.DestroyBuffer(buf)
	}
	c.garbage = c.garbage[:0]
	c.stats.Frames++
	return nil
}

// InFrame reports whether a frame is in progress.
func (c *Context) InFrame() bool { return c.pass != nil }

// DestroyVertexArray releases va. Destroying twice is a no-op.
func (c *Context) DestroyVertexArray(v gpucore.VertexArray) {
	va, ok := v.(*VertexArray)
	if !ok || va == nil || va.ctx != c || va.destroyed {
		return
	}
	va.destroyed = true
	if c.bound == va {
		c.bound = nil
	}
	if va.buf != nil {
		c.release(va.buf)
		va.buf = nil
	}
	delete(c.arrays, va.id)
	c.stats.ArraysDestroyed++
}

// Close destroys every vertex array and shader still alive, and the device
// when the context opened it. Close is idempotent.
func (c *Context) Close() {
	if c.closed {
		return
	}
	if c.pass != nil {
		slogger().Warn("wgpu: context closed during a frame")
		c.pass = nil
	}
	for _, va := range c.arrays {
		slogger().Warn("wgpu: vertex array leaked", slog.String("label", va.label))
		c.DestroyVertexArray(va)
	}
	for _, buf := range c.garbage {
		c.device.DestroyBuffer(buf)
	}
	c.garbage = nil
	for _, s := range c.shaders {
		s.Destroy()
	}
	c.shaders = nil
	c.closed = true

	if c.ownsDev {
		c.device.Destroy()
		if c.adapter != nil {
			c.adapter.Destroy()
		}
		if c.instance != nil {
			c.instance.Destroy()
		}
	}
	slogger().Debug("wgpu: context closed",
		slog.Int("draws", c.stats.Draws),
		slog.Int("frames", c.stats.Frames))
}

func putFloats(buf []byte, vs []float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
