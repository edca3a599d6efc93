package wgpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/gpucore"
)

// createNoopDevice creates a noop device for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

func newTestContext(t *testing.T, opts ...Option) *Context {
	t.Helper()
	device, queue := createNoopDevice(t)
	c := New(device, queue, opts...)
	t.Cleanup(c.Close)
	return c
}

// readBuffer copies size bytes out of a noop buffer.
func readBuffer(t *testing.T, device hal.Device, buf hal.Buffer, offset, size uint64) []byte {
	t.Helper()
	m, err := device.MapBuffer(buf, offset, size)
	if err != nil {
		t.Fatalf("MapBuffer() error = %v", err)
	}
	defer func() { _ = device.UnmapBuffer(buf) }()
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(m.Ptr), size))
	return out
}

func floatBytes(vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// drawRecord is one draw captured by recordingPass.
type drawRecord struct {
	Offsets []uint32
	Count   uint32
	First   uint32
}

// recordingPass captures the commands DrawArrays records.
type recordingPass struct {
	hal.RenderPassEncoder

	pipelines []hal.RenderPipeline
	offsets   []uint32
	buffer    hal.Buffer
	draws     []drawRecord
}

func (p *recordingPass) SetPipeline(pl hal.RenderPipeline) { p.pipelines = append(p.pipelines, pl) }

func (p *recordingPass) SetBindGroup(_ uint32, _ hal.BindGroup, offsets []uint32) {
	p.offsets = append([]uint32(nil), offsets...)
}

func (p *recordingPass) SetVertexBuffer(_ uint32, buf hal.Buffer, _ uint64) { p.buffer = buf }

func (p *recordingPass) Draw(count, _, first, _ uint32) {
	p.draws = append(p.draws, drawRecord{Offsets: p.offsets, Count: count, First: first})
}

func TestCreateVertexArrayUploads(t *testing.T) {
	c := newTestContext(t)
	data := floatBytes(1, 2, 3, 4, 5, 6)

	v, err := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Label: "pts", Data: data})
	if err != nil {
		t.Fatalf("CreateVertexArray() error = %v", err)
	}
	va := v.(*VertexArray)
	if va.Size() != len(data) {
		t.Errorf("Size() = %d, want %d", va.Size(), len(data))
	}
	if va.Stride() != gpucore.PositionSize {
		t.Errorf("Stride() = %d, want %d", va.Stride(), gpucore.PositionSize)
	}
	got := readBuffer(t, c.Device(), va.Buffer(), 0, uint64(len(data)))
	if diff := cmp.Diff(data, got); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
	if c.Bound() != nil {
		t.Error("CreateVertexArray should leave the array unbound")
	}
}

func TestBufferDataResizes(t *testing.T) {
	c := newTestContext(t)
	v, err := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{})
	if err != nil {
		t.Fatalf("CreateVertexArray() error = %v", err)
	}
	va := v.(*VertexArray)
	if va.Buffer() != nil || va.Size() != 0 {
		t.Fatalf("empty array: Buffer() = %v, Size() = %d", va.Buffer(), va.Size())
	}

	grown := floatBytes(1, 2, 3, 4)
	if err := c.BufferData(va, grown); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}
	if va.Size() != 16 {
		t.Errorf("Size() = %d, want 16", va.Size())
	}
	if got := readBuffer(t, c.Device(), va.Buffer(), 0, 16); !cmp.Equal(got, grown) {
		t.Errorf("buffer = %v, want %v", got, grown)
	}

	same := floatBytes(9, 8, 7, 6)
	buf := va.Buffer()
	if err := c.BufferData(va, same); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}
	if va.Buffer() != buf {
		t.Error("same-size upload should reuse the buffer")
	}

	if err := c.BufferData(va, nil); err != nil {
		t.Fatalf("BufferData(nil) error = %v", err)
	}
	if va.Buffer() != nil || va.Size() != 0 {
		t.Errorf("after clear: Buffer() = %v, Size() = %d", va.Buffer(), va.Size())
	}
	if va.Uploads() != 2 {
		t.Errorf("Uploads() = %d, want 2", va.Uploads())
	}
}

func TestCreateVertexArrayErrors(t *testing.T) {
	c := newTestContext(t)
	_, err := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Stride: 4})
	if !errors.Is(err, gpucore.ErrInvalidStride) {
		t.Errorf("stride 4: error = %v, want ErrInvalidStride", err)
	}

	other := newTestContext(t)
	foreign, err := other.CreateVertexArray(nil)
	if err != nil {
		t.Fatalf("CreateVertexArray(nil) error = %v", err)
	}
	if err := c.BindVertexArray(foreign); !errors.Is(err, gpucore.ErrInvalidVertexArray) {
		t.Errorf("BindVertexArray(foreign) error = %v, want ErrInvalidVertexArray", err)
	}

	va, _ := c.CreateVertexArray(nil)
	c.DestroyVertexArray(va)
	c.DestroyVertexArray(va)
	if err := c.BufferData(va, floatBytes(1, 2)); !errors.Is(err, gpucore.ErrInvalidVertexArray) {
		t.Errorf("BufferData(destroyed) error = %v, want ErrInvalidVertexArray", err)
	}
	if c.Stats().ArraysDestroyed != 1 {
		t.Errorf("ArraysDestroyed = %d, want 1", c.Stats().ArraysDestroyed)
	}
}

func TestShaderUniformErrors(t *testing.T) {
	c := newTestContext(t)
	s, err := c.LineShader()
	if err != nil {
		t.Fatalf("LineShader() error = %v", err)
	}
	if err := s.SetMat4("missing", gpucore.Identity4()); !errors.Is(err, gpucore.ErrUnknownUniform) {
		t.Errorf("SetMat4(missing) error = %v, want ErrUnknownUniform", err)
	}
	if err := s.SetVec4(gpucore.UniformTransform, [4]float32{}); !errors.Is(err, gpucore.ErrUniformType) {
		t.Errorf("SetVec4(transform) error = %v, want ErrUniformType", err)
	}
	if err := s.SetMat4(gpucore.UniformColor, gpucore.Identity4()); !errors.Is(err, gpucore.ErrUniformType) {
		t.Errorf("SetMat4(color) error = %v, want ErrUniformType", err)
	}

	s.Destroy()
	if err := s.Use(); !errors.Is(err, gpucore.ErrNoProgram) {
		t.Errorf("Use() after Destroy error = %v, want ErrNoProgram", err)
	}
}

func TestDrawArraysErrors(t *testing.T) {
	c := newTestContext(t)
	s, err := c.LineShader()
	if err != nil {
		t.Fatalf("LineShader() error = %v", err)
	}
	va, err := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Data: floatBytes(0, 0, 1, 1)})
	if err != nil {
		t.Fatalf("CreateVertexArray() error = %v", err)
	}

	if err := c.DrawArrays(gpucore.ModeLineStrip, 0, 2); !errors.Is(err, gpucore.ErrNoVertexArray) {
		t.Errorf("unbound: error = %v, want ErrNoVertexArray", err)
	}
	_ = c.BindVertexArray(va)
	if err := c.DrawArrays(gpucore.ModeLineStrip, 0, 2); !errors.Is(err, gpucore.ErrNoProgram) {
		t.Errorf("no program: error = %v, want ErrNoProgram", err)
	}
	_ = s.Use()
	if err := c.DrawArrays(gpucore.Mode(9), 0, 2); !errors.Is(err, gpucore.ErrInvalidMode) {
		t.Errorf("bad mode: error = %v, want ErrInvalidMode", err)
	}
	if err := c.DrawArrays(gpucore.ModeLineStrip, 1, 2); !errors.Is(err, gpucore.ErrInvalidRange) {
		t.Errorf("overrun: error = %v, want ErrInvalidRange", err)
	}
	if err := c.DrawArrays(gpucore.ModeLineStrip, 0, 0); err != nil {
		t.Errorf("empty draw: error = %v, want nil", err)
	}
	if err := c.DrawArrays(gpucore.ModeLineStrip, 0, 2); !errors.Is(err, ErrNoFrame) {
		t.Errorf("outside frame: error = %v, want ErrNoFrame", err)
	}
}

func TestDrawArraysRecordsUniformSlots(t *testing.T) {
	c := newTestContext(t)
	s, err := c.LineShader()
	if err != nil {
		t.Fatalf("LineShader() error = %v", err)
	}
	va, err := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Data: floatBytes(0, 0, 1, 1, 2, 0)})
	if err != nil {
		t.Fatalf("CreateVertexArray() error = %v", err)
	}
	pass := &recordingPass{}
	if err := c.BeginFrame(pass); err != nil {
		t.Fatalf("BeginFrame() error = %v", err)
	}
	if err := c.BeginFrame(pass); !errors.Is(err, ErrFrameInProgress) {
		t.Errorf("second BeginFrame() error = %v, want ErrFrameInProgress", err)
	}

	_ = s.Use()
	_ = c.BindVertexArray(va)
	first := gpucore.Scale4(2, 3, 1)
	_ = s.SetMat4(gpucore.UniformTransform, first)
	_ = s.SetVec4(gpucore.UniformColor, [4]float32{1, 0, 0, 1})
	if err := c.DrawArrays(gpucore.ModeLineStrip, 0, 3); err != nil {
		t.Fatalf("DrawArrays() error = %v", err)
	}
	_ = s.SetMat4(gpucore.UniformTransform, gpucore.Identity4())
	if err := c.DrawArrays(gpucore.ModePoints, 1, 2); err != nil {
		t.Fatalf("DrawArrays() error = %v", err)
	}

	want := []drawRecord{
		{Offsets: []uint32{0}, Count: 3, First: 0},
		{Offsets: []uint32{256}, Count: 2, First: 1},
	}
	if diff := cmp.Diff(want, pass.draws); diff != "" {
		t.Errorf("draws mismatch (-want +got):\n%s", diff)
	}
	if pass.buffer != va.(*VertexArray).Buffer() {
		t.Error("draw should bind the array's vertex buffer")
	}
	if len(s.pipelines) != 2 {
		t.Errorf("pipelines = %d, want one per mode", len(s.pipelines))
	}

	// Each draw keeps the uniforms it was issued with.
	slot0 := readBuffer(t, c.Device(), s.ring.buf, 0, 80)
	if got := slot0[:gpucore.Mat4Size]; !cmp.Equal(got, first.Bytes()) {
		t.Errorf("slot 0 transform = %v, want %v", got, first.Bytes())
	}
	if got := slot0[64:80]; !cmp.Equal(got, floatBytes(1, 0, 0, 1)) {
		t.Errorf("slot 0 color = %v", got)
	}
	slot1 := readBuffer(t, c.Device(), s.ring.buf, 256, 80)
	if got := slot1[:gpucore.Mat4Size]; !cmp.Equal(got, gpucore.Identity4().Bytes()) {
		t.Errorf("slot 1 transform = %v, want identity", got)
	}

	if err := c.EndFrame(); err != nil {
		t.Fatalf("EndFrame() error = %v", err)
	}
	if s.ring.next != 0 {
		t.Errorf("ring.next after EndFrame = %d, want 0", s.ring.next)
	}
	if err := c.EndFrame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("second EndFrame() error = %v, want ErrNoFrame", err)
	}
	if st := c.Stats(); st.Draws != 2 || st.Frames != 1 {
		t.Errorf("Stats() = %+v, want 2 draws in 1 frame", st)
	}
}

func TestUniformRingGrows(t *testing.T) {
	c := newTestContext(t, WithUniformSlots(2))
	s, err := c.LineShader()
	if err != nil {
		t.Fatalf("LineShader() error = %v", err)
	}
	va, _ := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Data: floatBytes(0, 0, 1, 1)})
	pass := &recordingPass{}
	_ = c.BeginFrame(pass)
	_ = s.Use()
	_ = c.BindVertexArray(va)

	for i := 0; i < 5; i++ {
		if err := c.DrawArrays(gpucore.ModeLines, 0, 2); err != nil {
			t.Fatalf("draw %d: error = %v", i, err)
		}
	}
	var got []uint32
	for _, d := range pass.draws {
		got = append(got, d.Offsets[0])
	}
	if diff := cmp.Diff([]uint32{0, 256, 0, 256, 512}, got); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
	if s.ring.slots != 4 || len(s.ring.retired) != 1 {
		t.Errorf("ring slots = %d, retired = %d, want 4 and 1", s.ring.slots, len(s.ring.retired))
	}
	_ = c.EndFrame()
	if len(s.ring.retired) != 0 {
		t.Errorf("retired after EndFrame = %d, want 0", len(s.ring.retired))
	}
}

func TestBufferReplacedDuringFrame(t *testing.T) {
	c := newTestContext(t)
	v, _ := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Data: floatBytes(0, 0)})
	_ = c.BeginFrame(&recordingPass{})

	if err := c.BufferData(v, floatBytes(0, 0, 1, 1)); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}
	if len(c.garbage) != 1 {
		t.Errorf("garbage = %d, want the old buffer kept until EndFrame", len(c.garbage))
	}
	_ = c.EndFrame()
	if len(c.garbage) != 0 {
		t.Errorf("garbage after EndFrame = %d, want 0", len(c.garbage))
	}
}

func TestSameSizeUploadAfterDrawInFrame(t *testing.T) {
	c := newTestContext(t)
	s, err := c.LineShader()
	if err != nil {
		t.Fatalf("LineShader() error = %v", err)
	}
	v, _ := c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Data: floatBytes(0, 0, 1, 1)})
	va := v.(*VertexArray)
	pass := &recordingPass{}
	_ = c.BeginFrame(pass)

	// Not yet drawn this frame: written in place.
	buf := va.Buffer()
	if err := c.BufferData(va, floatBytes(2, 2, 3, 3)); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}
	if va.Buffer() != buf || len(c.garbage) != 0 {
		t.Fatalf("undrawn same-size upload should reuse the buffer")
	}

	_ = s.Use()
	_ = c.BindVertexArray(va)
	if err := c.DrawArrays(gpucore.ModeLines, 0, 2); err != nil {
		t.Fatalf("DrawArrays() error = %v", err)
	}
	if err := c.BufferData(va, floatBytes(4, 4, 5, 5)); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}
	if va.Buffer() == buf {
		t.Fatal("same-size upload after a recorded draw should allocate a new buffer")
	}
	if pass.buffer != buf {
		t.Error("recorded draw should still reference the old buffer")
	}
	if got := readBuffer(t, c.Device(), buf, 0, 16); !cmp.Equal(got, floatBytes(2, 2, 3, 3)) {
		t.Errorf("old buffer = %v, want the contents the draw was recorded with", got)
	}
	if got := readBuffer(t, c.Device(), va.Buffer(), 0, 16); !cmp.Equal(got, floatBytes(4, 4, 5, 5)) {
		t.Errorf("new buffer = %v", got)
	}
	if len(c.garbage) != 1 {
		t.Errorf("garbage = %d, want the old buffer kept until EndFrame", len(c.garbage))
	}
	_ = c.EndFrame()

	// Outside a frame the buffer is reused again.
	buf = va.Buffer()
	if err := c.BufferData(va, floatBytes(6, 6, 7, 7)); err != nil {
		t.Fatalf("BufferData() error = %v", err)
	}
	if va.Buffer() != buf {
		t.Error("same-size upload outside a frame should reuse the buffer")
	}
}

func TestTargetFrameWithLine(t *testing.T) {
	c := newTestContext(t)
	s, err := c.LineShader()
	if err != nil {
		t.Fatalf("LineShader() error = %v", err)
	}
	target, err := c.NewTarget(64, 32)
	if err != nil {
		t.Fatalf("NewTarget() error = %v", err)
	}
	defer target.Destroy()

	series := gplot.NewFlatSeries(0, 0, 1, 2, 2, 1)
	line, err := gplot.NewFlatLine(c, series, gplot.WithColor(gplot.Red))
	if err != nil {
		t.Fatalf("NewFlatLine() error = %v", err)
	}
	defer line.Close()

	for frame := 0; frame < 3; frame++ {
		if err := target.Begin(gputypes.Color{A: 1}); err != nil {
			t.Fatalf("frame %d: Begin() error = %v", frame, err)
		}
		b, err := line.MinMax()
		if err != nil {
			t.Fatalf("MinMax() error = %v", err)
		}
		if err := line.Draw(s, gplot.AxesTransform(b)); err != nil {
			t.Fatalf("frame %d: Draw() error = %v", frame, err)
		}
		if err := target.End(); err != nil {
			t.Fatalf("frame %d: End() error = %v", frame, err)
		}
		series.AppendVec(float32(3+frame), float32(frame))
	}

	if got := line.Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if st := c.Stats(); st.Draws != 3 || st.Frames != 3 {
		t.Errorf("Stats() = %+v, want 3 draws in 3 frames", st)
	}
	if err := target.End(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("End() without Begin error = %v, want ErrNoFrame", err)
	}
}

func TestNewTargetInvalidDimensions(t *testing.T) {
	c := newTestContext(t)
	if _, err := c.NewTarget(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewTarget(0, 10) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	device, queue := createNoopDevice(t)
	c := New(device, queue)
	_, _ = c.CreateVertexArray(&gpucore.VertexArrayDescriptor{Data: floatBytes(1, 2)})
	_, _ = c.CreateVertexArray(nil)
	s, _ := c.LineShader()

	c.Close()
	c.Close()
	if c.Live() != 0 {
		t.Errorf("Live() = %d, want 0", c.Live())
	}
	if !s.destroyed {
		t.Error("shader should be destroyed by Close")
	}
	if _, err := c.CreateVertexArray(nil); !errors.Is(err, gpucore.ErrContextClosed) {
		t.Errorf("CreateVertexArray after Close error = %v, want ErrContextClosed", err)
	}
}

func TestOpenNoopBackend(t *testing.T) {
	c, err := Open(gputypes.BackendEmpty, WithLabelPrefix("test"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()
	if c.Name() != Name {
		t.Errorf("Name() = %q, want %q", c.Name(), Name)
	}
	if !c.ownsDev {
		t.Error("Open should own the device")
	}
	if got := c.label("x"); got != "test_x" {
		t.Errorf("label() = %q, want test_x", got)
	}
}

// fakeProvider is a device provider backed by a noop device.
type fakeProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p *fakeProvider) Device() gpucontext.Device             { return p.device }
func (p *fakeProvider) Queue() gpucontext.Queue               { return p.queue }
func (p *fakeProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (p *fakeProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop"}
}
func (p *fakeProvider) HalDevice() any { return p.device }
func (p *fakeProvider) HalQueue() any  { return p.queue }

// plainProvider does not expose HAL objects.
type plainProvider struct{ fakeProvider }

func (p *plainProvider) HalDevice() {}

func TestNewFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)
	p := &fakeProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm}

	c, err := NewFromProvider(p)
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	defer c.Close()
	if c.opts.format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want provider format", c.opts.format)
	}
	if c.ownsDev {
		t.Error("shared device must not be owned")
	}

	p.format = gputypes.TextureFormatUndefined
	c2, err := NewFromProvider(p)
	if err != nil {
		t.Fatalf("NewFromProvider() error = %v", err)
	}
	defer c2.Close()
	if c2.opts.format != DefaultSurfaceFormat {
		t.Errorf("format = %v, want default", c2.opts.format)
	}

	if _, err := NewFromProvider(&plainProvider{}); !errors.Is(err, ErrNotHalProvider) {
		t.Errorf("plain provider error = %v, want ErrNotHalProvider", err)
	}
	if _, err := NewFromProvider(&fakeProvider{}); !errors.Is(err, ErrNotHalProvider) {
		t.Errorf("nil device error = %v, want ErrNotHalProvider", err)
	}
}
