package gplot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gplot/gpucore"
)

// Uniform input names the line shader must declare.
const (
	// UniformTransform is the 4x4 matrix mapping data space to clip space.
	UniformTransform = gpucore.UniformTransform

	// UniformColor is the RGBA tint of the line.
	UniformColor = gpucore.UniformColor
)

// Line mirrors a data source into a vertex buffer and draws it.
//
// A Line holds a read-only view of its source through a Repacker. On every
// Draw it compares the number of points the source currently yields with the
// number it last uploaded; when they differ the whole buffer is re-derived
// and replaced, then the draw is issued.
//
// Line is not safe for concurrent use. The owner of the source and the frame
// driver calling Draw must run on the rendering thread.
type Line struct {
	ctx gpucore.Context
	rp  Repacker
	va  gpucore.VertexArray

	mode  gpucore.Mode
	color RGB
	seed  Seed

	count   int    // points in the vertex buffer
	gen     uint64 // source generation at the last upload
	uploads int

	scratch []float32 // repack target, reused across uploads
	staging []byte    // encoded vertex bytes, reused across uploads

	log    *slog.Logger
	closed bool
}

// NewLine creates a line drawing the stream derived by rp, and uploads the
// initial stream to a new vertex array on ctx.
//
// Bounds are seeded with SeedExtremes unless WithBoundsSeed is given. The
// typed constructors (NewPointLine, NewVec3Line, ...) apply their own
// defaults.
func NewLine(ctx gpucore.Context, rp Repacker, opts ...LineOption) (*Line, error) {
	return newLine(ctx, rp, SeedExtremes, opts)
}

func newLine(ctx gpucore.Context, rp Repacker, seed Seed, opts []LineOption) (*Line, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if rp == nil {
		return nil, ErrNilRepacker
	}

	o := defaultLineOptions()
	withDefaultSeed(seed)(&o)
	for _, opt := range opts {
		opt(&o)
	}
	if !o.mode.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, o.mode)
	}

	log := Logger()
	propagateLogger(ctx, log)

	l := &Line{
		ctx:   ctx,
		rp:    rp,
		mode:  o.mode,
		color: o.color,
		seed:  o.seed,
		log:   log,
	}

	n := rp.Points()
	data, err := l.encode()
	if err != nil {
		return nil, fmt.Errorf("gplot: initial repack: %w", err)
	}

	va, err := ctx.CreateVertexArray(&gpucore.VertexArrayDescriptor{
		Label:  o.label,
		Data:   data,
		Stride: gpucore.PositionSize,
		Usage:  o.usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gplot: provision vertex array: %w", err)
	}
	l.va = va
	l.count = n
	l.gen = rp.Generation()

	log.Debug("gplot: line provisioned",
		slog.String("backend", ctx.Name()),
		slog.String("label", o.label),
		slog.Int("points", n),
		slog.Int("bytes", len(data)))
	return l, nil
}

// encode repacks the current source and encodes it as little-endian float32
// into the staging buffer.
func (l *Line) encode() ([]byte, error) {
	stream, err := l.rp.Repack(l.scratch)
	if err != nil {
		return nil, err
	}
	if n := 2 * l.rp.Points(); len(stream) != n {
		return nil, fmt.Errorf("gplot: repacker returned %d values for %d points", len(stream), n/2)
	}
	l.scratch = stream
	l.staging = encodeStream(l.staging, stream)
	return l.staging, nil
}

// encodeStream writes stream into dst, growing it only when its capacity is
// too small.
func encodeStream(dst []byte, stream []float32) []byte {
	n := len(stream) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range stream {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
	return dst
}

// upload replaces the vertex buffer with the current stream.
func (l *Line) upload() error {
	n := l.rp.Points()
	data, err := l.encode()
	if err != nil {
		return fmt.Errorf("gplot: repack: %w", err)
	}
	if err := l.ctx.BufferData(l.va, data); err != nil {
		return fmt.Errorf("gplot: upload: %w", err)
	}
	l.log.Debug("gplot: line re-uploaded",
		slog.Int("from", l.count),
		slog.Int("points", n),
		slog.Int("bytes", len(data)))
	l.count = n
	l.gen = l.rp.Generation()
	l.uploads++
	return nil
}

// Draw refreshes the vertex buffer if the source yields a different number
// of points than was last uploaded, then draws the line with shader.
//
// transform maps data space to clip space and is passed to the shader as
// UniformTransform; the tint is passed as UniformColor with alpha 1.
// The draw is issued even when the line is empty.
//
// If the refresh fails, the previously uploaded vertices are drawn and the
// refresh error is returned joined with any draw error.
func (l *Line) Draw(shader gpucore.Shader, transform gpucore.Mat4) error {
	if l.closed {
		return ErrLineClosed
	}
	if shader == nil {
		return ErrNilShader
	}
	var refreshErr error
	if n := l.rp.Points(); n != l.count {
		if refreshErr = l.upload(); refreshErr != nil {
			l.log.Warn("gplot: refresh failed, drawing previous stream",
				slog.Int("points", n),
				slog.Int("uploaded", l.count),
				slog.String("error", refreshErr.Error()))
		}
	}
	return errors.Join(refreshErr,
		drawData(l.ctx, shader, transform, l.va, l.color, l.count, l.mode))
}

// Refresh re-uploads the stream if the source has mutated since the last
// upload, even when the number of points is unchanged. Draw alone does not
// notice in-place rewrites of an equally long source.
func (l *Line) Refresh() error {
	if l.closed {
		return ErrLineClosed
	}
	if l.rp.Generation() == l.gen && l.rp.Points() == l.count {
		return nil
	}
	return l.upload()
}

// drawData activates shader, sets the transform and tint uniforms, binds va,
// draws count vertices in mode and leaves no vertex array bound.
func drawData(ctx gpucore.Context, shader gpucore.Shader, transform gpucore.Mat4,
	va gpucore.VertexArray, tint RGB, count int, mode gpucore.Mode) (err error) {
	if err := shader.Use(); err != nil {
		return fmt.Errorf("gplot: use shader: %w", err)
	}
	if err := shader.SetMat4(UniformTransform, transform); err != nil {
		return fmt.Errorf("gplot: set %s: %w", UniformTransform, err)
	}
	if err := shader.SetVec4(UniformColor, tint.Vec4()); err != nil {
		return fmt.Errorf("gplot: set %s: %w", UniformColor, err)
	}
	if err := ctx.BindVertexArray(va); err != nil {
		return fmt.Errorf("gplot: bind vertex array: %w", err)
	}
	defer func() {
		err = errors.Join(err, ctx.BindVertexArray(nil))
	}()
	if err := ctx.DrawArrays(mode, 0, count); err != nil {
		return fmt.Errorf("gplot: draw: %w", err)
	}
	return nil
}

// MinMax returns the bounding box of the points the source currently
// yields, scanned in one pass with the line's seed convention.
// Use Bounds.Slice for the [xmin, xmax, ymin, ymax] form.
func (l *Line) MinMax() (Bounds, error) {
	stream, err := l.rp.Repack(l.scratch)
	if err != nil {
		return seedBounds(l.seed), fmt.Errorf("gplot: repack: %w", err)
	}
	l.scratch = stream
	return BoundsOf(stream, l.seed), nil
}

// Len returns the number of points in the vertex buffer, that is the
// number of vertices the next Draw issues unless the source changed size.
func (l *Line) Len() int {
	return l.count
}

// Uploads returns how many times the buffer was replaced after creation.
func (l *Line) Uploads() int {
	return l.uploads
}

// Repacker returns the strategy the line derives its stream with.
func (l *Line) Repacker() Repacker {
	return l.rp
}

// VertexArray returns the line's vertex array, or nil after Close.
func (l *Line) VertexArray() gpucore.VertexArray {
	return l.va
}

// Color returns the line tint.
func (l *Line) Color() RGB {
	return l.color
}

// SetColor sets the line tint used by subsequent draws.
func (l *Line) SetColor(c RGB) {
	l.color = c
}

// Mode returns the primitive mode used by Draw.
func (l *Line) Mode() gpucore.Mode {
	return l.mode
}

// SetMode sets the primitive mode used by subsequent draws.
func (l *Line) SetMode(m gpucore.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMode, m)
	}
	l.mode = m
	return nil
}

// Seed returns the seed convention used by MinMax.
func (l *Line) Seed() Seed {
	return l.seed
}

// Close releases the vertex array. Calling Close more than once is a no-op.
func (l *Line) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	l.ctx.DestroyVertexArray(l.va)
	l.va = nil
	l.scratch = nil
	l.staging = nil
	return nil
}
