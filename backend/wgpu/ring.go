package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformRing hands out one uniform slot per draw within a frame. All slots
// live in one buffer bound through a single bind group; draws select their
// slot with a dynamic offset.
//
// Queue writes land before the frame's command buffer executes, so a slot is
// never reused within a frame. When a frame outgrows the ring, the buffer is
// replaced by one twice as large and the old one is kept alive until reset.
type uniformRing struct {
	device hal.Device
	queue  hal.Queue
	layout hal.BindGroupLayout
	label  string

	blockSize uint64
	slotSize  uint64
	slots     int
	next      int

	buf   hal.Buffer
	group hal.BindGroup

	retired []ringBuffer
}

type ringBuffer struct {
	buf   hal.Buffer
	group hal.BindGroup
}

func newUniformRing(device hal.Device, queue hal.Queue, layout hal.BindGroupLayout,
	label string, blockSize uint32, slots int) (*uniformRing, error) {
	r := &uniformRing{
		device:    device,
		queue:     queue,
		layout:    layout,
		label:     label,
		blockSize: uint64(blockSize),
		slotSize:  alignUp(uint64(blockSize), uniformAlign),
		slots:     slots,
	}
	if err := r.alloc(); err != nil {
		return nil, err
	}
	return r, nil
}

// alloc creates the buffer and bind group for the current slot count.
func (r *uniformRing) alloc() error {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: r.label + "_uniforms",
		Size:  r.slotSize * uint64(r.slots),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform ring: %w", err)
	}
	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  r.label + "_uniform_group",
		Layout: r.layout,
		Entries: []gputypes.BindGroupEntry{
			{
				Binding: 0,
				Resource: gputypes.BufferBinding{
					Buffer: buf.NativeHandle(),
					Offset: 0,
					Size:   r.blockSize,
				},
			},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(buf)
		return fmt.Errorf("wgpu: create uniform bind group: %w", err)
	}
	r.buf, r.group = buf, group
	return nil
}

// push copies block into the next free slot and returns its dynamic offset.
func (r *uniformRing) push(block []byte) (uint32, error) {
	if r.next == r.slots {
		r.retired = append(r.retired, ringBuffer{buf: r.buf, group: r.group})
		r.slots *= 2
		if err := r.alloc(); err != nil {
			return 0, err
		}
		r.next = 0
		slogger().Debug("wgpu: uniform ring grown",
			slog.String("label", r.label),
			slog.Int("slots", r.slots))
	}
	off := uint64(r.next) * r.slotSize
	if err := r.queue.WriteBuffer(r.buf, off, block); err != nil {
		return 0, fmt.Errorf("wgpu: write uniforms: %w", err)
	}
	r.next++
	return uint32(off), nil
}

// reset makes every slot available again and frees buffers replaced during
// the frame. Call only after the frame's commands were submitted.
func (r *uniformRing) reset() {
	for _, rb := range r.retired {
		r.device.DestroyBindGroup(rb.group)
		r.device.DestroyBuffer(rb.buf)
	}
	r.retired = r.retired[:0]
	r.next = 0
}

func (r *uniformRing) destroy() {
	r.reset()
	if r.group != nil {
		r.device.DestroyBindGroup(r.group)
		r.group = nil
	}
	if r.buf != nil {
		r.device.DestroyBuffer(r.buf)
		r.buf = nil
	}
}

func alignUp(v, a uint64) uint64 {
	return (v + a - 1) / a * a
}
