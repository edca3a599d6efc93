package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// NewFromProvider creates a context that shares the device of a host
// application, for example a gogpu window. The provider must also expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
// Its surface format, when known, overrides WithSurfaceFormat.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return nil, ErrNotHalProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHalProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHalProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHalProvider)
	}

	if f := provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		opts = append(opts, WithSurfaceFormat(f))
	}
	c := New(device, queue, opts...)

	info := provider.AdapterInfo()
	slogger().Info("wgpu: using shared device",
		slog.String("adapter", info.Name),
		slog.String("type", info.Type.String()),
		slog.String("format", c.opts.format.String()))
	return c, nil
}

// Open creates a context on its own device from a registered HAL backend.
// A discrete or integrated GPU is preferred over other adapters. Close
// destroys the device.
func Open(variant gputypes.Backend, opts ...Option) (*Context, error) {
	backend, ok := hal.GetBackend(variant)
	if !ok {
		return nil, fmt.Errorf("wgpu: backend %v not registered", variant)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %v instance: %w", variant, err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, variant)
	}
	exposed := &adapters[0]
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			exposed = &adapters[i]
			break
		}
	}
	open, err := exposed.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open %s: %w", exposed.Info.Name, err)
	}

	c := New(open.Device, open.Queue, opts...)
	c.instance = instance
	c.adapter = exposed.Adapter
	c.ownsDev = true

	slogger().Info("wgpu: device opened",
		slog.String("backend", variant.String()),
		slog.String("adapter", exposed.Info.Name))
	return c, nil
}
