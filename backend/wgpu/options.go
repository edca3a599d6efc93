package wgpu

import "github.com/gogpu/gputypes"

// Defaults used by New.
const (
	// DefaultSurfaceFormat is the color target format of pipelines when no
	// surface format is known.
	DefaultSurfaceFormat = gputypes.TextureFormatBGRA8Unorm

	// DefaultUniformSlots is the initial number of per-draw uniform slots in
	// a shader's ring buffer. The ring doubles when a frame needs more.
	DefaultUniformSlots = 64

	// uniformAlign is the dynamic offset alignment of uniform bindings,
	// the WebGPU default for minUniformBufferOffsetAlignment.
	uniformAlign = 256
)

// Option configures a Context during creation.
type Option func(*options)

type options struct {
	format      gputypes.TextureFormat
	slots       int
	labelPrefix string
}

func defaultOptions() options {
	return options{
		format:      DefaultSurfaceFormat,
		slots:       DefaultUniformSlots,
		labelPrefix: "gplot",
	}
}

// WithSurfaceFormat sets the color target format render pipelines are
// created for. It must match the format of the pass the lines draw into.
func WithSurfaceFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		if f != gputypes.TextureFormatUndefined {
			o.format = f
		}
	}
}

// WithUniformSlots sets the initial capacity, in draws per frame, of each
// shader's uniform ring.
func WithUniformSlots(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.slots = n
		}
	}
}

// WithLabelPrefix sets the prefix of debug labels of GPU objects.
func WithLabelPrefix(p string) Option {
	return func(o *options) {
		o.labelPrefix = p
	}
}
