package gpucore

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Mode is the primitive assembly mode of a draw.
type Mode uint8

// Primitive modes.
const (
	// ModeLineStrip connects consecutive vertices with line segments.
	ModeLineStrip Mode = iota

	// ModePoints draws each vertex as a point.
	ModePoints

	// ModeLines draws each pair of vertices as an independent segment.
	ModeLines
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	switch m {
	case ModeLineStrip:
		return "LineStrip"
	case ModePoints:
		return "Points"
	case ModeLines:
		return "Lines"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m <= ModeLines
}

// Topology returns the WebGPU primitive topology for the mode.
func (m Mode) Topology() gputypes.PrimitiveTopology {
	switch m {
	case ModePoints:
		return gputypes.PrimitiveTopologyPointList
	case ModeLines:
		return gputypes.PrimitiveTopologyLineList
	default:
		return gputypes.PrimitiveTopologyLineStrip
	}
}

// Usage is the update-frequency hint of a vertex buffer.
type Usage uint8

// Buffer usage hints.
const (
	// UsageDynamic marks a buffer whose contents are replaced frequently.
	UsageDynamic Usage = iota

	// UsageStatic marks a buffer written once and drawn many times.
	UsageStatic
)

// String returns the string representation of Usage.
func (u Usage) String() string {
	switch u {
	case UsageDynamic:
		return "Dynamic"
	case UsageStatic:
		return "Static"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

// BufferUsage returns the WebGPU usage flags for a vertex buffer with this
// hint. Dynamic buffers are also copy destinations so they can be rewritten
// in place by the queue.
func (u Usage) BufferUsage() gputypes.BufferUsage {
	if u == UsageStatic {
		return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	}
	return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst | gputypes.BufferUsageCopySrc
}
