package gplot

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/gplot/gpucore"
)

// Seed selects the starting values of a bounding-box scan.
type Seed uint8

const (
	// SeedExtremes starts the scan at +Inf for minima and -Inf for maxima,
	// so the result is exactly the extent of the data. An empty line yields
	// the collapsed box [+Inf, -Inf, +Inf, -Inf].
	SeedExtremes Seed = iota

	// SeedOrigin starts the scan at zero, so the result always contains the
	// origin. This is the historical behavior of the point, flat and row
	// lines and is their default.
	SeedOrigin
)

// String returns the string representation of Seed.
func (s Seed) String() string {
	switch s {
	case SeedExtremes:
		return "Extremes"
	case SeedOrigin:
		return "Origin"
	default:
		return fmt.Sprintf("Seed(%d)", int(s))
	}
}

// Bounds is an axis-aligned bounding box of plotted data.
type Bounds struct {
	XMin, XMax float32
	YMin, YMax float32
}

// seedBounds returns the starting box for a scan.
func seedBounds(seed Seed) Bounds {
	if seed == SeedOrigin {
		return Bounds{}
	}
	return Bounds{
		XMin: math32.Inf(1), XMax: math32.Inf(-1),
		YMin: math32.Inf(1), YMax: math32.Inf(-1),
	}
}

// BoundsOf scans a flat (x, y) stream in a single pass. A trailing unpaired
// value is ignored.
func BoundsOf(stream []float32, seed Seed) Bounds {
	b := seedBounds(seed)
	for i := 0; i+1 < len(stream); i += 2 {
		x, y := stream[i], stream[i+1]
		if x > b.XMax {
			b.XMax = x
		}
		if x < b.XMin {
			b.XMin = x
		}
		if y > b.YMax {
			b.YMax = y
		}
		if y < b.YMin {
			b.YMin = y
		}
	}
	return b
}

// Slice returns the box as [xmin, xmax, ymin, ymax].
func (b Bounds) Slice() []float32 {
	return []float32{b.XMin, b.XMax, b.YMin, b.YMax}
}

// Empty reports whether the box contains no point, which is the case for an
// extremes-seeded scan over no data.
func (b Bounds) Empty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax
}

// Width returns the horizontal extent, or 0 for an empty box.
func (b Bounds) Width() float32 {
	if b.Empty() {
		return 0
	}
	return b.XMax - b.XMin
}

// Height returns the vertical extent, or 0 for an empty box.
func (b Bounds) Height() float32 {
	if b.Empty() {
		return 0
	}
	return b.YMax - b.YMin
}

// Union returns the smallest box containing both b and o. Empty boxes are
// ignored.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{
		XMin: math32.Min(b.XMin, o.XMin),
		XMax: math32.Max(b.XMax, o.XMax),
		YMin: math32.Min(b.YMin, o.YMin),
		YMax: math32.Max(b.YMax, o.YMax),
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// AxesTransform returns the transform mapping b onto the full clip-space
// square, the transform an axes component passes to Line.Draw when its
// limits are exactly the data bounds. An empty box maps to the identity.
func AxesTransform(b Bounds) gpucore.Mat4 {
	if b.Empty() {
		return gpucore.Identity4()
	}
	return gpucore.Ortho(b.XMin, b.XMax, b.YMin, b.YMax, -1, 1)
}
