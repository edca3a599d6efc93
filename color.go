package gplot

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// RGB is an opaque line tint. Components are in the range [0, 1].
type RGB struct {
	R, G, B float32
}

// Palette entries used as line defaults.
var (
	White   = RGB{1, 1, 1}
	Black   = RGB{0, 0, 0}
	Red     = RGB{1, 0, 0}
	Green   = RGB{0, 1, 0}
	Blue    = RGB{0, 0, 1}
	Yellow  = RGB{1, 1, 0}
	Cyan    = RGB{0, 1, 1}
	Magenta = RGB{1, 0, 1}
)

// Vec4 returns the tint extended with alpha 1, the value uploaded to the
// color uniform of the line shader.
func (c RGB) Vec4() [4]float32 {
	return [4]float32{c.R, c.G, c.B, 1}
}

// Color converts c to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: 255,
	}
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
// Premultiplied components are divided back out.
func FromColor(c color.Color) RGB {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Black
	}
	return RGB{
		R: float32(r) / float32(a),
		G: float32(g) / float32(a),
		B: float32(b) / float32(a),
	}
}

var folder = cases.Fold()

// Named looks up a color by its SVG 1.1 name, e.g. "white" or "SteelBlue".
// Lookup ignores case and surrounding spaces.
func Named(name string) (RGB, error) {
	key := folder.String(strings.TrimSpace(name))
	c, ok := colornames.Map[key]
	if !ok {
		return RGB{}, fmt.Errorf("gplot: unknown color %q", name)
	}
	return FromColor(c), nil
}

// MustNamed is like Named but panics on an unknown name. Use it for
// package-level palette tables.
func MustNamed(name string) RGB {
	c, err := Named(name)
	if err != nil {
		panic(err)
	}
	return c
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
