package software

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/gplot/gpucore"
)

// Default canvas stroke sizes, in pixels.
const (
	DefaultLineWidth = 1.5
	DefaultPointSize = 3
)

// Canvas rasterises draws into an RGBA image. Vertices are transformed by
// the draw's transform uniform into clip space, which maps onto the whole
// image with +Y up.
type Canvas struct {
	img *image.RGBA
	r   *vector.Rasterizer

	// LineWidth is the stroke width of line primitives.
	LineWidth float32

	// PointSize is the side of the square drawn for each point primitive.
	PointSize float32
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		r:         vector.NewRasterizer(width, height),
		LineWidth: DefaultLineWidth,
		PointSize: DefaultPointSize,
	}
}

// Image returns the backing image.
func (cv *Canvas) Image() *image.RGBA {
	return cv.img
}

// Bounds returns the image rectangle.
func (cv *Canvas) Bounds() image.Rectangle {
	return cv.img.Bounds()
}

// Clear fills the canvas with c.
func (cv *Canvas) Clear(c color.Color) {
	draw.Draw(cv.img, cv.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Label draws s with its baseline starting at pixel (x, y) using a fixed
// 7x13 face.
func (cv *Canvas) Label(x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// WritePNG encodes the canvas as PNG.
func (cv *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, cv.img)
}

// toPixel maps a data-space vertex through m to pixel coordinates.
func (cv *Canvas) toPixel(m gpucore.Mat4, x, y float32) (float32, float32) {
	cx, cy := m.TransformPoint(x, y)
	b := cv.img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	return (cx + 1) / 2 * w, (1 - cy) / 2 * h
}

func (cv *Canvas) draw(d *DrawCall) {
	if d.Count == 0 {
		return
	}
	src := image.NewUniform(color.NRGBA{
		R: unit8(d.Color[0]),
		G: unit8(d.Color[1]),
		B: unit8(d.Color[2]),
		A: unit8(d.Color[3]),
	})

	b := cv.img.Bounds()
	cv.r.Reset(b.Dx(), b.Dy())
	n := len(d.Vertices) / 2
	px := func(i int) (float32, float32) {
		return cv.toPixel(d.Transform, d.Vertices[2*i], d.Vertices[2*i+1])
	}

	switch d.Mode {
	case gpucore.ModePoints:
		for i := 0; i < n; i++ {
			x, y := px(i)
			cv.square(x, y, cv.PointSize/2)
		}
	case gpucore.ModeLines:
		for i := 0; i+1 < n; i += 2 {
			ax, ay := px(i)
			bx, by := px(i + 1)
			cv.segment(ax, ay, bx, by)
		}
	default:
		for i := 0; i+1 < n; i++ {
			ax, ay := px(i)
			bx, by := px(i + 1)
			cv.segment(ax, ay, bx, by)
		}
	}
	cv.r.Draw(cv.img, b, src, image.Point{})
}

// segment adds a quad of width LineWidth around the segment a-b.
func (cv *Canvas) segment(ax, ay, bx, by float32) {
	dx, dy := bx-ax, by-ay
	l := math32.Hypot(dx, dy)
	if l == 0 {
		cv.square(ax, ay, cv.LineWidth/2)
		return
	}
	hw := cv.LineWidth / 2
	nx, ny := -dy/l*hw, dx/l*hw
	cv.quad(ax+nx, ay+ny, bx+nx, by+ny, bx-nx, by-ny, ax-nx, ay-ny)
}

func (cv *Canvas) square(x, y, half float32) {
	cv.quad(x-half, y-half, x+half, y-half, x+half, y+half, x-half, y+half)
}

// quad adds a closed quadrilateral. Vertices are clamped to the raster so
// off-screen geometry never indexes outside the accumulation buffer.
func (cv *Canvas) quad(x0, y0, x1, y1, x2, y2, x3, y3 float32) {
	sz := cv.r.Size()
	w, h := float32(sz.X), float32(sz.Y)
	cv.r.MoveTo(clampf(x0, w), clampf(y0, h))
	cv.r.LineTo(clampf(x1, w), clampf(y1, h))
	cv.r.LineTo(clampf(x2, w), clampf(y2, h))
	cv.r.LineTo(clampf(x3, w), clampf(y3, h))
	cv.r.ClosePath()
}

func clampf(v, hi float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(v, hi))
}

func unit8(v float32) uint8 {
	return uint8(math32.Max(0, math32.Min(v, 1))*255 + 0.5)
}
