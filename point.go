package gplot

// Point is a single (x, y) sample of a plotted curve.
//
// The layout is two packed float32, identical to one vertex of the GPU
// position attribute, so a []Point can be uploaded without repacking.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Vec3 is a double precision 3-component vector, the element type of
// state histories such as position or velocity over time.
type Vec3 [3]float64

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

