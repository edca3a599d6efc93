package gplot

import (
	"fmt"
	"unsafe"
)

// Repacker derives the flat, interleaved (x, y) float32 stream a line
// uploads to its vertex buffer from some source layout.
//
// A Repacker only reads its sources. Implementations whose source is already
// flat-pair encoded return a view of the source storage from Repack and never
// touch buf; the others append into buf[:0].
type Repacker interface {
	// Points returns the number of points derivable from the current state
	// of the sources. It must be cheap: lines call it on every Draw.
	Points() int

	// Repack returns exactly 2*Points() values: x0, y0, x1, y1, ...
	Repack(buf []float32) ([]float32, error)

	// Generation returns a value that changes whenever any source mutates.
	Generation() uint64
}

// pointRepacker uploads a PointSeries directly: Point is two packed float32.
type pointRepacker struct {
	s *PointSeries
}

// Points returns a repacker for a series of points. The stream is a view of
// the series storage.
func Points(s *PointSeries) (Repacker, error) {
	if s == nil {
		return nil, fmt.Errorf("points: %w", ErrNilSource)
	}
	return &pointRepacker{s: s}, nil
}

func (r *pointRepacker) Points() int        { return r.s.Len() }
func (r *pointRepacker) Generation() uint64 { return r.s.Generation() }

func (r *pointRepacker) Repack(buf []float32) ([]float32, error) {
	pts := r.s.View()
	if len(pts) == 0 {
		return buf[:0], nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&pts[0])), 2*len(pts)), nil
}

// flatRepacker uploads a FlatSeries directly, two floats per point.
type flatRepacker struct {
	s *FlatSeries
}

// Flat returns a repacker for a flat sequence of (x, y) pairs. The stream is
// a view of the series storage truncated to whole pairs.
func Flat(s *FlatSeries) (Repacker, error) {
	if s == nil {
		return nil, fmt.Errorf("flat: %w", ErrNilSource)
	}
	return &flatRepacker{s: s}, nil
}

func (r *flatRepacker) Points() int        { return r.s.Pairs() }
func (r *flatRepacker) Generation() uint64 { return r.s.Generation() }

func (r *flatRepacker) Repack(buf []float32) ([]float32, error) {
	return r.s.View()[:2*r.s.Pairs()], nil
}

// rowRepacker selects two columns of every row.
type rowRepacker struct {
	s      *RowSeries
	ix, iy int
}

// Rows returns a repacker that plots column indexX against column indexY of
// every row. Rows too short for either index fail at repack time.
func Rows(s *RowSeries, indexX, indexY int) (Repacker, error) {
	if s == nil {
		return nil, fmt.Errorf("rows: %w", ErrNilSource)
	}
	if indexX < 0 || indexY < 0 {
		return nil, fmt.Errorf("rows: indices (%d, %d): %w", indexX, indexY, ErrIndexOutOfRange)
	}
	return &rowRepacker{s: s, ix: indexX, iy: indexY}, nil
}

func (r *rowRepacker) Points() int        { return r.s.Len() }
func (r *rowRepacker) Generation() uint64 { return r.s.Generation() }

func (r *rowRepacker) Repack(buf []float32) ([]float32, error) {
	buf = buf[:0]
	for i, row := range r.s.View() {
		if r.ix >= len(row) || r.iy >= len(row) {
			return buf, fmt.Errorf("row %d has %d columns, need indices (%d, %d): %w",
				i, len(row), r.ix, r.iy, ErrIndexOutOfRange)
		}
		buf = append(buf, row[r.ix], row[r.iy])
	}
	return buf, nil
}

// vec3Repacker selects two components of every vector.
type vec3Repacker struct {
	s      *Vec3Series
	ix, iy int
}

// Vec3s returns a repacker that plots component indexX against component
// indexY of every vector. Components are narrowed to float32.
func Vec3s(s *Vec3Series, indexX, indexY int) (Repacker, error) {
	if s == nil {
		return nil, fmt.Errorf("vec3: %w", ErrNilSource)
	}
	if !validComponent(indexX) || !validComponent(indexY) {
		return nil, fmt.Errorf("vec3: indices (%d, %d): %w", indexX, indexY, ErrIndexOutOfRange)
	}
	return &vec3Repacker{s: s, ix: indexX, iy: indexY}, nil
}

func (r *vec3Repacker) Points() int        { return r.s.Len() }
func (r *vec3Repacker) Generation() uint64 { return r.s.Generation() }

func (r *vec3Repacker) Repack(buf []float32) ([]float32, error) {
	buf = buf[:0]
	for _, v := range r.s.View() {
		buf = append(buf, float32(v[r.ix]), float32(v[r.iy]))
	}
	return buf, nil
}

// pairedRepacker joins a flat sequence (x) with one component of a vector
// sequence (y) by position.
type pairedRepacker struct {
	xs  *FlatSeries
	ys  *Vec3Series
	idx int
}

// Paired returns a repacker plotting xs[i] against ys[i][index], for example
// a time base against one axis of a position history. The stream is
// truncated to the shorter of the two sequences.
func Paired(xs *FlatSeries, ys *Vec3Series, index int) (Repacker, error) {
	if xs == nil || ys == nil {
		return nil, fmt.Errorf("paired: %w", ErrNilSource)
	}
	if !validComponent(index) {
		return nil, fmt.Errorf("paired: index %d: %w", index, ErrIndexOutOfRange)
	}
	return &pairedRepacker{xs: xs, ys: ys, idx: index}, nil
}

func (r *pairedRepacker) Points() int {
	return min(r.xs.Len(), r.ys.Len())
}

func (r *pairedRepacker) Generation() uint64 {
	return r.xs.Generation() + r.ys.Generation()
}

func (r *pairedRepacker) Repack(buf []float32) ([]float32, error) {
	buf = buf[:0]
	n := r.Points()
	xs, ys := r.xs.View(), r.ys.View()
	for i := 0; i < n; i++ {
		buf = append(buf, xs[i], float32(ys[i][r.idx]))
	}
	return buf, nil
}

func validComponent(i int) bool {
	return i >= 0 && i < len(Vec3{})
}
