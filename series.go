package gplot

// Series is an append-only sequence owned by the code producing the data,
// typically a simulation or acquisition loop that grows it once per step.
//
// Lines hold a *Series as a borrowed, read-only view. All mutation goes
// through the owner; every mutation bumps Generation so a line can tell
// cheaply whether anything changed since its last upload.
//
// The zero value is an empty series ready to use.
type Series[T any] struct {
	data []T
	gen  uint64
}

// Append adds values to the end of the series.
func (s *Series[T]) Append(v ...T) {
	if len(v) == 0 {
		return
	}
	s.data = append(s.data, v...)
	s.gen++
}

// Reset removes all values, keeping the allocated capacity.
func (s *Series[T]) Reset() {
	s.data = s.data[:0]
	s.gen++
}

// Len returns the number of values in the series.
func (s *Series[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.data)
}

// At returns the i-th value.
func (s *Series[T]) At(i int) T {
	return s.data[i]
}

// View returns the current values. The slice aliases the series storage:
// callers must not modify it, and it is only valid until the next mutation.
func (s *Series[T]) View() []T {
	if s == nil {
		return nil
	}
	return s.data
}

// Generation returns a counter incremented on every mutation.
func (s *Series[T]) Generation() uint64 {
	if s == nil {
		return 0
	}
	return s.gen
}

// PointSeries is a series of (x, y) points.
type PointSeries struct {
	Series[Point]
}

// NewPointSeries returns a series holding a copy of pts.
func NewPointSeries(pts ...Point) *PointSeries {
	s := &PointSeries{}
	s.data = append(s.data, pts...)
	return s
}

// AppendPt appends a single point.
func (s *PointSeries) AppendPt(p Point) {
	s.Append(p)
}

// FlatSeries is a flat sequence of floats read as consecutive (x, y) pairs.
// A trailing unpaired value is ignored by lines until its partner arrives.
type FlatSeries struct {
	Series[float32]
}

// NewFlatSeries returns a series holding a copy of values.
func NewFlatSeries(values ...float32) *FlatSeries {
	s := &FlatSeries{}
	s.data = append(s.data, values...)
	return s
}

// AppendVec appends one (x, y) pair.
func (s *FlatSeries) AppendVec(x, y float32) {
	s.Append(x, y)
}

// Pairs returns the number of complete (x, y) pairs.
func (s *FlatSeries) Pairs() int {
	return s.Len() / 2
}

// RowSeries is a sequence of records, each a slice of float32 columns.
// Lines plot two selected columns of every row against each other.
type RowSeries struct {
	Series[[]float32]
}

// NewRowSeries returns a series holding copies of rows.
func NewRowSeries(rows ...[]float32) *RowSeries {
	s := &RowSeries{}
	for _, r := range rows {
		s.data = append(s.data, append([]float32(nil), r...))
	}
	return s
}

// AppendRow appends a copy of the given columns as one row.
func (s *RowSeries) AppendRow(cols ...float32) {
	s.Append(append([]float32(nil), cols...))
}

// Vec3Series is a sequence of 3-component vectors.
type Vec3Series struct {
	Series[Vec3]
}

// NewVec3Series returns a series holding a copy of vs.
func NewVec3Series(vs ...Vec3) *Vec3Series {
	s := &Vec3Series{}
	s.data = append(s.data, vs...)
	return s
}
