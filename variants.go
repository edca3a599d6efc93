package gplot

import "github.com/gogpu/gplot/gpucore"

// NewPointLine creates a line over a series of points. The series is
// uploaded without repacking. Bounds default to SeedOrigin.
func NewPointLine(ctx gpucore.Context, s *PointSeries, opts ...LineOption) (*Line, error) {
	rp, err := Points(s)
	if err != nil {
		return nil, err
	}
	return newLine(ctx, rp, SeedOrigin, opts)
}

// NewFlatLine creates a line over a flat sequence of (x, y) pairs. The
// series is uploaded without repacking. Bounds default to SeedOrigin.
func NewFlatLine(ctx gpucore.Context, s *FlatSeries, opts ...LineOption) (*Line, error) {
	rp, err := Flat(s)
	if err != nil {
		return nil, err
	}
	return newLine(ctx, rp, SeedOrigin, opts)
}

// NewRowLine creates a line plotting column indexX against column indexY of
// every row. Bounds default to SeedOrigin.
func NewRowLine(ctx gpucore.Context, s *RowSeries, indexX, indexY int, opts ...LineOption) (*Line, error) {
	rp, err := Rows(s, indexX, indexY)
	if err != nil {
		return nil, err
	}
	return newLine(ctx, rp, SeedOrigin, opts)
}

// NewVec3Line creates a line plotting component indexX against component
// indexY of every vector. Bounds default to SeedExtremes.
func NewVec3Line(ctx gpucore.Context, s *Vec3Series, indexX, indexY int, opts ...LineOption) (*Line, error) {
	rp, err := Vec3s(s, indexX, indexY)
	if err != nil {
		return nil, err
	}
	return newLine(ctx, rp, SeedExtremes, opts)
}

// NewPairedLine creates a line plotting xs[i] against ys[i][index], for
// example a time base against one axis of a position history. The line has
// as many points as the shorter sequence. Bounds default to SeedExtremes.
func NewPairedLine(ctx gpucore.Context, xs *FlatSeries, ys *Vec3Series, index int, opts ...LineOption) (*Line, error) {
	rp, err := Paired(xs, ys, index)
	if err != nil {
		return nil, err
	}
	return newLine(ctx, rp, SeedExtremes, opts)
}
