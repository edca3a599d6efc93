// Package gplot draws streaming 2D plot data as GPU lines.
//
// # Overview
//
// A Line keeps a read-only view of a growing data source and mirrors it into
// a vertex buffer of a graphics context. Five source shapes are supported,
// each with its own constructor:
//
//	NewPointLine   []Point                 one vertex per point
//	NewFlatLine    []float32 x0,y0,x1,...  one vertex per pair
//	NewRowLine     [][]float32             two selected columns per row
//	NewVec3Line    []Vec3                  two selected components per vector
//	NewPairedLine  []float32 + []Vec3      x from one source, y from the other
//
// The owner appends to the source at any time. On the next Draw, the line
// notices that the number of points changed, re-derives the whole stream and
// replaces the buffer before drawing.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gplot"
//		"github.com/gogpu/gplot/backend/software"
//	)
//
//	ctx := software.New()
//	defer ctx.Close()
//	shader := ctx.LineShader()
//
//	data := gplot.NewFlatSeries()
//	line, err := gplot.NewFlatLine(ctx, data, gplot.WithColor(gplot.Red))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer line.Close()
//
//	for frame := range frames {
//		data.AppendVec(frame.X, frame.Y)
//		b, _ := line.MinMax()
//		_ = line.Draw(shader, gplot.AxesTransform(b))
//	}
//
// # Backends
//
// Lines draw through the gpucore.Context interface. The software backend
// records draws and optionally rasterizes them into an image; the wgpu
// backend records them into a WebGPU render pass. Package backend selects
// one by name or by priority.
//
// # Bounds
//
// MinMax scans the current stream once. Point, flat and row lines seed the
// scan at the origin, so their boxes always contain (0, 0); Vec3 and paired
// lines seed at ±Inf and return the true extremes. WithBoundsSeed overrides
// the convention per line.
package gplot
