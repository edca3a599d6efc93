// Command plotdemo streams two series into gplot lines frame by frame and
// writes the final frame as a PNG rendered by the software context.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/chewxy/math32"

	"github.com/gogpu/gplot"
	"github.com/gogpu/gplot/backend"
	"github.com/gogpu/gplot/backend/software"
	"github.com/gogpu/gplot/gpucore"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		frames  = flag.Int("frames", 120, "number of frames to stream")
		output  = flag.String("output", "plot.png", "output file")
		verbose = flag.Bool("v", false, "log buffer uploads")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gplot.SetLogger(logger)

	if err := run(*width, *height, *frames, *output, logger); err != nil {
		log.Fatalf("plotdemo: %v", err)
	}
}

func run(width, height, frames int, output string, logger *slog.Logger) error {
	gc, err := backend.Get(backend.BackendSoftware)
	if err != nil {
		return err
	}
	defer gc.Close()
	// The canvas and the built-in shader are software specific.
	ctx, ok := gc.(*software.Context)
	if !ok {
		return fmt.Errorf("backend %q returned %T", backend.BackendSoftware, gc)
	}
	shader := ctx.LineShader()

	canvas := software.NewCanvas(width, height)
	ctx.SetCanvas(canvas)

	// x, sin(x) interleaved.
	wave := gplot.NewFlatSeries()
	// (x, cos(x)/2, x/frames) triples, plotted as (x, y).
	drift := gplot.NewVec3Series()

	sine, err := gplot.NewFlatLine(ctx, wave,
		gplot.WithColor(gplot.MustNamed("orange")), gplot.WithLabel("sine"))
	if err != nil {
		return err
	}
	defer sine.Close()

	cosine, err := gplot.NewVec3Line(ctx, drift, 0, 1,
		gplot.WithColor(gplot.MustNamed("deepskyblue")), gplot.WithLabel("cosine"))
	if err != nil {
		return err
	}
	defer cosine.Close()

	markers, err := gplot.NewVec3Line(ctx, drift, 0, 2,
		gplot.WithMode(gpucore.ModePoints), gplot.WithColor(gplot.Yellow), gplot.WithLabel("ramp"))
	if err != nil {
		return err
	}
	defer markers.Close()

	lines := []*gplot.Line{sine, cosine, markers}
	var view gplot.Bounds
	for f := 0; f < frames; f++ {
		x := float32(f) * 0.1
		wave.AppendVec(x, math32.Sin(x))
		drift.Append(gplot.V3(float64(x), float64(math32.Cos(x)/2), float64(f)/float64(frames)))

		canvas.Clear(gplot.Black.Color())
		ctx.ResetDraws()

		view = gplot.Bounds{XMin: 1, YMin: 1} // empty
		for _, l := range lines {
			b, err := l.MinMax()
			if err != nil {
				return fmt.Errorf("bounds of frame %d: %w", f, err)
			}
			view = view.Union(b)
		}
		transform := gplot.AxesTransform(view)
		for _, l := range lines {
			if err := l.Draw(shader, transform); err != nil {
				return fmt.Errorf("draw frame %d: %w", f, err)
			}
		}
	}

	canvas.Label(8, 16, fmt.Sprintf("x [%.2f, %.2f]  y [%.2f, %.2f]",
		view.XMin, view.XMax, view.YMin, view.YMax), gplot.White.Color())

	file, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := canvas.WritePNG(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	stats := ctx.Stats()
	logger.Info("plotdemo: wrote preview",
		slog.String("output", output),
		slog.Int("frames", frames),
		slog.Any("bounds", view.Slice()),
		slog.Int("uploads", stats.Uploads),
		slog.Int("draws", stats.Draws))
	return nil
}
