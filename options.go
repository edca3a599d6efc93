package gplot

import "github.com/gogpu/gplot/gpucore"

// LineOption configures a Line during creation.
//
// Example:
//
//	l, err := gplot.NewVec3Line(ctx, positions, 0, 2,
//	    gplot.WithMode(gpucore.ModePoints),
//	    gplot.WithColor(gplot.Cyan),
//	)
type LineOption func(*lineOptions)

// lineOptions holds optional configuration for Line creation.
type lineOptions struct {
	mode    gpucore.Mode
	color   RGB
	seed    Seed
	seedSet bool
	label   string
	usage   gpucore.Usage
}

// defaultLineOptions returns the default line options.
func defaultLineOptions() lineOptions {
	return lineOptions{
		mode:  gpucore.ModeLineStrip,
		color: White,
		seed:  SeedExtremes,
		usage: gpucore.UsageDynamic,
	}
}

// WithMode sets the primitive mode used by Draw. The default is
// gpucore.ModeLineStrip.
func WithMode(m gpucore.Mode) LineOption {
	return func(o *lineOptions) {
		o.mode = m
	}
}

// WithColor sets the line tint. The default is White.
func WithColor(c RGB) LineOption {
	return func(o *lineOptions) {
		o.color = c
	}
}

// WithBoundsSeed selects the seed convention of MinMax, overriding the
// default of the constructor.
func WithBoundsSeed(s Seed) LineOption {
	return func(o *lineOptions) {
		o.seed = s
		o.seedSet = true
	}
}

// WithLabel sets the debug label of the line's vertex array.
func WithLabel(label string) LineOption {
	return func(o *lineOptions) {
		o.label = label
	}
}

// WithUsage sets the update-frequency hint of the vertex buffer. The
// default is gpucore.UsageDynamic.
func WithUsage(u gpucore.Usage) LineOption {
	return func(o *lineOptions) {
		o.usage = u
	}
}

// withDefaultSeed sets the seed unless the caller chose one explicitly.
// Constructors prepend it to the user's options.
func withDefaultSeed(s Seed) LineOption {
	return func(o *lineOptions) {
		if !o.seedSet {
			o.seed = s
		}
	}
}
