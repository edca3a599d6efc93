package gplot

import "errors"

// Line errors.
var (
	// ErrNilContext is returned when a line is created without a graphics context.
	ErrNilContext = errors.New("gplot: graphics context is nil")

	// ErrNilRepacker is returned when a line is created without a repacker.
	ErrNilRepacker = errors.New("gplot: repacker is nil")

	// ErrNilSource is returned when a repacker is built on a nil series.
	ErrNilSource = errors.New("gplot: source series is nil")

	// ErrNilShader is returned when Draw is called without a shader.
	ErrNilShader = errors.New("gplot: shader is nil")

	// ErrLineClosed is returned when operating on a closed line.
	ErrLineClosed = errors.New("gplot: line has been closed")

	// ErrIndexOutOfRange is returned when a component selection index does
	// not address an element of the source.
	ErrIndexOutOfRange = errors.New("gplot: selection index out of range")

	// ErrInvalidMode is returned when a line is configured with an unknown
	// primitive mode.
	ErrInvalidMode = errors.New("gplot: invalid primitive mode")
)
