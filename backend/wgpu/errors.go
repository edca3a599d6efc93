package wgpu

import "errors"

// Package errors for the wgpu backend.
var (
	// ErrNoFrame is returned by DrawArrays outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("wgpu: no frame in progress")

	// ErrFrameInProgress is returned when a frame is begun twice.
	ErrFrameInProgress = errors.New("wgpu: frame already in progress")

	// ErrNoAdapter is returned when a hal backend exposes no adapter.
	ErrNoAdapter = errors.New("wgpu: no adapter available")

	// ErrNotHalProvider is returned when a device provider does not expose
	// hal.Device and hal.Queue.
	ErrNotHalProvider = errors.New("wgpu: provider does not expose HAL types")

	// ErrUniformBlock is returned when a shader does not declare a uniform
	// struct at group 0, binding 0.
	ErrUniformBlock = errors.New("wgpu: shader has no uniform struct at @group(0) @binding(0)")

	// ErrEntryPoint is returned when a shader lacks a vertex or fragment
	// entry point.
	ErrEntryPoint = errors.New("wgpu: shader needs one vertex and one fragment entry point")

	// ErrInvalidDimensions is returned when a target has zero width or height.
	ErrInvalidDimensions = errors.New("wgpu: invalid dimensions")
)
