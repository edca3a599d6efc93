// Package gpucore defines the graphics-context contract that gplot lines
// are written against.
//
// The contract is deliberately small and mirrors the immediate-mode model of
// a single rendering thread driving a single graphics context:
//
//   - [Context.CreateVertexArray] allocates a vertex array and its vertex
//     buffer, uploads the initial bytes and declares attribute slot 0 as two
//     float32 per vertex at the descriptor stride.
//   - [Context.BufferData] replaces the whole buffer contents.
//   - [Context.BindVertexArray] and [Context.DrawArrays] issue draws using the
//     program most recently activated with [Shader.Use].
//
// # Backends
//
// Two implementations ship with gplot:
//
//	               +-----------------+
//	               |   gplot.Line    |
//	               +--------+--------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	| backend/software|          |  backend/wgpu   |
//	|  (pure Go, CPU) |          |  (hal.Device)   |
//	+-----------------+          +--------+--------+
//	                                      |
//	                             +--------v--------+
//	                             |   gogpu/wgpu    |
//	                             +-----------------+
//
// # Resource Management
//
// Vertex arrays are owned by whoever created them and must be released with
// [Context.DestroyVertexArray]. Contexts release every object they still own
// in Close.
//
// # Thread Safety
//
// None. A Context and everything created from it belong to the goroutine
// that drives rendering.
package gpucore
