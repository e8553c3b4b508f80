// Package field provides the per-frame pipeline of an animated 3D particle
// field whose nearby particles are joined by lines.
//
// The package is organised as the stages a frame passes through:
//
//   - [Store]: fixed-capacity particle storage with an active prefix
//   - [Integrate]: velocity step with per-axis wall reflection
//   - [GraphBuilder]: proximity edges under a per-particle degree cap
//     ([BruteForce] and the equivalent [Grid])
//   - [LineBuffers], [PointBuffers]: flat vertex/color buffers for a renderer
//   - [Simulator]: owns the stages and runs them once per frame
//
// # Example
//
//	s, _ := field.New(field.DefaultOptions())
//	frame := s.AdvanceFrame(field.DefaultControlState())
//	draw(frame.Lines.Positions[:frame.Lines.DrawRange*3])
//
// # Thread Safety
//
// A Simulator is NOT thread-safe; AdvanceFrame must be called from one
// goroutine. Controls is the only type meant to be written concurrently:
// UIs set values on it and the frame driver reads a Snapshot per frame.
package field
