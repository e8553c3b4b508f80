// Package viz renders a particle field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one simulator with keyboard controls
//   - [NewMenu]: preset picker that hands off to a live view
//   - [Canvas]: Braille-based pixel canvas; line opacity becomes dot spacing
//   - [Camera]: orbiting perspective projection of the box
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reseed particles
//	D L C - Toggle dots, lines, connection limit
//	[ ]   - Minimum distance
//	- +   - Maximum connections
//	, .   - Particle count
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The G key records the canvas as a GIF animation, saved to Options.GIFPath
// when recording stops or the program quits.
package viz
