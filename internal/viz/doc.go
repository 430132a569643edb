// Package viz provides terminal-based visualization for maze generation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view that drives the generation scheduler one slice per frame
//   - [Canvas]: Braille-based pixel canvas for the maze minimap
//   - [TermTile]: pooled cell visual with a short reveal fade
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume the frame loop
//	R     - Regenerate with a fresh seed
//	N     - Cycle carving algorithms
//	T     - Cycle color themes
//	+/-   - Grow/shrink the maze
//	S     - Toggle solution path overlay
//	?     - Show help overlay
package viz
