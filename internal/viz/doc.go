// Package viz renders a running landscape session in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one session, ticking at 60 Hz
//   - [RenderHexMap]: odd-r hex map coloured by elevation, with fog and ruins
//   - [Canvas]: Braille dot canvas for the trail view
//   - Theme selection with 3 built-in elevation palettes
//
// # Key Bindings
//
//	Space - Pause/Resume
//	I     - Random impulse
//	+/-   - Noise up/down
//	E     - Erode
//	F     - Toggle fog
//	1-6   - Glide one cell
//	R     - Restart the scenario
//	T     - Cycle themes
//	?     - Show help
package viz
