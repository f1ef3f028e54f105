// Package viz renders frame states of the Lorenz animation.
//
// The package is the rendering collaborator of the frame sequencer:
//
//   - [Renderer]: accepts axis configuration once and one [frames.FrameState] per frame
//   - [Projector]: orthographic projection honouring the frame camera (azimuth, elevation)
//   - [Canvas]: Braille-based pixel canvas, one pen colour per cell
//   - [TerminalRenderer]: draws polylines and markers onto a Canvas
//   - [Player]: cooperative frame loop ticking at a fixed interval
//   - [Program]: Bubble Tea front end around the same renderer
//
// # Key Bindings
//
//	Space  - Pause/Resume animation
//	R      - Restart from frame 0
//	T      - Cycle color themes
//	Q      - Quit (closes the display)
//
// # Non-finite coordinates
//
// Points with a NaN or infinite coordinate, and points outside the
// configured axis bounds, are not drawn. Segments touching such a point
// are dropped.
package viz
