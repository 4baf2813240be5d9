// Package viz renders scenario runs in the terminal.
//
//   - [Canvas]: Braille pixel canvas with a world [Viewport] for drawing shapes
//   - [EventTable] and [DistancePlot]: static reports of a finished run
//   - [Model]: Bubble Tea program that advances a scenario live
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Change playback speed
//	R     - Restart the scenario
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
