// Package viz presents precomputed trajectories in the terminal.
//
//   - [Player]: Bubble Tea playback of a trajectory at 50 frames per second
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [EnergyChart], [VelocityChart]: asciigraph line charts
//   - [Summary], [SweepTable]: lipgloss panels for batch output
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart from the first frame
//	[ ]   - Step one frame back/forward
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
//
// The player never integrates; it only moves a cursor over the samples it
// was given.
package viz
