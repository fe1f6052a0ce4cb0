// Package analysis characterizes simulated trajectories.
//
//   - [Spectrum], [DominantFrequency]: oscillation content of a sampled series
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [BifurcationDiagram]: parameter sweep recording section values
//   - [NewPhasePortrait], [NewPoincareSection]: 2D views of phase space
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(ctx, sim.NewDefault, p, 1e-6)
//	if lambda > 0 {
//	    // nearby starts diverge exponentially
//	}
package analysis
