// Package physics provides the triple pendulum model and the quantities
// derived from its state.
//
// [TriplePendulum] implements [dynamo.System]: it builds the angle-dependent
// mass matrix, the gravity/damping force vector and the velocity-squared
// coupling terms, and solves for the angular accelerations with an LU
// factorization on every evaluation.
//
// [Positions] and [Energy] are pure functions of a state and [Params]:
//
//	x1, y1, x2, y2, x3, y3 := physics.Positions(state, params)
//	ke, pe, total := physics.Energy(states, params)
//
// # Angles
//
// All angles are radians measured from the downward vertical. Degree input
// is converted by the caller (see the config package).
package physics
