// Package relax implements the damped barycentric relaxation that turns a
// scrambled drawing of a planar graph into its Tutte embedding.
//
// Each [Engine.Step] pulls every interior vertex toward the centroid of its
// neighbors, smoothing the motion with a velocity term (momentum 0.8, gain
// 0.2 by default). Boundary vertices are pinned. With a convex, pinned outer
// face and a 3-connected graph the fixed point is a planar straight-line
// drawing; the step just iterates toward it.
//
// Updates are synchronous: every target is computed from the positions at
// the start of the step, so the result does not depend on vertex order.
//
// Convergence is declared when the largest interior velocity drops below
// [DefaultThreshold]. The threshold is chosen for the visual scale of the
// drawing (a few hundred units) and says nothing precise about the
// distance to the fixed point.
package relax
