package relax

import (
	"github.com/matzehuels/tutte/pkg/core/planar"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultMomentum is the share of the previous velocity kept each step.
	DefaultMomentum = 0.8

	// DefaultGain is the share of the barycentric force added each step.
	DefaultGain = 0.2

	// DefaultThreshold is the displacement below which a run counts as
	// converged. It is an empirical choice that looks settled at screen
	// scale, not an analytic bound on the distance to the fixed point.
	DefaultThreshold = 1e-3
)

// Options tunes the damped update. A zero field selects its default, so a
// momentum or gain of exactly zero cannot be requested; use a small
// positive value instead.
type Options struct {
	Momentum  float64
	Gain      float64
	Threshold float64
}

// Engine advances a drawing toward its barycentric (Tutte) embedding one
// step at a time. It keeps a scratch buffer between steps, so an Engine
// must not be shared between goroutines.
type Engine struct {
	opts    Options
	scratch []r2.Vec
}

// New returns an engine with opts, replacing zero fields with
// [DefaultMomentum], [DefaultGain] and [DefaultThreshold].
func New(opts Options) *Engine {
	if opts.Momentum == 0 {
		opts.Momentum = DefaultMomentum
	}
	if opts.Gain == 0 {
		opts.Gain = DefaultGain
	}
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Engine{opts: opts}
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Step moves every interior vertex of g once and returns the largest
// velocity magnitude among them (0 when there are none).
//
// All targets are computed from the positions at the start of the step. For
// an interior vertex with neighbors N:
//
//	f   = centroid(N) - pos
//	vel = momentum*vel + gain*f
//	pos = pos + vel
//
// Boundary vertices are not touched. Interior vertices without neighbors
// keep their position and velocity and do not contribute to the result.
func (e *Engine) Step(g *planar.Graph) float64 {
	n := len(g.Vertices)
	if cap(e.scratch) < n {
		e.scratch = make([]r2.Vec, n)
	}
	prev := e.scratch[:n]
	for i := range g.Vertices {
		prev[i] = g.Vertices[i].Pos
	}

	maxDisp := 0.0
	for i := range g.Vertices {
		v := &g.Vertices[i]
		if v.Boundary {
			continue
		}
		nbrs := g.Neighbors(v.ID)
		if len(nbrs) == 0 {
			continue
		}

		var sum r2.Vec
		for _, u := range nbrs {
			sum = r2.Add(sum, prev[u])
		}
		target := r2.Scale(1/float64(len(nbrs)), sum)
		force := r2.Sub(target, prev[i])

		v.Vel = r2.Add(r2.Scale(e.opts.Momentum, v.Vel), r2.Scale(e.opts.Gain, force))
		v.Pos = r2.Add(v.Pos, v.Vel)
		maxDisp = max(maxDisp, r2.Norm(v.Vel))
	}
	return maxDisp
}

// Converged reports whether maxDisp is below the engine's threshold.
func (e *Engine) Converged(maxDisp float64) bool {
	return maxDisp < e.opts.Threshold
}

// Run steps g until it converges or maxSteps steps have been taken
// (maxSteps <= 0 means no limit). It returns the number of steps taken and
// the last displacement.
func (e *Engine) Run(g *planar.Graph, maxSteps int) (steps int, maxDisp float64) {
	for maxSteps <= 0 || steps < maxSteps {
		maxDisp = e.Step(g)
		steps++
		if e.Converged(maxDisp) {
			break
		}
	}
	return steps, maxDisp
}
