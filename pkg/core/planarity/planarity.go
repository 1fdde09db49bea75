package planarity

import (
	"github.com/matzehuels/tutte/pkg/core/geom"
	"github.com/matzehuels/tutte/pkg/core/planar"

	"gonum.org/v1/gonum/spatial/r2"
)

// Crossing identifies a pair of edges whose segments properly cross.
// A and B are indices into the edge slice passed to [FirstCrossing] or
// [Crossings], with A < B.
type Crossing struct {
	A, B int
}

// IsPlanar reports whether the straight-line drawing given by positions has
// no two non-adjacent edges crossing. Edges sharing an endpoint are never
// tested against each other. Edges referencing a position that doesn't
// exist, and self-loops, are ignored.
//
// The test is the generic orientation test of [geom.SegmentsCross]: edges
// that overlap collinearly are not reported. IsPlanar stops at the first
// crossing found, so the worst case is O(E²) and the best case returns as
// soon as a crossing appears.
func IsPlanar(positions []r2.Vec, edges []planar.Edge) bool {
	_, found := FirstCrossing(positions, edges)
	return !found
}

// FirstCrossing returns the first crossing pair in (A, B) lexicographic
// order, or false when the drawing is planar.
func FirstCrossing(positions []r2.Vec, edges []planar.Edge) (Crossing, bool) {
	var (
		c     Crossing
		found bool
	)
	scan(positions, edges, func(a, b int) bool {
		c, found = Crossing{A: a, B: b}, true
		return false
	})
	return c, found
}

// CountCrossings returns the number of crossing edge pairs. Unlike
// [IsPlanar] it always examines every pair.
func CountCrossings(positions []r2.Vec, edges []planar.Edge) int {
	n := 0
	scan(positions, edges, func(int, int) bool {
		n++
		return true
	})
	return n
}

// Crossings returns every crossing pair in (A, B) lexicographic order.
func Crossings(positions []r2.Vec, edges []planar.Edge) []Crossing {
	var out []Crossing
	scan(positions, edges, func(a, b int) bool {
		out = append(out, Crossing{A: a, B: b})
		return true
	})
	return out
}

// Graph reports whether g's current drawing is planar.
func Graph(g *planar.Graph) bool {
	return IsPlanar(g.Positions(), g.Edges)
}

// scan calls yield for every crossing pair until yield returns false.
func scan(positions []r2.Vec, edges []planar.Edge, yield func(a, b int) bool) {
	usable := func(e planar.Edge) bool {
		return e.From != e.To &&
			e.From >= 0 && e.From < len(positions) &&
			e.To >= 0 && e.To < len(positions)
	}

	for i := 0; i < len(edges); i++ {
		e1 := edges[i]
		if !usable(e1) {
			continue
		}
		p1, q1 := positions[e1.From], positions[e1.To]
		for j := i + 1; j < len(edges); j++ {
			e2 := edges[j]
			if !usable(e2) || e1.SharesEndpoint(e2) {
				continue
			}
			if geom.SegmentsCross(p1, q1, positions[e2.From], positions[e2.To]) {
				if !yield(i, j) {
					return
				}
			}
		}
	}
}
