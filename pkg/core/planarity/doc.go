// Package planarity checks whether a straight-line drawing of a graph has
// crossing edges.
//
// The check is a brute-force pairwise test: every pair of edges that share
// no endpoint is classified with the orientation predicate from
// [github.com/matzehuels/tutte/pkg/core/geom]. It runs in O(E²) and is
// meant to be re-run after every relaxation step, so it is kept
// allocation-free on the [IsPlanar] path.
//
// # Limitations
//
// Only proper crossings are detected. Two edges lying on the same line and
// overlapping are treated as non-crossing, as is a vertex resting exactly
// on a non-incident edge. With floating-point positions from a random
// generator these configurations are rare.
//
// # Usage
//
//	if !planarity.IsPlanar(g.Positions(), g.Edges) {
//	    c, _ := planarity.FirstCrossing(g.Positions(), g.Edges)
//	    fmt.Println("edges cross:", g.Edges[c.A], g.Edges[c.B])
//	}
package planarity
