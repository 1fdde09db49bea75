// Package geom provides the planar geometry used by the tutte core:
// the orientation predicate behind segment crossing tests, and a Delaunay
// triangulation (github.com/fogleman/delaunay) that also reports the hull
// cycle.
//
// Points are gonum [r2.Vec] values. Functions that return topology refer to
// points by their index in the input slice.
//
// [Orientation] uses a fixed epsilon ([CollinearEpsilon]) on the raw cross
// product. [SegmentsCross] only detects the generic crossing case; segments
// that overlap collinearly are reported as not crossing.
//
// [r2.Vec]: gonum.org/v1/gonum/spatial/r2
package geom
