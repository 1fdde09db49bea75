// Package generate creates random planar graphs with a scrambled drawing.
//
// [Generate] samples points in a square, takes their Delaunay triangulation
// as the edge set and their convex hull as the outer face, then throws the
// coordinates away by re-sampling every position. The result is a planar,
// generically 3-connected graph whose drawing almost always has crossings,
// which the relaxation engine untangles.
//
// Generation is deterministic for a fixed seed:
//
//	g, err := generate.Generate(ctx, 15, generate.Options{Seed: 42})
package generate
