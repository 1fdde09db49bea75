// Package planar provides the graph value shared by the tutte core.
//
// # Overview
//
// A [Graph] is an ordered sequence of [Vertex] values plus an immutable set
// of undirected [Edge] values. Each vertex carries its current drawing
// position, a velocity used by the relaxation engine, and a flag marking
// it as part of the fixed outer face (the boundary).
//
// Vertex IDs are dense: the vertex with ID i is Vertices[i]. Vertices are
// created in a batch and never added or removed afterwards.
//
// # Construction
//
// [New] normalizes and de-duplicates edges and silently drops self-loops,
// so triangulations of degenerate point sets still yield a valid graph:
//
//	g, err := planar.New(4, []planar.Edge{
//	    {From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0},
//	    {From: 3, To: 0}, {From: 3, To: 1}, {From: 3, To: 2},
//	})
//
// # Mutation Hooks
//
// Interactive edits are explicit commands rather than event callbacks:
//
//   - [Graph.SetBoundary] reclassifies a vertex (double-click in a UI)
//   - [Graph.SetPosition] moves a vertex (drag in a UI)
//   - [Graph.ResetBoundary] restores the generator's hull classification
//
// None of these re-check planarity; the next animation tick does.
//
// # Display State
//
// Graph holds algorithmic state only. Colors and other display annotations
// are derived by view layers from the boundary flag and the latest
// planarity result.
package planar
