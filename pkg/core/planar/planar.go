package planar

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrUnknownVertex is returned by the mutation hooks when the vertex ID
	// does not index the graph's vertex sequence.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrInvalidEdgeEndpoint is returned by [New] and [Graph.Validate] when an
	// edge references a vertex that doesn't exist.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrSelfLoop is returned by [Graph.Validate] when an edge connects a
	// vertex to itself. [New] drops self-loops instead of failing.
	ErrSelfLoop = errors.New("edge is a self-loop")

	// ErrDuplicateEdge is returned by [Graph.Validate] when the same
	// unordered pair appears twice. [New] de-duplicates instead of failing.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrTooFewBoundary is returned by [Graph.Validate] when a non-trivial
	// graph has fewer than three boundary vertices. Relaxation with fewer
	// pinned vertices collapses the drawing instead of converging to a
	// planar embedding.
	ErrTooFewBoundary = errors.New("fewer than 3 boundary vertices")
)

// Vertex is a graph vertex with its current drawing position.
//
// ID is the vertex's index in [Graph.Vertices] and never changes. Vel is
// the exponential-smoothing state used by the relaxation engine; other
// components treat it as opaque.
type Vertex struct {
	ID       int
	Pos      r2.Vec
	Vel      r2.Vec
	Boundary bool
}

// Edge is an unordered pair of vertex IDs. Edges built by [New] or
// [NewEdge] are normalized so that From < To.
type Edge struct {
	From int
	To   int
}

// NewEdge returns the normalized edge between a and b.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{From: a, To: b}
}

// SharesEndpoint reports whether e and o have a vertex in common.
func (e Edge) SharesEndpoint(o Edge) bool {
	return e.From == o.From || e.From == o.To || e.To == o.From || e.To == o.To
}

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id int) int {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Graph is a planar graph with a drawing: an ordered vertex sequence, an
// immutable edge set and the boundary (outer face) marking carried on
// each vertex.
//
// The edge set is fixed for the graph's lifetime, which lets the graph cache
// adjacency. Positions, velocities and boundary flags are mutable.
//
// Graph is not safe for concurrent use. The animation scheduler owns the
// graph during a run and hands out clones to readers.
type Graph struct {
	Vertices []Vertex
	Edges    []Edge

	// Hull holds the vertex IDs the generator classified as the convex
	// hull, in hull order. [Graph.ResetBoundary] restores the boundary
	// marking to this set after interactive edits.
	Hull []int

	adj [][]int
}

// New creates a graph with n vertices at the origin and the given edges.
// Edges are normalized; self-loops and duplicate pairs are dropped, which
// absorbs the degenerate output of triangulating coincident points.
// Returns [ErrInvalidEdgeEndpoint] if an edge references a vertex outside
// [0, n).
func New(n int, edges []Edge) (*Graph, error) {
	g := &Graph{
		Vertices: make([]Vertex, n),
		Edges:    make([]Edge, 0, len(edges)),
	}
	for i := range g.Vertices {
		g.Vertices[i].ID = i
	}

	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, ErrInvalidEdgeEndpoint
		}
		if e.From == e.To {
			continue
		}
		e = NewEdge(e.From, e.To)
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		g.Edges = append(g.Edges, e)
	}
	return g, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.Vertices) }

// Clone returns a deep copy of g. The adjacency cache is shared since the
// edge set is immutable.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	g.buildAdjacency()
	return &Graph{
		Vertices: slices.Clone(g.Vertices),
		Edges:    slices.Clone(g.Edges),
		Hull:     slices.Clone(g.Hull),
		adj:      g.adj,
	}
}

// Neighbors returns the IDs adjacent to id. The returned slice is shared
// and must not be modified. Unknown IDs have no neighbors.
func (g *Graph) Neighbors(id int) []int {
	g.buildAdjacency()
	if id < 0 || id >= len(g.adj) {
		return nil
	}
	return g.adj[id]
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id int) int {
	return len(g.Neighbors(id))
}

func (g *Graph) buildAdjacency() {
	if g.adj != nil && len(g.adj) == len(g.Vertices) {
		return
	}
	adj := make([][]int, len(g.Vertices))
	for _, e := range g.Edges {
		if e.From == e.To || !g.valid(e.From) || !g.valid(e.To) {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
		adj[e.To] = append(adj[e.To], e.From)
	}
	for i := range adj {
		slices.Sort(adj[i])
		adj[i] = slices.Compact(adj[i])
	}
	g.adj = adj
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.Vertices)
}

// Positions returns the vertex positions indexed by vertex ID.
func (g *Graph) Positions() []r2.Vec {
	pos := make([]r2.Vec, len(g.Vertices))
	for i, v := range g.Vertices {
		pos[i] = v.Pos
	}
	return pos
}

// BoundaryIDs returns the IDs of all boundary vertices in ascending order.
func (g *Graph) BoundaryIDs() []int {
	var ids []int
	for _, v := range g.Vertices {
		if v.Boundary {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

// InteriorCount returns the number of non-boundary vertices.
func (g *Graph) InteriorCount() int {
	n := 0
	for _, v := range g.Vertices {
		if !v.Boundary {
			n++
		}
	}
	return n
}

// SetBoundary marks or unmarks id as a boundary vertex. This overrides the
// generator's hull classification; [Graph.ResetBoundary] undoes it.
func (g *Graph) SetBoundary(id int, boundary bool) error {
	if !g.valid(id) {
		return ErrUnknownVertex
	}
	g.Vertices[id].Boundary = boundary
	return nil
}

// ToggleBoundary flips the boundary flag of id and returns the new value.
func (g *Graph) ToggleBoundary(id int) (bool, error) {
	if !g.valid(id) {
		return false, ErrUnknownVertex
	}
	g.Vertices[id].Boundary = !g.Vertices[id].Boundary
	return g.Vertices[id].Boundary, nil
}

// SetPosition moves id to (x, y). The velocity is kept, so a dragged
// vertex resumes with its previous momentum when relaxation restarts.
// Planarity is not re-evaluated here.
func (g *Graph) SetPosition(id int, x, y float64) error {
	if !g.valid(id) {
		return ErrUnknownVertex
	}
	g.Vertices[id].Pos = r2.Vec{X: x, Y: y}
	return nil
}

// ResetBoundary marks exactly the hull vertices as boundary. Graphs without
// a recorded hull are left unchanged.
func (g *Graph) ResetBoundary() {
	if len(g.Hull) == 0 {
		return
	}
	for i := range g.Vertices {
		g.Vertices[i].Boundary = false
	}
	for _, id := range g.Hull {
		if g.valid(id) {
			g.Vertices[id].Boundary = true
		}
	}
}

// Validate checks the structural invariants: edge endpoints are valid
// vertex IDs, there are no self-loops or duplicate edges, vertex IDs match
// their index, and graphs with at least three vertices have at least three
// boundary vertices.
func (g *Graph) Validate() error {
	for i, v := range g.Vertices {
		if v.ID != i {
			return ErrUnknownVertex
		}
	}
	seen := make(map[Edge]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if !g.valid(e.From) || !g.valid(e.To) {
			return ErrInvalidEdgeEndpoint
		}
		if e.From == e.To {
			return ErrSelfLoop
		}
		key := NewEdge(e.From, e.To)
		if _, dup := seen[key]; dup {
			return ErrDuplicateEdge
		}
		seen[key] = struct{}{}
	}
	if len(g.Vertices) >= 3 && len(g.BoundaryIDs()) < 3 {
		return ErrTooFewBoundary
	}
	return nil
}
