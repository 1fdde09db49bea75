package planar

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Stats summarizes the topology of a graph.
type Stats struct {
	Vertices   int
	Edges      int
	Boundary   int
	Interior   int
	Orphans    int // interior vertices without neighbors
	MinDegree  int
	MaxDegree  int
	Components int
}

// Analyze computes [Stats] for g. Connected components are counted with
// gonum's topo package on an undirected copy of the edge set.
func (g *Graph) Analyze() Stats {
	s := Stats{
		Vertices: len(g.Vertices),
		Edges:    len(g.Edges),
	}
	if s.Vertices == 0 {
		return s
	}

	s.MinDegree = -1
	for _, v := range g.Vertices {
		d := g.Degree(v.ID)
		if v.Boundary {
			s.Boundary++
		} else {
			s.Interior++
			if d == 0 {
				s.Orphans++
			}
		}
		if s.MinDegree < 0 || d < s.MinDegree {
			s.MinDegree = d
		}
		s.MaxDegree = max(s.MaxDegree, d)
	}

	ug := simple.NewUndirectedGraph()
	for _, v := range g.Vertices {
		ug.AddNode(simple.Node(v.ID))
	}
	for _, e := range g.Edges {
		if e.From == e.To || !g.valid(e.From) || !g.valid(e.To) {
			continue
		}
		ug.SetEdge(simple.Edge{F: simple.Node(e.From), T: simple.Node(e.To)})
	}
	s.Components = len(topo.ConnectedComponents(ug))
	return s
}
