package planar

import (
	"errors"
	"slices"
	"testing"
)

func tetra(t *testing.T) *Graph {
	t.Helper()
	g, err := New(4, []Edge{
		{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 0},
		{From: 3, To: 0}, {From: 3, To: 1}, {From: 3, To: 2},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	for _, id := range []int{0, 1, 2} {
		if err := g.SetBoundary(id, true); err != nil {
			t.Fatalf("SetBoundary(%d) error: %v", id, err)
		}
	}
	g.Hull = []int{0, 1, 2}
	return g
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		edges     []Edge
		wantEdges []Edge
		wantErr   error
	}{
		{
			name:      "Empty",
			n:         0,
			wantEdges: []Edge{},
		},
		{
			name:      "Normalizes",
			n:         3,
			edges:     []Edge{{From: 2, To: 0}, {From: 1, To: 2}},
			wantEdges: []Edge{{From: 0, To: 2}, {From: 1, To: 2}},
		},
		{
			name:      "DropsDuplicates",
			n:         3,
			edges:     []Edge{{From: 0, To: 1}, {From: 1, To: 0}, {From: 0, To: 1}},
			wantEdges: []Edge{{From: 0, To: 1}},
		},
		{
			name:      "DropsSelfLoops",
			n:         2,
			edges:     []Edge{{From: 1, To: 1}, {From: 0, To: 1}},
			wantEdges: []Edge{{From: 0, To: 1}},
		},
		{
			name:    "RejectsOutOfRange",
			n:       2,
			edges:   []Edge{{From: 0, To: 2}},
			wantErr: ErrInvalidEdgeEndpoint,
		},
		{
			name:    "RejectsNegative",
			n:       2,
			edges:   []Edge{{From: -1, To: 1}},
			wantErr: ErrInvalidEdgeEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.n, tt.edges)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !slices.Equal(g.Edges, tt.wantEdges) {
				t.Errorf("Edges = %v, want %v", g.Edges, tt.wantEdges)
			}
			for i, v := range g.Vertices {
				if v.ID != i {
					t.Errorf("Vertices[%d].ID = %d", i, v.ID)
				}
			}
		})
	}
}

func TestNeighbors(t *testing.T) {
	g := tetra(t)

	if got := g.Neighbors(3); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("Neighbors(3) = %v, want [0 1 2]", got)
	}
	if got := g.Neighbors(0); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("Neighbors(0) = %v, want [1 2 3]", got)
	}
	if got := g.Neighbors(7); got != nil {
		t.Errorf("Neighbors(7) = %v, want nil", got)
	}
	if got := g.Degree(3); got != 3 {
		t.Errorf("Degree(3) = %d, want 3", got)
	}
}

func TestClone(t *testing.T) {
	g := tetra(t)
	if err := g.SetPosition(3, 10, 20); err != nil {
		t.Fatal(err)
	}

	c := g.Clone()
	if err := c.SetPosition(3, -1, -1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.ToggleBoundary(0); err != nil {
		t.Fatal(err)
	}
	c.Hull[0] = 3

	if g.Vertices[3].Pos.X != 10 || g.Vertices[3].Pos.Y != 20 {
		t.Errorf("original position changed to %v", g.Vertices[3].Pos)
	}
	if !g.Vertices[0].Boundary {
		t.Error("original boundary flag changed")
	}
	if g.Hull[0] != 0 {
		t.Error("original hull changed")
	}
	if !slices.Equal(c.Neighbors(3), g.Neighbors(3)) {
		t.Error("clone adjacency differs")
	}

	var nilGraph *Graph
	if nilGraph.Clone() != nil {
		t.Error("Clone() of nil graph should be nil")
	}
}

func TestMutationHooks(t *testing.T) {
	g := tetra(t)

	if err := g.SetBoundary(3, true); err != nil {
		t.Fatalf("SetBoundary error: %v", err)
	}
	if got := g.BoundaryIDs(); !slices.Equal(got, []int{0, 1, 2, 3}) {
		t.Errorf("BoundaryIDs() = %v", got)
	}
	if got := g.InteriorCount(); got != 0 {
		t.Errorf("InteriorCount() = %d, want 0", got)
	}

	on, err := g.ToggleBoundary(3)
	if err != nil || on {
		t.Errorf("ToggleBoundary(3) = %v, %v; want false, nil", on, err)
	}

	g.Vertices[3].Vel.X = 5
	if err := g.SetPosition(3, 1.5, -2.5); err != nil {
		t.Fatalf("SetPosition error: %v", err)
	}
	if v := g.Vertices[3]; v.Pos.X != 1.5 || v.Pos.Y != -2.5 || v.Vel.X != 5 {
		t.Errorf("after SetPosition vertex = %+v", v)
	}

	for _, id := range []int{-1, 4} {
		if err := g.SetBoundary(id, true); !errors.Is(err, ErrUnknownVertex) {
			t.Errorf("SetBoundary(%d) error = %v, want ErrUnknownVertex", id, err)
		}
		if err := g.SetPosition(id, 0, 0); !errors.Is(err, ErrUnknownVertex) {
			t.Errorf("SetPosition(%d) error = %v, want ErrUnknownVertex", id, err)
		}
		if _, err := g.ToggleBoundary(id); !errors.Is(err, ErrUnknownVertex) {
			t.Errorf("ToggleBoundary(%d) error = %v, want ErrUnknownVertex", id, err)
		}
	}
}

func TestResetBoundary(t *testing.T) {
	g := tetra(t)
	_ = g.SetBoundary(0, false)
	_ = g.SetBoundary(3, true)

	g.ResetBoundary()

	if got := g.BoundaryIDs(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("BoundaryIDs() after reset = %v, want [0 1 2]", got)
	}

	g.Hull = nil
	_ = g.SetBoundary(3, true)
	g.ResetBoundary()
	if !g.Vertices[3].Boundary {
		t.Error("ResetBoundary without hull should leave flags unchanged")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(g *Graph)
		wantErr error
	}{
		{
			name:   "Valid",
			mutate: func(g *Graph) {},
		},
		{
			name:    "BadEndpoint",
			mutate:  func(g *Graph) { g.Edges = append(g.Edges, Edge{From: 0, To: 9}) },
			wantErr: ErrInvalidEdgeEndpoint,
		},
		{
			name:    "SelfLoop",
			mutate:  func(g *Graph) { g.Edges = append(g.Edges, Edge{From: 2, To: 2}) },
			wantErr: ErrSelfLoop,
		},
		{
			name:    "Duplicate",
			mutate:  func(g *Graph) { g.Edges = append(g.Edges, Edge{From: 1, To: 0}) },
			wantErr: ErrDuplicateEdge,
		},
		{
			name:    "TooFewBoundary",
			mutate:  func(g *Graph) { _ = g.SetBoundary(2, false) },
			wantErr: ErrTooFewBoundary,
		},
		{
			name:    "MismatchedID",
			mutate:  func(g *Graph) { g.Vertices[1].ID = 3 },
			wantErr: ErrUnknownVertex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tetra(t)
			tt.mutate(g)
			if err := g.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEdgeHelpers(t *testing.T) {
	if e := NewEdge(5, 2); e.From != 2 || e.To != 5 {
		t.Errorf("NewEdge(5, 2) = %+v", e)
	}
	e := Edge{From: 0, To: 2}
	if !e.SharesEndpoint(Edge{From: 2, To: 3}) {
		t.Error("SharesEndpoint should be true for common vertex 2")
	}
	if e.SharesEndpoint(Edge{From: 1, To: 3}) {
		t.Error("SharesEndpoint should be false for disjoint edges")
	}
	if e.Other(0) != 2 || e.Other(2) != 0 {
		t.Error("Other returned the wrong endpoint")
	}
}

func TestAnalyze(t *testing.T) {
	g := tetra(t)
	s := g.Analyze()
	want := Stats{
		Vertices:   4,
		Edges:      6,
		Boundary:   3,
		Interior:   1,
		MinDegree:  3,
		MaxDegree:  3,
		Components: 1,
	}
	if s != want {
		t.Errorf("Analyze() = %+v, want %+v", s, want)
	}

	orphan, err := New(5, g.Edges)
	if err != nil {
		t.Fatal(err)
	}
	s = orphan.Analyze()
	if s.Components != 2 || s.Orphans != 1 || s.MinDegree != 0 {
		t.Errorf("Analyze() with orphan = %+v", s)
	}

	empty, _ := New(0, nil)
	if s := empty.Analyze(); s != (Stats{}) {
		t.Errorf("Analyze() on empty graph = %+v", s)
	}
}
