package geom

import (
	"cmp"

	"github.com/fogleman/delaunay"
	"gonum.org/v1/gonum/spatial/r2"
)

// Triangle holds three point indices in counter-clockwise order.
type Triangle [3]int

// Triangulation is the result of [Delaunay].
type Triangulation struct {
	// Triangles lists every triangle as indices into the input points.
	Triangles []Triangle

	// Hull is the outer face cycle in counter-clockwise order, starting from
	// the lowest-leftmost point. Points lying on a hull edge are part of it.
	Hull []int

	// Skipped lists the indices of points used by no triangle, in practice
	// points that coincide with another one. They end up without incident
	// edges.
	Skipped []int
}

// Edges returns the three undirected edges of every triangle, in triangle
// order. Shared edges appear once per incident triangle; callers
// de-duplicate.
func (t Triangulation) Edges() [][2]int {
	edges := make([][2]int, 0, 3*len(t.Triangles))
	for _, tri := range t.Triangles {
		a, b, c := tri[0], tri[1], tri[2]
		edges = append(edges, [2]int{a, b}, [2]int{b, c}, [2]int{c, a})
	}
	return edges
}

// Delaunay triangulates pts with the sweep-hull algorithm of
// github.com/fogleman/delaunay. Fewer than three points, or a set without
// three non-collinear distinct points, yield an empty triangulation.
func Delaunay(pts []r2.Vec) Triangulation {
	var out Triangulation
	if len(pts) < 3 {
		return out
	}

	in := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		in[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	res, err := delaunay.Triangulate(in)
	if err != nil || len(res.Triangles) == 0 {
		return out
	}

	used := make([]bool, len(pts))
	out.Triangles = make([]Triangle, 0, len(res.Triangles)/3)
	for k := 0; k+2 < len(res.Triangles); k += 3 {
		a, b, c := res.Triangles[k], res.Triangles[k+1], res.Triangles[k+2]
		if TriArea(pts[a], pts[b], pts[c]) < 0 {
			b, c = c, b
		}
		out.Triangles = append(out.Triangles, Triangle{a, b, c})
		used[a], used[b], used[c] = true, true, true
	}
	for i, ok := range used {
		if !ok {
			out.Skipped = append(out.Skipped, i)
		}
	}
	out.Hull = hullCycle(pts, out.Triangles)
	return out
}

// hullCycle walks the directed edges that have no reverse twin. With every
// triangle counter-clockwise these run counter-clockwise around the outer
// face.
func hullCycle(pts []r2.Vec, tris []Triangle) []int {
	type dir struct{ a, b int }
	inner := make(map[dir]bool, 3*len(tris))
	for _, t := range tris {
		for j := range 3 {
			inner[dir{t[j], t[(j+1)%3]}] = true
		}
	}
	next := make(map[int]int)
	for d := range inner {
		if !inner[dir{d.b, d.a}] {
			next[d.a] = d.b
		}
	}
	if len(next) == 0 {
		return nil
	}

	start := -1
	for i := range next {
		if start < 0 || lowerLeft(pts[i], pts[start]) < 0 {
			start = i
		}
	}
	hull := []int{start}
	for v := next[start]; v != start && len(hull) <= len(next); v = next[v] {
		hull = append(hull, v)
	}
	return hull
}

// lowerLeft orders points by Y, then X.
func lowerLeft(p, q r2.Vec) int {
	if c := cmp.Compare(p.Y, q.Y); c != 0 {
		return c
	}
	return cmp.Compare(p.X, q.X)
}
