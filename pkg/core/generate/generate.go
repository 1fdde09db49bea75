package generate

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/tutte/pkg/core/geom"
	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/errors"
	"github.com/matzehuels/tutte/pkg/observability"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultRadius is the half side length of the sampling square.
const DefaultRadius = 500.0

// Options configures [Generate].
type Options struct {
	// Radius is the half side length of the square [-Radius, Radius]² that
	// points are sampled from. Zero means [DefaultRadius].
	Radius float64

	// Seed seeds the PCG source. Zero picks a time-based seed; use
	// [ResolveSeed] beforehand to learn which one.
	Seed uint64

	// Rand overrides the random source entirely. Seed is ignored when set.
	Rand *rand.Rand
}

// ResolveSeed returns seed, or a time-based seed when seed is zero.
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// Generate builds a random planar graph with n vertices.
//
// Points are sampled uniformly in the square, triangulated (Delaunay) and
// their convex hull is marked as the boundary. The positions are then
// re-sampled in the same square, so the returned drawing is scrambled:
// only the topology and the boundary marking survive. Velocities are zero.
//
// n below [errors.MinVertices] fails with ErrCodeInvalidVertexCount and no
// graph. Coincident sample points are left out of the triangulation; the
// result is still returned, with those vertices isolated.
func Generate(ctx context.Context, n int, opts Options) (*planar.Graph, error) {
	start := time.Now()
	if opts.Rand == nil {
		opts.Seed = ResolveSeed(opts.Seed)
	}
	g, err := generate(n, &opts)
	observability.Embedding().OnGenerate(ctx, n, edgeCount(g), opts.Seed, time.Since(start), err)
	return g, err
}

func generate(n int, opts *Options) (*planar.Graph, error) {
	if err := errors.ValidateVertexCount(n); err != nil {
		return nil, err
	}
	if opts.Radius < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "radius must be positive, got %g", opts.Radius)
	}
	if opts.Radius == 0 {
		opts.Radius = DefaultRadius
	}
	rng := opts.Rand
	if rng == nil {
		seed := ResolveSeed(opts.Seed)
		rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}

	// The first sample only fixes the topology.
	pts := sample(rng, n, opts.Radius)
	tri := geom.Delaunay(pts)

	edges := make([]planar.Edge, 0, 3*len(tri.Triangles))
	for _, e := range tri.Edges() {
		edges = append(edges, planar.NewEdge(e[0], e[1]))
	}
	g, err := planar.New(n, edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build graph")
	}

	g.Hull = tri.Hull
	g.ResetBoundary()
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "triangulate %d points", n)
	}

	for i, p := range sample(rng, n, opts.Radius) {
		g.Vertices[i].Pos = p
	}
	return g, nil
}

func sample(rng *rand.Rand, n int, radius float64) []r2.Vec {
	pts := make([]r2.Vec, n)
	for i := range pts {
		pts[i] = r2.Vec{
			X: (rng.Float64()*2 - 1) * radius,
			Y: (rng.Float64()*2 - 1) * radius,
		}
	}
	return pts
}

func edgeCount(g *planar.Graph) int {
	if g == nil {
		return 0
	}
	return len(g.Edges)
}
