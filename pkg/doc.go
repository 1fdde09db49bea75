// Package pkg provides the core libraries for tutte, which draws random
// planar graphs by Tutte's barycentric relaxation.
//
// # Overview
//
// A random point set is triangulated and its convex hull becomes the fixed
// boundary. The drawing is then scrambled, and every interior vertex is
// pulled toward the centroid of its neighbors until the largest step is
// negligible. With a convex boundary the result is a planar straight-line
// drawing. The pkg directory is organized into these areas:
//
//  1. [core] - Domain logic (graph, geometry, generation, relaxation,
//     planarity, animation)
//  2. [render] - Output formats (SVG, JSON, DOT, PNG, PDF)
//  3. [pipeline] - Orchestration (generate → embed → render)
//  4. [server] - HTTP API around one animated graph
//  5. [cache] - Artifact cache (file, Redis)
//
// # Architecture
//
// The typical data flow:
//
//	    [core/generate] (sample, triangulate, mark hull, scramble)
//	         ↓
//	    [core/relax] (damped Jacobi steps)  ← [core/animate] drives it on a timer
//	         ↓
//	    [core/planarity] (pairwise segment crossing test)
//	         ↓
//	    [render/sink], [render/nodelink] (SVG/JSON/DOT/PNG/PDF)
//
// # Quick Start
//
// Generate a graph, relax it and render it:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/tutte/pkg/pipeline"
//	)
//
//	result, err := pipeline.NewRunner(nil).Execute(context.Background(), pipeline.Options{
//	    Nodes:   50,
//	    Seed:    7,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("tutte.svg", result.Artifacts[pipeline.FormatSVG], 0o644)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/planar] - The graph: ordered vertices with position, velocity and
// boundary flag, a fixed normalized edge set and the generator's hull.
//
// [core/geom] - Orientation predicates and the Delaunay triangulation with
// its hull cycle.
//
// [core/generate] - Random planar graph generation from a seed.
//
// [core/relax] - One relaxation step with momentum and gain; reports the
// largest displacement.
//
// [core/planarity] - Straight-line planarity check and crossing counts.
//
// [core/animate] - Idle/Running scheduler that ticks the relaxation on a
// clock and accepts edits between ticks.
//
// ## Visualization
//
// [render/sink] - Native SVG and JSON output, PNG/PDF through rsvg-convert.
//
// [render/nodelink] - DOT with pinned positions and Graphviz rendering.
//
// [render] - Format conversion utilities (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Options, TOML config loading and the headless runner used by
// the CLI and the server.
//
// [server] - chi-based HTTP service for generating, animating and editing a
// graph.
//
// [cache] - Cache for rendered artifacts keyed by drawing and settings.
//
// [errors] - Coded errors shared by all packages.
//
// [observability] - Hooks for generation, relaxation and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/core/relax/...         # Specific package
//	go test -run Example                 # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core
// [core/planar]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core/planar
// [core/geom]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core/geom
// [core/generate]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core/generate
// [core/relax]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core/relax
// [core/planarity]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core/planarity
// [core/animate]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/core/animate
// [render]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/observability
package pkg
