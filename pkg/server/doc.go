// Package server exposes one interactive embedding over HTTP.
//
// A [Service] owns a single graph and the animation scheduler driving it.
// Clients generate a graph, start and stop the relaxation, and apply the
// interactive edits (boundary toggles, drags, boundary reset) while it
// runs. Every generated graph gets a fresh revision ID, so a client can
// tell when the graph it is drawing has been replaced.
//
// Routes:
//
//	POST /graph                    generate a graph (optional JSON body: nodes, seed, radius, random_seed)
//	GET  /graph                    current graph as JSON
//	GET  /graph.svg                current drawing as SVG
//	GET  /animation                scheduler status
//	POST /animation/start          start relaxing from the current positions
//	POST /animation/stop           stop relaxing
//	PUT  /vertices/{id}/boundary   set ({"boundary": bool}) or toggle (empty body) the boundary flag
//	PUT  /vertices/{id}/position   move a vertex ({"x": .., "y": ..})
//	POST /boundary/reset           restore the convex hull as the boundary
//
// Errors are JSON objects with the error code and a message; the status
// comes from [errors.HTTPStatus].
//
// [errors.HTTPStatus]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/errors#HTTPStatus
package server
