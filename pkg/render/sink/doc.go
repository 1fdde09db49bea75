// Package sink renders planar drawings to output formats.
//
// [RenderSVG] draws the graph exactly where its vertices sit: no layout
// is computed, the plane is only fitted into the frame by a [Viewport].
// Boundary vertices are black; interior vertices are pink while the
// drawing is planar and sky blue while it is tangled (see [VertexColor]).
//
// [RenderJSON] exports positions, velocities, boundary flags and summary
// statistics. [RenderPNG] and [RenderPDF] convert the SVG through
// rsvg-convert and so need librsvg installed.
//
// Animations should compute one viewport from the first frame and pass it
// to every frame with [WithViewport]; otherwise each frame is refitted and
// the drawing appears to zoom as it contracts.
package sink
