package sink

import "github.com/matzehuels/tutte/pkg/core/planar"

// Display colors. Boundary vertices are always drawn in ColorBoundary;
// interior vertices switch between ColorPlanar and ColorTangled with the
// planarity of the whole drawing.
const (
	ColorBoundary = "black"
	ColorPlanar   = "pink"
	ColorTangled  = "skyblue"
	ColorEdge     = "#888888"
)

// VertexColor returns the fill color for v given the drawing's planarity.
func VertexColor(v planar.Vertex, isPlanar bool) string {
	switch {
	case v.Boundary:
		return ColorBoundary
	case isPlanar:
		return ColorPlanar
	default:
		return ColorTangled
	}
}
