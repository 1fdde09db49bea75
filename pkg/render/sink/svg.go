package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/planarity"
)

const (
	DefaultWidth   = 800.0
	DefaultHeight  = 800.0
	DefaultPadding = 20.0
	DefaultRadius  = 5.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	padding       float64
	radius        float64
	planar        *bool
	labels        bool
	viewport      *Viewport
}

func WithSize(w, h float64) SVGOption      { return func(r *svgRenderer) { r.width, r.height = w, h } }
func WithPadding(p float64) SVGOption      { return func(r *svgRenderer) { r.padding = p } }
func WithVertexRadius(v float64) SVGOption { return func(r *svgRenderer) { r.radius = v } }
func WithLabels() SVGOption                { return func(r *svgRenderer) { r.labels = true } }

// WithPlanar sets the planarity used for coloring instead of recomputing
// it from the drawing.
func WithPlanar(ok bool) SVGOption { return func(r *svgRenderer) { r.planar = &ok } }

// WithViewport pins the mapping from plane to frame, so successive frames
// of an animation share one coordinate system. The viewport's size
// overrides WithSize.
func WithViewport(vp Viewport) SVGOption { return func(r *svgRenderer) { r.viewport = &vp } }

// RenderSVG draws g as a straight-line drawing: edges as grey lines,
// vertices as circles in their display colors.
func RenderSVG(g *planar.Graph, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	isPlanar := false
	if r.planar != nil {
		isPlanar = *r.planar
	} else {
		isPlanar = planarity.Graph(g)
	}

	vp := Fit(g.Positions(), r.width, r.height, r.padding+r.radius)
	if r.viewport != nil {
		vp = *r.viewport
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" data-planar="%t">`+"\n",
		vp.Width, vp.Height, vp.Width, vp.Height, isPlanar)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", vp.Width, vp.Height)

	renderEdges(&buf, g, vp)
	renderVertices(&buf, g, vp, r, isPlanar)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:   DefaultWidth,
		height:  DefaultHeight,
		padding: DefaultPadding,
		radius:  DefaultRadius,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderEdges(buf *bytes.Buffer, g *planar.Graph, vp Viewport) {
	fmt.Fprintf(buf, `  <g class="edges" stroke="%s" stroke-width="1">`+"\n", ColorEdge)
	n := g.Len()
	for _, e := range g.Edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			continue
		}
		a, b := vp.Map(g.Vertices[e.From].Pos), vp.Map(g.Vertices[e.To].Pos)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", a.X, a.Y, b.X, b.Y)
	}
	buf.WriteString("  </g>\n")
}

func renderVertices(buf *bytes.Buffer, g *planar.Graph, vp Viewport, r svgRenderer, isPlanar bool) {
	buf.WriteString(`  <g class="vertices" stroke="black" stroke-width="1">` + "\n")
	for _, v := range g.Vertices {
		p := vp.Map(v.Pos)
		fmt.Fprintf(buf, `    <circle id="v-%d" cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n",
			v.ID, p.X, p.Y, r.radius, VertexColor(v, isPlanar))
	}
	buf.WriteString("  </g>\n")

	if !r.labels {
		return
	}
	buf.WriteString(`  <g class="labels" font-family="sans-serif" font-size="10" fill="#333333">` + "\n")
	for _, v := range g.Vertices {
		p := vp.Map(v.Pos)
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f">%d</text>`+"\n", p.X+r.radius+2, p.Y-r.radius-2, v.ID)
	}
	buf.WriteString("  </g>\n")
}
