package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/planarity"
	"github.com/matzehuels/tutte/pkg/render"
	"github.com/matzehuels/tutte/pkg/render/sink"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels prints vertex IDs next to the vertices.
	// When false, vertices are unlabeled dots.
	Labels bool

	// Scale multiplies plane coordinates before they are written as
	// points. Zero means 1.
	Scale float64
}

// ToDOT converts a drawing to Graphviz DOT. Every vertex is pinned at its
// current position, so neato only routes and sizes; it never moves a
// vertex. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Vertices are filled with the same colors the native renderer uses (see
// [sink.VertexColor]); planarity is recomputed from the positions.
func ToDOT(g *planar.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	isPlanar := planarity.Graph(g)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  graph [comment=\"planar=%t\"];\n", isPlanar)
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, width=0.15, color=black, fontsize=10];\n")
	fmt.Fprintf(&buf, "  edge [color=%q];\n", sink.ColorEdge)
	buf.WriteString("\n")

	for _, v := range g.Vertices {
		attrs := fmtAttrs(v, isPlanar, scale, opts.Labels)
		fmt.Fprintf(&buf, "  %d [%s];\n", v.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(v planar.Vertex, isPlanar bool, scale float64, labels bool) []string {
	attrs := []string{
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(v.Pos.X*scale), fmtCoord(v.Pos.Y*scale)),
		fmt.Sprintf("fillcolor=%q", sink.VertexColor(v, isPlanar)),
	}
	if labels {
		attrs = append(attrs, fmt.Sprintf("xlabel=\"%d\"", v.ID), "label=\"\"")
	} else {
		attrs = append(attrs, "label=\"\"")
	}
	return attrs
}

func fmtCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// honors the pinned positions written by [ToDOT].
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
