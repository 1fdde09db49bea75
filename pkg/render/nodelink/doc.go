// Package nodelink renders planar drawings through Graphviz.
//
// # Overview
//
// [ToDOT] writes an undirected DOT graph in which every vertex carries a
// pinned position (pos="x,y!") and the display fill color. [RenderSVG]
// runs the neato engine in-process, so Graphviz draws the graph exactly
// where the relaxation left it. This is an alternative to the native
// renderer in [github.com/matzehuels/tutte/pkg/render/sink] for users who
// want to post-process the DOT source with their own Graphviz tooling.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
