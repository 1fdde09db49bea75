// Package render holds the output side of tutte: format conversion shared
// by the renderers, plus two renderer subpackages.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). [Available] reports whether
// the tool is installed.
//
//	svg := sink.RenderSVG(g)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Renderers
//
//   - [sink]: native SVG and JSON output of a drawing in place, with the
//     black/pink/sky-blue display colors
//   - [nodelink]: DOT output with pinned positions, rendered by Graphviz
//
// [sink]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/render/sink
// [nodelink]: https://pkg.go.dev/github.com/matzehuels/tutte/pkg/render/nodelink
package render
