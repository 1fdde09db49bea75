package pipeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/matzehuels/tutte/pkg/cache"
	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/render/nodelink"
	"github.com/matzehuels/tutte/pkg/render/sink"
)

// RenderInfo carries run metadata recorded in the JSON output.
type RenderInfo struct {
	Seed      uint64
	Revision  string
	Embedding Embedding
}

// Render generates output artifacts in the requested formats.
// SVG, PNG and PDF come from the configured renderer; JSON and DOT are the
// same for both renderers.
func Render(g *planar.Graph, opts Options, info RenderInfo) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Renderer == RendererGraphviz {
		return renderGraphviz(g, opts, info)
	}
	return renderNative(g, opts, info)
}

// cacheableFormats are the formats whose bytes depend only on the drawing
// and the render settings. JSON also records run metadata, so it is
// always rendered fresh.
var cacheableFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatDOT}

// Render is [Render] with the runner's artifact cache in front of it.
// Cache failures are logged and fall back to rendering.
func (r *Runner) Render(ctx context.Context, g *planar.Graph, opts Options, info RenderInfo) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if r.Cache == nil {
		return Render(g, opts, info)
	}

	graphHash := cache.GraphHash(g)
	keyFor := func(format string) string {
		return cache.ArtifactKey(graphHash, artifactKeyOpts(format, opts, info))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !slices.Contains(cacheableFormats, format) {
			missing = append(missing, format)
			continue
		}
		data, hit, err := r.Cache.Get(ctx, keyFor(format))
		if err != nil {
			r.Logger.Warn("artifact cache read failed", "format", format, "error", err)
		}
		if hit {
			r.Logger.Debug("artifact cache hit", "format", format)
			artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(g, sub, info)
	if err != nil {
		return nil, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		if !slices.Contains(cacheableFormats, format) {
			continue
		}
		if err := r.Cache.Set(ctx, keyFor(format), data, r.CacheTTL); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "error", err)
		}
	}
	return artifacts, nil
}

func artifactKeyOpts(format string, opts Options, info RenderInfo) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Renderer: opts.Renderer,
		Width:    opts.Width,
		Height:   opts.Height,
		Labels:   opts.Labels,
	}
	if info.Embedding.Steps > 0 {
		k.Planar = &info.Embedding.Planar
	}
	return k
}

// renderNative draws with the built-in SVG renderer.
func renderNative(g *planar.Graph, opts Options, info RenderInfo) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts, info)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(g, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(g, sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(g, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = renderJSON(g, info)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(g, nodelink.Options{Labels: opts.Labels}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderGraphviz generates DOT once and lets Graphviz draw every image
// format from it.
func renderGraphviz(g *planar.Graph, opts Options, info RenderInfo) (map[string][]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Labels: opts.Labels})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, 2.0)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			data, err = renderJSON(g, info)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options, info RenderInfo) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithSize(opts.Width, opts.Height)}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if info.Embedding.Steps > 0 {
		svgOpts = append(svgOpts, sink.WithPlanar(info.Embedding.Planar))
	}
	return svgOpts
}

func renderJSON(g *planar.Graph, info RenderInfo) ([]byte, error) {
	jsonOpts := []sink.JSONOption{
		sink.WithJSONSeed(info.Seed),
		sink.WithJSONRevision(info.Revision),
		sink.WithJSONIndent(),
	}
	if info.Embedding.Steps > 0 {
		jsonOpts = append(jsonOpts,
			sink.WithJSONPlanar(info.Embedding.Planar),
			sink.WithJSONRun(info.Embedding.Steps, info.Embedding.Converged))
	}
	return sink.RenderJSON(g, jsonOpts...)
}
