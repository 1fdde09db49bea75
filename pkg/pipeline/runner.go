package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tutte/pkg/cache"
	"github.com/matzehuels/tutte/pkg/core/generate"
	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/planarity"
	"github.com/matzehuels/tutte/pkg/core/relax"
	"github.com/matzehuels/tutte/pkg/observability"
)

// cancelCheckInterval is how many relaxation steps run between two
// context checks in [Runner.Embed].
const cancelCheckInterval = 64

// Runner encapsulates headless pipeline execution.
//
// The Runner is stateless except for the logger and the artifact cache -
// it doesn't store pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Logger *log.Logger

	// Cache holds rendered artifacts keyed by drawing and render
	// settings. NewRunner installs a cache that stores nothing.
	Cache cache.Cache

	// CacheTTL is the lifetime of cached artifacts. Zero keeps them
	// until the backend evicts them.
	CacheTTL time.Duration
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Cache: cache.NewNullCache()}
}

// Execute runs the complete generate → embed → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	generateStart := time.Now()
	g, seed, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Graph = g
	result.Seed = seed
	result.Stats.GenerateTime = time.Since(generateStart)
	result.Stats.VertexCount = g.Len()
	result.Stats.EdgeCount = len(g.Edges)
	result.Stats.BoundaryCount = len(g.BoundaryIDs())

	r.Logger.Info("generated graph",
		"vertices", g.Len(),
		"edges", len(g.Edges),
		"boundary", result.Stats.BoundaryCount,
		"seed", seed,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Embed
	embedStart := time.Now()
	emb, err := r.Embed(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	result.Embedding = emb
	result.Stats.EmbedTime = time.Since(embedStart)

	r.Logger.Info("relaxed drawing",
		"steps", emb.Steps,
		"converged", emb.Converged,
		"planar", emb.Planar,
		"crossings", emb.Crossings,
		"duration", result.Stats.EmbedTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, opts, RenderInfo{Seed: seed, Embedding: emb})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate samples a graph and returns it with the seed it came from.
func (r *Runner) Generate(ctx context.Context, opts Options) (*planar.Graph, uint64, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	gopts := opts.GenerateOptions()
	gopts.Seed = generate.ResolveSeed(gopts.Seed)

	g, err := generate.Generate(ctx, opts.Nodes, gopts)
	if err != nil {
		return nil, 0, err
	}
	return g, gopts.Seed, nil
}

// Embed relaxes g in place until the step displacement drops below the
// threshold or MaxSteps steps have run, then verifies the drawing.
// It returns ctx's error if ctx is cancelled first; g is left as far as it
// got.
func (r *Runner) Embed(ctx context.Context, g *planar.Graph, opts Options) (Embedding, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Embedding{}, err
	}
	start := time.Now()
	engine := relax.New(opts.RelaxOptions())

	var emb Embedding
	for emb.Steps < opts.MaxSteps {
		if emb.Steps%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				observability.Embedding().OnStop(ctx, emb.Steps, err.Error())
				return emb, err
			}
		}
		emb.MaxDisplacement = engine.Step(g)
		emb.Steps++
		if engine.Converged(emb.MaxDisplacement) {
			emb.Converged = true
			break
		}
	}

	emb.Crossings = planarity.CountCrossings(g.Positions(), g.Edges)
	emb.Planar = emb.Crossings == 0

	if emb.Converged {
		observability.Embedding().OnConverged(ctx, emb.Steps, emb.Planar, time.Since(start))
	} else {
		r.Logger.Warn("relaxation did not converge",
			"steps", emb.Steps,
			"max_displacement", emb.MaxDisplacement)
		observability.Embedding().OnStop(ctx, emb.Steps, "step limit reached")
	}
	return emb, nil
}
