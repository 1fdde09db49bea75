// Package pipeline provides the headless generate → embed → render pipeline
// for tutte, and the option set shared by the CLI, the server and the
// animation.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: Sample a random planar graph and scramble its drawing
//  2. Embed: Relax the interior vertices until the drawing settles
//  3. Render: Generate output in various formats (SVG, JSON, DOT, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Nodes:   50,
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// # Configuration Files
//
// [Load] reads [Options] from TOML. Keys use snake_case and durations are
// strings:
//
//	nodes = 40
//	seed = 7
//	period = "20ms"
//	formats = ["svg", "dot"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"

	"github.com/matzehuels/tutte/pkg/core/animate"
	"github.com/matzehuels/tutte/pkg/core/generate"
	"github.com/matzehuels/tutte/pkg/core/planar"
	"github.com/matzehuels/tutte/pkg/core/relax"
	"github.com/matzehuels/tutte/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and TUI
// =============================================================================

const (
	// DefaultNodes is the vertex count of a generated graph.
	DefaultNodes = 15

	// DefaultRadius is the half-width of the sampling square.
	DefaultRadius = generate.DefaultRadius

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultMaxSteps bounds a headless embedding. Damped iteration on a
	// few thousand vertices settles well within this.
	DefaultMaxSteps = 10000

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultRenderer is the default renderer for drawing formats.
	DefaultRenderer = RendererNative
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Renderer constants. The native renderer draws SVG directly; graphviz
// writes DOT with pinned positions and lets neato draw it.
const (
	RendererNative   = "native"
	RendererGraphviz = "graphviz"
)

// SupportedFormats lists the accepted output formats in display order.
var SupportedFormats = []string{FormatSVG, FormatJSON, FormatDOT, FormatPNG, FormatPDF}

// SupportedRenderers lists the accepted renderers.
var SupportedRenderers = []string{RendererNative, RendererGraphviz}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for generating, embedding, animating
// and rendering a graph. Zero values select the defaults above.
// This struct supports TOML (config files) and JSON (API requests).
type Options struct {
	// Generate options
	Nodes      int     `toml:"nodes" json:"nodes,omitempty"`
	Radius     float64 `toml:"radius" json:"radius,omitempty"`
	Seed       uint64  `toml:"seed" json:"seed,omitempty"`
	RandomSeed bool    `toml:"random_seed" json:"random_seed,omitempty"` // Derive the seed from the clock, ignoring Seed

	// Relaxation options
	Momentum  float64 `toml:"momentum" json:"momentum,omitempty"`
	Gain      float64 `toml:"gain" json:"gain,omitempty"`
	Threshold float64 `toml:"threshold" json:"threshold,omitempty"`
	MaxSteps  int     `toml:"max_steps" json:"max_steps,omitempty"` // Headless runs only

	// Animation options
	Period     time.Duration `toml:"period" json:"period,omitempty"`
	CheckEvery int           `toml:"check_every" json:"check_every,omitempty"`
	MaxTicks   int           `toml:"max_ticks" json:"max_ticks,omitempty"`

	// Render options
	Formats  []string `toml:"formats" json:"formats,omitempty"`
	Renderer string   `toml:"renderer" json:"renderer,omitempty"`
	Width    float64  `toml:"width" json:"width,omitempty"`
	Height   float64  `toml:"height" json:"height,omitempty"`
	Labels   bool     `toml:"labels" json:"labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the embedded graph.
	Graph *planar.Graph

	// Seed is the seed the graph was generated from.
	Seed uint64

	// Embedding reports how the relaxation ended.
	Embedding Embedding

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Embedding reports the outcome of relaxing a graph.
type Embedding struct {
	Steps           int
	MaxDisplacement float64
	Converged       bool
	Planar          bool
	Crossings       int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount   int
	EdgeCount     int
	BoundaryCount int
	GenerateTime  time.Duration
	EmbedTime     time.Duration
	RenderTime    time.Duration
}

// =============================================================================
// Loading
// =============================================================================

// Load reads options from a TOML file. Unknown keys are rejected so typos
// do not silently fall back to defaults. The result is not yet validated.
func Load(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "load %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every field, reporting
// all invalid fields at once.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	var err error
	if verr := errors.ValidateVertexCount(o.Nodes); verr != nil {
		err = multierror.Append(err, verr)
	}
	if o.Radius <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for radius, must be > 0"))
	}
	if o.Momentum < 0 || o.Momentum >= 1 {
		err = multierror.Append(err, fmt.Errorf("invalid value for momentum, must be in (0, 1)"))
	}
	if o.Gain <= 0 || o.Gain > 1 {
		err = multierror.Append(err, fmt.Errorf("invalid value for gain, must be in (0, 1]"))
	}
	if o.Threshold <= 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for threshold, must be > 0"))
	}
	if o.MaxSteps < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for max_steps, must be >= 0"))
	}
	if o.Period < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for period, must be > 0"))
	}
	if o.CheckEvery < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for check_every, must be > 0"))
	}
	if o.MaxTicks < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid value for max_ticks, must be >= 0"))
	}
	if o.Width < 0 || o.Height < 0 {
		err = multierror.Append(err, fmt.Errorf("invalid frame size %vx%v", o.Width, o.Height))
	}
	for _, f := range o.Formats {
		if ferr := errors.ValidateFormat(f, SupportedFormats...); ferr != nil {
			err = multierror.Append(err, ferr)
		}
	}
	if !slices.Contains(SupportedRenderers, o.Renderer) {
		err = multierror.Append(err, fmt.Errorf("invalid renderer: %q (must be one of: %s)",
			o.Renderer, strings.Join(SupportedRenderers, ", ")))
	}

	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	o.validated = true
	return nil
}

// SetDefaults fills every zero field with its default.
func (o *Options) SetDefaults() {
	if o.Nodes == 0 {
		o.Nodes = DefaultNodes
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Momentum == 0 {
		o.Momentum = relax.DefaultMomentum
	}
	if o.Gain == 0 {
		o.Gain = relax.DefaultGain
	}
	if o.Threshold == 0 {
		o.Threshold = relax.DefaultThreshold
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Period == 0 {
		o.Period = animate.DefaultPeriod
	}
	if o.CheckEvery == 0 {
		o.CheckEvery = 1
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// GenerateOptions returns the generator options. With RandomSeed set the
// seed is left zero, which the generator resolves from the clock.
func (o *Options) GenerateOptions() generate.Options {
	seed := o.Seed
	if o.RandomSeed {
		seed = 0
	}
	return generate.Options{Radius: o.Radius, Seed: seed}
}

// RelaxOptions returns the relaxation engine options.
func (o *Options) RelaxOptions() relax.Options {
	return relax.Options{Momentum: o.Momentum, Gain: o.Gain, Threshold: o.Threshold}
}

// AnimateConfig returns a scheduler configuration. The clock is left unset
// so the scheduler uses the wall clock.
func (o *Options) AnimateConfig() animate.Config {
	return animate.Config{
		Period:     o.Period,
		Relax:      o.RelaxOptions(),
		CheckEvery: o.CheckEvery,
		MaxTicks:   o.MaxTicks,
		Logger:     o.Logger,
	}
}

// Wants reports whether format was requested.
func (o *Options) Wants(format string) bool {
	return slices.Contains(o.Formats, format)
}
