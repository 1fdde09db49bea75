package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/tutte/pkg/core/relax"
	"github.com/matzehuels/tutte/pkg/pipeline"
)

// optionFlag binds one command-line flag to one [pipeline.Options] field.
// Flags are parsed into a scratch Options and copied over the config file
// values only when the user set them, so the precedence is
// flag > config file > default.
type optionFlag struct {
	name  string
	apply func(dst, src *pipeline.Options)
}

// optionFlags collects the flags registered on one command.
type optionFlags struct {
	opts    pipeline.Options
	formats string
	bound   []optionFlag
}

func (f *optionFlags) bind(name string, apply func(dst, src *pipeline.Options)) {
	f.bound = append(f.bound, optionFlag{name: name, apply: apply})
}

// addGenerateFlags registers the graph generation flags.
func (f *optionFlags) addGenerateFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&f.opts.Nodes, "nodes", "n", pipeline.DefaultNodes, "number of vertices")
	fs.Uint64Var(&f.opts.Seed, "seed", pipeline.DefaultSeed, "random seed")
	fs.BoolVar(&f.opts.RandomSeed, "random", false, "derive the seed from the clock")
	fs.Float64Var(&f.opts.Radius, "radius", pipeline.DefaultRadius, "half-width of the sampling square")

	f.bind("nodes", func(d, s *pipeline.Options) { d.Nodes = s.Nodes })
	f.bind("seed", func(d, s *pipeline.Options) { d.Seed = s.Seed })
	f.bind("random", func(d, s *pipeline.Options) { d.RandomSeed = s.RandomSeed })
	f.bind("radius", func(d, s *pipeline.Options) { d.Radius = s.Radius })
}

// addRelaxFlags registers the relaxation engine flags.
func (f *optionFlags) addRelaxFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&f.opts.Momentum, "momentum", relax.DefaultMomentum, "velocity smoothing factor in [0, 1)")
	fs.Float64Var(&f.opts.Gain, "gain", relax.DefaultGain, "pull toward the neighbor centroid in (0, 1]")
	fs.Float64Var(&f.opts.Threshold, "threshold", relax.DefaultThreshold, "convergence threshold on the largest displacement")

	f.bind("momentum", func(d, s *pipeline.Options) { d.Momentum = s.Momentum })
	f.bind("gain", func(d, s *pipeline.Options) { d.Gain = s.Gain })
	f.bind("threshold", func(d, s *pipeline.Options) { d.Threshold = s.Threshold })
}

// addAnimateFlags registers the scheduler flags.
func (f *optionFlags) addAnimateFlags(fs *pflag.FlagSet) {
	fs.DurationVar(&f.opts.Period, "period", 0, "time between ticks (default 50ms)")
	fs.IntVar(&f.opts.CheckEvery, "check-every", 1, "re-check planarity every N ticks")
	fs.IntVar(&f.opts.MaxTicks, "max-ticks", 0, "stop after N ticks (0 = until converged)")

	f.bind("period", func(d, s *pipeline.Options) { d.Period = s.Period })
	f.bind("check-every", func(d, s *pipeline.Options) { d.CheckEvery = s.CheckEvery })
	f.bind("max-ticks", func(d, s *pipeline.Options) { d.MaxTicks = s.MaxTicks })
}

// addRenderFlags registers the output flags.
func (f *optionFlags) addRenderFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), json, dot, png, pdf (comma-separated)")
	fs.StringVar(&f.opts.Renderer, "renderer", pipeline.DefaultRenderer, "drawing renderer: native, graphviz")
	fs.Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "frame width in pixels")
	fs.Float64Var(&f.opts.Height, "height", pipeline.DefaultHeight, "frame height in pixels")
	fs.BoolVar(&f.opts.Labels, "labels", false, "print vertex IDs")

	f.bind("format", func(d, s *pipeline.Options) { d.Formats = s.Formats })
	f.bind("renderer", func(d, s *pipeline.Options) { d.Renderer = s.Renderer })
	f.bind("width", func(d, s *pipeline.Options) { d.Width = s.Width })
	f.bind("height", func(d, s *pipeline.Options) { d.Height = s.Height })
	f.bind("labels", func(d, s *pipeline.Options) { d.Labels = s.Labels })
}

// resolve loads the config file, if any, applies the flags the user set,
// then validates the result.
func (c *CLI) resolve(cmd *cobra.Command, f *optionFlags) (pipeline.Options, error) {
	var opts pipeline.Options
	if c.configPath != "" {
		loaded, err := pipeline.Load(c.configPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts = loaded
		c.Logger.Debug("loaded config", "path", c.configPath)
	}

	f.opts.Formats = parseFormats(f.formats)
	for _, b := range f.bound {
		if cmd.Flags().Changed(b.name) {
			b.apply(&opts, &f.opts)
		}
	}

	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
