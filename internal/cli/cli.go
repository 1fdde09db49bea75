// Package cli implements the tutte command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tutte/pkg/buildinfo"
	"github.com/matzehuels/tutte/pkg/cache"
	"github.com/matzehuels/tutte/pkg/observability"
	"github.com/matzehuels/tutte/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and default file names.
	appName = "tutte"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	cacheTarget string
	verbose     bool

	// cache is opened from cacheTarget before a command runs.
	cache cache.Cache
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tutte draws random planar graphs by barycentric relaxation",
		Long: `Tutte generates random planar graphs, scrambles their drawing and
relaxes every interior vertex toward the centroid of its neighbors until
the drawing is planar again: Tutte's spring embedding.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := newLoggingHooks(c.Logger)
				observability.SetEmbeddingHooks(hooks)
				observability.SetServerHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			store, err := cache.Open(cmd.Context(), c.cacheTarget)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			c.cache = store
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.cache == nil {
				return nil
			}
			return c.cache.Close()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML file with default options")
	root.PersistentFlags().StringVar(&c.cacheTarget, "cache", "", "cache rendered images in a directory or a redis:// URL")

	// Register all subcommands
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.embedCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	r := pipeline.NewRunner(c.Logger)
	if c.cache != nil {
		r.Cache = c.cache
	}
	return r
}
