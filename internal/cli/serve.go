package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tutte/pkg/pipeline"
	"github.com/matzehuels/tutte/pkg/server"
)

// serveCommand creates the serve command, which exposes one interactive
// embedding over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags  optionFlags
		listen string
		empty  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an interactive embedding over HTTP",
		Long: `Serve one graph and its animation over HTTP.

Clients can generate graphs, start and stop the relaxation, drag vertices
and change the boundary while it runs. The generation flags set the
defaults for POST /graph; unless --empty is given a graph is generated at
startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts, listen, empty)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", server.DefaultListenAddr, "address to listen on")
	cmd.Flags().BoolVar(&empty, "empty", false, "start without a graph")
	flags.addGenerateFlags(cmd.Flags())
	flags.addRelaxFlags(cmd.Flags())
	flags.addAnimateFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, listen string, empty bool) error {
	logger := loggerFromContext(ctx)

	svc, err := server.New(server.Config{
		ListenAddr: listen,
		Options:    opts,
		Cache:      c.cache,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if !empty {
		g, seed, err := c.newRunner().Generate(ctx, opts)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}
		revision := svc.Load(g, seed)
		printInfo("Loaded %d vertices (seed %d)", g.Len(), seed)
		printKeyValue("revision", revision)
	}

	printKeyValue("listening", StyleHighlight.Render(listen))
	printDetail("press ctrl+c to stop")
	return svc.Run(ctx)
}
