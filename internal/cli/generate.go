package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tutte/pkg/pipeline"
)

// generateCommand creates the generate command, which writes a scrambled
// graph without relaxing it.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags  optionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random planar graph with a scrambled drawing",
		Long: `Generate a random planar graph.

Points are sampled in a square, triangulated and their convex hull becomes
the boundary. The vertices are then moved to fresh random positions, so the
drawing is usually tangled. Use 'embed' to relax it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	flags.addGenerateFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string) error {
	runner := c.newRunner()
	prog := newProgress(c.Logger)

	g, seed, err := runner.Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	prog.done("generated graph", "vertices", g.Len(), "seed", seed)

	artifacts, err := runner.Render(ctx, g, opts, pipeline.RenderInfo{Seed: seed})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	printSuccess("Generated graph")
	printStats(g.Analyze(), seed)
	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		output:    output,
	}); err != nil {
		return err
	}
	printNextStep("Relax it", fmt.Sprintf("%s embed -n %d --seed %d", appName, opts.Nodes, seed))
	return nil
}
