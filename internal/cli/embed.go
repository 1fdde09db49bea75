package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tutte/pkg/pipeline"
)

// embedCommand creates the embed command, which runs the whole pipeline
// headless.
func (c *CLI) embedCommand() *cobra.Command {
	var (
		flags    optionFlags
		output   string
		maxSteps int
	)

	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Generate a graph and relax it into a planar drawing",
		Long: `Generate a random planar graph and relax its interior vertices until
the largest step falls below the threshold, then write the drawing.

Interior vertices are drawn pink when the final drawing is planar and sky
blue when edges still cross; boundary vertices are black.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolve(cmd, &flags)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-steps") {
				opts.MaxSteps = maxSteps
			}
			return c.runEmbed(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", pipeline.DefaultMaxSteps, "give up after N relaxation steps")
	flags.addGenerateFlags(cmd.Flags())
	flags.addRelaxFlags(cmd.Flags())
	flags.addRenderFlags(cmd.Flags())

	return cmd
}

func (c *CLI) runEmbed(ctx context.Context, opts pipeline.Options, output string) error {
	runner := c.newRunner()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Relaxing %d vertices...", opts.Nodes))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning("Interrupted")
			return ctx.Err()
		}
		spinner.StopWithError("Embedding failed")
		return fmt.Errorf("embed: %w", err)
	}
	spinner.Stop()

	emb := result.Embedding
	switch {
	case emb.Converged && emb.Planar:
		printSuccess("Converged to a planar drawing in %s steps", StyleNumber.Render(fmt.Sprint(emb.Steps)))
	case emb.Converged:
		printWarning("Converged in %d steps with %d crossings left", emb.Steps, emb.Crossings)
	default:
		printWarning("Stopped after %d steps (largest step %.2g)", emb.Steps, emb.MaxDisplacement)
	}
	printStats(result.Graph.Analyze(), result.Seed)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    output,
	})
}
