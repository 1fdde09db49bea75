package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// completionShells lists the shells cobra can generate completions for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate shell completion scripts for %[1]s.

Load completions for the current shell session:

  bash:        source <(%[1]s completion bash)
  zsh:         source <(%[1]s completion zsh)
  fish:        %[1]s completion fish | source
  powershell:  %[1]s completion powershell | Out-String | Invoke-Expression

To load them for every session, write the script to your shell's
completion directory instead.
`, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
