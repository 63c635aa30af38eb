package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Pack flags complete
// their closed value sets (shapes, colors, strategies).
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for stickypack.

Bash:
  $ source <(stickypack completion bash)

Zsh:
  $ stickypack completion zsh > "${fpath[1]}/_stickypack"

Fish:
  $ stickypack completion fish > ~/.config/fish/completions/stickypack.fish

PowerShell:
  PS> stickypack completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
