package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for addonscope.

To load completions:

Bash:
  $ source <(addonscope completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ addonscope completion bash > /etc/bash_completion.d/addonscope
  # macOS:
  $ addonscope completion bash > $(brew --prefix)/etc/bash_completion.d/addonscope

Zsh:
  $ addonscope completion zsh > "${fpath[1]}/_addonscope"

Fish:
  $ addonscope completion fish | source

  # To load completions for each session, execute once:
  $ addonscope completion fish > ~/.config/fish/completions/addonscope.fish

PowerShell:
  PS> addonscope completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
