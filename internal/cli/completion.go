package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for collapsr.

To load completions:

Bash:
  $ source <(collapsr completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ collapsr completion bash > /etc/bash_completion.d/collapsr
  # macOS:
  $ collapsr completion bash > $(brew --prefix)/etc/bash_completion.d/collapsr

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ collapsr completion zsh > "${fpath[1]}/_collapsr"

Fish:
  $ collapsr completion fish | source

  # To load completions for each session, execute once:
  $ collapsr completion fish > ~/.config/fish/completions/collapsr.fish

PowerShell:
  PS> collapsr completion powershell | Out-String | Invoke-Expression
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
}
