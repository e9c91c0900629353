package app

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/catalog"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell autocompletion scripts",
		Long: `Generate autocompletion scripts for your shell.

Examples:
  # Bash (add to ~/.bashrc)
  source <(brpctl completion bash)

  # Zsh (add to ~/.zshrc)
  source <(brpctl completion zsh)

  # Fish
  brpctl completion fish > ~/.config/fish/completions/brpctl.fish

  # PowerShell
  brpctl completion powershell | Out-String | Invoke-Expression`,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return cmd.Help()
			}
		},
	}

	return cmd
}

// completeBooks offers catalog IDs matching the typed prefix.
func completeBooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, u := range catalog.All() {
		if strings.HasPrefix(u.ID, strings.ToLower(toComplete)) {
			out = append(out, u.ID+"\t"+u.Name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
