package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for cdgpath.

  bash:       source <(cdgpath completion bash)
  zsh:        cdgpath completion zsh > "${fpath[1]}/_cdgpath"
  fish:       cdgpath completion fish | source
  powershell: cdgpath completion powershell | Out-String | Invoke-Expression

Graph arguments complete to .json and .toml files.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
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
			}
			return nil
		},
	}
}

// completeGraphFiles completes the graph argument to graph files.
func completeGraphFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() != "cover" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"json", "toml"}, cobra.ShellCompDirectiveFilterFileExt
}
