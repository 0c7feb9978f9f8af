package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pielabel/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pielabel.

To load completions:

Bash:
  $ source <(pielabel completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pielabel completion bash > /etc/bash_completion.d/pielabel
  # macOS:
  $ pielabel completion bash > $(brew --prefix)/etc/bash_completion.d/pielabel

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ pielabel completion zsh > "${fpath[1]}/_pielabel"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ pielabel completion fish | source

  # To load completions for each session, execute once:
  $ pielabel completion fish > ~/.config/fish/completions/pielabel.fish

PowerShell:
  PS> pielabel completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> pielabel completion powershell > pielabel.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// chartExtensions are the chart document formats chart.Load understands.
var chartExtensions = []string{"json", "toml"}

// completeChartFile offers chart documents for the single positional
// argument of render and hit.
func completeChartFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return chartExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes comma-separated --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	out := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		if !strings.Contains(prefix, string(f)+",") {
			out = append(out, prefix+string(f))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
