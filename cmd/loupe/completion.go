package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for loupe.

To load completions:

Bash:
  $ source <(loupe completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ loupe completion bash > /etc/bash_completion.d/loupe
  # macOS:
  $ loupe completion bash > $(brew --prefix)/etc/bash_completion.d/loupe

Zsh:
  $ source <(loupe completion zsh)
  # To load completions for each session, execute once:
  $ loupe completion zsh > "${fpath[1]}/_loupe"

Fish:
  $ loupe completion fish | source
  # To load completions for each session, execute once:
  $ loupe completion fish > ~/.config/fish/completions/loupe.fish
`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			}
			return nil
		},
	}

	return cmd
}
