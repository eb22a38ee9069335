package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/config"
)

var version = "dev"

var (
	cfg      *config.Config
	jsonMode bool
	verbose  bool
)

func main() {
	if err := execute(); err != nil {
		cli.FormatError(os.Stderr, err, jsonMode)
		os.Exit(cli.ExitCode(err))
	}
}

func execute() error {
	cfg = config.Load()
	jsonMode = cfg.Defaults.JSON
	verbose = cfg.Defaults.Verbose

	root := &cobra.Command{
		Use:           "loupe",
		Short:         "Inspect messy log files as normalized entries",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&jsonMode, "json", jsonMode, "print machine-readable JSON instead of text")
	root.PersistentFlags().BoolVar(&verbose, "verbose", verbose, "print read diagnostics to stderr")

	root.AddCommand(newViewCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newSearchCmd())
	root.AddCommand(newLocateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newRecentCmd())
	root.AddCommand(newCompletionCmd())

	return root.Execute()
}
