package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/parse"
	"github.com/loupeview/loupe/internal/view"
)

func newInspectCmd() *cobra.Command {
	var (
		maxLines int
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a log file without printing its entries",
		Long: `Summarize a log file: entry and line counts, level distribution,
busiest services, and the time span the batch covers.

With --check the exit code reports findings: 6 when the file contains
ERROR or FATAL entries, 0 otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd)
			return runInspect(args[0], maxLines, check)
		},
	}

	cmd.Flags().IntVar(&maxLines, "max-lines", parse.DefaultMaxLines, "parse at most this many trailing lines")
	cmd.Flags().BoolVar(&check, "check", false, "exit 6 when the file contains ERROR or FATAL entries")

	return cmd
}

func runInspect(path string, maxLines int, check bool) error {
	r, name, err := loadBatch(path, maxLines, false)
	if err != nil {
		return err
	}
	rememberRecent(path)

	s := view.Summarize(name, r)
	if jsonMode {
		if err := s.WriteJSON(os.Stdout); err != nil {
			return err
		}
	} else {
		s.WriteText(os.Stdout)
	}

	if check {
		if n := s.Levels["ERROR"] + s.Levels["FATAL"]; n > 0 {
			return cli.NewFindingsError(fmt.Sprintf("%d error entries in %s", n, name))
		}
	}
	return nil
}
