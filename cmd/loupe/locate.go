package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/source"
)

func newLocateCmd() *cobra.Command {
	var contextLines int

	cmd := &cobra.Command{
		Use:   "locate <file> <text>",
		Short: "Find the line number of an exact line in a file",
		Long: `Find the first line whose text equals the given string exactly and
print its 1-based line number with surrounding context. Useful for
jumping from a normalized entry back to the raw file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd)
			return runLocate(args[0], args[1], contextLines)
		},
	}

	cmd.Flags().IntVarP(&contextLines, "context", "C", 3, "lines of context around the match")

	return cmd
}

func runLocate(path, text string, contextLines int) error {
	loc, err := source.Locate(path, text, contextLines)
	if err != nil {
		switch {
		case errors.Is(err, source.ErrNotFound):
			return cli.NewNotFoundError(fmt.Sprintf("no line matching %q in %s", text, path))
		case os.IsNotExist(err):
			return cli.NewNotFoundError(fmt.Sprintf("no such file: %s", path))
		case os.IsPermission(err):
			return cli.NewPermissionError(fmt.Sprintf("cannot read: %s", path))
		}
		return err
	}

	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(loc)
	}

	fmt.Printf("line %d of %d\n", loc.Line, loc.Total)
	first := loc.Line - contextLines
	if first < 1 {
		first = 1
	}
	for i, l := range loc.Context {
		marker := " "
		if first+i == loc.Line {
			marker = ">"
		}
		fmt.Printf("%s %6d  %s\n", marker, first+i, l)
	}
	return nil
}
