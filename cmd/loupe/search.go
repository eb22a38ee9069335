package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/parse"
	"github.com/loupeview/loupe/internal/view"
)

func newSearchCmd() *cobra.Command {
	var (
		isRegex   bool
		countOnly bool
		maxLines  int
	)

	cmd := &cobra.Command{
		Use:   "search <pattern> <file>",
		Short: "Find entries matching a pattern",
		Long: `Find entries whose text matches a pattern. Matching is
case-insensitive; continuation lines folded into an entry are searched
along with it. Literal matching is the default, --regex switches to
regular expressions.`,
		Example: `  loupe search "connection refused" server.log
  loupe search --regex 'worker-\d+' app.log
  loupe search --count timeout server.log.gz`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd)
			return runSearch(args[0], args[1], isRegex, countOnly, maxLines)
		},
	}

	cmd.Flags().BoolVarP(&isRegex, "regex", "r", false, "treat the pattern as a regular expression")
	cmd.Flags().BoolVarP(&countOnly, "count", "c", false, "print only the total match count")
	cmd.Flags().IntVar(&maxLines, "max-lines", parse.DefaultMaxLines, "parse at most this many trailing lines")

	return cmd
}

type searchMatch struct {
	Line  int    `json:"line"`
	Count int    `json:"count"`
	Raw   string `json:"raw"`
}

func runSearch(pattern, path string, isRegex, countOnly bool, maxLines int) error {
	// A pattern that names an existing file usually means the arguments
	// were given in the wrong order.
	if _, err := os.Stat(pattern); err == nil && path != "-" {
		if _, err := os.Stat(path); err != nil {
			return cli.NewUsageError(fmt.Sprintf("%q is a file but %q is not; usage is search <pattern> <file>", pattern, path))
		}
	}

	if _, err := parse.CompileQuery(pattern, isRegex); err != nil {
		return cli.NewUsageError(fmt.Sprintf("invalid pattern %q: %v", pattern, err))
	}

	r, _, err := loadBatch(path, maxLines, false)
	if err != nil {
		return err
	}

	hits, total := view.Search(r.Entries, pattern, isRegex)

	if countOnly {
		fmt.Println(total)
		return nil
	}

	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		for _, h := range hits {
			m := searchMatch{Line: h.Line, Count: h.Count, Raw: r.Entries[h.Index].Raw}
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
	} else {
		for _, h := range hits {
			head, _, _ := strings.Cut(r.Entries[h.Index].Raw, "\n")
			fmt.Printf("%6d  %dx  %s\n", h.Line, h.Count, head)
		}
	}
	fmt.Fprintf(os.Stderr, "%d matches in %d entries%s\n", total, len(hits), truncatedNote(r))
	return nil
}
