package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/logline"
	"github.com/loupeview/loupe/internal/parse"
	"github.com/loupeview/loupe/internal/view"
)

func newViewCmd() *cobra.Command {
	var (
		include   []string
		exclude   []string
		levels    []string
		pattern   string
		maxLines  int
		windowStr string
		group     bool
		stderrIn  bool
	)

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Parse a log file and print normalized entries",
		Long: `Parse a log file and print one normalized entry per logical line.

Continuation lines (stack traces, indented wrapped output) are folded into
the entry they belong to. Pass "-" to read from stdin. Compressed files
(.zst, .gz) are decompressed transparently.`,
		Example: `  loupe view server.log
  loupe view --include error --exclude healthz server.log
  loupe view --level error --level fatal app.log
  loupe view --group app.log.zst
  kubectl logs my-pod | loupe view -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd)
			return runView(args[0], include, exclude, levels, pattern, maxLines, windowStr, group, stderrIn)
		},
	}

	cmd.Flags().StringSliceVarP(&include, "include", "i", nil, "only show entries containing this term (repeatable, all must match)")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "hide entries containing this term (repeatable)")
	cmd.Flags().StringSliceVarP(&levels, "level", "l", nil, "only show entries with this severity (repeatable)")
	cmd.Flags().StringVarP(&pattern, "grep", "e", "", "only show entries matching this regular expression")
	cmd.Flags().IntVar(&maxLines, "max-lines", parse.DefaultMaxLines, "parse at most this many trailing lines")
	cmd.Flags().BoolVar(&group, "group", false, "cluster entries by service and time window")
	cmd.Flags().StringVar(&windowStr, "window", "2s", "time window for --group")
	cmd.Flags().BoolVar(&stderrIn, "stderr", false, "mark input as coming from a process error stream")

	return cmd
}

func runView(path string, include, exclude, levels []string, pattern string, maxLines int, windowStr string, group, stderrIn bool) error {
	filter, err := view.NewFilter(include, exclude, levels, pattern)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	r, _, err := loadBatch(path, maxLines, stderrIn)
	if err != nil {
		return err
	}
	rememberRecent(path)

	entries := filter.Apply(r.Entries)

	if group {
		window, err := time.ParseDuration(windowStr)
		if err != nil || window <= 0 {
			return cli.NewUsageError(fmt.Sprintf("invalid window: %q", windowStr))
		}
		groups := view.GroupEntries(entries, window)
		if jsonMode {
			enc := json.NewEncoder(os.Stdout)
			enc.SetEscapeHTML(false)
			for _, g := range groups {
				if err := enc.Encode(g); err != nil {
					return err
				}
			}
		} else {
			for _, g := range groups {
				printGroup(g)
			}
		}
		fmt.Fprintf(os.Stderr, "%d groups, %d entries%s\n", len(groups), len(entries), truncatedNote(r))
		return nil
	}

	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
	} else {
		for _, e := range entries {
			printEntry(e)
		}
	}
	fmt.Fprintf(os.Stderr, "%d entries from %d lines%s\n", len(entries), r.TotalLines, truncatedNote(r))
	return nil
}

// printEntry renders one entry as a timeline row, continuation lines
// indented beneath it.
func printEntry(e logline.Entry) {
	msg := e.Raw
	level := "-"
	logger := ""
	if e.Fields != nil {
		if e.Fields.Message != "" {
			msg = e.Fields.Message
		}
		if e.Fields.Level != "" {
			level = e.Fields.Level
		}
		logger = e.Fields.Logger
	}

	head, rest, _ := strings.Cut(msg, "\n")
	if logger != "" {
		fmt.Printf("%s %-5s [%s] %s\n", formatEntryTime(e.Time), level, logger, head)
	} else {
		fmt.Printf("%s %-5s %s\n", formatEntryTime(e.Time), level, head)
	}
	for rest != "" {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		fmt.Printf("    %s\n", line)
	}
}

func printGroup(g view.Group) {
	head := g.Service
	if g.Context != "" {
		head += " " + g.Context
	}
	fmt.Printf("\n%s  %s  (%d entries)\n", formatEntryTime(g.Start), head, len(g.Entries))
	for _, e := range g.Entries {
		printEntry(e)
	}
}

const entryTimeLayout = "2006-01-02 15:04:05.000"

func formatEntryTime(ms int64) string {
	if ms <= 0 {
		return strings.Repeat("-", len(entryTimeLayout))
	}
	return time.UnixMilli(ms).Format(entryTimeLayout)
}

func truncatedNote(r parse.Result) string {
	if r.Truncated {
		return " (trailing window only)"
	}
	return ""
}
