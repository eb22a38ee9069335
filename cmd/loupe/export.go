package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/export"
	"github.com/loupeview/loupe/internal/parse"
	"github.com/loupeview/loupe/internal/view"
)

func newExportCmd() *cobra.Command {
	var (
		outPath   string
		formatStr string
		include   []string
		exclude   []string
		levels    []string
		pattern   string
		maxLines  int
		stderrIn  bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export normalized entries to parquet, CSV, or JSONL",
		Long: `Parse a log file and write the normalized entries to a structured
file for downstream analysis. The format is taken from --format or
inferred from the output file extension. A .zst or .gz suffix on a
JSONL destination compresses the output.`,
		Example: `  loupe export server.log --out server.parquet
  loupe export --include error server.log --out errors.csv
  loupe export server.log --out server.jsonl.zst
  kubectl logs my-pod | loupe export - --out pod.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd)
			return runExport(args[0], outPath, formatStr, include, exclude, levels, pattern, maxLines, stderrIn)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format: parquet, csv, or jsonl (default: from extension)")
	cmd.Flags().StringSliceVarP(&include, "include", "i", nil, "only export entries containing this term (repeatable, all must match)")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "x", nil, "skip entries containing this term (repeatable)")
	cmd.Flags().StringSliceVarP(&levels, "level", "l", nil, "only export entries with this severity (repeatable)")
	cmd.Flags().StringVarP(&pattern, "grep", "e", "", "only export entries matching this regular expression")
	cmd.Flags().IntVar(&maxLines, "max-lines", parse.DefaultMaxLines, "parse at most this many trailing lines")
	cmd.Flags().BoolVar(&stderrIn, "stderr", false, "mark input as coming from a process error stream")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(path, outPath, formatStr string, include, exclude, levels []string, pattern string, maxLines int, stderrIn bool) error {
	filter, err := view.NewFilter(include, exclude, levels, pattern)
	if err != nil {
		return cli.NewUsageError(err.Error())
	}

	var format export.Format
	if formatStr != "" {
		format, err = parseFormat(formatStr)
		if err != nil {
			return cli.NewUsageError(err.Error())
		}
	} else {
		f, ok := export.DetectFormat(outPath)
		if !ok {
			return cli.NewUsageError(fmt.Sprintf("cannot infer format from %q, pass --format parquet|csv|jsonl", outPath))
		}
		format = f
	}

	r, _, err := loadBatch(path, maxLines, stderrIn)
	if err != nil {
		return err
	}
	entries := filter.Apply(r.Entries)

	progress := func(p export.Progress) {
		fmt.Fprintf(os.Stderr, "\r%d/%d entries", p.Written, p.Total)
	}
	if err := export.Export(entries, outPath, format, progress); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\r%-40s\n", fmt.Sprintf("exported %d entries to %s", len(entries), outPath))

	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(struct {
			Entries int    `json:"entries"`
			Out     string `json:"out"`
			Format  string `json:"format"`
		}{len(entries), outPath, string(format)})
	}
	return nil
}

func parseFormat(s string) (export.Format, error) {
	switch strings.ToLower(s) {
	case "parquet":
		return export.FormatParquet, nil
	case "csv":
		return export.FormatCSV, nil
	case "jsonl", "ndjson":
		return export.FormatJSONL, nil
	}
	return "", fmt.Errorf("unknown format %q (expected parquet, csv, or jsonl)", s)
}
