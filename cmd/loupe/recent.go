package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	var (
		clear      bool
		removePath string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened files",
		Long: `List the files most recently opened by view and inspect, newest
first. Files that no longer exist are kept in the list and marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecent(clear, removePath)
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "forget all recent files")
	cmd.Flags().StringVar(&removePath, "remove", "", "forget one recent file")

	return cmd
}

func runRecent(clear bool, removePath string) error {
	store, err := recentStore()
	if err != nil {
		return err
	}

	if clear {
		return store.Clear()
	}
	if removePath != "" {
		abs, err := filepath.Abs(removePath)
		if err != nil {
			abs = removePath
		}
		return store.Remove(abs)
	}

	entries, err := store.List()
	if err != nil {
		return err
	}

	if jsonMode {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("no recent files")
		return nil
	}
	for _, e := range entries {
		size := "-"
		note := ""
		if e.Exists {
			size = formatBytes(e.Size)
		} else {
			note = "  (missing)"
		}
		fmt.Printf("%s  %9s  %s%s\n", e.Opened.Format("2006-01-02 15:04"), size, e.Path, note)
	}
	return nil
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
