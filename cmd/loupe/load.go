package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/loupeview/loupe/internal/cli"
	"github.com/loupeview/loupe/internal/parse"
	"github.com/loupeview/loupe/internal/recent"
	"github.com/loupeview/loupe/internal/source"
)

// loadBatch reads one source and runs the parse pipeline over it. Source
// truncation (tail cap) and window truncation both surface through the
// result's Truncated flag.
func loadBatch(path string, maxLines int, stderr bool) (parse.Result, string, error) {
	name := displayName(path)

	c, err := source.Read(path, 0)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return parse.Result{}, name, cli.NewNotFoundError(fmt.Sprintf("no such file: %s", path))
		case os.IsPermission(err):
			return parse.Result{}, name, cli.NewPermissionError(fmt.Sprintf("cannot read: %s", path))
		}
		return parse.Result{}, name, err
	}

	opts := parse.Options{MaxLines: maxLines, Stderr: stderr}
	if path != "-" {
		opts.Path = path
	}
	r := parse.Parse(c.Text, name, opts)
	if c.Truncated {
		r.Truncated = true
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "read %s: %d bytes, %d lines, %d entries\n",
			name, c.Size, r.TotalLines, len(r.Entries))
	}
	return r, name, nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}

// recentStore opens the per-user store with the configured cap.
func recentStore() (*recent.Store, error) {
	storePath, err := recent.DefaultPath()
	if err != nil {
		return nil, err
	}
	max := 0
	if cfg != nil {
		max = cfg.Recent.Max
	}
	return recent.NewStore(storePath, max), nil
}

// rememberRecent records path in the recently-opened store. Best effort;
// a read-only home directory must not break viewing.
func rememberRecent(path string) {
	if path == "-" {
		return
	}
	s, err := recentStore()
	if err != nil {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	_ = s.Add(abs)
}
