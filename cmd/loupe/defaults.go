package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

// applyConfigDefaults sets flag values from config when the flag was not
// explicitly set on the command line.
func applyConfigDefaults(cmd *cobra.Command) {
	if cfg == nil {
		return
	}
	setDefault := func(name, value string) {
		if value == "" {
			return
		}
		f := cmd.Flags().Lookup(name)
		if f == nil || cmd.Flags().Changed(name) {
			return
		}
		_ = f.Value.Set(value)
	}
	if cfg.View.MaxLines > 0 {
		setDefault("max-lines", strconv.Itoa(cfg.View.MaxLines))
	}
	// A malformed config window stays out of the flag entirely.
	if cfg.View.Window() > 0 {
		setDefault("window", cfg.View.GroupWindow)
	}
	if cfg.View.Context > 0 {
		setDefault("context", strconv.Itoa(cfg.View.Context))
	}
	setDefault("format", cfg.Export.Format)
}
