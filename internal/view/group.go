package view

import (
	"time"

	"github.com/loupeview/loupe/internal/logline"
)

// DefaultWindow bounds how far a group may stretch past its first entry.
const DefaultWindow = 2 * time.Second

// Group is a run of consecutive entries sharing a service identity whose
// timestamps fall within one window.
type Group struct {
	Service string          `json:"service"`
	Context string          `json:"context,omitempty"`
	Start   int64           `json:"start"`
	Entries []logline.Entry `json:"entries"`
}

// ServiceName derives the grouping identity for an entry: the parsed
// logger when one exists, the source display name otherwise.
func ServiceName(e logline.Entry) string {
	if e.Fields != nil && e.Fields.Logger != "" {
		return e.Fields.Logger
	}
	return e.Source
}

// GroupEntries folds consecutive entries by service and context tag. An
// entry joins the open group only while its time stays within window of
// the group start; a backward time jump always opens a new group. Zero or
// negative window means DefaultWindow.
func GroupEntries(entries []logline.Entry, window time.Duration) []Group {
	if window <= 0 {
		window = DefaultWindow
	}
	var groups []Group
	for _, e := range entries {
		svc := ServiceName(e)
		ctx := ""
		if e.Fields != nil {
			ctx = e.Fields.Context
		}
		if n := len(groups); n > 0 {
			g := &groups[n-1]
			if g.Service == svc && g.Context == ctx &&
				e.Time >= g.Start && e.Time-g.Start <= window.Milliseconds() {
				g.Entries = append(g.Entries, e)
				continue
			}
		}
		groups = append(groups, Group{
			Service: svc,
			Context: ctx,
			Start:   e.Time,
			Entries: []logline.Entry{e},
		})
	}
	return groups
}
