package parse

import (
	"time"

	"github.com/loupeview/loupe/internal/logline"
)

// Options adjust one Parse batch.
type Options struct {
	// Path is the stable identity key for hashing and grouping; the
	// display name stands in when empty.
	Path string
	// Stderr marks every produced entry as coming from an error stream.
	Stderr bool
	// MaxLines overrides the trailing-window cap, DefaultMaxLines when 0.
	MaxLines int
	// Now anchors time-only timestamps; the wall clock when zero.
	Now time.Time
}

// Result is one parsed batch.
type Result struct {
	Entries    []logline.Entry `json:"entries"`
	TotalLines int             `json:"total_lines"`
	Truncated  bool            `json:"truncated"`
}

// Parse runs the full pipeline over one source's text: trailing window,
// line filter, continuation folding, grammar cascade, API-call
// extraction, identity hashing, then timestamp reconciliation. Any input
// yields a result; nothing here panics on malformed text.
func Parse(content, name string, opts Options) Result {
	lines, total, truncated := LastLines(content, opts.MaxLines)
	first := total - len(lines) + 1
	protos := foldContinuations(filterLines(lines, first))

	key := opts.Path
	if key == "" {
		key = name
	}
	issued := NewHashSet()
	entries := make([]logline.Entry, 0, len(protos))
	for _, p := range protos {
		fields, _ := Match(p.text)
		if fields.Timestamp == "" && p.ts != "" {
			// the external prefix only fills in when no embedded
			// timestamp was extracted
			fields.Timestamp = p.ts
		}
		fields.Call = MatchCall(fields.Message)
		entries = append(entries, logline.Entry{
			Source: name,
			Path:   opts.Path,
			Line:   p.num,
			Raw:    p.text,
			Stderr: opts.Stderr,
			Hash:   EntryHash(key, p.text, p.num, issued),
			Fields: &fields,
		})
	}
	Reconcile(entries, opts.Now)
	return Result{Entries: entries, TotalLines: total, Truncated: truncated}
}
