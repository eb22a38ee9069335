package view

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/loupeview/loupe/internal/logline"
	"github.com/loupeview/loupe/internal/parse"
)

// Summary holds aggregated information about one parsed batch.
type Summary struct {
	Source     string         `json:"source"`
	TotalLines int            `json:"total_lines"`
	Truncated  bool           `json:"truncated"`
	Entries    int            `json:"entries"`
	Structured int            `json:"structured"`
	Calls      int            `json:"api_calls"`
	Levels     map[string]int `json:"levels,omitempty"`
	Services   []ServiceCount `json:"services,omitempty"`
	From       int64          `json:"from,omitempty"`
	To         int64          `json:"to,omitempty"`
}

// ServiceCount summarizes one service's contribution.
type ServiceCount struct {
	Service string `json:"service"`
	Entries int    `json:"entries"`
}

// Summarize aggregates a parsed batch. Structured counts entries where a
// grammar extracted at least a level, timestamp, or logger; the time span
// covers only entries with a resolved clock.
func Summarize(name string, r parse.Result) *Summary {
	s := &Summary{
		Source:     name,
		TotalLines: r.TotalLines,
		Truncated:  r.Truncated,
		Entries:    len(r.Entries),
	}
	levels := make(map[string]int)
	services := make(map[string]int)
	for _, e := range r.Entries {
		f := e.Fields
		if f != nil {
			if f.Level != "" || f.Timestamp != "" || f.Logger != "" {
				s.Structured++
			}
			if f.Level != "" {
				levels[f.Level]++
			}
			if f.Call != nil {
				s.Calls++
			}
		}
		services[ServiceName(e)]++
		if e.Time > 0 {
			if s.From == 0 || e.Time < s.From {
				s.From = e.Time
			}
			if e.Time > s.To {
				s.To = e.Time
			}
		}
	}
	if len(levels) > 0 {
		s.Levels = levels
	}
	s.Services = topServices(services, 5)
	return s
}

// topServices ranks services by entry count, names breaking ties so the
// output is deterministic.
func topServices(counts map[string]int, limit int) []ServiceCount {
	out := make([]ServiceCount, 0, len(counts))
	for svc, n := range counts {
		out = append(out, ServiceCount{Service: svc, Entries: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Entries != out[j].Entries {
			return out[i].Entries > out[j].Entries
		}
		return out[i].Service < out[j].Service
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// textWriter wraps an io.Writer and captures the first error.
type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) println(args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, args...)
}

// levelOrder fixes the severity order for text output.
var levelOrder = []string{
	logline.LevelFatal, logline.LevelError, logline.LevelWarn,
	logline.LevelInfo, logline.LevelDebug, logline.LevelTrace,
}

// WriteText renders the summary as human-readable text.
func (s *Summary) WriteText(w io.Writer) {
	tw := &textWriter{w: w}

	tw.printf("Source:   %s\n", s.Source)
	if s.Truncated {
		tw.printf("Lines:    %d (trailing window only)\n", s.TotalLines)
	} else {
		tw.printf("Lines:    %d\n", s.TotalLines)
	}
	tw.printf("Entries:  %d (%d structured", s.Entries, s.Structured)
	if s.Calls > 0 {
		tw.printf(", %d API calls", s.Calls)
	}
	tw.printf(")\n")

	if s.From > 0 {
		from := time.UnixMilli(s.From).Format("2006-01-02 15:04:05")
		stop := time.UnixMilli(s.To).Format("15:04:05")
		dur := time.Duration(s.To-s.From) * time.Millisecond
		tw.printf("Period:   %s — %s (%s)\n", from, stop, formatHumanDuration(dur))
	}

	if len(s.Levels) > 0 {
		tw.println()
		tw.println("Levels:")
		for _, lvl := range levelOrder {
			if n := s.Levels[lvl]; n > 0 {
				tw.printf("  %-6s %d\n", lvl, n)
			}
		}
	}

	if len(s.Services) > 0 {
		tw.println()
		tw.println("Services:")
		for _, sc := range s.Services {
			tw.printf("  %-40s %d\n", sc.Service, sc.Entries)
		}
	}
}

// WriteJSON renders the summary as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// formatHumanDuration formats a duration as "Xh Ym" or "Xm Ys".
func formatHumanDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
