package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/loupeview/loupe/internal/logline"
)

// Filter narrows a parsed batch to the entries a reader asked for.
// Include terms combine with AND logic, any exclude term vetoes, level
// names restrict to a severity set, and the optional pattern runs over
// the raw text. A nil filter matches everything.
type Filter struct {
	Include []string
	Exclude []string
	Levels  []string
	Pattern *regexp.Regexp
}

// NewFilter builds a filter from raw flag values, compiling the optional
// pattern. Level names are normalized the way the cascade normalizes
// them, so "warning" selects WARN entries.
func NewFilter(include, exclude, levels []string, pattern string) (*Filter, error) {
	f := &Filter{Include: include, Exclude: exclude}
	for _, l := range levels {
		if l == "" {
			continue
		}
		u := strings.ToUpper(l)
		if u == "WARNING" {
			u = "WARN"
		}
		f.Levels = append(f.Levels, u)
	}
	if pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		f.Pattern = re
	}
	return f, nil
}

// Match returns true if the entry passes all filter criteria.
func (f *Filter) Match(e logline.Entry) bool {
	if f == nil {
		return true
	}
	raw := strings.ToLower(e.Raw)

	// include terms (AND logic, case-insensitive)
	for _, term := range f.Include {
		if !strings.Contains(raw, strings.ToLower(term)) {
			return false
		}
	}

	// exclude terms (any hit drops the entry)
	for _, term := range f.Exclude {
		if term != "" && strings.Contains(raw, strings.ToLower(term)) {
			return false
		}
	}

	if len(f.Levels) > 0 {
		var level string
		if e.Fields != nil {
			level = e.Fields.Level
		}
		hit := false
		for _, l := range f.Levels {
			if level == l {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if f.Pattern != nil && !f.Pattern.MatchString(e.Raw) {
		return false
	}
	return true
}

// Apply filters a batch, preserving order.
func (f *Filter) Apply(entries []logline.Entry) []logline.Entry {
	if f == nil {
		return entries
	}
	out := make([]logline.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
