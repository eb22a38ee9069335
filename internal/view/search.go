package view

import (
	"github.com/loupeview/loupe/internal/logline"
	"github.com/loupeview/loupe/internal/parse"
)

// SearchHit is one entry's contribution to a search.
type SearchHit struct {
	Index int `json:"index"`
	Line  int `json:"line"`
	Count int `json:"count"`
}

// Search counts query hits per entry with the same rules the highlighter
// uses: literal queries match case-insensitively, regex queries follow the
// pattern. Invalid patterns and empty queries match nothing, without
// error. The returned hits keep batch order.
func Search(entries []logline.Entry, query string, isRegex bool) ([]SearchHit, int) {
	if query == "" {
		return nil, 0
	}
	if _, err := parse.CompileQuery(query, isRegex); err != nil {
		return nil, 0
	}
	var hits []SearchHit
	total := 0
	for i, e := range entries {
		tokens := parse.Highlight(parse.Tokenize(e.Raw), query, isRegex, false)
		n := 0
		for _, t := range tokens {
			if t.Kind == logline.KindMatch {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, SearchHit{Index: i, Line: e.Line, Count: n})
			total += n
		}
	}
	return hits, total
}
