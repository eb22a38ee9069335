package parse

import (
	"regexp"

	"github.com/loupeview/loupe/internal/logline"
)

// CompileQuery builds the matcher shared by highlighting and search.
// Literal queries match case-insensitively; regex queries are taken as
// written.
func CompileQuery(query string, isRegex bool) (*regexp.Regexp, error) {
	if !isRegex {
		return regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	}
	return regexp.Compile(query)
}

// Highlight re-splits each token at query matches so renderers can mark
// search hits; non-matching remainders keep their original kind. active
// selects the emphasized kind used for the currently selected match. An
// empty or invalid query leaves the tokens untouched.
func Highlight(tokens []logline.Token, query string, isRegex, active bool) []logline.Token {
	if query == "" {
		return tokens
	}
	re, err := CompileQuery(query, isRegex)
	if err != nil {
		return tokens
	}
	kind := logline.KindMatch
	if active {
		kind = logline.KindMatchActive
	}
	var out []logline.Token
	for _, tok := range tokens {
		locs := re.FindAllStringIndex(tok.Text, -1)
		last := 0
		for _, loc := range locs {
			if loc[1] == loc[0] {
				continue
			}
			if loc[0] > last {
				out = append(out, logline.Token{Kind: tok.Kind, Text: tok.Text[last:loc[0]]})
			}
			out = append(out, logline.Token{Kind: kind, Text: tok.Text[loc[0]:loc[1]]})
			last = loc[1]
		}
		if last < len(tok.Text) {
			out = append(out, logline.Token{Kind: tok.Kind, Text: tok.Text[last:]})
		}
	}
	return out
}
