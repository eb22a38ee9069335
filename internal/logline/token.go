package logline

// TokenKind classifies a span of entry content for display and search.
type TokenKind string

const (
	KindText        TokenKind = "text"
	KindSpace       TokenKind = "space"
	KindJSON        TokenKind = "json"
	KindURL         TokenKind = "url"
	KindNumber      TokenKind = "number"
	KindSymbol      TokenKind = "symbol"
	KindLevelError  TokenKind = "error"
	KindLevelWarn   TokenKind = "warn"
	KindLevelInfo   TokenKind = "info"
	KindLevelDebug  TokenKind = "debug"
	KindMatch       TokenKind = "match"
	KindMatchActive TokenKind = "match-active"
)

// Token is one classified span. Concatenating Text over a token slice
// reproduces the tokenized content byte for byte.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
}

// JoinTokens reassembles the original content from a token slice.
func JoinTokens(tokens []Token) string {
	var n int
	for _, t := range tokens {
		n += len(t.Text)
	}
	b := make([]byte, 0, n)
	for _, t := range tokens {
		b = append(b, t.Text...)
	}
	return string(b)
}
