package parse

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/loupeview/loupe/internal/logline"
)

// severityMarkerRe finds bracketed severity markers anywhere in content.
var severityMarkerRe = regexp.MustCompile(`\[(?i:ERROR|WARN|WARNING|INFO|DEBUG|TRACE)\]`)

var severityKinds = map[string]logline.TokenKind{
	"ERROR":   logline.KindLevelError,
	"WARN":    logline.KindLevelWarn,
	"WARNING": logline.KindLevelWarn,
	"INFO":    logline.KindLevelInfo,
	"DEBUG":   logline.KindLevelDebug,
	"TRACE":   logline.KindLevelDebug,
}

var numberWordRe = regexp.MustCompile(`^\d+,?$`)

var symbolWords = map[string]struct{}{
	"->": {}, "<-": {}, "-->": {}, "<--": {},
	"=>": {}, "<=": {}, "=": {}, "→": {}, "←": {},
}

// Tokenize splits entry content into classified display tokens: severity
// markers first, then balanced JSON values, then whitespace-preserving
// word classification. Token texts concatenate back to content exactly.
func Tokenize(content string) []logline.Token {
	var tokens []logline.Token
	last := 0
	for _, loc := range severityMarkerRe.FindAllStringIndex(content, -1) {
		if loc[0] > last {
			tokens = appendSegment(tokens, content[last:loc[0]])
		}
		marker := content[loc[0]:loc[1]]
		kind := severityKinds[strings.ToUpper(marker[1:len(marker)-1])]
		tokens = append(tokens, logline.Token{Kind: kind, Text: marker})
		last = loc[1]
	}
	if last < len(content) {
		tokens = appendSegment(tokens, content[last:])
	}
	return tokens
}

// appendSegment scans a marker-free segment for balanced JSON values and
// hands the plain text between them to the word classifier.
func appendSegment(tokens []logline.Token, seg string) []logline.Token {
	start := 0
	i := 0
	for i < len(seg) {
		c := seg[i]
		if c != '{' && c != '[' {
			i++
			continue
		}
		end, ok := scanJSON(seg, i)
		if !ok {
			// failed candidate: the bracket stays plain text
			i++
			continue
		}
		if i > start {
			tokens = appendWords(tokens, seg[start:i])
		}
		tokens = append(tokens, logline.Token{Kind: logline.KindJSON, Text: seg[i:end]})
		start, i = end, end
	}
	if start < len(seg) {
		tokens = appendWords(tokens, seg[start:])
	}
	return tokens
}

// scanJSON finds the balanced end of a candidate JSON value opening at
// start, honoring string and escape state, and validates the result.
func scanJSON(s string, start int) (end int, ok bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				end = i + 1
				return end, json.Valid([]byte(s[start:end]))
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}

// appendWords splits text into alternating whitespace and word tokens.
func appendWords(tokens []logline.Token, text string) []logline.Token {
	i := 0
	for i < len(text) {
		r, w := utf8.DecodeRuneInString(text[i:])
		j := i + w
		space := unicode.IsSpace(r)
		for j < len(text) {
			r, w = utf8.DecodeRuneInString(text[j:])
			if unicode.IsSpace(r) != space {
				break
			}
			j += w
		}
		if space {
			tokens = append(tokens, logline.Token{Kind: logline.KindSpace, Text: text[i:j]})
		} else {
			word := text[i:j]
			tokens = append(tokens, logline.Token{Kind: classifyWord(word), Text: word})
		}
		i = j
	}
	return tokens
}

// classifyWord picks a kind for one whitespace-delimited word. A trailing
// colon marks a label, which stays plain message text.
func classifyWord(word string) logline.TokenKind {
	if strings.HasSuffix(word, ":") {
		return logline.KindText
	}
	if _, ok := symbolWords[word]; ok {
		return logline.KindSymbol
	}
	if strings.HasPrefix(word, "http://") || strings.HasPrefix(word, "https://") ||
		(len(word) > 1 && word[0] == '/') {
		return logline.KindURL
	}
	if numberWordRe.MatchString(word) {
		return logline.KindNumber
	}
	return logline.KindText
}
