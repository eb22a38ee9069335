package parse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stack-trace idioms that continue an entry regardless of indentation.
var (
	exceptionLineRe = regexp.MustCompile(`^[A-Za-z][\w.$]*(?:Exception|Error|Throwable)(?::.*)?$`)
	causedByRe      = regexp.MustCompile(`^(?:Caused by|Suppressed):`)
	atFrameRe       = regexp.MustCompile(`^at\s+\S.*(?:\(.*\)|:\d+(?::\d+)?)\s*$`)
	moreFramesRe    = regexp.MustCompile(`^\.{3}\s*\d+\s*(?:more|common frames omitted)$`)

	leadingDateRe = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}\b`)
)

// isContinuation reports whether a line extends the previous entry rather
// than starting a new one. Lines that begin with a calendar date or are a
// bare timestamp never continue, whatever their shape.
func isContinuation(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if isBareTimestamp(trimmed) || leadingDateRe.MatchString(trimmed) {
		return false
	}
	if isStackIdiom(trimmed) {
		return true
	}
	if r, _ := utf8.DecodeRuneInString(line); unicode.IsSpace(r) {
		return true
	}
	if decorativeRatio(trimmed) > 0.30 {
		return true
	}
	if r := []rune(trimmed); len(r) < 20 && r[0] != '[' && r[0] != '(' && r[0] != '{' {
		return true
	}
	return false
}

// isStackIdiom reports whether a trimmed line matches a stack-trace idiom.
func isStackIdiom(trimmed string) bool {
	return exceptionLineRe.MatchString(trimmed) || causedByRe.MatchString(trimmed) ||
		atFrameRe.MatchString(trimmed) || moreFramesRe.MatchString(trimmed)
}

func decorativeRatio(s string) float64 {
	var dec, total int
	for _, r := range s {
		total++
		if isDecorative(r) {
			dec++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(dec) / float64(total)
}

// isDecorative matches glyphs that dominate separator and border art.
func isDecorative(r rune) bool {
	switch r {
	case '-', '=', '*', '#', '_', '~', '+', '|', '\\', '<', '>', '^', '•', '·':
		return true
	}
	return r >= 0x2500 && r <= 0x259F
}
