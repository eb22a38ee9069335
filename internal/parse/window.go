package parse

import "strings"

// DefaultMaxLines caps how many trailing physical lines one batch keeps.
const DefaultMaxLines = 2000

// LastLines returns up to max trailing lines of text, the true total line
// count, and whether older lines were dropped. A trailing newline does not
// open a final empty line. Oversized inputs are cut by scanning newlines
// from the end, so only the kept tail is ever split.
func LastLines(text string, max int) (lines []string, total int, truncated bool) {
	if max <= 0 {
		max = DefaultMaxLines
	}
	if text == "" {
		return nil, 0, false
	}
	body := strings.TrimSuffix(text, "\n")
	if body == "" {
		return []string{""}, 1, false
	}
	total = strings.Count(body, "\n") + 1
	if total <= max {
		return splitLines(body), total, false
	}
	cut := len(body)
	for i := 0; i < max; i++ {
		cut = strings.LastIndexByte(body[:cut], '\n')
	}
	return splitLines(body[cut+1:]), total, true
}

// splitLines splits on newlines and strips carriage returns left by CRLF input.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
