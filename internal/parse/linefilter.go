package parse

import (
	"regexp"
	"strings"
)

// rawLine is one physical line that survived filtering, with any metadata
// prefix already consumed.
type rawLine struct {
	text string // content after prefix consumption
	num  int    // 1-based line number in the original input
	ts   string // timestamp consumed from a metadata prefix, if any
}

// Banner lines some export tools wrap around the payload.
var bannerPatterns = []*regexp.Regexp{
	// line-count summary: "2000 lines"
	regexp.MustCompile(`^\d[\d,]*\s+lines?$`),
	// byte-count summary: "1.2 MB", "5120 bytes"
	regexp.MustCompile(`(?i)^[\d.,]+\s?(?:B|KB|MB|GB|TB|bytes)$`),
	// label summary: "Common labels: {app=web}"
	regexp.MustCompile(`(?i)^common labels:`),
}

var (
	// epoch timestamps in seconds through nanoseconds
	bareEpochRe = regexp.MustCompile(`^\d{10}(?:\d{3}){0,3}$`)
	bareClockRe = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d{1,9})?(?:Z|[+-]\d{2}:?\d{2})?$`)

	epochPrefixRe = regexp.MustCompile(`^(\d{10}(?:\d{3}){0,3})\t`)
	clockPrefixRe = regexp.MustCompile(`^(\d{4}[-/]\d{2}[-/]\d{2}[T ]\d{2}:\d{2}:\d{2}(?:[.,]\d{1,9})?(?:Z|[+-]\d{2}:?\d{2})?)\t`)
)

// filterLines drops blank lines, export banners, and bare metadata
// timestamps, and consumes tab-delimited timestamp prefixes. first is the
// original line number of lines[0].
func filterLines(lines []string, first int) []rawLine {
	kept := make([]rawLine, 0, len(lines))
	for i, line := range lines {
		text, ts := consumePrefix(line)
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || isBanner(trimmed) || isBareTimestamp(trimmed) {
			continue
		}
		kept = append(kept, rawLine{text: text, num: first + i, ts: ts})
	}
	return kept
}

// consumePrefix strips "epoch<TAB>" and "iso<TAB>" metadata prefixes. When
// both are present the ISO form is kept as the external timestamp.
func consumePrefix(line string) (string, string) {
	var ts string
	if m := epochPrefixRe.FindStringSubmatch(line); m != nil {
		ts = m[1]
		line = line[len(m[0]):]
	}
	if m := clockPrefixRe.FindStringSubmatch(line); m != nil {
		ts = m[1]
		line = line[len(m[0]):]
	}
	return line, ts
}

func isBanner(trimmed string) bool {
	for _, re := range bannerPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func isBareTimestamp(trimmed string) bool {
	return bareEpochRe.MatchString(trimmed) || bareClockRe.MatchString(trimmed)
}
