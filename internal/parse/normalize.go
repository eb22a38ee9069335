package parse

// protoEntry is a logical entry before grammar matching: folded raw text
// plus bookkeeping carried from its first physical line.
type protoEntry struct {
	text string // first line with continuations joined by newline
	num  int    // original line number of the first physical line
	ts   string // external timestamp from the first line's metadata prefix
}

// foldContinuations merges continuation lines into the preceding entry,
// newline separated. A continuation with no preceding entry starts one.
func foldContinuations(lines []rawLine) []protoEntry {
	entries := make([]protoEntry, 0, len(lines))
	for _, ln := range lines {
		if len(entries) > 0 && isContinuation(ln.text) {
			entries[len(entries)-1].text += "\n" + ln.text
			continue
		}
		entries = append(entries, protoEntry{text: ln.text, num: ln.num, ts: ln.ts})
	}
	return entries
}
