package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/loupeview/loupe/internal/logline"
)

// Textual layouts the reconciler understands, tried in order. Comma decimal
// seconds are folded to dots before parsing.
var clockLayouts = []struct {
	layout  string
	hasDate bool
	hasZone bool
}{
	{"2006-01-02T15:04:05.999999999Z07:00", true, true},
	{"2006-01-02T15:04:05Z07:00", true, true},
	{"2006-01-02T15:04:05.999999999Z0700", true, true},
	{"2006-01-02T15:04:05Z0700", true, true},
	{"2006-01-02T15:04:05.999999999", true, false},
	{"2006-01-02T15:04:05", true, false},
	{"2006-01-02 15:04:05.999999999Z07:00", true, true},
	{"2006-01-02 15:04:05Z07:00", true, true},
	{"2006-01-02 15:04:05.999999999", true, false},
	{"2006-01-02 15:04:05", true, false},
	{"2006/01/02 15:04:05.999999999", true, false},
	{"2006/01/02 15:04:05", true, false},
	{"15:04:05.999999999", false, false},
	{"15:04:05", false, false},
}

// parseClock converts a textual timestamp to epoch milliseconds. real
// reports whether the text carried an explicit calendar date; time-only
// values are anchored to now's day and never count as real, so an assumed
// day cannot rewrite neighboring entries.
func parseClock(text string, now time.Time) (ms int64, real, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false, false
	}
	if bareEpochRe.MatchString(s) {
		return epochToMillis(s), true, true
	}
	s = strings.Replace(s, ",", ".", 1)
	for _, c := range clockLayouts {
		var t time.Time
		var err error
		if c.hasZone {
			t, err = time.Parse(c.layout, s)
		} else {
			t, err = time.ParseInLocation(c.layout, s, time.Local)
		}
		if err != nil {
			continue
		}
		if !c.hasDate {
			t = time.Date(now.Year(), now.Month(), now.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
		}
		return t.UnixMilli(), c.hasDate, true
	}
	return 0, false, false
}

// epochToMillis scales a bare epoch by its digit count (s, ms, µs, ns).
func epochToMillis(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	switch len(s) {
	case 10:
		return n * 1000
	case 13:
		return n
	case 16:
		return n / 1_000
	default:
		return n / 1_000_000
	}
}

// Reconcile runs the second, batch-order timestamp pass. The first real
// timestamp backfills every earlier entry with negative sort indices that
// preserve file order; later entries without a real timestamp inherit the
// last known one with ascending indices; a batch with no real timestamp
// anywhere gets epoch 0 throughout. Every entry's Time and SortIndex are
// assigned here, whatever they held before.
func Reconcile(entries []logline.Entry, now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	ms := make([]int64, len(entries))
	real := make([]bool, len(entries))
	for i := range entries {
		if f := entries[i].Fields; f != nil && f.Timestamp != "" {
			if m, r, ok := parseClock(f.Timestamp, now); ok {
				ms[i], real[i] = m, r
			}
		}
	}

	firstReal := -1
	for i, r := range real {
		if r {
			firstReal = i
			break
		}
	}
	if firstReal == -1 {
		for i := range entries {
			entries[i].Time = 0
			entries[i].SortIndex = i
		}
		return
	}

	for i := 0; i < firstReal; i++ {
		entries[i].Time = ms[firstReal]
		entries[i].SortIndex = i - firstReal
	}
	last, counter := ms[firstReal], 0
	for i := firstReal; i < len(entries); i++ {
		if real[i] {
			last, counter = ms[i], 0
			entries[i].Time = ms[i]
			entries[i].SortIndex = 0
			continue
		}
		counter++
		entries[i].Time = last
		entries[i].SortIndex = counter
	}
}
