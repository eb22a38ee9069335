package parse

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/loupeview/loupe/internal/logline"
)

func localMillis(h, min, sec, ms int) int64 {
	return time.Date(2025, 12, 19, h, min, sec, ms*int(time.Millisecond), time.Local).UnixMilli()
}

func TestParse_MixedFormats(t *testing.T) {
	content := strings.Join([]string{
		`Common labels: {app="web"}`,
		`2025-12-19T05:32:17.000Z 2025-12-19 05:32:17,000 [main] INFO com.example.Boot(Boot.java:12) - booting [startup]`,
		``,
		`2025-12-19 05:32:17,405 33667971 [pool-1] INFO com.example.Foo - started`,
		`  config loaded from /etc/app.yaml`,
		`2025-12-19 05:32:18,001 [pool-1] INFO com.example.Http - GET /api/users`,
		"1766122338500\t" + `/api/users -> 200 {"count":2}`,
		`2025-12-19 05:32:19,000 [main] ERROR com.example.Foo - crash`,
		`java.lang.IllegalStateException: boom`,
		"\tat com.example.Foo.run(Foo.java:42)",
	}, "\n") + "\n"

	r := Parse(content, "app.log", Options{})
	if r.TotalLines != 10 {
		t.Fatalf("TotalLines = %d, want 10", r.TotalLines)
	}
	if r.Truncated {
		t.Fatalf("Truncated = true, want false")
	}
	if len(r.Entries) != 5 {
		t.Fatalf("len(Entries) = %d, want 5", len(r.Entries))
	}
	for i, e := range r.Entries {
		if e.Source != "app.log" {
			t.Errorf("entry %d Source = %q, want app.log", i, e.Source)
		}
		if e.Fields == nil {
			t.Fatalf("entry %d has nil Fields", i)
		}
	}

	boot := r.Entries[0]
	if boot.Line != 2 {
		t.Errorf("boot.Line = %d, want 2", boot.Line)
	}
	if boot.Fields.Level != logline.LevelInfo || boot.Fields.Context != "startup" {
		t.Errorf("boot fields = %+v, want INFO level with startup context", boot.Fields)
	}
	if boot.Fields.Logger != "com.example.Boot(Boot.java:12)" {
		t.Errorf("boot.Logger = %q", boot.Fields.Logger)
	}
	if boot.Time != 1766122337000 {
		t.Errorf("boot.Time = %d, want 1766122337000", boot.Time)
	}

	started := r.Entries[1]
	wantRaw := "2025-12-19 05:32:17,405 33667971 [pool-1] INFO com.example.Foo - started\n  config loaded from /etc/app.yaml"
	if started.Raw != wantRaw {
		t.Errorf("started.Raw = %q, want %q", started.Raw, wantRaw)
	}
	if started.Line != 4 {
		t.Errorf("started.Line = %d, want 4", started.Line)
	}
	if started.Fields.Message != "started\n  config loaded from /etc/app.yaml" {
		t.Errorf("started.Message = %q", started.Fields.Message)
	}
	if started.Time != localMillis(5, 32, 17, 405) {
		t.Errorf("started.Time = %d, want %d", started.Time, localMillis(5, 32, 17, 405))
	}

	request := r.Entries[2]
	if request.Fields.Call == nil {
		t.Fatalf("request entry has no call")
	}
	if request.Fields.Call.Direction != logline.CallOutgoing || request.Fields.Call.Method != "GET" {
		t.Errorf("request.Call = %+v, want outgoing GET", request.Fields.Call)
	}

	response := r.Entries[3]
	if response.Raw != `/api/users -> 200 {"count":2}` {
		t.Errorf("response.Raw = %q, want prefix consumed", response.Raw)
	}
	if response.Fields.Timestamp != "1766122338500" {
		t.Errorf("response.Timestamp = %q, want the external epoch prefix", response.Fields.Timestamp)
	}
	if response.Time != 1766122338500 {
		t.Errorf("response.Time = %d, want 1766122338500", response.Time)
	}
	call := response.Fields.Call
	if call == nil || call.Direction != logline.CallIncoming || call.Status != 200 {
		t.Fatalf("response.Call = %+v, want incoming status 200", call)
	}
	if call.ResponseBody != `{"count":2}` {
		t.Errorf("response body = %q", call.ResponseBody)
	}

	crash := r.Entries[4]
	if crash.Fields.Level != logline.LevelError {
		t.Errorf("crash.Level = %q, want ERROR", crash.Fields.Level)
	}
	if got := strings.Count(crash.Raw, "\n"); got != 2 {
		t.Errorf("crash.Raw folds %d newlines, want 2", got)
	}
	if crash.Time != localMillis(5, 32, 19, 0) {
		t.Errorf("crash.Time = %d, want %d", crash.Time, localMillis(5, 32, 19, 0))
	}

	seen := map[string]bool{}
	for i, e := range r.Entries {
		if seen[e.Hash] {
			t.Errorf("entry %d duplicates hash %q", i, e.Hash)
		}
		seen[e.Hash] = true
	}
}

func TestParse_BackfillBeforeFirstTimestamp(t *testing.T) {
	content := "no stamp in this first line\n" +
		"still nothing in the second\n" +
		"2025-12-19T06:00:00Z the first stamped event\n"
	r := Parse(content, "boot.log", Options{})
	if len(r.Entries) != 3 {
		t.Fatalf("len(Entries) = %d, want 3", len(r.Entries))
	}
	for i, want := range []int{-2, -1, 0} {
		if r.Entries[i].SortIndex != want {
			t.Errorf("entry %d SortIndex = %d, want %d", i, r.Entries[i].SortIndex, want)
		}
		if r.Entries[i].Time != 1766124000000 {
			t.Errorf("entry %d Time = %d, want 1766124000000", i, r.Entries[i].Time)
		}
	}
}

func TestParse_TruncatesLongInput(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 2500; i++ {
		fmt.Fprintf(&b, "entry line padding %04d\n", i)
	}
	r := Parse(b.String(), "big.log", Options{Now: time.Unix(1766122337, 0)})
	if r.TotalLines != 2500 || !r.Truncated {
		t.Fatalf("TotalLines = %d Truncated = %v, want 2500 true", r.TotalLines, r.Truncated)
	}
	if len(r.Entries) != DefaultMaxLines {
		t.Fatalf("len(Entries) = %d, want %d", len(r.Entries), DefaultMaxLines)
	}
	if r.Entries[0].Line != 501 {
		t.Errorf("first entry Line = %d, want 501", r.Entries[0].Line)
	}
	if r.Entries[0].Time != 0 || r.Entries[1].SortIndex != 1 {
		t.Errorf("no-timestamp batch: Time = %d SortIndex = %d, want 0 and 1",
			r.Entries[0].Time, r.Entries[1].SortIndex)
	}
}

func TestParse_OptionsPropagate(t *testing.T) {
	r := Parse("something broke badly here\n", "stream", Options{Path: "/var/log/app.log", Stderr: true})
	if len(r.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(r.Entries))
	}
	e := r.Entries[0]
	if !e.Stderr || e.Path != "/var/log/app.log" || e.Source != "stream" {
		t.Errorf("entry = %+v, want stderr and path set", e)
	}
}

func TestParse_Deterministic(t *testing.T) {
	content := "2025-12-19 05:32:17,405 [main] INFO app - one\nplain trailer line with no stamp\n"
	now := time.Unix(1766122337, 0)
	a := Parse(content, "x.log", Options{Now: now})
	b := Parse(content, "x.log", Options{Now: now})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two identical parses differ:\n%+v\n%+v", a, b)
	}
}

func TestParse_Empty(t *testing.T) {
	r := Parse("", "empty.log", Options{})
	if len(r.Entries) != 0 || r.TotalLines != 0 || r.Truncated {
		t.Fatalf("Parse empty = %+v, want no entries", r)
	}
}
