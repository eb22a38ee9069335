package parse

import (
	"testing"
	"time"

	"github.com/loupeview/loupe/internal/logline"
)

func TestParseClock(t *testing.T) {
	now := time.Date(2025, 12, 19, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name     string
		text     string
		wantMS   int64
		wantReal bool
		wantOK   bool
	}{
		{"iso utc", "2025-12-19T05:32:17.405Z", 1766122337405, true, true},
		{"iso offset", "2025-12-19T06:32:17.405+01:00", 1766122337405, true, true},
		{"iso compact offset", "2025-12-19T06:32:17.405+0100", 1766122337405, true, true},
		{"epoch seconds", "1766122337", 1766122337000, true, true},
		{"epoch millis", "1766122337405", 1766122337405, true, true},
		{"epoch nanos", "1766122337405000000", 1766122337405, true, true},
		{"garbage", "not a timestamp", 0, false, false},
		{"empty", "", 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, real, ok := parseClock(tt.text, now)
			if ok != tt.wantOK || real != tt.wantReal || ms != tt.wantMS {
				t.Fatalf("parseClock(%q) = %d/%v/%v, want %d/%v/%v",
					tt.text, ms, real, ok, tt.wantMS, tt.wantReal, tt.wantOK)
			}
		})
	}
}

func TestParseClock_CommaEqualsDotFraction(t *testing.T) {
	now := time.Date(2025, 12, 19, 12, 0, 0, 0, time.Local)
	a, realA, okA := parseClock("2025-12-19 05:32:17,405", now)
	b, realB, okB := parseClock("2025-12-19 05:32:17.405", now)
	if !okA || !okB || !realA || !realB {
		t.Fatalf("comma/dot forms failed: %v %v %v %v", okA, realA, okB, realB)
	}
	if a != b {
		t.Fatalf("comma form %d != dot form %d", a, b)
	}
}

func TestParseClock_TimeOnlyAnchorsToToday(t *testing.T) {
	now := time.Date(2025, 12, 19, 12, 0, 0, 0, time.Local)
	ms, real, ok := parseClock("05:32:17", now)
	if !ok {
		t.Fatal("time-only form not parsed")
	}
	if real {
		t.Fatal("time-only form must not count as real")
	}
	want := time.Date(2025, 12, 19, 5, 32, 17, 0, time.Local).UnixMilli()
	if ms != want {
		t.Fatalf("anchored epoch = %d, want %d", ms, want)
	}
}

func entryWithTS(ts string) logline.Entry {
	var f *logline.Fields
	if ts != "" {
		f = &logline.Fields{Timestamp: ts}
	}
	return logline.Entry{Fields: f}
}

func TestReconcile_BackfillAndCarryForward(t *testing.T) {
	t1 := "2025-12-19T05:32:17.000Z"
	t2 := "2025-12-19T05:32:19.500Z"
	entries := []logline.Entry{
		entryWithTS(""),
		entryWithTS(""),
		entryWithTS(t1),
		entryWithTS(""),
		entryWithTS(t2),
	}
	Reconcile(entries, time.Now())

	wantTimes := []int64{1766122337000, 1766122337000, 1766122337000, 1766122337000, 1766122339500}
	wantSort := []int{-2, -1, 0, 1, 0}
	for i := range entries {
		if entries[i].Time != wantTimes[i] || entries[i].SortIndex != wantSort[i] {
			t.Fatalf("entry %d = %d/%d, want %d/%d",
				i, entries[i].Time, entries[i].SortIndex, wantTimes[i], wantSort[i])
		}
	}
}

func TestReconcile_CounterContinuesUntilNextReal(t *testing.T) {
	entries := []logline.Entry{
		entryWithTS("2025-12-19T05:32:17.000Z"),
		entryWithTS(""),
		entryWithTS(""),
		entryWithTS(""),
		entryWithTS("2025-12-19T05:32:18.000Z"),
		entryWithTS(""),
	}
	Reconcile(entries, time.Now())

	wantSort := []int{0, 1, 2, 3, 0, 1}
	for i, want := range wantSort {
		if entries[i].SortIndex != want {
			t.Fatalf("sort[%d] = %d, want %d", i, entries[i].SortIndex, want)
		}
	}
	if entries[3].Time != entries[0].Time {
		t.Fatal("carried-forward time mismatch")
	}
	if entries[5].Time != entries[4].Time {
		t.Fatal("carry-forward did not reset at the new real timestamp")
	}
}

func TestReconcile_NoRealTimestampAnywhere(t *testing.T) {
	entries := []logline.Entry{
		entryWithTS(""),
		entryWithTS("05:32:17"), // time-only never counts as real
		entryWithTS(""),
	}
	Reconcile(entries, time.Date(2025, 12, 19, 12, 0, 0, 0, time.Local))

	for i := range entries {
		if entries[i].Time != 0 {
			t.Fatalf("entry %d time = %d, want 0", i, entries[i].Time)
		}
		if entries[i].SortIndex != i {
			t.Fatalf("entry %d sort = %d, want %d", i, entries[i].SortIndex, i)
		}
	}
}

func TestReconcile_TimeOnlyInheritsLastReal(t *testing.T) {
	entries := []logline.Entry{
		entryWithTS("2025-12-19T05:32:17.000Z"),
		entryWithTS("05:40:00"),
	}
	Reconcile(entries, time.Date(2025, 12, 19, 12, 0, 0, 0, time.Local))

	if entries[1].Time != entries[0].Time {
		t.Fatalf("time-only entry did not inherit: %d vs %d", entries[1].Time, entries[0].Time)
	}
	if entries[1].SortIndex != 1 {
		t.Fatalf("sort = %d, want 1", entries[1].SortIndex)
	}
}

func TestReconcile_Empty(t *testing.T) {
	Reconcile(nil, time.Time{})
}
