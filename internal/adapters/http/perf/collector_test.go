package perf

import (
	"testing"
	"time"
)

// TestCollector_RecordAndSnapshot tests basic aggregation.
func TestCollector_RecordAndSnapshot(t *testing.T) {
	c := NewCollector(16)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Path: "GET /donations", DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Path: "GET /donations", DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindQuery, Path: "QueryContext", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 3 {
		t.Errorf("TotalRecorded = %d, want 3", snap.TotalRecorded)
	}
	if len(snap.SlowestPaths) != 1 {
		t.Fatalf("SlowestPaths = %d entries, want 1", len(snap.SlowestPaths))
	}
	p := snap.SlowestPaths[0]
	if p.Count != 2 || p.AvgMs != 20 || p.MaxMs != 30 {
		t.Errorf("path stat = %+v, want count=2 avg=20 max=30", p)
	}
	if len(snap.SlowestQueries) != 1 {
		t.Errorf("SlowestQueries = %d entries, want 1", len(snap.SlowestQueries))
	}
}

// TestCollector_RingOverwrite tests that old entries are overwritten when full.
func TestCollector_RingOverwrite(t *testing.T) {
	c := NewCollector(2)
	now := time.Now()
	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Path: "GET /", DurationMs: float64(i), Timestamp: now})
	}
	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 5 {
		t.Errorf("TotalRecorded = %d, want 5", snap.TotalRecorded)
	}
	if snap.SlowestPaths[0].Count != 2 {
		t.Errorf("ring retained %d entries, want 2", snap.SlowestPaths[0].Count)
	}
}

// TestCollector_SinceFilter tests that Snapshot excludes entries before the cutoff.
func TestCollector_SinceFilter(t *testing.T) {
	c := NewCollector(8)
	old := time.Now().Add(-time.Hour)
	c.Record(Entry{Kind: KindRequest, Path: "GET /old", DurationMs: 1, Timestamp: old})

	snap := c.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 0 {
		t.Errorf("expected old entries to be excluded, got %+v", snap.SlowestPaths)
	}
}
