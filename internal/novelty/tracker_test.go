package novelty

import (
	"fmt"
	"reflect"
	"testing"
)

func TestTrackerIsNew(t *testing.T) {
	tr := NewTracker(5, nil)
	if !tr.IsNew("a") {
		t.Fatalf("expected new")
	}
	tr.Record("a")
	if tr.IsNew("a") {
		t.Fatalf("expected seen")
	}
}

func TestTrackerSeedsInitialState(t *testing.T) {
	tr := NewTracker(5, []string{"a", "b"})
	if tr.IsNew("a") || tr.IsNew("b") {
		t.Fatalf("seeded ids should not be new")
	}
	if tr.Len() != 2 {
		t.Fatalf("len = %d", tr.Len())
	}
}

func TestTrackerBoundedNoDuplicates(t *testing.T) {
	tr := NewTracker(50, nil)
	for i := 0; i < 200; i++ {
		tr.Record(fmt.Sprintf("id-%d", i%70))
	}

	snap := tr.Snapshot()
	if len(snap) > 50 {
		t.Fatalf("len = %d, want <= 50", len(snap))
	}
	seen := make(map[string]struct{}, len(snap))
	for _, id := range snap {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate %q in snapshot", id)
		}
		seen[id] = struct{}{}
	}
}

func TestTrackerEvictsOldest(t *testing.T) {
	tr := NewTracker(3, nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		tr.Record(id)
	}

	if !tr.IsNew("a") {
		t.Fatalf("oldest id should have been evicted")
	}
	if want := []string{"b", "c", "d"}; !reflect.DeepEqual(tr.Snapshot(), want) {
		t.Fatalf("snapshot = %v, want %v", tr.Snapshot(), want)
	}
}

func TestTrackerRecordExistingMovesToRecent(t *testing.T) {
	tr := NewTracker(3, nil)
	tr.Record("a")
	tr.Record("b")
	tr.Record("a")

	if want := []string{"b", "a"}; !reflect.DeepEqual(tr.Snapshot(), want) {
		t.Fatalf("snapshot = %v, want %v", tr.Snapshot(), want)
	}
}

func TestTrackerSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(3, nil)
	tr.Record("a")
	snap := tr.Snapshot()
	snap[0] = "mutated"
	if tr.Snapshot()[0] != "a" {
		t.Fatalf("snapshot aliased internal state")
	}
}
