package novelty

// DefaultLimit is the number of notified announcement ids retained.
const DefaultLimit = 50

// Tracker holds the bounded, ordered set of already-notified announcement
// identifiers, most-recent-last. It decides new vs. duplicate and computes
// the trimmed sequence to persist. The tracker is source-agnostic: callers
// supply fully-qualified ids. It is not safe for concurrent use; the
// pipeline owns it from a single goroutine.
type Tracker struct {
	limit int
	order []string
	seen  map[string]struct{}
}

// NewTracker builds a tracker seeded with a previously persisted sequence.
// Duplicates in the seed are collapsed keeping the most recent position;
// the seed is trimmed to the limit from the oldest end.
func NewTracker(limit int, initial []string) *Tracker {
	if limit <= 0 {
		limit = DefaultLimit
	}
	t := &Tracker{
		limit: limit,
		order: make([]string, 0, limit),
		seen:  make(map[string]struct{}, limit),
	}
	for _, id := range initial {
		if id == "" {
			continue
		}
		t.Record(id)
	}
	return t
}

// IsNew reports whether id has not been notified yet.
func (t *Tracker) IsNew(id string) bool {
	_, ok := t.seen[id]
	return !ok
}

// Record appends id at the most-recent position, moving it there if already
// present, then trims the sequence to the limit by dropping from the oldest
// end. The already-present case should not occur behind the IsNew gate, but
// the operation is defined to be idempotent-safe.
func (t *Tracker) Record(id string) {
	if _, ok := t.seen[id]; ok {
		for i, v := range t.order {
			if v == id {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	t.order = append(t.order, id)
	t.seen[id] = struct{}{}

	for len(t.order) > t.limit {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.seen, oldest)
	}
}

// Snapshot returns a copy of the ordered sequence for persistence.
func (t *Tracker) Snapshot() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the current sequence length.
func (t *Tracker) Len() int { return len(t.order) }
