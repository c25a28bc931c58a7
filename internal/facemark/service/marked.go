package service

// MarkedSet is the per-session duplicate-suppression cache: the labels this
// session has already pushed through the ledger.  It only saves redundant
// ledger calls — the (identity, day) uniqueness itself is enforced by the
// ledger, so a stale or empty set is never a correctness problem.
//
// Owned by exactly one session; never shared, never persisted.
type MarkedSet struct {
	labels map[int64]struct{}
}

func NewMarkedSet() *MarkedSet {
	return &MarkedSet{labels: make(map[int64]struct{})}
}

func (m *MarkedSet) AlreadyMarked(label int64) bool {
	_, ok := m.labels[label]
	return ok
}

// Mark is idempotent.
func (m *MarkedSet) Mark(label int64) {
	m.labels[label] = struct{}{}
}

func (m *MarkedSet) Len() int { return len(m.labels) }
