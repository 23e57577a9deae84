package loader

import "github.com/CrestNiraj12/tootline/domain"

// Snapshot is an immutable, ordered view of a loaded timeline. It is safe
// for concurrent reads; a later load produces a new Snapshot instead of
// mutating this one.
type Snapshot struct {
	statuses []domain.Status
}

// NewSnapshot copies statuses into a new Snapshot.
func NewSnapshot(statuses []domain.Status) *Snapshot {
	out := make([]domain.Status, len(statuses))
	copy(out, statuses)
	return &Snapshot{statuses: out}
}

// Len returns the number of statuses. A nil Snapshot is empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.statuses)
}

// At returns the i-th status.
func (s *Snapshot) At(i int) domain.Status {
	return s.statuses[i]
}

// Statuses returns a copy of the statuses that callers may modify and
// pass back as the Data of the next load.
func (s *Snapshot) Statuses() []domain.Status {
	if s == nil {
		return nil
	}
	out := make([]domain.Status, len(s.statuses))
	copy(out, s.statuses)
	return out
}
