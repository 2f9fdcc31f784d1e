package summary

import (
	"iter"
	"time"
)

// snapshotStep is the fixed spacing between successive grid points used to
// sample the in-flight and progress curves.
const snapshotStep = 5 * time.Millisecond

// Snapshots is a half-open finite sequence of instants: min, min+step, …,
// strictly less than max. Unlike a size-hinted iterator, it exposes no
// upper bound on its remaining length; iter.Seq has no channel for one.
type Snapshots struct {
	next time.Time
	max  time.Time
}

// NewSnapshots builds a grid over [min, max).
func NewSnapshots(min, max time.Time) Snapshots {
	return Snapshots{next: min, max: max}
}

// Next advances one step, returning false once the grid is exhausted.
func (s *Snapshots) Next() (time.Time, bool) {
	if !s.next.Before(s.max) {
		return time.Time{}, false
	}
	t := s.next
	s.next = s.next.Add(snapshotStep)
	return t, true
}

// All adapts Next into a range-over-func iterator.
func (s Snapshots) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		cur := s
		for {
			t, ok := cur.Next()
			if !ok {
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}
