package sound

import (
	"cmp"
	"slices"
	"time"
)

// timer is a deferred continuation that fires once virtual time reaches due.
type timer struct {
	h   handle
	due time.Duration
	seq uint64
	fn  func()
}

// scheduler runs deferred continuations from the frame tick. Nothing blocks:
// advance fires whatever is due and returns.
type scheduler struct {
	handles handleStore
	timers  sparseSet[*timer]
	seq     uint64
}

// after schedules fn to run d after now and returns its cancellation handle.
func (s *scheduler) after(now, d time.Duration, fn func()) handle {
	if d < 0 {
		d = 0
	}
	h := s.handles.create()
	s.seq++
	s.timers.set(h.id(), &timer{h: h, due: now + d, seq: s.seq, fn: fn})
	return h
}

// cancel drops a pending timer. Cancelling a fired or already cancelled
// timer is a no-op and returns false.
func (s *scheduler) cancel(h handle) bool {
	if !s.handles.destroy(h) {
		return false
	}
	s.timers.remove(h.id())
	return true
}

// remaining reports how long until h fires.
func (s *scheduler) remaining(h handle, now time.Duration) (time.Duration, bool) {
	if !s.handles.isAlive(h) {
		return 0, false
	}
	t, ok := s.timers.get(h.id())
	if !ok {
		return 0, false
	}
	return max(t.due-now, 0), true
}

// advance fires every timer due at or before now, earliest first. Timers
// scheduled by a firing callback wait for a later advance.
func (s *scheduler) advance(now time.Duration) int {
	var due []*timer
	for _, t := range s.timers.values() {
		if t.due <= now {
			due = append(due, t)
		}
	}
	slices.SortFunc(due, func(a, b *timer) int {
		if c := cmp.Compare(a.due, b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	fired := 0
	for _, t := range due {
		// An earlier callback in this batch may have cancelled it.
		if !s.cancel(t.h) {
			continue
		}
		fired++
		t.fn()
	}
	return fired
}

func (s *scheduler) pending() int {
	return s.timers.len()
}
