// Package clock provides the time sources and waits used by the pollers.
package clock

import (
	"sync"
	"time"
)

// Monotonic hands out UTC timestamps that strictly increase across calls, even when
// the wall clock steps backwards or two calls land on the same tick.
type Monotonic struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// NewMonotonic returns a Monotonic reading from now, or time.Now when nil.
func NewMonotonic(now func() time.Time) *Monotonic {
	if now == nil {
		now = time.Now
	}
	return &Monotonic{now: now}
}

// Now returns the current time, at least one nanosecond after the previous result.
func (m *Monotonic) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.now().UTC()
	if !t.After(m.last) {
		t = m.last.Add(time.Nanosecond)
	}
	m.last = t
	return t
}
