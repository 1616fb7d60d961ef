package clock

import (
	"sync"
	"time"
)

// Monotonic hands out UTC timestamps truncated to microseconds (the precision
// postgres keeps) that strictly increase across calls within the process.
type Monotonic struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{now: time.Now}
}

// NewMonotonicFrom uses source as the underlying wall clock.
func NewMonotonicFrom(source func() time.Time) *Monotonic {
	return &Monotonic{now: source}
}

func (m *Monotonic) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := m.now().UTC().Truncate(time.Microsecond)
	if !t.After(m.last) {
		t = m.last.Add(time.Microsecond)
	}
	m.last = t
	return t
}
