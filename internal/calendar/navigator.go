package calendar

import (
	"sync"
	"time"
)

// Navigator holds one viewer's current week and a monotonically increasing
// generation token. Every transition bumps the generation; a fetch started
// under an older generation must be discarded (last request wins).
type Navigator struct {
	mu   sync.Mutex
	week Week
	gen  uint64
}

// NewNavigator starts at the week containing now.
func NewNavigator(now time.Time) *Navigator {
	return &Navigator{week: WeekOf(now)}
}

// Current returns the current week and generation without navigating.
func (n *Navigator) Current() (Week, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.week, n.gen
}

// Next advances to the following week.
func (n *Navigator) Next() (Week, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.week = n.week.Next()
	n.gen++
	return n.week, n.gen
}

// Previous moves back one week.
func (n *Navigator) Previous() (Week, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.week = n.week.Previous()
	n.gen++
	return n.week, n.gen
}

// JumpToCurrentWeek resets to the week containing now.
func (n *Navigator) JumpToCurrentWeek(now time.Time) (Week, uint64) {
	return n.JumpTo(WeekOf(now))
}

// JumpTo moves directly to the given week.
func (n *Navigator) JumpTo(w Week) (Week, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.week = w
	n.gen++
	return n.week, n.gen
}

// IsLatest reports whether gen is still the newest navigation. Results
// fetched under a superseded generation must not be applied.
func (n *Navigator) IsLatest(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return gen == n.gen
}
