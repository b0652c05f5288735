package interpreter

import "sync"

// Guard is the processing flag. At most one holder is inside a guarded
// section at a time; others are turned away instead of waiting.
//
// Interpreters that must not process concurrently share one Guard.
type Guard struct {
	mu   sync.Mutex
	busy bool
}

// NewGuard returns an idle Guard.
func NewGuard() *Guard {
	return &Guard{}
}

// TryBegin enters the guarded section. It returns false when already busy.
func (g *Guard) TryBegin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// End leaves the guarded section.
func (g *Guard) End() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Busy reports whether a holder is inside the guarded section.
func (g *Guard) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
