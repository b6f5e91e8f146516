package service

import "sync"

// RefreshGate hands out monotonically increasing sequence tokens per
// child so that overlapping refreshes can detect when they lost the
// race. Begin marks a new refresh as the current one; Commit reports
// whether the given token still is. A refresh whose Commit returns
// false must drop its result instead of overwriting fresher state.
type RefreshGate struct {
	mu  sync.Mutex
	seq map[int64]uint64
}

// NewRefreshGate creates a new refresh gate
func NewRefreshGate() *RefreshGate {
	return &RefreshGate{seq: make(map[int64]uint64)}
}

// Begin registers a new refresh for a child and returns its token
func (g *RefreshGate) Begin(childID int64) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq[childID]++
	return g.seq[childID]
}

// Commit reports whether the token belongs to the newest refresh for the child
func (g *RefreshGate) Commit(childID int64, token uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq[childID] == token
}
