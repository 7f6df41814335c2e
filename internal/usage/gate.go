// Package usage bounds the number of rewrites an anonymous user may perform
// before being asked to sign in.
package usage

import (
	"fmt"
	"sync"
)

const DefaultLimit = 3

// Store persists the anonymous usage count.
type Store interface {
	Load() (int, error)
	Save(count int) error
}

type State int

const (
	BelowLimit State = iota
	AtLimit
)

func (s State) String() string {
	if s == AtLimit {
		return "at_limit"
	}
	return "below_limit"
}

// Gate is a two-state counter: BelowLimit until count reaches the limit, then
// AtLimit for good. It never resets itself.
type Gate struct {
	mu    sync.Mutex
	store Store
	limit int
	count int
}

// NewGate loads the persisted count and derives the initial state from it.
func NewGate(store Store, limit int) (*Gate, error) {
	if limit < 0 {
		limit = 0
	}
	count, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load usage count: %w", err)
	}
	if count < 0 {
		count = 0
	}
	return &Gate{store: store, limit: limit, count: count}, nil
}

// TryConsume records one use. It returns false without touching state once
// the limit has been reached. The call that brings the count to the limit
// still succeeds; only the next one is refused.
func (g *Gate) TryConsume() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.count >= g.limit {
		return false, nil
	}
	next := g.count + 1
	if err := g.store.Save(next); err != nil {
		return false, fmt.Errorf("save usage count: %w", err)
	}
	g.count = next
	return true, nil
}

func (g *Gate) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

func (g *Gate) Limit() int {
	return g.limit
}

func (g *Gate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count >= g.limit {
		return 0
	}
	return g.limit - g.count
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.count >= g.limit {
		return AtLimit
	}
	return BelowLimit
}
