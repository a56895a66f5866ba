package usecase

import (
	"sync"
	"time"
)

// OrderIDGenerator issues millisecond timestamps as order ids, bumping by one when two
// orders land in the same millisecond.
type OrderIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewOrderIDGenerator returns a generator reading the wall clock.
func NewOrderIDGenerator() *OrderIDGenerator {
	return &OrderIDGenerator{now: time.Now}
}

// Next returns an id greater than every id returned before.
func (g *OrderIDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
