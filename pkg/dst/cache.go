package dst

import (
	"sync"

	"github.com/cakeflow/cake/pkg/value"
)

// cacheSlot memoizes the result of computing a single producer Output. It
// is single-writer/multi-reader: many goroutines may read a settled value
// concurrently, but only the goroutine that actually computed the value
// writes it, once.
type cacheSlot struct {
	mu    sync.RWMutex
	has   bool
	value value.Value
}

// Get returns the cached value, if any.
func (s *cacheSlot) Get() (value.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.has
}

// Set stores a newly computed value. Only successful computations are ever
// stored; inner algorithm errors are never cached (see Compute).
func (s *cacheSlot) Set(v value.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.has = true
}

// Clear drops a memoized value, forcing the next read to recompute.
func (s *cacheSlot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.has = false
}

// CacheSlot returns the cache slot backing o, creating it if the producer
// transform exists but has not been read or written yet. Returns nil if o's
// transform does not exist.
func (g *Graph) CacheSlot(o Output) *cacheSlot {
	g.structMu.Lock()
	defer g.structMu.Unlock()
	return g.cacheSlotLocked(o)
}

func (g *Graph) cacheSlotLocked(o Output) *cacheSlot {
	if _, ok := g.transforms[o.Transform]; !ok {
		return nil
	}
	slot, ok := g.cache[o]
	if !ok {
		slot = &cacheSlot{}
		g.cache[o] = slot
	}
	return slot
}

// invalidateForward clears the cache slot for every Output reachable
// forward (through edges) from start, inclusive of start itself. Called
// whenever a mutation changes how a producer's value is computed.
func (g *Graph) invalidateForward(start TransformIdx) {
	visited := make(map[TransformIdx]bool)
	var walk func(TransformIdx)
	walk = func(idx TransformIdx) {
		if visited[idx] {
			return
		}
		visited[idx] = true
		inst, ok := g.transforms[idx]
		if !ok {
			return
		}
		for oi := range inst.t.Outputs {
			o := Output{Transform: idx, Output: oi}
			if slot, ok := g.cache[o]; ok {
				slot.Clear()
			}
			for in := range g.edges[o] {
				walk(in.Transform)
			}
		}
	}
	walk(start)
}
