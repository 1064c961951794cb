package ecs

// Entities allocates generational ids. Freed slots are reused in LIFO order,
// which keeps allocation deterministic for a given create/destroy sequence.
type Entities struct {
	gen  []generation
	free []entityID
}

// Create allocates a new entity.
func (s *Entities) Create() Entity {
	if s == nil {
		return 0
	}
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		return makeEntity(id, s.gen[id-1])
	}
	s.gen = append(s.gen, 1)
	return makeEntity(entityID(len(s.gen)), 1)
}

// Destroy releases e. Stale or unknown handles are ignored.
func (s *Entities) Destroy(e Entity) bool {
	if !s.IsAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.gen[idx]++
	s.free = append(s.free, e.id())
	return true
}

// IsAlive reports whether e refers to a live slot.
func (s *Entities) IsAlive(e Entity) bool {
	if s == nil || !e.Valid() || int(e.id()) > len(s.gen) {
		return false
	}
	return s.gen[e.id()-1] == e.generation()
}

// Alive returns the number of live entities.
func (s *Entities) Alive() int {
	if s == nil {
		return 0
	}
	return len(s.gen) - len(s.free)
}

// Reset invalidates every handle handed out so far. Slots are kept so old
// handles stay dead, and the next Create returns the lowest slot again.
func (s *Entities) Reset() {
	if s == nil {
		return
	}
	s.free = s.free[:0]
	for i := len(s.gen) - 1; i >= 0; i-- {
		s.gen[i]++
		s.free = append(s.free, entityID(i+1))
	}
}
