package ecs

// SparseSet is a dense store of T keyed by Entity. Values live in a
// contiguous slice in insertion order; removal compacts the slice without
// reordering so iteration order is stable across runs.
type SparseSet[T any] struct {
	dense  []Entity
	values []T
	sparse []int
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Has reports whether e has a value in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	if s == nil || !e.Valid() {
		return -1, false
	}
	slot := int(e.id()) - 1
	if slot >= len(s.sparse) {
		return -1, false
	}
	idx := s.sparse[slot]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return -1, false
	}
	return idx, true
}

// Get returns a pointer to e's value. The pointer is valid until the next
// Set or Remove on this set.
func (s *SparseSet[T]) Get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return &s.values[idx], true
}

// Set inserts or replaces e's value.
func (s *SparseSet[T]) Set(e Entity, v T) {
	if s == nil || !e.Valid() {
		return
	}
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	slot := int(e.id()) - 1
	for len(s.sparse) <= slot {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[slot] = len(s.dense) - 1
}

// Remove deletes e's value, keeping the order of the rest.
func (s *SparseSet[T]) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	copy(s.dense[idx:], s.dense[idx+1:])
	copy(s.values[idx:], s.values[idx+1:])
	last := len(s.dense) - 1
	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[int(e.id())-1] = -1
	for i := idx; i < len(s.dense); i++ {
		s.sparse[int(s.dense[i].id())-1] = i
	}
	return true
}

// Each visits every value in insertion order. The callback must not add or
// remove entries; collect ids and mutate afterwards.
func (s *SparseSet[T]) Each(fn func(e Entity, v *T)) {
	if s == nil || fn == nil {
		return
	}
	for i := range s.dense {
		fn(s.dense[i], &s.values[i])
	}
}

// Entities returns the dense entity list. Callers must not modify it.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

// Retain drops every entry for which keep returns false and returns the
// dropped entities in their former order.
func (s *SparseSet[T]) Retain(keep func(e Entity, v *T) bool) []Entity {
	if s == nil || keep == nil {
		return nil
	}
	var dropped []Entity
	n := 0
	for i := range s.dense {
		e := s.dense[i]
		if !keep(e, &s.values[i]) {
			dropped = append(dropped, e)
			s.sparse[int(e.id())-1] = -1
			continue
		}
		s.dense[n] = e
		s.values[n] = s.values[i]
		s.sparse[int(e.id())-1] = n
		n++
	}
	var zero T
	for i := n; i < len(s.values); i++ {
		s.values[i] = zero
	}
	s.dense = s.dense[:n]
	s.values = s.values[:n]
	return dropped
}

// Clear removes every entry and returns the removed entities.
func (s *SparseSet[T]) Clear() []Entity {
	return s.Retain(func(Entity, *T) bool { return false })
}
