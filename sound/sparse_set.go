package sound

// sparseSet stores values keyed by slot id with dense iteration order.
type sparseSet[T any] struct {
	denseIDs    []slotID
	denseValues []T
	sparse      []int
}

func (s *sparseSet[T]) has(id slotID) bool {
	if id == 0 || int(id)-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

func (s *sparseSet[T]) get(id slotID) (T, bool) {
	var zero T
	if !s.has(id) {
		return zero, false
	}
	return s.denseValues[s.sparse[id-1]], true
}

func (s *sparseSet[T]) set(id slotID, v T) {
	if id == 0 {
		return
	}
	for int(id)-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

func (s *sparseSet[T]) remove(id slotID) {
	if !s.has(id) {
		return
	}
	idx := s.sparse[id-1]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = s.denseIDs[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
}

func (s *sparseSet[T]) len() int {
	return len(s.denseIDs)
}

// values returns a copy of the dense values, safe to hold while the set is
// mutated.
func (s *sparseSet[T]) values() []T {
	out := make([]T, len(s.denseValues))
	copy(out, s.denseValues)
	return out
}
