package sound

import "strconv"

// handle names a scheduled timer or fade. The low 32 bits are a slot id and
// the high 32 bits the slot generation, so a handle kept past cancellation
// no longer resolves.
type handle uint64

type slotID uint32
type generation uint32

const slotIDBits = 32

func makeHandle(id slotID, gen generation) handle {
	return handle(uint64(gen)<<slotIDBits | uint64(id))
}

func (h handle) id() slotID {
	return slotID(uint32(h))
}

func (h handle) generation() generation {
	return generation(uint32(uint64(h) >> slotIDBits))
}

func (h handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// valid reports whether h was ever issued. The zero handle never is.
func (h handle) valid() bool {
	return h.id() > 0
}

// handleStore tracks slot generations and free slot ids.
type handleStore struct {
	nextID slotID
	gen    []generation
	free   []slotID
}

func (s *handleStore) create() handle {
	var id slotID
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
	}
	return makeHandle(id, s.gen[id-1])
}

// destroy retires h. Destroying a dead handle is a no-op and returns false.
func (s *handleStore) destroy(h handle) bool {
	if !s.isAlive(h) {
		return false
	}
	idx := h.id() - 1
	s.gen[idx]++
	s.free = append(s.free, h.id())
	return true
}

func (s *handleStore) isAlive(h handle) bool {
	if !h.valid() || int(h.id()) > len(s.gen) {
		return false
	}
	return s.gen[h.id()-1] == h.generation()
}
