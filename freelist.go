package silo

// idStack is the identifier free-list. The backing array is pre-filled with
// ascending ids; ids[top:] are free, ids[:top] have been issued and not yet
// returned. pop issues the id at top, push returns one there, so the most
// recently freed id is always reused first.
type idStack struct {
	ids []EntityID
	top uint32
}

func newIDStack(capacity uint32) idStack {
	s := idStack{ids: make([]EntityID, capacity)}
	for i := range s.ids {
		s.ids[i] = EntityID(i)
	}
	return s
}

// pop issues the next id. When the stack is exhausted the backing capacity
// doubles and the new span is filled with the next ascending ids, unlike the
// sparse index which grows linearly. Returns whether a growth happened.
func (s *idStack) pop() (EntityID, bool) {
	grown := false
	if s.top >= uint32(len(s.ids)) {
		next := make([]EntityID, 2*len(s.ids))
		copy(next, s.ids)
		for i := int(s.top); i < len(next); i++ {
			next[i] = EntityID(i)
		}
		s.ids = next
		grown = true
	}
	id := s.ids[s.top]
	s.top++
	return id, grown
}

func (s *idStack) push(id EntityID) {
	s.top--
	s.ids[s.top] = id
}

// live is the number of issued, not-yet-returned ids.
func (s *idStack) live() int {
	return int(s.top)
}
