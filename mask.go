package silo

// mask256 is a fixed 256-bit set of component ids. One bit per id, covering
// the full MaxComponentTypes id space. The zero value is the empty set, and
// the type is comparable so it can key the archetype lookup map.
type mask256 [4]uint64

func (m *mask256) set(bit ComponentID) {
	m[bit>>6] |= uint64(1) << (uint64(bit) & 63)
}

func (m mask256) has(bit ComponentID) bool {
	return m[bit>>6]&(uint64(1)<<(uint64(bit)&63)) != 0
}

// containsAll reports whether every bit set in sub is also set in m. This is
// the order-independent superset test used for query matching.
func (m mask256) containsAll(sub mask256) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

// maskOf builds the mask for a set of component ids.
func maskOf(ids []ComponentID) mask256 {
	var m mask256
	for _, id := range ids {
		m.set(id)
	}
	return m
}
