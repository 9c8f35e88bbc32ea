package silo

// location is the physical address of a live entity: which archetype, which of
// its chunks, and which dense slot within that chunk.
type location struct {
	archetype ArchetypeID
	chunk     uint32
	slot      uint32
}

// sparseChunk holds one fixed-size span of id-to-location triples, stored as
// parallel arrays like the dense side.
type sparseChunk struct {
	archetypes   []ArchetypeID
	chunkIndexes []uint32
	slots        []uint32
}

func newSparseChunk(size uint32) sparseChunk {
	return sparseChunk{
		archetypes:   make([]ArchetypeID, size),
		chunkIndexes: make([]uint32, size),
		slots:        make([]uint32, size),
	}
}

// sparseIndex maps a raw entity id to its location via (id / chunkSize,
// id % chunkSize). Entries are valid only for currently live ids; removal
// leaves entries stale, and liveness is established by the owning World
// through the identifier-column cross-check.
type sparseIndex struct {
	chunks    []sparseChunk
	chunkSize uint32
}

func newSparseIndex(chunkSize, initialChunks uint32) sparseIndex {
	s := sparseIndex{
		chunks:    make([]sparseChunk, 0, initialChunks),
		chunkSize: chunkSize,
	}
	for i := uint32(0); i < initialChunks; i++ {
		s.chunks = append(s.chunks, newSparseChunk(chunkSize))
	}
	return s
}

// set records a location, growing the index one chunk at a time until the id
// is addressable. The index never shrinks. Returns the number of chunks added.
func (s *sparseIndex) set(id EntityID, loc location) int {
	outer := uint32(id) / s.chunkSize
	grown := 0
	for outer >= uint32(len(s.chunks)) {
		s.chunks = append(s.chunks, newSparseChunk(s.chunkSize))
		grown++
	}
	inner := uint32(id) % s.chunkSize
	c := &s.chunks[outer]
	c.archetypes[inner] = loc.archetype
	c.chunkIndexes[inner] = loc.chunk
	c.slots[inner] = loc.slot
	return grown
}

// get returns the recorded location, or false when the id maps beyond the
// currently allocated chunks. In-range stale entries are not detected here.
func (s *sparseIndex) get(id EntityID) (location, bool) {
	outer := uint32(id) / s.chunkSize
	if outer >= uint32(len(s.chunks)) {
		return location{}, false
	}
	inner := uint32(id) % s.chunkSize
	c := &s.chunks[outer]
	return location{
		archetype: c.archetypes[inner],
		chunk:     c.chunkIndexes[inner],
		slot:      c.slots[inner],
	}, true
}

// repoint updates only the dense slot of an existing entry. Used for the one
// back-reference fix-up after a swap-and-pop move.
func (s *sparseIndex) repoint(id EntityID, slot uint32) {
	outer := uint32(id) / s.chunkSize
	inner := uint32(id) % s.chunkSize
	s.chunks[outer].slots[inner] = slot
}
