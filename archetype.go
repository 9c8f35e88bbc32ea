package silo

// archetype owns the chunk sequence for one component signature. Archetypes
// are created lazily on first insertion of a new signature and never
// destroyed, merged, or split.
type archetype struct {
	id        ArchetypeID
	signature []ComponentID // sorted, duplicate-free
	mask      mask256
	chunks    []*chunk
}

func newArchetype(id ArchetypeID, signature []ComponentID, reg *componentRegistry, capacity uint32) *archetype {
	a := &archetype{
		id:        id,
		signature: signature,
		mask:      maskOf(signature),
		chunks:    []*chunk{newChunk(reg, signature, capacity)},
	}
	return a
}

// append places an entity in the first chunk with room, allocating a new chunk
// when all are full. Amortized O(1); worst case linear in the chunk count.
func (a *archetype) append(id EntityID, reg *componentRegistry, capacity uint32) (chunkIndex, slot uint32) {
	for i, c := range a.chunks {
		if !c.full(capacity) {
			return uint32(i), c.push(id)
		}
	}
	c := newChunk(reg, a.signature, capacity)
	a.chunks = append(a.chunks, c)
	return uint32(len(a.chunks) - 1), c.push(id)
}

func (a *archetype) contains(component ComponentID) bool {
	return a.mask.has(component)
}
