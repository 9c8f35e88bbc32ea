package silo

import "unsafe"

// cacheLine is the alignment of every identifier and field column.
const cacheLine = 64

// alignedBytes allocates n bytes whose base address sits on a cache line
// boundary. The returned slice is full-capacity sliced so appends cannot
// escape the column.
func alignedBytes(n uint32) []byte {
	buf := make([]byte, int(n)+cacheLine-1)
	off := 0
	if rem := uintptr(unsafe.Pointer(unsafe.SliceData(buf))) % cacheLine; rem != 0 {
		off = cacheLine - int(rem)
	}
	return buf[off : off+int(n) : off+int(n)]
}

func alignedIDs(capacity uint32) []EntityID {
	b := alignedBytes(capacity * uint32(unsafe.Sizeof(EntityID(0))))
	return unsafe.Slice((*EntityID)(unsafe.Pointer(unsafe.SliceData(b))), capacity)
}

// chunk is a fixed-capacity structure-of-arrays block: one identifier column
// plus one column per field of every component in the owning archetype's
// signature. The first length slots of every column are live and gap-free;
// slots beyond are undefined.
type chunk struct {
	ids     []EntityID
	columns [][][]byte // [component id][field index] -> column; nil when absent
	length  uint32
}

// newChunk sizes the outer column table to the number of components registered
// at creation time; only signature members get backing arrays.
func newChunk(reg *componentRegistry, signature []ComponentID, capacity uint32) *chunk {
	c := &chunk{
		ids:     alignedIDs(capacity),
		columns: make([][][]byte, reg.count()),
	}
	for _, comp := range signature {
		widths := reg.fieldWidths(comp)
		cols := make([][]byte, len(widths))
		for f, w := range widths {
			cols[f] = alignedBytes(uint32(w) * capacity)
		}
		c.columns[comp] = cols
	}
	return c
}

func (c *chunk) full(capacity uint32) bool {
	return c.length >= capacity
}

// push appends an identifier to the live prefix and returns its slot. Field
// columns are left as-is; the new slot holds garbage until written.
func (c *chunk) push(id EntityID) uint32 {
	slot := c.length
	c.ids[slot] = id
	c.length++
	return slot
}

// field returns the mutable width-sized view of one field value at slot.
func (c *chunk) field(component ComponentID, fieldIndex int, width uint32, slot uint32) []byte {
	col := c.columns[component][fieldIndex]
	off := slot * width
	return col[off : off+width : off+width]
}

// swapRemove vacates slot while keeping the live prefix gap-free. When slot is
// not the last live slot, the last entity's identifier and every one of its
// field values are copied into it; the caller must then repoint exactly one
// sparse index entry, the one for the returned moved id.
func (c *chunk) swapRemove(slot uint32, signature []ComponentID, reg *componentRegistry) (moved EntityID, wasMoved bool) {
	last := c.length - 1
	if slot == last {
		c.length--
		return 0, false
	}
	moved = c.ids[last]
	c.ids[slot] = moved
	for _, comp := range signature {
		cols := c.columns[comp]
		for f, w := range reg.fieldWidths(comp) {
			width := uint32(w)
			dst := slot * width
			src := last * width
			copy(cols[f][dst:dst+width], cols[f][src:src+width])
		}
	}
	c.length--
	return moved, true
}
