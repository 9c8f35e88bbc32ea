package silo

import "iter"

// ChunkView is a read-only window into one matched chunk: the live identifier
// prefix plus, for each queried component in query order, that component's
// field columns trimmed to the live prefix. Views hold non-owning references
// into chunk storage; writes through their columns land in the chunks.
type ChunkView struct {
	ids     []EntityID
	columns [][][]byte // [queried component][field index] -> live column prefix
}

// Len is the chunk's live count at snapshot time.
func (v *ChunkView) Len() int {
	return len(v.ids)
}

// EntityAt returns the identifier stored at a dense slot of this chunk.
func (v *ChunkView) EntityAt(slot int) EntityID {
	return v.ids[slot]
}

// Column returns the raw live bytes of one field. component indexes the
// queried component list, not the registry.
func (v *ChunkView) Column(component, field int) []byte {
	return v.columns[component][field]
}

// Iterator is a transient snapshot over the chunks matched by a query.
type Iterator struct {
	views []ChunkView
	pos   int
}

// ChunkCount is the number of matched chunks in the snapshot.
func (it *Iterator) ChunkCount() int {
	return len(it.views)
}

// Len is the total number of live entities across all matched chunks.
func (it *Iterator) Len() int {
	total := 0
	for i := range it.views {
		total += len(it.views[i].ids)
	}
	return total
}

// Next advances to the next chunk view. It returns false once the snapshot is
// exhausted.
func (it *Iterator) Next() bool {
	it.pos++
	return it.pos < len(it.views)
}

// View returns the current chunk view. Valid only after Next reported true.
func (it *Iterator) View() *ChunkView {
	return &it.views[it.pos]
}

// Reset rewinds chunk stepping without rebuilding the snapshot.
func (it *Iterator) Reset() {
	it.pos = -1
}

// Chunks iterates the snapshot's chunk views in order.
func (it *Iterator) Chunks() iter.Seq[*ChunkView] {
	return func(yield func(*ChunkView) bool) {
		for i := range it.views {
			if !yield(&it.views[i]) {
				return
			}
		}
	}
}

// Entities iterates every live entity in the snapshot, yielding its dense slot
// and the view of the chunk holding it.
func (it *Iterator) Entities() iter.Seq2[int, *ChunkView] {
	return func(yield func(int, *ChunkView) bool) {
		for i := range it.views {
			v := &it.views[i]
			for slot := range v.ids {
				if !yield(slot, v) {
					return
				}
			}
		}
	}
}

// Release drops the iterator's own bookkeeping. The underlying chunk storage
// is owned by the World and is not touched.
func (it *Iterator) Release() {
	it.views = nil
	it.pos = -1
}
