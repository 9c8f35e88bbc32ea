package silo

// Query builds a snapshot iterator over every archetype whose signature is a
// superset of the queried components, in any order. Two passes: count the
// matching chunks, then collect per-chunk column views and live counts. The
// snapshot does not observe later insertions or removals and must be released
// before the World is mutated if stale views are to be avoided.
func (w *world) Query(components ...ComponentID) (*Iterator, error) {
	var m mask256
	for _, c := range components {
		if !w.registry.registered(c) {
			return nil, UnknownComponentError{ID: c}
		}
		if m.has(c) {
			return nil, DuplicateComponentError{ID: c}
		}
		m.set(c)
	}

	total := 0
	for _, a := range w.archetypes {
		if a.mask.containsAll(m) {
			total += len(a.chunks)
		}
	}
	it := &Iterator{pos: -1}
	if total == 0 {
		return it, nil
	}

	it.views = make([]ChunkView, 0, total)
	for _, a := range w.archetypes {
		if !a.mask.containsAll(m) {
			continue
		}
		for _, c := range a.chunks {
			view := ChunkView{
				ids:     c.ids[:c.length],
				columns: make([][][]byte, len(components)),
			}
			for i, comp := range components {
				widths := w.registry.fieldWidths(comp)
				cols := make([][]byte, len(widths))
				for f, fw := range widths {
					cols[f] = c.columns[comp][f][:c.length*uint32(fw)]
				}
				view.columns[i] = cols
			}
			it.views = append(it.views, view)
		}
	}
	return it, nil
}
