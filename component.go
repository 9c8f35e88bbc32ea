package silo

// componentType is the registered metadata for one component: an ordered list
// of field byte-widths. Pure metadata, immutable after registration.
type componentType struct {
	widths []uint8
}

// componentRegistry assigns sequential ids starting at 0. Entries are never
// removed or modified.
type componentRegistry struct {
	types []componentType
}

func (r *componentRegistry) register(widths []uint8) (ComponentID, error) {
	if len(r.types) >= MaxComponentTypes {
		return 0, RegistryLimitError{Kind: "component", Limit: MaxComponentTypes}
	}
	if len(widths) > MaxComponentFields {
		return 0, FieldLayoutError{Reason: "more than 255 fields"}
	}
	for _, w := range widths {
		if w == 0 {
			return 0, FieldLayoutError{Reason: "zero-width field"}
		}
	}
	id := ComponentID(len(r.types))
	r.types = append(r.types, componentType{widths: append([]uint8(nil), widths...)})
	return id, nil
}

func (r *componentRegistry) count() int {
	return len(r.types)
}

func (r *componentRegistry) registered(id ComponentID) bool {
	return int(id) < len(r.types)
}

func (r *componentRegistry) fieldWidths(id ComponentID) []uint8 {
	return r.types[id].widths
}
