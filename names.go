package silo

// nameIndex is an optional lookup from component name to id, populated by
// RegisterNamedComponent. Names are write-once; the index never exceeds the
// component registry's capacity.
type nameIndex struct {
	ids map[string]ComponentID
}

func newNameIndex() *nameIndex {
	return &nameIndex{ids: make(map[string]ComponentID)}
}

func (n *nameIndex) register(name string, id ComponentID) error {
	if _, taken := n.ids[name]; taken {
		return NameTakenError{Name: name}
	}
	n.ids[name] = id
	return nil
}

func (n *nameIndex) lookup(name string) (ComponentID, bool) {
	id, ok := n.ids[name]
	return id, ok
}
