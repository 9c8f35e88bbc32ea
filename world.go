package silo

import (
	"slices"

	"go.uber.org/zap"
)

var _ World = &world{}

type world struct {
	cfg        Config
	log        *zap.Logger
	registry   componentRegistry
	names      *nameIndex
	archetypes []*archetype
	idsByMask  map[mask256]ArchetypeID
	sparse     sparseIndex
	free       idStack
}

// Option configures a World at construction.
type Option func(*world)

// WithLogger attaches a logger for storage events (archetype creation, chunk
// allocation, index growth). The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *world) { w.log = l }
}

func newWorld(cfg Config, opts ...Option) (World, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	w := &world{
		cfg:       cfg,
		log:       zap.NewNop(),
		names:     newNameIndex(),
		idsByMask: make(map[mask256]ArchetypeID),
		sparse:    newSparseIndex(cfg.SparseChunkSize, cfg.InitialSparseChunks),
		free:      newIDStack(cfg.SparseChunkSize),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *world) RegisterComponent(widths ...uint8) (ComponentID, error) {
	id, err := w.registry.register(widths)
	if err != nil {
		return 0, err
	}
	w.log.Debug("registered component",
		zap.Uint8("component", uint8(id)),
		zap.Int("fields", len(widths)))
	return id, nil
}

func (w *world) RegisterNamedComponent(name string, widths ...uint8) (ComponentID, error) {
	if _, taken := w.names.lookup(name); taken {
		return 0, NameTakenError{Name: name}
	}
	id, err := w.registry.register(widths)
	if err != nil {
		return 0, err
	}
	if err := w.names.register(name, id); err != nil {
		return 0, err
	}
	w.log.Debug("registered component",
		zap.Uint8("component", uint8(id)),
		zap.String("name", name),
		zap.Int("fields", len(widths)))
	return id, nil
}

func (w *world) ComponentByName(name string) (ComponentID, bool) {
	return w.names.lookup(name)
}

// NewEntity creates an entity carrying the given components. The ids are
// sorted here so caller order never matters; duplicates and unregistered ids
// are rejected before an identifier is consumed.
func (w *world) NewEntity(components ...ComponentID) (EntityID, error) {
	signature := append([]ComponentID(nil), components...)
	slices.Sort(signature)
	for i, c := range signature {
		if !w.registry.registered(c) {
			return 0, UnknownComponentError{ID: c}
		}
		if i > 0 && signature[i-1] == c {
			return 0, DuplicateComponentError{ID: c}
		}
	}

	a, err := w.findOrCreateArchetype(signature)
	if err != nil {
		return 0, err
	}

	id, grew := w.free.pop()
	if grew {
		w.log.Debug("grew id free-list", zap.Int("capacity", len(w.free.ids)))
	}

	chunksBefore := len(a.chunks)
	chunkIndex, slot := a.append(id, &w.registry, w.cfg.DenseChunkSize)
	if len(a.chunks) > chunksBefore {
		w.log.Debug("allocated chunk",
			zap.Uint8("archetype", uint8(a.id)),
			zap.Int("chunks", len(a.chunks)))
	}

	if grown := w.sparse.set(id, location{archetype: a.id, chunk: chunkIndex, slot: slot}); grown > 0 {
		w.log.Debug("grew sparse index", zap.Int("chunks", len(w.sparse.chunks)))
	}
	return id, nil
}

// RemoveEntity returns the id to the free-list and compacts the chunk with a
// swap-and-pop. The moved entity's sparse entry is the single back-reference
// updated; the removed entity's own entry is left stale and guarded against
// by the liveness check on every lookup.
func (w *world) RemoveEntity(id EntityID) error {
	a, c, loc, err := w.locate(id)
	if err != nil {
		return err
	}
	w.free.push(id)
	if moved, wasMoved := c.swapRemove(loc.slot, a.signature, &w.registry); wasMoved {
		w.sparse.repoint(moved, loc.slot)
	}
	return nil
}

// Field returns a direct, mutable view of one field value in chunk storage.
// No copy is made; writes through the slice are visible to queries.
func (w *world) Field(id EntityID, component ComponentID, fieldIndex int) ([]byte, error) {
	a, c, loc, err := w.locate(id)
	if err != nil {
		return nil, err
	}
	if !w.registry.registered(component) {
		return nil, UnknownComponentError{ID: component}
	}
	if !a.contains(component) {
		return nil, ComponentNotFoundError{Entity: id, Component: component}
	}
	widths := w.registry.fieldWidths(component)
	if fieldIndex < 0 || fieldIndex >= len(widths) {
		return nil, FieldRangeError{Component: component, Index: fieldIndex, Count: len(widths)}
	}
	return c.field(component, fieldIndex, uint32(widths[fieldIndex]), loc.slot), nil
}

func (w *world) Alive(id EntityID) bool {
	_, _, _, err := w.locate(id)
	return err == nil
}

func (w *world) EntityCount() int {
	return w.free.live()
}

func (w *world) ArchetypeCount() int {
	return len(w.archetypes)
}

// locate resolves an id to its physical slot and proves liveness: the sparse
// entry must be in range and the chunk's identifier column must hold the id at
// the recorded slot. Stale entries for freed ids always fail one of these.
func (w *world) locate(id EntityID) (*archetype, *chunk, location, error) {
	loc, ok := w.sparse.get(id)
	if !ok {
		return nil, nil, location{}, InvalidEntityError{ID: id}
	}
	if int(loc.archetype) >= len(w.archetypes) {
		return nil, nil, location{}, InvalidEntityError{ID: id}
	}
	a := w.archetypes[loc.archetype]
	if loc.chunk >= uint32(len(a.chunks)) {
		return nil, nil, location{}, InvalidEntityError{ID: id}
	}
	c := a.chunks[loc.chunk]
	if loc.slot >= c.length || c.ids[loc.slot] != id {
		return nil, nil, location{}, InvalidEntityError{ID: id}
	}
	return a, c, loc, nil
}

// findOrCreateArchetype resolves the archetype for a sorted, duplicate-free
// signature. The mask-keyed lookup is equivalent to a first-match scan because
// no two archetypes share a signature.
func (w *world) findOrCreateArchetype(signature []ComponentID) (*archetype, error) {
	m := maskOf(signature)
	if id, found := w.idsByMask[m]; found {
		return w.archetypes[id], nil
	}
	if len(w.archetypes) >= MaxArchetypes {
		return nil, RegistryLimitError{Kind: "archetype", Limit: MaxArchetypes}
	}
	a := newArchetype(ArchetypeID(len(w.archetypes)), signature, &w.registry, w.cfg.DenseChunkSize)
	w.archetypes = append(w.archetypes, a)
	w.idsByMask[m] = a.id
	w.log.Debug("created archetype",
		zap.Uint8("archetype", uint8(a.id)),
		zap.Int("components", len(signature)))
	return a, nil
}
