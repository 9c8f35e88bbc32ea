package silo

// EntityID is a stable handle for a live entity. Ids are unique among live
// entities and recycled after removal, most recently freed first.
type EntityID uint32

// ComponentID identifies a registered component layout.
type ComponentID uint8

// ArchetypeID identifies a storage group for one exact component set.
type ArchetypeID uint8

const (
	// MaxComponentTypes bounds the number of component registrations per World.
	MaxComponentTypes = 256

	// MaxArchetypes bounds the number of distinct component sets per World.
	MaxArchetypes = 256

	// MaxComponentFields bounds the field count of a single component.
	MaxComponentFields = 255
)

// World owns the component registry, the archetypes, the sparse index, and the
// identifier free-list. It is not safe for concurrent mutation.
type World interface {
	RegisterComponent(widths ...uint8) (ComponentID, error)
	RegisterNamedComponent(name string, widths ...uint8) (ComponentID, error)
	ComponentByName(name string) (ComponentID, bool)
	NewEntity(components ...ComponentID) (EntityID, error)
	RemoveEntity(id EntityID) error
	Field(id EntityID, component ComponentID, field int) ([]byte, error)
	Alive(id EntityID) bool
	EntityCount() int
	ArchetypeCount() int
	Query(components ...ComponentID) (*Iterator, error)
}
