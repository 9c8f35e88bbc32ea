package silo

import "fmt"

// ConfigError reports an invalid World construction parameter.
type ConfigError struct {
	Field string
	Value uint32
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s = %d, must be at least 1", e.Field, e.Value)
}

// RegistryLimitError reports that a small-integer id space is exhausted.
type RegistryLimitError struct {
	Kind  string
	Limit int
}

func (e RegistryLimitError) Error() string {
	return fmt.Sprintf("%s registry is full (limit %d)", e.Kind, e.Limit)
}

// FieldLayoutError reports an unusable component field layout at registration.
type FieldLayoutError struct {
	Reason string
}

func (e FieldLayoutError) Error() string {
	return fmt.Sprintf("invalid component layout: %s", e.Reason)
}

// NameTakenError reports a duplicate component name registration.
type NameTakenError struct {
	Name string
}

func (e NameTakenError) Error() string {
	return fmt.Sprintf("component name already registered: %q", e.Name)
}

// InvalidEntityError reports use of an id that is not currently live.
type InvalidEntityError struct {
	ID EntityID
}

func (e InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid entity id: %d", e.ID)
}

// UnknownComponentError reports a component id that was never registered.
type UnknownComponentError struct {
	ID ComponentID
}

func (e UnknownComponentError) Error() string {
	return fmt.Sprintf("component not registered: %d", e.ID)
}

// DuplicateComponentError reports the same component id supplied twice.
type DuplicateComponentError struct {
	ID ComponentID
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("duplicate component id: %d", e.ID)
}

// ComponentNotFoundError reports a component absent from an entity's archetype.
type ComponentNotFoundError struct {
	Entity    EntityID
	Component ComponentID
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not have component %d", e.Entity, e.Component)
}

// FieldRangeError reports a field index beyond a component's registered count.
type FieldRangeError struct {
	Component ComponentID
	Index     int
	Count     int
}

func (e FieldRangeError) Error() string {
	return fmt.Sprintf("field index %d out of range for component %d (%d fields)", e.Index, e.Component, e.Count)
}

// FieldSizeError reports a typed access whose type size does not match the
// registered field width.
type FieldSizeError struct {
	Component ComponentID
	Index     int
	Width     int
	Size      int
}

func (e FieldSizeError) Error() string {
	return fmt.Sprintf("type size %d does not match width %d of component %d field %d", e.Size, e.Width, e.Component, e.Index)
}
