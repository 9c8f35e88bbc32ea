package silo

import (
	"fmt"
	"unsafe"
)

// FieldAs returns a typed pointer to one field value in chunk storage. The
// size of T must equal the field's registered byte width.
func FieldAs[T any](w World, id EntityID, component ComponentID, fieldIndex int) (*T, error) {
	b, err := w.Field(id, component, fieldIndex)
	if err != nil {
		return nil, err
	}
	var zero T
	if uintptr(len(b)) != unsafe.Sizeof(zero) {
		return nil, FieldSizeError{
			Component: component,
			Index:     fieldIndex,
			Width:     len(b),
			Size:      int(unsafe.Sizeof(zero)),
		}
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// ColumnAs reinterprets the live prefix of one field column as a typed slice.
// component indexes the queried component list. The size of T must divide the
// column evenly; mismatched sizes panic, as this is the unchecked hot path.
func ColumnAs[T any](v *ChunkView, component, fieldIndex int) []T {
	col := v.columns[component][fieldIndex]
	if len(col) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || len(col)%size != 0 {
		panic(fmt.Sprintf("silo: type size %d does not divide column of %d bytes", size, len(col)))
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(col))), len(col)/size)
}
