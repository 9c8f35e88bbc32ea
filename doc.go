/*
Package silo provides an archetype-based columnar storage engine for entities and
their typed components.

Silo groups entities by the exact set of components they carry (their archetype)
and lays out every component field as its own contiguous, cache-line-aligned
array. Entities sharing an archetype are stored together in fixed-capacity
chunks, so sequential scans over a field touch one tight array at a time. The
engine does not interpret component contents: a component is an ordered list of
field byte-widths, nothing more.

Core Concepts:

  - Entity: a stable integer handle, recycled after removal (LIFO).
  - Component: a registered field layout (ordered byte widths).
  - Archetype: the storage group for one exact component set.
  - Chunk: a fixed-capacity structure-of-arrays block within an archetype.
  - Sparse index: the table mapping an entity id to its physical slot.

Basic Usage:

	world, _ := silo.Factory.NewWorld(silo.Config{
		DenseChunkSize:      1024,
		SparseChunkSize:     1024,
		InitialSparseChunks: 1,
	})

	// Define components by field widths (here: x, y, z as float64)
	position, _ := world.RegisterComponent(8, 8, 8)
	velocity, _ := world.RegisterComponent(8, 8, 8)

	// Create entities
	id, _ := world.NewEntity(position, velocity)

	// Direct field access
	px, _ := silo.FieldAs[float64](world, id, position, 0)
	*px = 42

	// Query entities and process whole columns
	it, _ := world.Query(position, velocity)
	for view := range it.Chunks() {
		xs := silo.ColumnAs[float64](view, 0, 0)
		dxs := silo.ColumnAs[float64](view, 1, 0)
		for i := range xs {
			xs[i] += dxs[i]
		}
	}
	it.Release()

A World is single-writer: no internal locking is performed, and a live Iterator
must be released before the World is mutated again.
*/
package silo
