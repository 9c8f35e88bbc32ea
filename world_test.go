package silo

import (
	"errors"
	"testing"
)

func testWorld(t *testing.T, cfg Config) *world {
	t.Helper()
	w, err := Factory.NewWorld(cfg)
	if err != nil {
		t.Fatalf("Failed to create world: %v", err)
	}
	return w.(*world)
}

// TestArchetypeReuse tests that component sets map to archetypes regardless of
// order, and that distinct sets get distinct archetypes.
func TestArchetypeReuse(t *testing.T) {
	tests := []struct {
		name           string
		first          func(a, b, c ComponentID) []ComponentID
		second         func(a, b, c ComponentID) []ComponentID
		wantArchetypes int
	}{
		{
			name:           "Identical components",
			first:          func(a, b, c ComponentID) []ComponentID { return []ComponentID{a, b} },
			second:         func(a, b, c ComponentID) []ComponentID { return []ComponentID{a, b} },
			wantArchetypes: 1,
		},
		{
			name:           "Different order",
			first:          func(a, b, c ComponentID) []ComponentID { return []ComponentID{a, b} },
			second:         func(a, b, c ComponentID) []ComponentID { return []ComponentID{b, a} },
			wantArchetypes: 1,
		},
		{
			name:           "Different components",
			first:          func(a, b, c ComponentID) []ComponentID { return []ComponentID{a} },
			second:         func(a, b, c ComponentID) []ComponentID { return []ComponentID{b} },
			wantArchetypes: 2,
		},
		{
			name:           "Subset is a different archetype",
			first:          func(a, b, c ComponentID) []ComponentID { return []ComponentID{a, b} },
			second:         func(a, b, c ComponentID) []ComponentID { return []ComponentID{a} },
			wantArchetypes: 2,
		},
		{
			name:           "Superset is a different archetype",
			first:          func(a, b, c ComponentID) []ComponentID { return []ComponentID{a} },
			second:         func(a, b, c ComponentID) []ComponentID { return []ComponentID{a, b, c} },
			wantArchetypes: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, Factory.DefaultConfig())
			a, _ := w.RegisterComponent(8)
			b, _ := w.RegisterComponent(4)
			c, _ := w.RegisterComponent(2)

			if _, err := w.NewEntity(tt.first(a, b, c)...); err != nil {
				t.Fatalf("First NewEntity() error: %v", err)
			}
			if _, err := w.NewEntity(tt.second(a, b, c)...); err != nil {
				t.Fatalf("Second NewEntity() error: %v", err)
			}
			if got := w.ArchetypeCount(); got != tt.wantArchetypes {
				t.Errorf("ArchetypeCount() = %d, want %d", got, tt.wantArchetypes)
			}
		})
	}
}

func TestComponentRegistration(t *testing.T) {
	tests := []struct {
		name      string
		widths    []uint8
		wantError bool
	}{
		{"Single field", []uint8{8}, false},
		{"Many fields", []uint8{1, 2, 4, 8, 255}, false},
		{"No fields", nil, false},
		{"Zero width field", []uint8{8, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWorld(t, Factory.DefaultConfig())
			id, err := w.RegisterComponent(tt.widths...)
			if (err != nil) != tt.wantError {
				t.Fatalf("RegisterComponent() error = %v, wantError %v", err, tt.wantError)
			}
			if !tt.wantError && id != 0 {
				t.Errorf("First registration id = %d, want 0", id)
			}
		})
	}
}

func TestComponentRegistryLimit(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	for i := 0; i < MaxComponentTypes; i++ {
		if _, err := w.RegisterComponent(1); err != nil {
			t.Fatalf("Registration %d failed: %v", i, err)
		}
	}
	_, err := w.RegisterComponent(1)
	var limitErr RegistryLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("Registration past limit error = %v, want RegistryLimitError", err)
	}
	if limitErr.Limit != MaxComponentTypes {
		t.Errorf("Limit = %d, want %d", limitErr.Limit, MaxComponentTypes)
	}
}

func TestNamedComponents(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())

	pos, err := w.RegisterNamedComponent("position", 8, 8)
	if err != nil {
		t.Fatalf("RegisterNamedComponent() error: %v", err)
	}
	got, ok := w.ComponentByName("position")
	if !ok || got != pos {
		t.Errorf("ComponentByName(position) = %d, %v, want %d, true", got, ok, pos)
	}
	if _, ok := w.ComponentByName("velocity"); ok {
		t.Error("ComponentByName(velocity) found an unregistered name")
	}
	_, err = w.RegisterNamedComponent("position", 4)
	var taken NameTakenError
	if !errors.As(err, &taken) {
		t.Fatalf("Duplicate name error = %v, want NameTakenError", err)
	}
	// The failed registration must not consume a registry slot.
	if got := w.registry.count(); got != 1 {
		t.Errorf("Registry count after duplicate name = %d, want 1", got)
	}
}

// TestFieldRoundTrip tests that a value written through Field reads back
// unchanged, both raw and through the typed accessor.
func TestFieldRoundTrip(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	pos, _ := w.RegisterComponent(8, 8, 8)
	vel, _ := w.RegisterComponent(8, 8, 8)

	id, err := w.NewEntity(pos, vel)
	if err != nil {
		t.Fatalf("NewEntity() error: %v", err)
	}

	px, err := FieldAs[float64](w, id, pos, 0)
	if err != nil {
		t.Fatalf("FieldAs() error: %v", err)
	}
	*px = 123.25

	raw, err := w.Field(id, pos, 0)
	if err != nil {
		t.Fatalf("Field() error: %v", err)
	}
	if len(raw) != 8 {
		t.Fatalf("Field() length = %d, want 8", len(raw))
	}
	back, err := FieldAs[float64](w, id, pos, 0)
	if err != nil {
		t.Fatalf("FieldAs() error: %v", err)
	}
	if *back != 123.25 {
		t.Errorf("Round-trip value = %v, want 123.25", *back)
	}
}

func TestFieldErrors(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	pos, _ := w.RegisterComponent(8, 8)
	vel, _ := w.RegisterComponent(8)
	id, _ := w.NewEntity(pos)

	tests := []struct {
		name   string
		call   func() error
		target error
	}{
		{
			name: "Component absent from entity",
			call: func() error {
				_, err := w.Field(id, vel, 0)
				return err
			},
			target: ComponentNotFoundError{Entity: id, Component: vel},
		},
		{
			name: "Field index out of range",
			call: func() error {
				_, err := w.Field(id, pos, 2)
				return err
			},
			target: FieldRangeError{Component: pos, Index: 2, Count: 2},
		},
		{
			name: "Unknown entity beyond sparse range",
			call: func() error {
				_, err := w.Field(1 << 30, pos, 0)
				return err
			},
			target: InvalidEntityError{ID: 1 << 30},
		},
		{
			name: "Unregistered component",
			call: func() error {
				_, err := w.Field(id, 200, 0)
				return err
			},
			target: UnknownComponentError{ID: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil || err.Error() != tt.target.Error() {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestFieldAsSizeMismatch(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	pos, _ := w.RegisterComponent(8)
	id, _ := w.NewEntity(pos)

	_, err := FieldAs[float32](w, id, pos, 0)
	var sizeErr FieldSizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("FieldAs[float32] on 8-byte field error = %v, want FieldSizeError", err)
	}
	if sizeErr.Width != 8 || sizeErr.Size != 4 {
		t.Errorf("FieldSizeError = %+v, want Width 8 Size 4", sizeErr)
	}
}

func TestNewEntityValidation(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	pos, _ := w.RegisterComponent(8)

	if _, err := w.NewEntity(pos, pos); err == nil {
		t.Error("NewEntity with duplicate component succeeded, want error")
	}
	if _, err := w.NewEntity(pos, 99); err == nil {
		t.Error("NewEntity with unregistered component succeeded, want error")
	}
	// Failed inserts must not leak identifiers.
	id, err := w.NewEntity(pos)
	if err != nil {
		t.Fatalf("NewEntity() error: %v", err)
	}
	if id != 0 {
		t.Errorf("First issued id = %d, want 0", id)
	}
}

// TestSwapAndPop tests compaction after removing a non-last entity: survivors
// keep their values, the previously-last entity lands in the vacated slot, and
// the removed id becomes invalid.
func TestSwapAndPop(t *testing.T) {
	w := testWorld(t, Config{DenseChunkSize: 8, SparseChunkSize: 8, InitialSparseChunks: 1})
	val, _ := w.RegisterComponent(8)

	ids := make([]EntityID, 5)
	for i := range ids {
		id, err := w.NewEntity(val)
		if err != nil {
			t.Fatalf("NewEntity() error: %v", err)
		}
		ids[i] = id
		p, _ := FieldAs[float64](w, id, val, 0)
		*p = float64(id) * 1.5
	}

	if err := w.RemoveEntity(ids[1]); err != nil {
		t.Fatalf("RemoveEntity() error: %v", err)
	}

	if w.Alive(ids[1]) {
		t.Error("Removed entity still reported alive")
	}
	if _, err := w.Field(ids[1], val, 0); err == nil {
		t.Error("Field() on removed entity succeeded, want error")
	}
	if got := w.EntityCount(); got != 4 {
		t.Errorf("EntityCount() = %d, want 4", got)
	}

	// Survivors read back unchanged.
	for _, id := range []EntityID{ids[0], ids[2], ids[3], ids[4]} {
		p, err := FieldAs[float64](w, id, val, 0)
		if err != nil {
			t.Fatalf("Field access for survivor %d failed: %v", id, err)
		}
		if want := float64(id) * 1.5; *p != want {
			t.Errorf("Survivor %d value = %v, want %v", id, *p, want)
		}
	}

	// The previously-last entity was moved into the vacated slot.
	loc, ok := w.sparse.get(ids[4])
	if !ok {
		t.Fatal("Sparse lookup for moved entity failed")
	}
	if loc.slot != 1 {
		t.Errorf("Moved entity slot = %d, want 1", loc.slot)
	}
}

func TestRemoveLastSlot(t *testing.T) {
	w := testWorld(t, Config{DenseChunkSize: 8, SparseChunkSize: 8, InitialSparseChunks: 1})
	val, _ := w.RegisterComponent(4)

	a, _ := w.NewEntity(val)
	b, _ := w.NewEntity(val)

	if err := w.RemoveEntity(b); err != nil {
		t.Fatalf("RemoveEntity() error: %v", err)
	}
	if !w.Alive(a) || w.Alive(b) {
		t.Errorf("Alive(a)=%v Alive(b)=%v, want true false", w.Alive(a), w.Alive(b))
	}
	if got := w.archetypes[0].chunks[0].length; got != 1 {
		t.Errorf("Chunk live count = %d, want 1", got)
	}
}

func TestRemoveEntityErrors(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	val, _ := w.RegisterComponent(4)
	id, _ := w.NewEntity(val)

	if err := w.RemoveEntity(id); err != nil {
		t.Fatalf("RemoveEntity() error: %v", err)
	}
	// Double removal must fail, not corrupt the free-list.
	if err := w.RemoveEntity(id); err == nil {
		t.Error("Second RemoveEntity() succeeded, want error")
	}
	if err := w.RemoveEntity(1 << 20); err == nil {
		t.Error("RemoveEntity() of never-issued id succeeded, want error")
	}
	if got := w.EntityCount(); got != 0 {
		t.Errorf("EntityCount() = %d, want 0", got)
	}
}

// TestIdentifierReuseLIFO tests the free-list stack discipline: the most
// recently freed id is reused first.
func TestIdentifierReuseLIFO(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	val, _ := w.RegisterComponent(4)

	a, _ := w.NewEntity(val)
	b, _ := w.NewEntity(val)
	if _, err := w.NewEntity(val); err != nil {
		t.Fatalf("NewEntity() error: %v", err)
	}

	if err := w.RemoveEntity(a); err != nil {
		t.Fatalf("RemoveEntity(a) error: %v", err)
	}
	if err := w.RemoveEntity(b); err != nil {
		t.Fatalf("RemoveEntity(b) error: %v", err)
	}

	first, _ := w.NewEntity(val)
	second, _ := w.NewEntity(val)
	if first != b {
		t.Errorf("First reissued id = %d, want %d", first, b)
	}
	if second != a {
		t.Errorf("Second reissued id = %d, want %d", second, a)
	}
}

// TestChunkOverflow tests that inserting one entity past a chunk's capacity
// produces exactly two chunks, the first full.
func TestChunkOverflow(t *testing.T) {
	const n = 4
	w := testWorld(t, Config{DenseChunkSize: n, SparseChunkSize: 16, InitialSparseChunks: 1})
	val, _ := w.RegisterComponent(8)

	for i := 0; i < n+1; i++ {
		if _, err := w.NewEntity(val); err != nil {
			t.Fatalf("NewEntity() error: %v", err)
		}
	}

	arch := w.archetypes[0]
	if got := len(arch.chunks); got != 2 {
		t.Fatalf("Chunk count = %d, want 2", got)
	}
	if got := arch.chunks[0].length; got != n {
		t.Errorf("First chunk live count = %d, want %d", got, n)
	}
	if got := arch.chunks[1].length; got != 1 {
		t.Errorf("Second chunk live count = %d, want 1", got)
	}
}

// TestScenario walks a small end-to-end trace: dense chunks of 4, five
// entities with one 8-byte component, then removal of entity 2.
func TestScenario(t *testing.T) {
	w := testWorld(t, Config{DenseChunkSize: 4, SparseChunkSize: 4, InitialSparseChunks: 1})
	pos, err := w.RegisterComponent(8)
	if err != nil {
		t.Fatalf("RegisterComponent() error: %v", err)
	}

	for i := 0; i < 5; i++ {
		id, err := w.NewEntity(pos)
		if err != nil {
			t.Fatalf("NewEntity() error: %v", err)
		}
		if id != EntityID(i) {
			t.Fatalf("Issued id = %d, want %d", id, i)
		}
		p, _ := FieldAs[float64](w, id, pos, 0)
		*p = float64(id)
	}

	if got := w.ArchetypeCount(); got != 1 {
		t.Fatalf("ArchetypeCount() = %d, want 1", got)
	}
	arch := w.archetypes[0]
	if got := len(arch.chunks); got != 2 {
		t.Fatalf("Chunk count = %d, want 2", got)
	}

	if err := w.RemoveEntity(2); err != nil {
		t.Fatalf("RemoveEntity(2) error: %v", err)
	}

	// Entity 3 was last in chunk 0 and fills the vacated slot 2.
	if got := arch.chunks[0].length; got != 3 {
		t.Errorf("Chunk 0 live count = %d, want 3", got)
	}
	if got := arch.chunks[1].length; got != 1 {
		t.Errorf("Chunk 1 live count = %d, want 1", got)
	}
	if got := arch.chunks[0].ids[2]; got != 3 {
		t.Errorf("Chunk 0 slot 2 id = %d, want 3", got)
	}
	loc, _ := w.sparse.get(3)
	if loc.chunk != 0 || loc.slot != 2 {
		t.Errorf("Moved entity location = chunk %d slot %d, want chunk 0 slot 2", loc.chunk, loc.slot)
	}
	p, err := FieldAs[float64](w, 3, pos, 0)
	if err != nil {
		t.Fatalf("Field access for moved entity failed: %v", err)
	}
	if *p != 3 {
		t.Errorf("Moved entity value = %v, want 3", *p)
	}
	if _, err := w.Field(2, pos, 0); err == nil {
		t.Error("Field() on removed id 2 succeeded, want error")
	}
	if got := w.EntityCount(); got != 4 {
		t.Errorf("EntityCount() = %d, want 4", got)
	}
}

func TestSparseIndexGrowthDuringInsert(t *testing.T) {
	w := testWorld(t, Config{DenseChunkSize: 16, SparseChunkSize: 2, InitialSparseChunks: 1})
	val, _ := w.RegisterComponent(2)

	for i := 0; i < 7; i++ {
		id, err := w.NewEntity(val)
		if err != nil {
			t.Fatalf("NewEntity() error: %v", err)
		}
		if !w.Alive(id) {
			t.Fatalf("Entity %d not alive after insert", id)
		}
	}
	if got := len(w.sparse.chunks); got != 4 {
		t.Errorf("Sparse chunk count = %d, want 4", got)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"Zero dense chunk size", Config{DenseChunkSize: 0, SparseChunkSize: 4, InitialSparseChunks: 1}},
		{"Zero sparse chunk size", Config{DenseChunkSize: 4, SparseChunkSize: 0, InitialSparseChunks: 1}},
		{"Zero initial sparse chunks", Config{DenseChunkSize: 4, SparseChunkSize: 4, InitialSparseChunks: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Factory.NewWorld(tt.cfg)
			var cfgErr ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("NewWorld() error = %v, want ConfigError", err)
			}
		})
	}
}

func TestEmptySignatureEntity(t *testing.T) {
	w := testWorld(t, Factory.DefaultConfig())
	id, err := w.NewEntity()
	if err != nil {
		t.Fatalf("NewEntity() with no components error: %v", err)
	}
	if !w.Alive(id) {
		t.Error("Component-less entity not alive")
	}
	if got := w.ArchetypeCount(); got != 1 {
		t.Errorf("ArchetypeCount() = %d, want 1", got)
	}
	if err := w.RemoveEntity(id); err != nil {
		t.Fatalf("RemoveEntity() error: %v", err)
	}
}
