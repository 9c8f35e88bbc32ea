package silo

// Config holds the World construction parameters. All values are fixed for the
// World's lifetime; only the sparse chunk count grows past InitialSparseChunks.
type Config struct {
	// DenseChunkSize is the entity capacity of every archetype data chunk.
	DenseChunkSize uint32

	// SparseChunkSize is the slot count of every sparse index chunk. It also
	// sets the initial capacity of the identifier free-list.
	SparseChunkSize uint32

	// InitialSparseChunks is the number of sparse index chunks allocated up
	// front. The index grows one chunk at a time as ids exceed it.
	InitialSparseChunks uint32
}

func (c Config) validate() error {
	if c.DenseChunkSize < 1 {
		return ConfigError{Field: "DenseChunkSize", Value: c.DenseChunkSize}
	}
	if c.SparseChunkSize < 1 {
		return ConfigError{Field: "SparseChunkSize", Value: c.SparseChunkSize}
	}
	if c.InitialSparseChunks < 1 {
		return ConfigError{Field: "InitialSparseChunks", Value: c.InitialSparseChunks}
	}
	return nil
}
