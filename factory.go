package silo

type factory struct{}

// Factory constructs the package's top-level values.
var Factory factory

func (f factory) NewWorld(cfg Config, opts ...Option) (World, error) {
	return newWorld(cfg, opts...)
}

// DefaultConfig returns construction parameters suitable for medium worlds.
func (f factory) DefaultConfig() Config {
	return Config{
		DenseChunkSize:      1024,
		SparseChunkSize:     1024,
		InitialSparseChunks: 1,
	}
}
