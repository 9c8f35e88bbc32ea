// Command bench exercises the silo storage engine the way a simulation update
// loop would: it creates a large population of position+velocity entities,
// integrates velocities into positions over whole columns, and reports the
// wall time of the pass.
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/pkg/profile"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/silo-ecs/silo"
	"github.com/silo-ecs/silo/stopwatch"
)

type benchConfig struct {
	Entities            uint32 `yaml:"entities"`
	DenseChunkSize      uint32 `yaml:"dense_chunk_size"`
	SparseChunkSize     uint32 `yaml:"sparse_chunk_size"`
	InitialSparseChunks uint32 `yaml:"initial_sparse_chunks"`
}

func defaultConfig() benchConfig {
	return benchConfig{
		Entities:            1_000_000,
		DenseChunkSize:      1_000_000,
		SparseChunkSize:     1_000_000,
		InitialSparseChunks: 1,
	}
}

func loadConfig(path string) (benchConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func main() {
	var (
		configPath  = flag.String("config", "", "YAML file overriding the built-in defaults")
		entities    = flag.Uint32("entities", defaultConfig().Entities, "number of entities to create")
		denseChunk  = flag.Uint32("dense-chunk", defaultConfig().DenseChunkSize, "entity capacity of each archetype chunk")
		sparseChunk = flag.Uint32("sparse-chunk", defaultConfig().SparseChunkSize, "slot count of each sparse index chunk")
		profileMode = flag.String("profile", "", "write a profile to the working directory: cpu or mem")
		verbose     = flag.Bool("verbose", false, "log storage events")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	// Explicit flags win over the config file.
	if flag.CommandLine.Changed("entities") {
		cfg.Entities = *entities
	}
	if flag.CommandLine.Changed("dense-chunk") {
		cfg.DenseChunkSize = *denseChunk
	}
	if flag.CommandLine.Changed("sparse-chunk") {
		cfg.SparseChunkSize = *sparseChunk
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *profileMode)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		logger = zap.Must(zap.NewDevelopment())
		defer logger.Sync()
	}

	if err := run(cfg, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg benchConfig, logger *zap.Logger) error {
	world, err := silo.Factory.NewWorld(silo.Config{
		DenseChunkSize:      cfg.DenseChunkSize,
		SparseChunkSize:     cfg.SparseChunkSize,
		InitialSparseChunks: cfg.InitialSparseChunks,
	}, silo.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create world: %w", err)
	}

	// position and velocity: x, y, z as float64
	position, err := world.RegisterNamedComponent("position", 8, 8, 8)
	if err != nil {
		return fmt.Errorf("failed to register position: %w", err)
	}
	velocity, err := world.RegisterNamedComponent("velocity", 8, 8, 8)
	if err != nil {
		return fmt.Errorf("failed to register velocity: %w", err)
	}

	logger.Info("creating entities", zap.Uint32("count", cfg.Entities))
	for i := uint32(0); i < cfg.Entities; i++ {
		if _, err := world.NewEntity(position, velocity); err != nil {
			return fmt.Errorf("failed to create entity: %w", err)
		}
	}

	it, err := world.Query(position, velocity)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer it.Release()

	rng := rand.New(rand.NewSource(1))
	for view := range it.Chunks() {
		x := silo.ColumnAs[float64](view, 0, 0)
		y := silo.ColumnAs[float64](view, 0, 1)
		z := silo.ColumnAs[float64](view, 0, 2)
		dx := silo.ColumnAs[float64](view, 1, 0)
		dy := silo.ColumnAs[float64](view, 1, 1)
		dz := silo.ColumnAs[float64](view, 1, 2)
		for i := 0; i < view.Len(); i++ {
			x[i] = rng.Float64() * 100
			y[i] = rng.Float64() * 100
			z[i] = rng.Float64() * 100
			dx[i] = rng.Float64() - 0.5
			dy[i] = rng.Float64() - 0.5
			dz[i] = rng.Float64() - 0.5
		}
	}

	sw := stopwatch.Start("ECS Iteration")
	sink := 0.0
	for view := range it.Chunks() {
		x := silo.ColumnAs[float64](view, 0, 0)
		y := silo.ColumnAs[float64](view, 0, 1)
		z := silo.ColumnAs[float64](view, 0, 2)
		dx := silo.ColumnAs[float64](view, 1, 0)
		dy := silo.ColumnAs[float64](view, 1, 1)
		dz := silo.ColumnAs[float64](view, 1, 2)
		for i := 0; i < view.Len(); i++ {
			x[i] += dx[i]
			y[i] += dy[i]
			z[i] += dz[i]
			sink += math.Sqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
		}
	}
	sw.Stop()

	// Keep the loop observable so it cannot be optimized away.
	fmt.Printf("Sink: %f\n", sink)
	return nil
}
