// Package cli holds the shared plumbing of the arbor commands: building a
// runner from configuration, parsing run contexts and printing results.
package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	loamlib "github.com/aretw0/loam"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/pkg/adapters/file"
	loamadapter "github.com/aretw0/arbor/pkg/adapters/loam"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/adapters/redis"
	"github.com/aretw0/arbor/pkg/minutes"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/runner"
	"github.com/aretw0/arbor/pkg/runs"
)

// BuildRunner assembles a flow runner from the configuration: the flow
// source (a Loam repository when flows_path is set, the built-in flows
// otherwise), the run store backend, the artifact store the minutes tasks
// write through, and the task registry. Extra options (lifecycle hooks,
// usually) are appended last so they win.
func BuildRunner(cfg *config.Config, logger *slog.Logger, extra ...runner.Option) (*runner.Runner, error) {
	source, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}

	artifacts, err := buildArtifacts(cfg)
	if err != nil {
		return nil, err
	}

	reg := registry.NewDefault()
	minutes.Register(reg, artifacts)

	opts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithRegistry(reg),
		runner.WithParallelism(cfg.Parallelism),
	}

	store, locker, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, runner.WithStore(store))
	if locker != nil {
		opts = append(opts, runner.WithRunManager(runs.NewManager(
			runs.WithLocker(locker),
			runs.WithLogger(logger),
		)))
	}

	opts = append(opts, extra...)
	return runner.New(source, opts...), nil
}

func buildSource(cfg *config.Config) (ports.FlowSource, error) {
	if cfg.FlowsPath != "" {
		source, err := loamadapter.NewFromPath(cfg.FlowsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open flows repository: %w", err)
		}
		return source, nil
	}
	// No flow repository configured: serve the built-in meeting cycle.
	return memory.NewFromSpecs(minutes.MeetingCycle())
}

// buildArtifacts opens a writable Loam repository at data_path so every
// rendered document lands as a committed file under minutes/.
func buildArtifacts(cfg *config.Config) (ports.ArtifactStore, error) {
	if cfg.DataPath == "" {
		return memory.NewArtifacts(), nil
	}

	absPath, err := filepath.Abs(cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	repo, err := loamlib.Init(absPath, loamlib.WithVersioning(false))
	if err != nil {
		// The data path may be unusable (read-only fs, nested repo). Fall
		// back to plain files rather than refusing to run.
		return file.NewArtifacts(absPath), nil
	}
	return loamadapter.NewArtifacts(repo), nil
}

func buildStore(cfg *config.Config) (ports.RunStore, ports.DistributedLocker, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory, "":
		return memory.NewStore(), nil, nil
	case config.StoreFile:
		path := cfg.Store.Path
		if path == "" {
			path = filepath.Join(cfg.DataPath, "runs")
		}
		return file.NewStore(path), nil, nil
	case config.StoreRedis:
		store := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB,
			redis.WithTTL(cfg.Store.Redis.TTL))
		locker := redis.NewLocker(store.Client(), "arbor:lock:")
		return store, locker, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
