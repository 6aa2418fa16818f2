// Package experiment runs independent entropy sweeps in parallel, one private
// automaton per run.
package experiment

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lattice-entropy/internal/core"
	"lattice-entropy/internal/entropy"
	"lattice-entropy/internal/sims/latticegas"
)

// Plan describes a batch of sweeps that differ only in their seed.
type Plan struct {
	Size     int
	Steps    int
	Runs     int
	Seed     int64
	Workers  int
	Codec    string
	Encoding entropy.Encoding

	// ProgressHz caps per-run progress logs. Zero disables them.
	ProgressHz int
}

// Run is the outcome of one sweep.
type Run struct {
	ID      uuid.UUID
	Index   int
	Seed    int64
	Sizes   []int
	Initial []uint8
	Final   []uint8
	Ones    int
	Elapsed time.Duration
}

// Execute runs every sweep in the plan and returns the results ordered by run
// index. The first failure cancels the remaining runs and no results are
// returned.
func Execute(ctx context.Context, plan Plan, logger *log.Logger) ([]Run, error) {
	if plan.Runs < 1 {
		return nil, fmt.Errorf("plan needs at least one run, got %d", plan.Runs)
	}
	if _, err := entropy.New(plan.Codec); err != nil {
		return nil, err
	}
	workers := plan.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	runs := make([]Run, plan.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range runs {
		g.Go(func() error {
			run, err := execute(ctx, plan, i, logger)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, plan.Seed+int64(i), err)
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

func execute(ctx context.Context, plan Plan, index int, logger *log.Logger) (Run, error) {
	seed := plan.Seed + int64(index)
	a, err := latticegas.NewWithConfig(latticegas.Config{
		Size:     plan.Size,
		Seed:     seed,
		Codec:    plan.Codec,
		Encoding: plan.Encoding,
	})
	if err != nil {
		return Run{}, err
	}
	c, err := entropy.New(plan.Codec)
	if err != nil {
		return Run{}, err
	}

	run := Run{ID: uuid.New(), Index: index, Seed: seed, Initial: a.Snapshot()}
	logger = logger.With("run", index, "seed", seed)
	logger.Debug("sweep started", "id", run.ID, "n", plan.Size, "steps", plan.Steps)

	var observe latticegas.Observer
	if plan.ProgressHz > 0 {
		pace := core.NewFixedStep(plan.ProgressHz)
		observe = func(step, size int) {
			if pace.ShouldStep() {
				logger.Info("sweep progress", "step", step+1, "of", plan.Steps, "bytes", size)
			}
		}
	}

	start := time.Now()
	sizes, err := a.EntropySweepFunc(ctx, plan.Steps, c, observe)
	if err != nil {
		return Run{}, err
	}
	run.Elapsed = time.Since(start)
	run.Sizes = sizes
	run.Final = a.Snapshot()
	run.Ones = a.Ones()

	logger.Info("sweep finished", "elapsed", run.Elapsed.Round(time.Millisecond), "ones", run.Ones)
	return run, nil
}
