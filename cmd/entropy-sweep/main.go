package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"lattice-entropy/internal/config"
	"lattice-entropy/internal/entropy"
	"lattice-entropy/internal/experiment"
	"lattice-entropy/internal/output"
)

func main() {
	configPath := flag.String("config", "", "path to a run config YAML (empty = built-in defaults)")
	size := flag.Int("n", 100, "lattice side length")
	steps := flag.Int("steps", 10000, "steps per sweep")
	runs := flag.Int("runs", 1, "independent sweeps, seeded seed, seed+1, ...")
	seed := flag.Int64("seed", 1, "seed of the first sweep")
	workers := flag.Int("workers", 0, "parallel sweeps (0 = one per CPU)")
	codec := flag.String("codec", string(entropy.DefaultCodec), fmt.Sprintf("compressor %v", entropy.Codecs()))
	encoding := flag.String("encoding", string(entropy.DefaultEncoding), "cell encoding (u8 or f64)")
	outDir := flag.String("out", "", "output directory for CSV, config and PNG files (empty = none)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "entropy-sweep"})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", "err", err)
	}

	// Flags given explicitly win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.Lattice.Size = *size
		case "steps":
			cfg.Sweep.Steps = *steps
		case "runs":
			cfg.Sweep.Runs = *runs
		case "seed":
			cfg.Lattice.Seed = *seed
		case "workers":
			cfg.Sweep.Workers = *workers
		case "codec":
			cfg.Entropy.Codec = *codec
		case "encoding":
			cfg.Entropy.Encoding = *encoding
		case "out":
			cfg.Output.Dir = *outDir
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Fatal("invalid log level", "level", cfg.Log.Level, "err", err)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		stop()
		logger.Fatal("sweep failed", "err", err)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	encoding, err := entropy.ParseEncoding(cfg.Entropy.Encoding)
	if err != nil {
		return err
	}
	plan := experiment.Plan{
		Size:       cfg.Lattice.Size,
		Steps:      cfg.Sweep.Steps,
		Runs:       cfg.Sweep.Runs,
		Seed:       cfg.Lattice.Seed,
		Workers:    cfg.Sweep.Workers,
		Codec:      cfg.Entropy.Codec,
		Encoding:   encoding,
		ProgressHz: cfg.Log.ProgressHz,
	}

	om, err := output.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	logger.Info("starting sweeps",
		"n", plan.Size,
		"steps", plan.Steps,
		"runs", plan.Runs,
		"seed", plan.Seed,
		"codec", plan.Codec,
		"encoding", plan.Encoding,
	)
	start := time.Now()
	results, err := experiment.Execute(ctx, plan, logger)
	if err != nil {
		return err
	}

	for _, r := range results {
		s := experiment.Summarize(r, cfg.Sweep.TailFraction)
		logger.Info("run summary",
			"run", s.Run,
			"seed", s.Seed,
			"first", s.First,
			"plateau", fmt.Sprintf("%.1f±%.1f", s.PlateauMean, s.PlateauStd),
			"equilibration_step", s.EquilibrationStep,
		)
		if err := om.WriteRun(r); err != nil {
			return err
		}
		if err := om.WriteSummary(s); err != nil {
			return err
		}
		if cfg.Output.Snapshots {
			name := fmt.Sprintf("run%02d", r.Index)
			if err := om.WriteSnapshot(name+"-initial", r.Initial, plan.Size, cfg.Output.SnapshotScale); err != nil {
				return err
			}
			if err := om.WriteSnapshot(name+"-final", r.Final, plan.Size, cfg.Output.SnapshotScale); err != nil {
				return err
			}
		}
	}

	if cfg.Output.Chart {
		err := om.WriteChart(results, cfg.Output.ChartWidth, cfg.Output.ChartHeight)
		switch {
		case errors.Is(err, output.ErrChartTooShort):
			logger.Warn("skipping chart", "reason", err)
		case err != nil:
			return err
		}
	}

	logger.Info("done",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"cpu_time", experiment.TotalElapsed(results).Round(time.Millisecond),
		"out", om.Dir(),
	)
	return nil
}
