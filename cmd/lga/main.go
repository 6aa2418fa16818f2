//go:build ebiten

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"lattice-entropy/internal/app"
	"lattice-entropy/internal/core"
	"lattice-entropy/internal/entropy"
	_ "lattice-entropy/internal/sims/latticegas"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "lga"})

	simCfg, err := cfg.SimConfig()
	if err != nil {
		logger.Fatal("bad -set", "err", err)
	}
	if _, ok := simCfg["seed"]; !ok {
		simCfg["seed"] = fmt.Sprint(cfg.Seed)
	}
	sim, err := core.Build(cfg.Sim, simCfg)
	if err != nil {
		logger.Fatal("cannot build simulation", "sim", cfg.Sim, "err", err)
	}
	compressor, err := entropy.New(cfg.Codec)
	if err != nil {
		logger.Fatal("cannot build compressor", "err", err)
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		logger.Info("starting viewer", p.Parameters().Flatten()...)
	}

	game := app.New(sim, compressor, cfg.Scale, cfg.StepsPerTick, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("lattice gas: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("viewer stopped", "err", err)
	}
}
