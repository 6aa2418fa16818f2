// Package latticegas implements a two-dimensional binary lattice gas: each step
// swaps a random site with a random axis neighbor under a reflective boundary.
package latticegas

import (
	"lattice-entropy/internal/core"
	"lattice-entropy/internal/entropy"
)

// Name is the registry key of the automaton.
const Name = "latticegas"

// Automaton owns a square binary grid and the random source that drives it.
// It is not safe for concurrent use; run independent sweeps on separate
// automata.
type Automaton struct {
	cfg  Config
	grid *core.Grid
	src  core.Source

	cursor   core.Point
	neighbor core.Point
	steps    int

	buf []byte
}

// New returns an all-zero n×n automaton drawing from src.
func New(n int, src core.Source) (*Automaton, error) {
	cfg := DefaultConfig()
	cfg.Size = n
	return newAutomaton(cfg, src)
}

// NewWithConfig returns an automaton seeded from cfg.Seed and prepared in the
// half-filled starting configuration.
func NewWithConfig(cfg Config) (*Automaton, error) {
	if _, err := entropy.ParseEncoding(string(cfg.Encoding)); err != nil {
		return nil, err
	}
	a, err := newAutomaton(cfg, core.NewRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	a.HalfFill()
	return a, nil
}

func newAutomaton(cfg Config, src core.Source) (*Automaton, error) {
	grid, err := core.NewGrid(cfg.Size)
	if err != nil {
		return nil, err
	}
	if cfg.Encoding == "" {
		cfg.Encoding = entropy.DefaultEncoding
	}
	return &Automaton{cfg: cfg, grid: grid, src: src}, nil
}

// Name returns the simulation identifier.
func (a *Automaton) Name() string { return Name }

// Size returns the grid dimensions.
func (a *Automaton) Size() core.Size { return core.Size{W: a.grid.N(), H: a.grid.N()} }

// Cells exposes the live grid buffer. Callers must treat it as read-only.
func (a *Automaton) Cells() []uint8 { return a.grid.Cells() }

// Snapshot returns a copy of the grid.
func (a *Automaton) Snapshot() []uint8 { return a.grid.Snapshot() }

// Config returns the configuration the automaton was built with.
func (a *Automaton) Config() Config { return a.cfg }

// Ones counts occupied sites.
func (a *Automaton) Ones() int { return a.grid.Ones() }

// Steps returns the number of steps taken since the last initialization.
func (a *Automaton) Steps() int { return a.steps }

// Cursor returns the site chosen by the most recent step.
func (a *Automaton) Cursor() core.Point { return a.cursor }

// Neighbor returns the partner site chosen by the most recent step.
func (a *Automaton) Neighbor() core.Point { return a.neighbor }

// Reset reseeds the random source and restores the half-filled configuration.
func (a *Automaton) Reset(seed int64) {
	a.cfg.Seed = seed
	a.src = core.NewRNG(seed)
	a.InitializeEmpty()
	a.HalfFill()
}

// InitializeEmpty zeroes every site.
func (a *Automaton) InitializeEmpty() {
	a.grid.Clear()
	a.steps = 0
	a.cursor, a.neighbor = core.Point{}, core.Point{}
}

// HalfFill occupies the right half of the grid, columns [n/2, n).
func (a *Automaton) HalfFill() { a.grid.HalfFill() }

// Step attempts one particle move: pick a site, pick one of its four axis
// neighbors, and swap the two values.
func (a *Automaton) Step() {
	n := a.grid.N()
	a.cursor = SelectCursor(a.src, n)
	a.neighbor = SelectNeighbor(a.src, a.cursor, n)
	a.grid.Swap(a.cursor, a.neighbor)
	a.steps++
}

// SelectCursor draws a site uniformly from an n×n grid, x before y.
func SelectCursor(src core.Source, n int) core.Point {
	x := src.IntN(n)
	y := src.IntN(n)
	return core.Point{X: x, Y: y}
}

// SelectNeighbor picks one of the four axis neighbors of cursor with equal
// probability and maps it back inside the grid. The axis is drawn first
// (0 = x, 1 = y), then the direction (0 = -1, 1 = +1).
func SelectNeighbor(src core.Source, cursor core.Point, n int) core.Point {
	axis := src.IntN(2)
	step := -1
	if src.IntN(2) == 1 {
		step = 1
	}
	next := cursor
	if axis == 0 {
		next.X += step
	} else {
		next.Y += step
	}
	return core.Reflect(next, n)
}

func init() {
	core.Register(Name, func(cfg map[string]string) (core.Sim, error) {
		a, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return a, nil
	})
}
