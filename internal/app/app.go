//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"lattice-entropy/internal/core"
	"lattice-entropy/internal/entropy"
	"lattice-entropy/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type measurer interface {
	Measure(c entropy.Compressor) (int, error)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim        core.Sim
	painter    *render.GridPainter
	compressor entropy.Compressor

	onColor  color.Color
	offColor color.Color

	scale        int
	stepsPerTick int
	paused       bool
	tickOnce     bool
	seed         int64

	steps    int
	measured int
	err      error
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, c entropy.Compressor, scale, stepsPerTick int, seed int64) *Game {
	if stepsPerTick <= 0 {
		stepsPerTick = 1
	}
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	g := &Game{
		sim:          sim,
		painter:      gp,
		compressor:   c,
		onColor:      render.On,
		offColor:     render.Off,
		scale:        scale,
		stepsPerTick: stepsPerTick,
		seed:         seed,
	}
	g.measure()
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.steps = 0
	g.measure()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.stepsPerTick *= 2
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) && g.stepsPerTick > 1 {
		g.stepsPerTick /= 2
	}

	switch {
	case g.tickOnce:
		g.sim.Step()
		g.steps++
		g.tickOnce = false
	case !g.paused:
		for i := 0; i < g.stepsPerTick; i++ {
			g.sim.Step()
		}
		g.steps += g.stepsPerTick
	default:
		return nil
	}
	g.measure()
	return nil
}

func (g *Game) measure() {
	m, ok := g.sim.(measurer)
	if !ok || g.compressor == nil {
		return
	}
	g.measured, g.err = m.Measure(g.compressor)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step %d  x%d/tick", g.steps, g.stepsPerTick)
	if g.paused {
		b.WriteString("  paused")
	}
	if g.err != nil {
		fmt.Fprintf(&b, "\nentropy: %v", g.err)
	} else if g.compressor != nil {
		fmt.Fprintf(&b, "\ncompressed %d bytes", g.measured)
	}
	return b.String()
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
