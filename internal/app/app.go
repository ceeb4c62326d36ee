//go:build ebiten

package app

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"sand-ca/internal/core"
	"sand-ca/internal/particle"
	"sand-ca/internal/render"
	"sand-ca/internal/sims/sand"
	"sand-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

var digitKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

// Options configures a Game.
type Options struct {
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	Logger   *slog.Logger
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	world   *sand.World
	painter *render.GridPainter
	palette []color.RGBA
	hud     *ui.HUD
	overlay *ui.Overlay
	timer   *core.FixedStep
	logger  *slog.Logger

	tool     sand.Tool
	lastCell image.Point
	drawing  bool

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, opts Options) *Game {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.Width, size.Height),
		hud:     ui.NewHUD(sim, opts.HUDWidth),
		overlay: ui.NewOverlay(sim, opts.Scale),
		timer:   core.NewFixedStep(opts.TPS),
		logger:  opts.Logger,
		tool:    sand.Spawn(particle.Sand),
		scale:   opts.Scale,
		seed:    opts.Seed,
	}
	if w, ok := sim.(*sand.World); ok {
		g.world = w
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.timer.Reset()
	g.logger.Info("world reset", "sim", g.sim.Name(), "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.timer.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			if tool, ok := sand.ToolForDigit(i + 1); ok {
				g.tool = tool
			}
		}
	}

	g.overlay.Update()
	g.handlePointer()
	g.hud.SetStatus(g.statusLines()...)
	g.hud.Update(g.gridWidth())

	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case !g.paused:
		for n := g.timer.DueSteps(); n > 0; n-- {
			g.sim.Step()
		}
	}
	return nil
}

func (g *Game) handlePointer() {
	if g.world == nil || !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.drawing = false
		return
	}
	cell, ok := CursorCell(image.Pt(ebiten.CursorPosition()), g.scale, g.sim.Size())
	if !ok {
		g.drawing = false
		return
	}
	from := cell
	if g.drawing {
		from = g.lastCell
	}
	for _, p := range StrokeCells(from, cell) {
		if err := g.tool.Apply(g.world, p.X, p.Y); err != nil {
			g.logger.Debug("tool rejected", "x", p.X, "y", p.Y, "error", err)
		}
	}
	g.lastCell, g.drawing = cell, true
}

func (g *Game) statusLines() []string {
	state := "running"
	if g.paused {
		state = "paused"
	}
	lines := []string{
		fmt.Sprintf("Tool: %s", g.tool),
		fmt.Sprintf("State: %s", state),
	}
	if g.world != nil {
		lines = append(lines, fmt.Sprintf("Tick: %d", g.world.Tick()))
	}
	if g.overlay.Visible() {
		lines = append(lines, "Overlay: active cells")
	}
	return lines
}

func (g *Game) gridWidth() int { return g.sim.Size().Width * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.Width*g.scale + g.hud.Width(), s.Height * g.scale
}
