//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"sand-ca/internal/core"
	"sand-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type activeCellProvider interface {
	ActivePoints() []image.Point
}

var activeColor = color.RGBA{R: 200, G: 40, B: 40, A: 110}

// Overlay highlights the cells that will be evaluated on the next step.
type Overlay struct {
	sim     core.Sim
	scale   int
	show    bool
	painter *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{
		sim:     sim,
		scale:   scale,
		painter: render.NewGridPainter(size.Width, size.Height),
	}
}

// Update toggles the overlay with the D key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.show = !o.show
	}
}

// Visible reports whether the overlay is drawn.
func (o *Overlay) Visible() bool { return o != nil && o.show }

// Draw paints the active-cell mask on top of the grid.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.Visible() {
		return
	}
	provider, ok := o.sim.(activeCellProvider)
	if !ok {
		return
	}
	o.painter.BlitMask(screen, provider.ActivePoints(), activeColor, o.scale)
}
