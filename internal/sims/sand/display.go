package sand

import (
	"image/color"

	"sand-ca/internal/particle"
)

// Display codes written into the Cells buffer.
const (
	DisplayEmpty uint8 = iota
	DisplaySand
	DisplayWater
	DisplayStone
)

var sandPalette = []color.RGBA{
	DisplayEmpty: {R: 18, G: 18, B: 24, A: 255},
	DisplaySand:  {R: 219, G: 193, B: 122, A: 255},
	DisplayWater: {R: 64, G: 120, B: 220, A: 255},
	DisplayStone: {R: 110, G: 110, B: 118, A: 255},
}

// Palette exposes the color palette used for rendering the sand world.
func (w *World) Palette() []color.RGBA {
	return sandPalette
}

func encodeCell(c Cell) uint8 {
	if c == nil {
		return DisplayEmpty
	}
	switch c.Kind {
	case particle.Sand:
		return DisplaySand
	case particle.Water:
		return DisplayWater
	case particle.Stone:
		return DisplayStone
	}
	return DisplayEmpty
}

func (w *World) rebuildDisplay() {
	for i, c := range w.grid.Cells() {
		w.display[i] = encodeCell(c)
	}
}
