// Package render converts display buffers into RGBA pixels.
package render

import (
	"image"
	"image/color"
)

// FillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. When the palette is
// empty the buffer is cleared to transparent black.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// FillMaskRGBA clears buf and paints col at every point of a width-wide
// grid. Points outside the buffer are ignored.
func FillMaskRGBA(buf []byte, width int, pts []image.Point, col color.RGBA) {
	clear(buf)
	if width <= 0 {
		return
	}
	height := len(buf) / 4 / width
	for _, p := range pts {
		if p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		base := (p.Y*width + p.X) * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
