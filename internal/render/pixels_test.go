package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 12)
	FillPaletteRGBA(buf, []uint8{0, 1, 9}, palette)
	assert.Equal(t, []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}, buf)

	FillPaletteRGBA(buf, []uint8{0, 1, 2}, nil)
	assert.Equal(t, make([]byte, 12), buf)
}

func TestFillMaskRGBA(t *testing.T) {
	buf := make([]byte, 4*3*2)
	buf[0] = 99
	red := color.RGBA{R: 255, A: 128}
	FillMaskRGBA(buf, 3, []image.Point{{2, 1}, {5, 0}, {-1, 0}}, red)

	want := make([]byte, 24)
	copy(want[20:], []byte{255, 0, 0, 128})
	assert.Equal(t, want, buf)
}
