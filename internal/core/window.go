package core

import "iter"

// Window is a copy of a rectangle of a grid together with its top-left
// offset in the source grid.
type Window[T any] struct {
	X, Y int
	Grid *Grid[T]
}

// Windowed yields every axis-aligned window of the given dimensions in
// row-major order (top row first, left to right). The sequence is lazy and
// can be ranged over any number of times. Dimensions larger than the grid
// produce no windows.
func (g *Grid[T]) Windowed(dims Dimensions) iter.Seq[Window[T]] {
	return func(yield func(Window[T]) bool) {
		if dims.Width <= 0 || dims.Height <= 0 {
			return
		}
		for y := 0; y+dims.Height <= g.h; y++ {
			for x := 0; x+dims.Width <= g.w; x++ {
				sub, err := g.Subgrid(x, y, dims.Width, dims.Height)
				if err != nil {
					return
				}
				if !yield(Window[T]{X: x, Y: y, Grid: sub}) {
					return
				}
			}
		}
	}
}
