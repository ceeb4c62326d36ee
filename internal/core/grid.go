package core

import (
	"errors"
	"fmt"
	"image"
	"iter"
)

var (
	// ErrEmptyGrid is returned when a grid would have no rows or no columns.
	ErrEmptyGrid = errors.New("grid is empty")
	// ErrUnequalRowLengths is returned when the rows of a grid differ in length.
	ErrUnequalRowLengths = errors.New("grid rows have unequal lengths")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrSubgridBiggerThanGrid is returned when a sub-rectangle write does not
	// fit into the destination grid.
	ErrSubgridBiggerThanGrid = errors.New("subgrid does not fit into grid")
)

// Dimensions describes the width and height of a grid.
type Dimensions struct {
	Width  int
	Height int
}

// String renders the dimensions as WxH.
func (d Dimensions) String() string { return fmt.Sprintf("%dx%d", d.Width, d.Height) }

// Area returns Width*Height.
func (d Dimensions) Area() int { return d.Width * d.Height }

// Grid stores a rectangular 2D matrix of T in row-major order.
type Grid[T any] struct {
	w, h int
	data []T
}

// NewGrid builds a grid from rows. Every row must have the same non-zero
// length.
func NewGrid[T any](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	g := &Grid[T]{w: w, h: len(rows), data: make([]T, 0, w*len(rows))}
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrUnequalRowLengths
		}
		g.data = append(g.data, row...)
	}
	return g, nil
}

// NewFilledGrid allocates a w×h grid with every cell set to fill.
func NewFilledGrid[T any](w, h int, fill T) (*Grid[T], error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	g := &Grid[T]{w: w, h: h, data: make([]T, w*h)}
	g.Fill(fill)
	return g, nil
}

// MustGrid is NewGrid for statically known rows; it panics on shape errors.
func MustGrid[T any](rows [][]T) *Grid[T] {
	g, err := NewGrid(rows)
	if err != nil {
		panic(fmt.Sprintf("core: invalid grid literal: %v", err))
	}
	return g
}

// Dimensions reports the grid size.
func (g *Grid[T]) Dimensions() Dimensions { return Dimensions{Width: g.w, Height: g.h} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.w + x }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// Get returns the value at (x, y).
func (g *Grid[T]) Get(x, y int) (T, error) {
	if !g.InBounds(x, y) {
		var zero T
		return zero, ErrOutOfBounds
	}
	return g.data[g.Index(x, y)], nil
}

// Ptr returns a pointer to the cell at (x, y) for in-place mutation.
func (g *Grid[T]) Ptr(x, y int) (*T, error) {
	if !g.InBounds(x, y) {
		return nil, ErrOutOfBounds
	}
	return &g.data[g.Index(x, y)], nil
}

// Set overwrites the value at (x, y).
func (g *Grid[T]) Set(x, y int, v T) error {
	if !g.InBounds(x, y) {
		return ErrOutOfBounds
	}
	g.data[g.Index(x, y)] = v
	return nil
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clone returns a shallow copy of the grid with its own backing slice.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{w: g.w, h: g.h, data: append([]T(nil), g.data...)}
}

// Rows copies the grid back into a slice of rows.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.h)
	for y := range rows {
		rows[y] = append([]T(nil), g.data[y*g.w:(y+1)*g.w]...)
	}
	return rows
}

// All yields every cell with its coordinates in row-major order.
func (g *Grid[T]) All() iter.Seq2[image.Point, T] {
	return func(yield func(image.Point, T) bool) {
		for y := 0; y < g.h; y++ {
			for x := 0; x < g.w; x++ {
				if !yield(image.Pt(x, y), g.data[y*g.w+x]) {
					return
				}
			}
		}
	}
}

// Subgrid copies the rectangle [x, x+w) × [y, y+h) into a new grid.
func (g *Grid[T]) Subgrid(x, y, w, h int) (*Grid[T], error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	if x < 0 || y < 0 || x+w > g.w || y+h > g.h {
		return nil, ErrOutOfBounds
	}
	sub := &Grid[T]{w: w, h: h, data: make([]T, w*h)}
	for row := 0; row < h; row++ {
		src := g.Index(x, y+row)
		copy(sub.data[row*w:(row+1)*w], g.data[src:src+w])
	}
	return sub, nil
}

// SetSubgrid overwrites the rectangle starting at (x, y) with src. The whole
// of src must fit inside the grid from that offset.
func (g *Grid[T]) SetSubgrid(x, y int, src *Grid[T]) error {
	if x < 0 || y < 0 {
		return ErrOutOfBounds
	}
	if src.w > g.w-x || src.h > g.h-y {
		return fmt.Errorf("%w: %s at (%d,%d) into %s", ErrSubgridBiggerThanGrid, src.Dimensions(), x, y, g.Dimensions())
	}
	for row := 0; row < src.h; row++ {
		dst := g.Index(x, y+row)
		copy(g.data[dst:dst+src.w], src.data[row*src.w:(row+1)*src.w])
	}
	return nil
}
