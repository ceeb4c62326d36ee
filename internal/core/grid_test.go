package core

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridShapes(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		err  error
	}{
		{"single cell", [][]int{{1}}, nil},
		{"rectangle", [][]int{{1, 2, 3}, {4, 5, 6}}, nil},
		{"no rows", [][]int{}, ErrEmptyGrid},
		{"nil rows", nil, ErrEmptyGrid},
		{"empty first row", [][]int{{}}, ErrEmptyGrid},
		{"ragged", [][]int{{1, 2}, {3}}, ErrUnequalRowLengths},
		{"ragged longer", [][]int{{1}, {2, 3}}, ErrUnequalRowLengths},
		{"empty later row", [][]int{{1}, {}}, ErrUnequalRowLengths},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.rows)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Dimensions{Width: len(tt.rows[0]), Height: len(tt.rows)}, g.Dimensions())
			assert.Equal(t, tt.rows, g.Rows())
		})
	}
}

func TestGridPointAccess(t *testing.T) {
	g := MustGrid([][]string{
		{"a", "b", "c"},
		{"d", "e", "f"},
	})

	v, err := g.Get(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "f", v)

	_, err = g.Get(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Get(0, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Get(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	p, err := g.Ptr(1, 0)
	require.NoError(t, err)
	*p = "B"
	v, _ = g.Get(1, 0)
	assert.Equal(t, "B", v)

	require.NoError(t, g.Set(0, 1, "D"))
	assert.ErrorIs(t, g.Set(5, 5, "x"), ErrOutOfBounds)
	assert.Equal(t, []string{"a", "B", "c", "D", "e", "f"}, g.Cells())
}

func TestSubgridRoundTrip(t *testing.T) {
	g, err := NewFilledGrid(5, 4, 0)
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			for h := 1; y+h <= 4; h++ {
				for w := 1; x+w <= 5; w++ {
					src, err := NewFilledGrid(w, h, 0)
					require.NoError(t, err)
					for i := range src.Cells() {
						src.Cells()[i] = 100*x + 10*y + i
					}
					require.NoError(t, g.SetSubgrid(x, y, src))
					got, err := g.Subgrid(x, y, w, h)
					require.NoError(t, err)
					assert.Equal(t, src.Rows(), got.Rows(), "rect (%d,%d) %dx%d", x, y, w, h)
				}
			}
		}
	}
}

func TestSetSubgridBounds(t *testing.T) {
	g, _ := NewFilledGrid(4, 4, '.')
	src := MustGrid([][]rune{{'a', 'b'}, {'c', 'd'}})

	require.NoError(t, g.SetSubgrid(2, 2, src))
	assert.ErrorIs(t, g.SetSubgrid(3, 0, src), ErrSubgridBiggerThanGrid)
	assert.ErrorIs(t, g.SetSubgrid(0, 3, src), ErrSubgridBiggerThanGrid)
	assert.ErrorIs(t, g.SetSubgrid(-1, 0, src), ErrOutOfBounds)

	big, _ := NewFilledGrid(5, 1, 'x')
	assert.ErrorIs(t, g.SetSubgrid(0, 0, big), ErrSubgridBiggerThanGrid)

	// Failed writes leave the grid untouched.
	assert.Equal(t, [][]rune{
		{'.', '.', '.', '.'},
		{'.', '.', '.', '.'},
		{'.', '.', 'a', 'b'},
		{'.', '.', 'c', 'd'},
	}, g.Rows())
}

func TestSubgridRejectsOutOfRange(t *testing.T) {
	g, _ := NewFilledGrid(3, 3, 0)
	_, err := g.Subgrid(2, 2, 2, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.Subgrid(0, 0, 0, 1)
	assert.ErrorIs(t, err, ErrEmptyGrid)
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustGrid([][]int{{1, 2}, {3, 4}})
	c := g.Clone()
	require.NoError(t, c.Set(0, 0, 9))
	v, _ := g.Get(0, 0)
	assert.Equal(t, 1, v)
}

func TestWindowedScanOrder(t *testing.T) {
	g := MustGrid([][]int{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	var offsets []image.Point
	var firsts []int
	for w := range g.Windowed(Dimensions{Width: 2, Height: 2}) {
		offsets = append(offsets, image.Pt(w.X, w.Y))
		first, _ := w.Grid.Get(0, 0)
		firsts = append(firsts, first)
		assert.Equal(t, Dimensions{Width: 2, Height: 2}, w.Grid.Dimensions())
	}
	assert.Equal(t, []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, offsets)
	assert.Equal(t, []int{1, 2, 4, 5}, firsts)

	// Restartable: a second pass yields the same count.
	count := 0
	for range g.Windowed(Dimensions{Width: 2, Height: 2}) {
		count++
	}
	assert.Equal(t, 4, count)

	count = 0
	for range g.Windowed(Dimensions{Width: 1, Height: 3}) {
		count++
	}
	assert.Equal(t, 3, count)

	for range g.Windowed(Dimensions{Width: 4, Height: 1}) {
		t.Fatal("windows larger than the grid must not be produced")
	}
}

func TestWindowedStopsEarly(t *testing.T) {
	g, _ := NewFilledGrid(10, 10, 0)
	seen := 0
	for range g.Windowed(Dimensions{Width: 1, Height: 1}) {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestAllRowMajor(t *testing.T) {
	g := MustGrid([][]int{{1, 2}, {3, 4}})
	var pts []image.Point
	var vals []int
	for p, v := range g.All() {
		pts = append(pts, p)
		vals = append(vals, v)
	}
	assert.Equal(t, []image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, pts)
	assert.Equal(t, []int{1, 2, 3, 4}, vals)
}

func TestDimensionsString(t *testing.T) {
	assert.Equal(t, "3x2", Dimensions{Width: 3, Height: 2}.String())
}
