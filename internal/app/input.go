package app

import (
	"image"

	"sand-ca/internal/core"
)

// CursorCell maps a cursor position in screen pixels to a grid cell.
func CursorCell(cursor image.Point, scale int, size core.Dimensions) (image.Point, bool) {
	if scale <= 0 || cursor.X < 0 || cursor.Y < 0 {
		return image.Point{}, false
	}
	cell := cursor.Div(scale)
	if cell.X >= size.Width || cell.Y >= size.Height {
		return image.Point{}, false
	}
	return cell, true
}

// StrokeCells returns every cell on the segment from a to b, inclusive, so
// fast pointer drags leave no gaps.
func StrokeCells(a, b image.Point) []image.Point {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	pts := []image.Point{a}
	for p := a; p != b; {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
		pts = append(pts, p)
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
