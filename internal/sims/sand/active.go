package sand

import (
	"cmp"
	"image"
	"slices"
)

type pointSet map[image.Point]struct{}

func (s pointSet) sorted() []image.Point {
	pts := make([]image.Point, 0, len(s))
	for p := range s {
		pts = append(pts, p)
	}
	slices.SortFunc(pts, func(a, b image.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return pts
}

// ActiveCells tracks which cells need rule evaluation. Only cells that
// changed recently, or sit next to one that did, are visited by Step.
type ActiveCells struct {
	cells             pointSet
	toCheckNextFrame  pointSet
	affectedThisFrame pointSet
}

// NewActiveCells returns an empty tracker.
func NewActiveCells() *ActiveCells {
	return &ActiveCells{
		cells:             pointSet{},
		toCheckNextFrame:  pointSet{},
		affectedThisFrame: pointSet{},
	}
}

// Cells returns the cells to evaluate this tick in row-major order.
func (a *ActiveCells) Cells() []image.Point { return a.cells.sorted() }

// Pending returns the cells queued for the next tick in row-major order.
func (a *ActiveCells) Pending() []image.Point { return a.toCheckNextFrame.sorted() }

// Len reports the number of cells to evaluate this tick.
func (a *ActiveCells) Len() int { return len(a.cells) }

// Contains reports whether p is evaluated this tick.
func (a *ActiveCells) Contains(p image.Point) bool {
	_, ok := a.cells[p]
	return ok
}

// MarkActive adds p to the current set. Used for external edits between ticks.
func (a *ActiveCells) MarkActive(p image.Point) { a.cells[p] = struct{}{} }

// MarkNext queues p for the next tick.
func (a *ActiveCells) MarkNext(p image.Point) { a.toCheckNextFrame[p] = struct{}{} }

// MarkAffected records that p was written this tick.
func (a *ActiveCells) MarkAffected(p image.Point) { a.affectedThisFrame[p] = struct{}{} }

// IsAffected reports whether p was written this tick.
func (a *ActiveCells) IsAffected(p image.Point) bool {
	_, ok := a.affectedThisFrame[p]
	return ok
}

// Update promotes the queued cells to the current set and clears the
// per-tick accumulators.
func (a *ActiveCells) Update() {
	a.cells, a.toCheckNextFrame = a.toCheckNextFrame, a.cells
	clear(a.toCheckNextFrame)
	clear(a.affectedThisFrame)
}

// Clear forgets every tracked cell.
func (a *ActiveCells) Clear() {
	clear(a.cells)
	clear(a.toCheckNextFrame)
	clear(a.affectedThisFrame)
}
