package physics

import (
	"math"
	"slices"

	"github.com/tomz197/relativity-wars/internal/vec"
)

// SpatialGrid is a uniform grid for broad-phase collision detection on a bounded playfield.
// Items are inserted by position and index, then nearby items can be queried
// through a 3x3 neighborhood lookup.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding objects so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialGrid struct {
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int
	scratch     []int
}

// NewSpatialGrid creates a spatial grid covering the given playfield dimensions.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := max(1, int(math.Ceil(width/cellSize)))
	rows := max(1, int(math.Ceil(height/cellSize)))
	return &SpatialGrid{
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an item (identified by index) at the given position.
// Positions outside the playfield are clamped into the border cells.
func (g *SpatialGrid) Insert(p vec.Vec2, index int) {
	col, row := g.cell(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
}

// Nearby returns the indices stored in the 3x3 neighborhood of p in ascending order.
// The returned slice is reused by the next call.
func (g *SpatialGrid) Nearby(p vec.Vec2) []int {
	col, row := g.cell(p)
	out := g.scratch[:0]
	for r := max(0, row-1); r <= min(g.rows-1, row+1); r++ {
		for c := max(0, col-1); c <= min(g.cols-1, col+1); c++ {
			out = append(out, g.cells[r*g.cols+c]...)
		}
	}
	slices.Sort(out)
	g.scratch = out
	return out
}

func (g *SpatialGrid) cell(p vec.Vec2) (col, row int) {
	col = min(max(int(p.X*g.invCellSize), 0), g.cols-1)
	row = min(max(int(p.Y*g.invCellSize), 0), g.rows-1)
	return col, row
}
