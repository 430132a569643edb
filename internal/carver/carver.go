// Package carver implements resumable maze-carving algorithms over a wall
// lattice. Carvers operate on the stride-2 node lattice: cells with both
// coordinates odd are nodes, and the cell between two adjacent nodes is the
// removable wall. Every registered carver produces a perfect maze (the open
// nodes form a spanning tree), deterministic for a given seed.
package carver

import (
	"math/rand"

	"github.com/san-kum/mazegen/internal/grid"
)

// Carver is a resumable carving run. Reset binds the carver to a freshly
// filled grid; Step performs up to ops carve operations and reports whether
// the run is complete. A carver never suspends mid-operation.
type Carver interface {
	Reset(g *grid.Grid, start grid.Point, rng *rand.Rand)
	Step(ops int) (done bool)
}

// jumps are the four stride-2 node offsets.
var jumps = [4]grid.Point{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}

// clampStart snaps a requested start onto an in-bounds node of the stride-2
// lattice, falling back to (1,1).
func clampStart(g *grid.Grid, start grid.Point) grid.Point {
	if start.X < 1 || start.X >= g.Width-1 || start.Y < 1 || start.Y >= g.Height-1 ||
		start.X%2 == 0 || start.Y%2 == 0 {
		return grid.Point{X: 1, Y: 1}
	}
	return start
}
