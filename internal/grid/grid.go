package grid

// Point is a cell coordinate on the lattice.
type Point struct {
	X, Y int
}

// Cell is a single lattice cell. The coordinate is fixed at allocation; the
// wall flag is flipped by carvers. The pathfinding fields are reserved for
// solvers (see internal/stats) and are never written during carving.
type Cell struct {
	X, Y   int
	IsWall bool

	// Pathfinding metadata, owned by solvers.
	Visited bool
	Dist    int
	Cost    int
	Parent  Point
}

// Grid is a rectangular wall/open lattice. Dimensions are always odd and at
// least 3; even requested values are coerced to the next odd value. Every
// cell exists and starts as a wall.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

// EnsureOdd coerces a requested dimension to the nearest valid value: at
// least 3, and odd (even values round up).
func EnsureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n + 1
	}
	return n
}

// New allocates a grid of the coerced dimensions with every cell a wall.
func New(width, height int) *Grid {
	g := &Grid{
		Width:  EnsureOdd(width),
		Height: EnsureOdd(height),
	}
	g.cells = make([]Cell, g.Width*g.Height)
	g.Fill()
	return g
}

// Fill resets every cell to a wall and clears pathfinding metadata.
func (g *Grid) Fill() {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.cells[y*g.Width+x] = Cell{X: x, Y: y, IsWall: true}
		}
	}
}

// IsInside reports whether (x, y) is within the lattice bounds.
func (g *Grid) IsInside(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// CellAt returns the cell at (x, y). The coordinate must be inside the
// grid; out-of-bounds access is a caller bug, not a runtime condition.
func (g *Grid) CellAt(x, y int) *Cell {
	return &g.cells[y*g.Width+x]
}

// IsWallAt reports the wall state at (x, y).
func (g *Grid) IsWallAt(x, y int) bool {
	return g.cells[y*g.Width+x].IsWall
}

// Open clears the wall flag at (x, y).
func (g *Grid) Open(x, y int) {
	g.cells[y*g.Width+x].IsWall = false
}

// OpenCount returns the number of open cells.
func (g *Grid) OpenCount() int {
	n := 0
	for i := range g.cells {
		if !g.cells[i].IsWall {
			n++
		}
	}
	return n
}

// Cells returns the number of cells in the lattice.
func (g *Grid) Cells() int {
	return g.Width * g.Height
}
