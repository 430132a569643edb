// Package stats derives summary metrics from a carved maze, including a
// breadth-first solution using the pathfinding metadata reserved on each
// cell.
package stats

import "github.com/san-kum/mazegen/internal/grid"

// Summary holds derived maze metrics.
type Summary struct {
	OpenCells   int
	OpenRatio   float64
	DeadEnds    int
	SolutionLen int
	Solvable    bool
}

var sides = [4]grid.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

// Collect computes metrics for the grid and the given endpoints.
func Collect(g *grid.Grid, start, end grid.Point) Summary {
	s := Summary{OpenCells: g.OpenCount()}
	s.OpenRatio = float64(s.OpenCells) / float64(g.Cells())

	for y := 1; y < g.Height-1; y += 2 {
		for x := 1; x < g.Width-1; x += 2 {
			if g.IsWallAt(x, y) {
				continue
			}
			exits := 0
			for _, d := range sides {
				if !g.IsWallAt(x+d.X, y+d.Y) {
					exits++
				}
			}
			if exits == 1 {
				s.DeadEnds++
			}
		}
	}

	path := Solve(g, start, end)
	s.Solvable = path != nil
	s.SolutionLen = len(path)
	return s
}

// Solve runs a breadth-first search from start to end over open cells and
// returns the path including both endpoints, or nil when unreachable. It
// writes the Visited/Dist/Parent metadata on the cells it touches; carvers
// never do, so the fields are free for reuse here.
func Solve(g *grid.Grid, start, end grid.Point) []grid.Point {
	if !g.IsInside(start.X, start.Y) || !g.IsInside(end.X, end.Y) {
		return nil
	}
	if g.IsWallAt(start.X, start.Y) || g.IsWallAt(end.X, end.Y) {
		return nil
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.CellAt(x, y)
			c.Visited = false
			c.Dist = 0
			c.Parent = grid.Point{}
		}
	}

	sc := g.CellAt(start.X, start.Y)
	sc.Visited = true
	queue := []grid.Point{start}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			return walkBack(g, start, end)
		}

		cc := g.CellAt(curr.X, curr.Y)
		for _, d := range sides {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if !g.IsInside(nx, ny) || g.IsWallAt(nx, ny) {
				continue
			}
			nc := g.CellAt(nx, ny)
			if nc.Visited {
				continue
			}
			nc.Visited = true
			nc.Dist = cc.Dist + 1
			nc.Parent = curr
			queue = append(queue, grid.Point{X: nx, Y: ny})
		}
	}
	return nil
}

func walkBack(g *grid.Grid, start, end grid.Point) []grid.Point {
	length := g.CellAt(end.X, end.Y).Dist + 1
	path := make([]grid.Point, length)
	curr := end
	for i := length - 1; i >= 0; i-- {
		path[i] = curr
		curr = g.CellAt(curr.X, curr.Y).Parent
	}
	if path[0] != start {
		return nil
	}
	return path
}
