package carver

import (
	"math/rand"

	"github.com/san-kum/mazegen/internal/grid"
)

// Braid opens loops through dead ends with the given probability in [0,1].
// Zero leaves the spanning tree untouched. A wall is only removed when doing
// so creates neither a 2x2 open plaza nor an isolated wall pillar.
func Braid(g *grid.Grid, probability float64, rng *rand.Rand) {
	if probability <= 0 {
		return
	}

	sides := [4]grid.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}

	for y := 1; y < g.Height-1; y += 2 {
		for x := 1; x < g.Width-1; x += 2 {
			if g.IsWallAt(x, y) {
				continue
			}

			exits := 0
			for _, s := range sides {
				if !g.IsWallAt(x+s.X, y+s.Y) {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]grid.Point, 0, 4)
			for _, j := range jumps {
				nx, ny := x+j.X, y+j.Y
				wx, wy := x+j.X/2, y+j.Y/2
				if !g.IsInside(nx, ny) {
					continue
				}
				if !g.IsWallAt(nx, ny) && g.IsWallAt(wx, wy) && safeToRemove(g, wx, wy) {
					candidates = append(candidates, grid.Point{X: wx, Y: wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				g.Open(c.X, c.Y)
			}
		}
	}
}

// safeToRemove checks whether opening (x, y) keeps the topology clean:
// no 2x2 open quadrant around it, and no neighboring wall left without a
// wall connection.
func safeToRemove(g *grid.Grid, x, y int) bool {
	isOpen := func(tx, ty int) bool {
		return g.IsInside(tx, ty) && !g.IsWallAt(tx, ty)
	}

	quads := [4][3][2]int{
		{{x - 1, y - 1}, {x, y - 1}, {x - 1, y}},
		{{x, y - 1}, {x + 1, y - 1}, {x + 1, y}},
		{{x - 1, y}, {x - 1, y + 1}, {x, y + 1}},
		{{x + 1, y}, {x, y + 1}, {x + 1, y + 1}},
	}
	for _, q := range quads {
		if isOpen(q[0][0], q[0][1]) && isOpen(q[1][0], q[1][1]) && isOpen(q[2][0], q[2][1]) {
			return false
		}
	}

	sides := [4]grid.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
	for _, s := range sides {
		nx, ny := x+s.X, y+s.Y
		if !g.IsInside(nx, ny) || !g.IsWallAt(nx, ny) {
			continue
		}
		connections := 0
		for _, s2 := range sides {
			nnx, nny := nx+s2.X, ny+s2.Y
			if nnx == x && nny == y {
				continue
			}
			if g.IsInside(nnx, nny) && g.IsWallAt(nnx, nny) {
				connections++
			}
		}
		if connections == 0 {
			return false
		}
	}
	return true
}
