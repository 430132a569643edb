package carver

import (
	"math/rand"

	"github.com/san-kum/mazegen/internal/grid"
)

// Backtracker carves with an iterative recursive-backtracker walk. It
// produces longer corridors than Prim; each operation either extends the
// walk into a random unvisited node or retreats one step.
type Backtracker struct {
	g     *grid.Grid
	rng   *rand.Rand
	stack []grid.Point
}

func NewBacktracker() *Backtracker {
	return &Backtracker{}
}

func (b *Backtracker) Reset(g *grid.Grid, start grid.Point, rng *rand.Rand) {
	b.g = g
	b.rng = rng

	start = clampStart(g, start)
	g.Open(start.X, start.Y)
	b.stack = append(b.stack[:0], start)
}

func (b *Backtracker) Step(ops int) bool {
	for i := 0; i < ops && len(b.stack) > 0; i++ {
		curr := b.stack[len(b.stack)-1]

		candidates := make([]grid.Point, 0, 4)
		for _, j := range jumps {
			nx, ny := curr.X+j.X, curr.Y+j.Y
			if nx > 0 && nx < b.g.Width-1 && ny > 0 && ny < b.g.Height-1 && b.g.IsWallAt(nx, ny) {
				candidates = append(candidates, grid.Point{X: nx, Y: ny})
			}
		}

		if len(candidates) == 0 {
			b.stack = b.stack[:len(b.stack)-1]
			continue
		}

		next := candidates[b.rng.Intn(len(candidates))]
		b.g.Open((curr.X+next.X)/2, (curr.Y+next.Y)/2)
		b.g.Open(next.X, next.Y)
		b.stack = append(b.stack, next)
	}
	return len(b.stack) == 0
}
