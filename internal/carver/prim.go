package carver

import (
	"math/rand"

	"github.com/san-kum/mazegen/internal/grid"
)

// Prim carves using randomized Prim's algorithm. The frontier holds wall
// nodes at distance 2 from the carved region; each operation pops a
// uniformly random frontier node, connects it to a uniformly random open
// neighbor by opening both the node and the wall between them, and queues
// the node's own wall neighbors. A node is never queued twice.
type Prim struct {
	g        *grid.Grid
	rng      *rand.Rand
	frontier []grid.Point
	queued   map[grid.Point]bool
}

func NewPrim() *Prim {
	return &Prim{}
}

func (p *Prim) Reset(g *grid.Grid, start grid.Point, rng *rand.Rand) {
	p.g = g
	p.rng = rng
	p.frontier = p.frontier[:0]
	p.queued = make(map[grid.Point]bool)

	start = clampStart(g, start)
	g.Open(start.X, start.Y)
	p.queueNeighbors(start)
}

// FrontierLen reports the current frontier size. Zero once the run is done.
func (p *Prim) FrontierLen() int {
	return len(p.frontier)
}

func (p *Prim) Step(ops int) bool {
	for i := 0; i < ops && len(p.frontier) > 0; i++ {
		idx := p.rng.Intn(len(p.frontier))
		node := p.frontier[idx]
		p.frontier[idx] = p.frontier[len(p.frontier)-1]
		p.frontier = p.frontier[:len(p.frontier)-1]

		open := make([]grid.Point, 0, 4)
		for _, j := range jumps {
			nx, ny := node.X+j.X, node.Y+j.Y
			if p.g.IsInside(nx, ny) && !p.g.IsWallAt(nx, ny) {
				open = append(open, grid.Point{X: nx, Y: ny})
			}
		}

		// A node can have no open neighbor if a competing carve path
		// consumed it while it waited in the frontier; skip it.
		if len(open) == 0 {
			continue
		}

		into := open[p.rng.Intn(len(open))]
		p.g.Open(node.X, node.Y)
		p.g.Open((node.X+into.X)/2, (node.Y+into.Y)/2)
		p.queueNeighbors(node)
	}
	return len(p.frontier) == 0
}

func (p *Prim) queueNeighbors(node grid.Point) {
	for _, j := range jumps {
		n := grid.Point{X: node.X + j.X, Y: node.Y + j.Y}
		if n.X < 1 || n.X >= p.g.Width-1 || n.Y < 1 || n.Y >= p.g.Height-1 {
			continue
		}
		if p.queued[n] || !p.g.IsWallAt(n.X, n.Y) {
			continue
		}
		p.queued[n] = true
		p.frontier = append(p.frontier, n)
	}
}
