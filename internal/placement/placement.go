// Package placement computes valid start and end coordinates for a carved
// maze. Requested coordinates that land on a wall are repaired by an
// expanding-ring search; the search never fails fatally.
package placement

import (
	"fmt"

	"github.com/san-kum/mazegen/internal/grid"
)

// Request selects how start and end are chosen. With AutoPlace set and no
// overrides, the defaults (1,1) and (width-2, height-2) apply. A non-nil
// Start or End always overrides the default. With AutoPlace clear and no
// overrides, no placement happens at all.
type Request struct {
	AutoPlace bool
	Start     *grid.Point
	End       *grid.Point
}

// Wanted reports whether the request asks for any placement.
func (r Request) Wanted() bool {
	return r.AutoPlace || r.Start != nil || r.End != nil
}

// Resolution is the outcome of a placement pass. Warnings are non-fatal
// and surfaced to the caller verbatim.
type Resolution struct {
	Start    grid.Point
	End      grid.Point
	Warnings []string
}

// Resolve computes start and end for the grid. Both returned coordinates
// are open cells whenever the maze has any open cell.
func Resolve(g *grid.Grid, req Request) Resolution {
	start := grid.Point{X: 1, Y: 1}
	end := grid.Point{X: g.Width - 2, Y: g.Height - 2}
	if req.Start != nil {
		start = clamp(g, *req.Start)
	}
	if req.End != nil {
		end = clamp(g, *req.End)
	}

	res := Resolution{}
	res.Start = repair(g, start, "start", &res.Warnings)
	res.End = repair(g, end, "end", &res.Warnings)
	return res
}

func clamp(g *grid.Grid, p grid.Point) grid.Point {
	if p.X < 0 {
		p.X = 0
	}
	if p.X >= g.Width {
		p.X = g.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.Y >= g.Height {
		p.Y = g.Height - 1
	}
	return p
}

// repair returns p when it is already open, otherwise the first open cell
// found by NearestOpen. Exhaustion falls back to (1,1) with a warning.
func repair(g *grid.Grid, p grid.Point, label string, warnings *[]string) grid.Point {
	if !g.IsWallAt(p.X, p.Y) {
		return p
	}
	if open, ok := NearestOpen(g, p); ok {
		return open
	}
	*warnings = append(*warnings,
		fmt.Sprintf("placement: no open cell near %s (%d,%d), falling back to (1,1)", label, p.X, p.Y))
	return grid.Point{X: 1, Y: 1}
}

// NearestOpen scans square rings of growing radius around p and returns the
// first open cell. Within a ring, candidates are visited in lexicographic
// (dx, dy) order, so the result is deterministic.
func NearestOpen(g *grid.Grid, p grid.Point) (grid.Point, bool) {
	maxRadius := g.Width
	if g.Height > maxRadius {
		maxRadius = g.Height
	}

	for r := 0; r <= maxRadius; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if dx != -r && dx != r && dy != -r && dy != r {
					continue
				}
				x, y := p.X+dx, p.Y+dy
				if g.IsInside(x, y) && !g.IsWallAt(x, y) {
					return grid.Point{X: x, Y: y}, true
				}
			}
		}
	}
	return grid.Point{}, false
}
