package placement

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/mazegen/internal/carver"
	"github.com/san-kum/mazegen/internal/grid"
)

func carved(t *testing.T, w, h int, seed int64) *grid.Grid {
	t.Helper()
	g := grid.New(w, h)
	c := carver.NewPrim()
	c.Reset(g, grid.Point{X: 1, Y: 1}, rand.New(rand.NewSource(seed)))
	for !c.Step(100) {
	}
	return g
}

func TestRequest_Wanted(t *testing.T) {
	p := grid.Point{X: 3, Y: 3}
	cases := []struct {
		name string
		req  Request
		want bool
	}{
		{"zero request", Request{}, false},
		{"auto", Request{AutoPlace: true}, true},
		{"start only", Request{Start: &p}, true},
		{"end only", Request{End: &p}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.Wanted(); got != tc.want {
				t.Errorf("Wanted() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	g := carved(t, 21, 21, 42)
	res := Resolve(g, Request{AutoPlace: true})

	if res.Start != (grid.Point{X: 1, Y: 1}) {
		t.Errorf("Start = %v, want (1,1)", res.Start)
	}
	if res.End != (grid.Point{X: 19, Y: 19}) {
		t.Errorf("End = %v, want (19,19)", res.End)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestResolve_NeverOnWall(t *testing.T) {
	for _, sz := range []struct{ w, h int }{{5, 5}, {7, 9}, {21, 21}, {41, 31}} {
		for seed := int64(1); seed <= 10; seed++ {
			g := carved(t, sz.w, sz.h, seed)
			res := Resolve(g, Request{AutoPlace: true})
			if g.IsWallAt(res.Start.X, res.Start.Y) {
				t.Fatalf("%dx%d seed %d: start %v is a wall", sz.w, sz.h, seed, res.Start)
			}
			if g.IsWallAt(res.End.X, res.End.Y) {
				t.Fatalf("%dx%d seed %d: end %v is a wall", sz.w, sz.h, seed, res.End)
			}
		}
	}
}

func TestResolve_CustomOverride(t *testing.T) {
	g := carved(t, 21, 21, 42)
	start := grid.Point{X: 5, Y: 5}
	end := grid.Point{X: 15, Y: 15}
	res := Resolve(g, Request{Start: &start, End: &end})

	// Custom coordinates are honored directly when open, repaired to a
	// nearby open cell otherwise.
	for _, p := range []grid.Point{res.Start, res.End} {
		if g.IsWallAt(p.X, p.Y) {
			t.Errorf("resolved %v is a wall", p)
		}
	}
	if dist(res.Start, start) > 2 || dist(res.End, end) > 2 {
		t.Errorf("repair wandered: start %v end %v", res.Start, res.End)
	}
}

func TestResolve_ClampsOutOfBounds(t *testing.T) {
	g := carved(t, 11, 11, 1)
	start := grid.Point{X: -4, Y: 99}
	res := Resolve(g, Request{Start: &start})
	if !g.IsInside(res.Start.X, res.Start.Y) || g.IsWallAt(res.Start.X, res.Start.Y) {
		t.Errorf("clamped start %v invalid", res.Start)
	}
}

func TestNearestOpen_RingOrder(t *testing.T) {
	g := grid.New(7, 7)
	// Two open cells equidistant from the query point; lexicographic (dx,dy)
	// order must pick the smaller dx first.
	g.Open(2, 3) // dx=-1, dy=0
	g.Open(4, 3) // dx=+1, dy=0

	got, ok := NearestOpen(g, grid.Point{X: 3, Y: 3})
	if !ok || got != (grid.Point{X: 2, Y: 3}) {
		t.Errorf("NearestOpen = %v (%v), want (2,3)", got, ok)
	}
}

func TestResolve_ExhaustionFallsBack(t *testing.T) {
	g := grid.New(7, 7) // never carved: all walls
	res := Resolve(g, Request{AutoPlace: true})

	if res.Start != (grid.Point{X: 1, Y: 1}) || res.End != (grid.Point{X: 1, Y: 1}) {
		t.Errorf("fallback = %v/%v, want (1,1)", res.Start, res.End)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("warnings = %v, want one per endpoint", res.Warnings)
	}
	for _, w := range res.Warnings {
		if !strings.Contains(w, "falling back") {
			t.Errorf("warning %q does not explain fallback", w)
		}
	}
}

func dist(a, b grid.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
