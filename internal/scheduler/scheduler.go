// Package scheduler orchestrates maze generation as a single cancelable,
// resumable task. The host frame loop calls Step once per frame; each call
// performs a bounded slice of work (carving frontier operations or tile
// materialization) and returns. A new request preempts the in-flight one at
// the next suspension point with a deterministic, synchronous teardown.
package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/mazegen/internal/carver"
	"github.com/san-kum/mazegen/internal/grid"
	"github.com/san-kum/mazegen/internal/placement"
	"github.com/san-kum/mazegen/internal/pool"
)

// Phase is the generation state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCarving
	PhaseBuilding
	PhasePlacing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCarving:
		return "carving"
	case PhaseBuilding:
		return "building"
	case PhasePlacing:
		return "placing"
	}
	return "unknown"
}

// Default work-slice bounds per Step call.
const (
	DefaultCarveOpsPerStep   = 10
	DefaultBuildCellsPerStep = 50
)

// Request describes one generation run. It is copied on submission and
// immutable for the duration of the run. A zero Seed means randomize.
type Request struct {
	Width  int
	Height int
	Seed   int64
	Carver carver.Carver
	Braid  float64
	Place  placement.Request
	Wall   pool.Color
	Floor  pool.Color
	Hidden pool.Color
	Start  pool.Color
	End    pool.Color
}

// Options tune the scheduler's suspension discipline. Zero values take the
// package defaults.
type Options struct {
	CarveOpsPerStep   int
	BuildCellsPerStep int
}

// Scheduler drives carve, build and placement phases over a shared grid and
// instance pool. It is the only mutator of the pool across generation runs.
// Not safe for concurrent use; the model is single-threaded cooperative.
type Scheduler struct {
	opts Options
	pool *pool.Pool

	phase    Phase
	stepping bool

	g   *grid.Grid
	req Request
	rng *rand.Rand

	// Build bookkeeping.
	active  []*pool.Handle
	retired []*pool.Handle
	built   int
	total   int

	startMarker *pool.Handle
	endMarker   *pool.Handle
	resolution  placement.Resolution

	progressFn func(float64)
	progress   float64

	// Pool ownership faults, surfaced through Warnings.
	faults []string
}

// New builds a scheduler over the given pool. The pool must have been
// constructed with a valid factory; a nil pool leaves the scheduler unable
// to accept requests.
func New(p *pool.Pool, opts Options) *Scheduler {
	if opts.CarveOpsPerStep <= 0 {
		opts.CarveOpsPerStep = DefaultCarveOpsPerStep
	}
	if opts.BuildCellsPerStep <= 0 {
		opts.BuildCellsPerStep = DefaultBuildCellsPerStep
	}
	return &Scheduler{opts: opts, pool: p}
}

// OnProgress registers the build-progress callback. The fraction is
// monotonically non-decreasing in [0,1] within one run, emitted at each
// build-phase suspension point.
func (s *Scheduler) OnProgress(fn func(float64)) {
	s.progressFn = fn
}

// Generate submits a request. While idle, any previously materialized maze
// is retired for pool return during the next build phase. While busy, the
// in-flight task is aborted at the current suspension point and every
// active instance is returned to the pool synchronously before the new run
// starts. It never runs two tasks concurrently and never queues requests.
func (s *Scheduler) Generate(req Request) error {
	if s.pool == nil {
		return &TaskError{Phase: s.phase, Seed: req.Seed, Wrapped: pool.ErrNoFactory}
	}
	if req.Carver == nil {
		req.Carver = carver.NewPrim()
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	if s.phase != PhaseIdle {
		// Preemption: deterministic synchronous teardown, no idle wait.
		s.releaseAll()
		s.phase = PhaseIdle
	} else {
		// Idle with a materialized maze: defer its return to the build
		// phase, which waits for each instance's idle predicate.
		s.retireActive()
	}

	s.req = req
	s.rng = rand.New(rand.NewSource(req.Seed))
	s.g = grid.New(req.Width, req.Height)
	s.built = 0
	s.total = 0
	s.progress = 0
	s.resolution = placement.Resolution{}
	s.faults = nil
	req.Carver.Reset(s.g, grid.Point{X: 1, Y: 1}, s.rng)
	s.phase = PhaseCarving
	return nil
}

// Step advances the current task by one bounded work slice. It returns
// true while more work remains. Calling Step while idle is a no-op.
func (s *Scheduler) Step() (bool, error) {
	if s.stepping {
		return false, ErrBusyStep
	}
	s.stepping = true
	defer func() { s.stepping = false }()

	switch s.phase {
	case PhaseIdle:
		return false, nil
	case PhaseCarving:
		s.stepCarve()
	case PhaseBuilding:
		s.stepBuild()
	case PhasePlacing:
		s.stepPlace()
	}
	return s.phase != PhaseIdle, nil
}

// Clear tears the materialized maze down and returns every instance to the
// pool immediately, including an in-flight task's. The grid itself is kept
// for read-only queries until the next request.
func (s *Scheduler) Clear() {
	s.releaseAll()
	s.phase = PhaseIdle
	s.progress = 0
}

// IsGenerating reports whether a task is in flight.
func (s *Scheduler) IsGenerating() bool {
	return s.phase != PhaseIdle
}

// Phase exposes the current state-machine phase.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Progress returns the last emitted build fraction.
func (s *Scheduler) Progress() float64 {
	return s.progress
}

// IsWallAt is the read-only grid query. Before any generation it reports
// true for every coordinate.
func (s *Scheduler) IsWallAt(x, y int) bool {
	if s.g == nil || !s.g.IsInside(x, y) {
		return true
	}
	return s.g.IsWallAt(x, y)
}

// Grid exposes the lattice of the most recent run, nil before the first.
func (s *Scheduler) Grid() *grid.Grid {
	return s.g
}

// Active returns the materialized tile handles, row-major in build order.
func (s *Scheduler) Active() []*pool.Handle {
	return s.active
}

// PendingRetire reports instances from a prior generation still awaiting
// their idle predicate before pool return.
func (s *Scheduler) PendingRetire() int {
	return len(s.retired)
}

// StartPoint and EndPoint report the resolved placement of the last
// completed run. Meaningless unless Placed reports true.
func (s *Scheduler) StartPoint() grid.Point { return s.resolution.Start }
func (s *Scheduler) EndPoint() grid.Point   { return s.resolution.End }

// Placed reports whether the last completed run materialized start and end
// markers. False when the request asked for no placement.
func (s *Scheduler) Placed() bool {
	return s.startMarker != nil && s.endMarker != nil
}

// EachVisual walks every instance the scheduler currently owns: the active
// set, both markers, and retirees still awaiting their idle predicate. The
// host loop drives per-frame animation through this walk; a retiree that is
// never advanced would hold the build phase suspended forever.
func (s *Scheduler) EachVisual(fn func(pool.Visual)) {
	for _, h := range s.active {
		fn(h.Visual)
	}
	for _, h := range s.retired {
		fn(h.Visual)
	}
	if s.startMarker != nil {
		fn(s.startMarker.Visual)
	}
	if s.endMarker != nil {
		fn(s.endMarker.Visual)
	}
}

// Warnings returns non-fatal placement warnings and pool ownership faults
// from the last run.
func (s *Scheduler) Warnings() []string {
	if len(s.faults) == 0 {
		return s.resolution.Warnings
	}
	merged := make([]string, 0, len(s.resolution.Warnings)+len(s.faults))
	merged = append(merged, s.resolution.Warnings...)
	merged = append(merged, s.faults...)
	return merged
}

func (s *Scheduler) stepCarve() {
	if !s.req.Carver.Step(s.opts.CarveOpsPerStep) {
		return
	}
	carver.Braid(s.g, s.req.Braid, s.rng)
	s.total = s.g.Cells()
	s.built = 0
	s.phase = PhaseBuilding
	s.emitProgress(0)
}

func (s *Scheduler) stepBuild() {
	// The previous generation's instances go back to the pool before any
	// new tile is materialized, and each only once it reports idle. A
	// pending animation suspends the build until a later frame.
	if len(s.retired) > 0 {
		kept := s.retired[:0]
		for _, h := range s.retired {
			if h.Visual.Idle() {
				s.release(h)
			} else {
				kept = append(kept, h)
			}
		}
		s.retired = kept
		if len(s.retired) > 0 {
			s.emitProgress(float64(s.built) / float64(s.total))
			return
		}
	}

	for i := 0; i < s.opts.BuildCellsPerStep && s.built < s.total; i++ {
		x := s.built % s.g.Width
		y := s.built / s.g.Width

		role := pool.RoleFloor
		revealed := s.req.Floor
		if s.g.IsWallAt(x, y) {
			role = pool.RoleWall
			revealed = s.req.Wall
		}

		h := s.pool.Acquire(role)
		h.X, h.Y = x, y
		h.Visual.SetRevealedColor(revealed)
		h.Visual.SetHiddenColor(s.req.Hidden)
		s.active = append(s.active, h)
		s.built++
	}

	s.emitProgress(float64(s.built) / float64(s.total))
	if s.built == s.total {
		s.phase = PhasePlacing
	}
}

func (s *Scheduler) stepPlace() {
	// Old markers are torn down before their replacements exist, so at
	// most one of each is ever materialized.
	if s.startMarker != nil {
		s.release(s.startMarker)
		s.startMarker = nil
	}
	if s.endMarker != nil {
		s.release(s.endMarker)
		s.endMarker = nil
	}

	if s.req.Place.Wanted() {
		s.resolution = placement.Resolve(s.g, s.req.Place)
		s.startMarker = s.placeMarker(s.resolution.Start, s.req.Start)
		s.endMarker = s.placeMarker(s.resolution.End, s.req.End)
	} else {
		s.resolution = placement.Resolution{}
	}

	s.phase = PhaseIdle
}

func (s *Scheduler) placeMarker(at grid.Point, color pool.Color) *pool.Handle {
	h := s.pool.Acquire(pool.RoleFloor)
	h.X, h.Y = at.X, at.Y
	h.Visual.SetRevealedColor(color)
	h.Visual.SetHiddenColor(s.req.Hidden)
	return h
}

// retireActive moves the active set and markers to the retired list for
// idle-gated return during the next build phase.
func (s *Scheduler) retireActive() {
	s.retired = append(s.retired, s.active...)
	s.active = s.active[:0]
	if s.startMarker != nil {
		s.retired = append(s.retired, s.startMarker)
		s.startMarker = nil
	}
	if s.endMarker != nil {
		s.retired = append(s.retired, s.endMarker)
		s.endMarker = nil
	}
}

// releaseAll returns every owned instance to the pool unconditionally.
func (s *Scheduler) releaseAll() {
	for _, h := range s.active {
		s.release(h)
	}
	s.active = s.active[:0]
	for _, h := range s.retired {
		s.release(h)
	}
	s.retired = s.retired[:0]
	if s.startMarker != nil {
		s.release(s.startMarker)
		s.startMarker = nil
	}
	if s.endMarker != nil {
		s.release(s.endMarker)
		s.endMarker = nil
	}
}

// release returns one handle, recording rather than dropping an ownership
// fault. The double-release guard firing here means some other party
// touched a handle the scheduler owns.
func (s *Scheduler) release(h *pool.Handle) {
	if err := s.pool.Release(h); err != nil {
		s.faults = append(s.faults, fmt.Sprintf("release of (%d,%d): %v", h.X, h.Y, err))
	}
}

func (s *Scheduler) emitProgress(f float64) {
	if f < s.progress {
		f = s.progress
	}
	s.progress = f
	if s.progressFn != nil {
		s.progressFn(f)
	}
}
