package scheduler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mazegen/internal/carver"
	"github.com/san-kum/mazegen/internal/grid"
	"github.com/san-kum/mazegen/internal/placement"
	"github.com/san-kum/mazegen/internal/pool"
	"github.com/san-kum/mazegen/internal/scheduler"
)

// tile is a minimal rendering-layer instance. Its fade counter stands in
// for a release-blocking reveal animation: non-zero means not idle.
type tile struct {
	fade     int
	revealed pool.Color
	hidden   pool.Color
}

func (t *tile) Reset()                        { t.fade = 0 }
func (t *tile) SetRevealedColor(c pool.Color) { t.revealed = c }
func (t *tile) SetHiddenColor(c pool.Color)   { t.hidden = c }
func (t *tile) Idle() bool                    { return t.fade == 0 }

func newPool() *pool.Pool {
	p, err := pool.New(pool.Callbacks{
		Create: func(pool.Role) pool.Visual { return &tile{} },
		Reset:  func(v pool.Visual) { v.Reset() },
	})
	Expect(err).NotTo(HaveOccurred())
	return p
}

func request(w, h int, seed int64) scheduler.Request {
	return scheduler.Request{
		Width:  w,
		Height: h,
		Seed:   seed,
		Carver: carver.NewPrim(),
		Place:  placement.Request{AutoPlace: true},
		Wall:   "#444444",
		Floor:  "#cccccc",
		Hidden: "#111111",
	}
}

// drive steps the scheduler to completion, bounded against runaway loops.
func drive(s *scheduler.Scheduler) int {
	steps := 0
	for s.IsGenerating() {
		_, err := s.Step()
		Expect(err).NotTo(HaveOccurred())
		steps++
		Expect(steps).To(BeNumerically("<", 100000), "scheduler did not terminate")
	}
	return steps
}

var _ = Describe("Scheduler", func() {
	var (
		p *pool.Pool
		s *scheduler.Scheduler
	)

	BeforeEach(func() {
		p = newPool()
		s = scheduler.New(p, scheduler.Options{})
	})

	Describe("a full generation run", func() {
		It("materializes one instance per cell plus two markers", func() {
			Expect(s.Generate(request(21, 21, 42))).To(Succeed())
			drive(s)

			Expect(s.Active()).To(HaveLen(21 * 21))
			Expect(p.Outstanding()).To(Equal(21*21 + 2))
			Expect(s.IsGenerating()).To(BeFalse())
		})

		It("coerces even dimensions to the next odd value", func() {
			Expect(s.Generate(request(20, 10, 1))).To(Succeed())
			drive(s)

			g := s.Grid()
			Expect(g.Width).To(Equal(21))
			Expect(g.Height).To(Equal(11))
			Expect(s.Active()).To(HaveLen(21 * 11))
		})

		It("tags every handle with the role matching its cell", func() {
			Expect(s.Generate(request(9, 9, 7))).To(Succeed())
			drive(s)

			for _, h := range s.Active() {
				if s.Grid().IsWallAt(h.X, h.Y) {
					Expect(h.Role).To(Equal(pool.RoleWall))
					Expect(h.Visual.(*tile).revealed).To(Equal(pool.Color("#444444")))
				} else {
					Expect(h.Role).To(Equal(pool.RoleFloor))
					Expect(h.Visual.(*tile).revealed).To(Equal(pool.Color("#cccccc")))
				}
			}
		})

		It("only starts building after carving has fully completed", func() {
			Expect(s.Generate(request(21, 21, 42))).To(Succeed())

			sawCarving := false
			for s.Phase() == scheduler.PhaseCarving {
				sawCarving = true
				Expect(s.Active()).To(BeEmpty())
				Expect(p.Outstanding()).To(BeZero())
				s.Step()
			}
			Expect(sawCarving).To(BeTrue())
			drive(s)
		})

		It("resolves start and end onto open cells", func() {
			Expect(s.Generate(request(21, 21, 42))).To(Succeed())
			drive(s)

			Expect(s.Placed()).To(BeTrue())
			g := s.Grid()
			Expect(g.IsWallAt(s.StartPoint().X, s.StartPoint().Y)).To(BeFalse())
			Expect(g.IsWallAt(s.EndPoint().X, s.EndPoint().Y)).To(BeFalse())
			Expect(s.Warnings()).To(BeEmpty())
		})
	})

	Describe("placement selection", func() {
		It("skips marker placement when none is requested", func() {
			req := request(9, 9, 3)
			req.Place = placement.Request{}
			Expect(s.Generate(req)).To(Succeed())
			drive(s)

			Expect(s.Placed()).To(BeFalse())
			Expect(p.Outstanding()).To(Equal(9*9), "no marker instances without placement")
		})

		It("places markers for an explicit coordinate without auto placement", func() {
			req := request(9, 9, 3)
			start := grid.Point{X: 1, Y: 1}
			req.Place = placement.Request{Start: &start}
			Expect(s.Generate(req)).To(Succeed())
			drive(s)

			Expect(s.Placed()).To(BeTrue())
			Expect(s.StartPoint()).To(Equal(start))
			Expect(p.Outstanding()).To(Equal(9*9 + 2))
		})
	})

	Describe("progress reporting", func() {
		It("emits a monotone fraction from 0 to 1 during the build phase", func() {
			var reported []float64
			s.OnProgress(func(f float64) { reported = append(reported, f) })

			Expect(s.Generate(request(21, 21, 42))).To(Succeed())
			drive(s)

			Expect(reported).NotTo(BeEmpty())
			Expect(reported[0]).To(BeZero())
			Expect(reported[len(reported)-1]).To(Equal(1.0))
			for i := 1; i < len(reported); i++ {
				Expect(reported[i]).To(BeNumerically(">=", reported[i-1]))
			}
		})
	})

	Describe("determinism", func() {
		It("produces identical grids for identical requests", func() {
			Expect(s.Generate(request(21, 21, 99))).To(Succeed())
			drive(s)
			first := s.Grid()

			s2 := scheduler.New(newPool(), scheduler.Options{})
			Expect(s2.Generate(request(21, 21, 99))).To(Succeed())
			drive(s2)

			for y := 0; y < first.Height; y++ {
				for x := 0; x < first.Width; x++ {
					Expect(s2.IsWallAt(x, y)).To(Equal(first.IsWallAt(x, y)))
				}
			}
		})
	})

	Describe("preemption", func() {
		It("tears the in-flight task down and leaves only the newest maze", func() {
			Expect(s.Generate(request(21, 21, 1))).To(Succeed())

			// Step partway into the build phase.
			for s.Phase() != scheduler.PhaseBuilding {
				s.Step()
			}
			s.Step()
			Expect(s.Active()).NotTo(BeEmpty())

			Expect(s.Generate(request(9, 9, 2))).To(Succeed())
			Expect(p.Outstanding()).To(BeZero(), "preempted instances must return synchronously")
			drive(s)

			Expect(s.Active()).To(HaveLen(9 * 9))
			Expect(p.Outstanding()).To(Equal(9*9 + 2))
		})

		It("never exceeds one task's worth of outstanding instances", func() {
			Expect(s.Generate(request(15, 15, 3))).To(Succeed())
			for i := 0; i < 5; i++ {
				s.Step()
			}
			Expect(s.Generate(request(15, 15, 4))).To(Succeed())
			drive(s)
			Expect(p.Outstanding()).To(Equal(15*15 + 2))
		})
	})

	Describe("clearing", func() {
		It("returns every instance, leaving the pool balanced", func() {
			Expect(s.Generate(request(21, 21, 42))).To(Succeed())
			drive(s)
			Expect(p.Outstanding()).NotTo(BeZero())

			s.Clear()
			Expect(p.Outstanding()).To(BeZero())
			Expect(s.IsGenerating()).To(BeFalse())
		})

		It("balances acquire and release across generate/clear cycles", func() {
			for seed := int64(1); seed <= 3; seed++ {
				Expect(s.Generate(request(11, 11, seed))).To(Succeed())
				drive(s)
				s.Clear()
				Expect(p.Outstanding()).To(BeZero())
			}
		})

		It("surfaces a warning when a handle was released behind its back", func() {
			Expect(s.Generate(request(9, 9, 7))).To(Succeed())
			drive(s)

			// A rogue release outside the scheduler trips the double-release
			// guard when the scheduler hands the same handle back.
			Expect(p.Release(s.Active()[0])).To(Succeed())

			s.Clear()
			Expect(p.Outstanding()).To(BeZero())
			Expect(s.Warnings()).To(ContainElement(ContainSubstring("released twice")))
		})
	})

	Describe("the idle barrier", func() {
		It("holds prior instances out of the pool until their animation settles", func() {
			Expect(s.Generate(request(9, 9, 5))).To(Succeed())
			drive(s)
			prior := s.Active()

			// Give the old tiles a pending reveal animation.
			for _, h := range prior {
				h.Visual.(*tile).fade = 2
			}

			Expect(s.Generate(request(9, 9, 6))).To(Succeed())
			Expect(s.PendingRetire()).To(BeNumerically(">", 0))

			// Drive through carving into the stalled build.
			for s.Phase() != scheduler.PhaseBuilding {
				s.Step()
			}
			s.Step()
			Expect(s.Active()).To(BeEmpty(), "build must not materialize while retirees are animating")
			Expect(s.PendingRetire()).To(BeNumerically(">", 0))

			// Let the animations finish; the build resumes.
			for _, h := range prior {
				h.Visual.(*tile).fade = 0
			}
			drive(s)
			Expect(s.PendingRetire()).To(BeZero())
			Expect(s.Active()).To(HaveLen(9 * 9))
			Expect(p.Outstanding()).To(Equal(9*9 + 2))
		})
	})

	Describe("request validation", func() {
		It("rejects a request when no pool is configured", func() {
			bare := scheduler.New(nil, scheduler.Options{})
			err := bare.Generate(request(9, 9, 1))
			Expect(err).To(MatchError(pool.ErrNoFactory))
			Expect(err.Error()).To(ContainSubstring("phase idle"))
			Expect(err.Error()).To(ContainSubstring("seed 1"))
			Expect(bare.Grid()).To(BeNil(), "no grid mutation on rejected request")
		})

		It("leaves the prior maze untouched on a rejected request", func() {
			Expect(s.Generate(request(9, 9, 1))).To(Succeed())
			drive(s)
			active := len(s.Active())

			bare := scheduler.New(nil, scheduler.Options{})
			Expect(bare.Generate(request(9, 9, 2))).NotTo(Succeed())
			Expect(s.Active()).To(HaveLen(active))
		})
	})
})
