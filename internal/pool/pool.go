// Package pool manages reusable visual instances for maze tiles. The pool
// holds one warmed free list per role; the rendering layer supplies the
// create/reset/dispose callbacks, so the pool itself knows nothing about how
// an instance is drawn.
package pool

import "errors"

var (
	// ErrNoFactory indicates the rendering layer supplied no create callback.
	ErrNoFactory = errors.New("pool: no visual factory configured")

	// ErrDoubleRelease indicates a handle was released while already pooled.
	ErrDoubleRelease = errors.New("pool: handle released twice")
)

// Role classifies a pooled instance. The role is fixed on the handle at
// acquisition; it is never inferred from the instance itself.
type Role int

const (
	RoleWall Role = iota
	RoleFloor
)

func (r Role) String() string {
	switch r {
	case RoleWall:
		return "wall"
	case RoleFloor:
		return "floor"
	}
	return "unknown"
}

// Color is an opaque color value propagated verbatim to instances.
type Color string

// Visual is the contract a rendering layer's instance satisfies. Reset
// restarts any reveal animation, Idle reports whether no release-blocking
// animation is pending.
type Visual interface {
	Reset()
	SetRevealedColor(Color)
	SetHiddenColor(Color)
	Idle() bool
}

// Callbacks are the lifecycle hooks supplied by the rendering layer.
type Callbacks struct {
	Create  func(Role) Visual
	Reset   func(Visual)
	Dispose func(Visual)
}

// Handle is an acquired instance. Exactly one owner exists at any time:
// the pool while the handle sits in a free list, the caller otherwise.
type Handle struct {
	Role   Role
	Visual Visual
	X, Y   int

	pooled bool
}

// Pool holds one free list per role.
type Pool struct {
	cb       Callbacks
	free     map[Role][]*Handle
	acquired int
	released int
	created  int
}

// New builds a pool around the supplied callbacks. A create callback is
// mandatory; reset and dispose may be nil.
func New(cb Callbacks) (*Pool, error) {
	if cb.Create == nil {
		return nil, ErrNoFactory
	}
	return &Pool{
		cb:   cb,
		free: make(map[Role][]*Handle),
	}, nil
}

// Warm pre-populates the free list for a role with n instances.
func (p *Pool) Warm(role Role, n int) {
	for i := 0; i < n; i++ {
		p.free[role] = append(p.free[role], p.newHandle(role))
	}
}

// Acquire hands out a free instance for the role, creating one when the
// free list is empty. The instance is reset before it is returned.
func (p *Pool) Acquire(role Role) *Handle {
	var h *Handle
	if list := p.free[role]; len(list) > 0 {
		h = list[len(list)-1]
		p.free[role] = list[:len(list)-1]
	} else {
		h = p.newHandle(role)
	}
	h.pooled = false
	h.X, h.Y = 0, 0
	if p.cb.Reset != nil {
		p.cb.Reset(h.Visual)
	}
	p.acquired++
	return h
}

// Release returns a handle to its role's free list. The caller must not
// touch the handle again until it is re-acquired.
func (p *Pool) Release(h *Handle) error {
	if h.pooled {
		return ErrDoubleRelease
	}
	h.pooled = true
	p.free[h.Role] = append(p.free[h.Role], h)
	p.released++
	return nil
}

// Outstanding reports handles acquired but not yet released.
func (p *Pool) Outstanding() int {
	return p.acquired - p.released
}

// FreeCount reports the free-list size for a role.
func (p *Pool) FreeCount(role Role) int {
	return len(p.free[role])
}

// Created reports how many instances the factory produced in total.
func (p *Pool) Created() int {
	return p.created
}

// Close disposes every pooled instance and empties the free lists.
// Outstanding handles are the caller's responsibility.
func (p *Pool) Close() {
	for role, list := range p.free {
		if p.cb.Dispose != nil {
			for _, h := range list {
				p.cb.Dispose(h.Visual)
			}
		}
		p.free[role] = nil
	}
}

func (p *Pool) newHandle(role Role) *Handle {
	p.created++
	return &Handle{
		Role:   role,
		Visual: p.cb.Create(role),
		pooled: true,
	}
}
