package viz

import "github.com/san-kum/mazegen/internal/pool"

// revealFrames is how many frame ticks a freshly placed tile spends showing
// its hidden color before settling on the revealed one.
const revealFrames = 4

// TermTile is the terminal cell visual handed out by the instance pool.
// Placement starts a short fade; the tile reports busy until the fade ends
// so teardown of a retired maze waits for the animation to finish.
type TermTile struct {
	revealed pool.Color
	hidden   pool.Color
	fade     int
}

func NewTermTile() *TermTile {
	return &TermTile{}
}

func (t *TermTile) Reset() {
	t.revealed = ""
	t.hidden = ""
	t.fade = 0
}

func (t *TermTile) SetRevealedColor(c pool.Color) {
	t.revealed = c
	t.fade = revealFrames
}

func (t *TermTile) SetHiddenColor(c pool.Color) {
	t.hidden = c
}

func (t *TermTile) Idle() bool {
	return t.fade == 0
}

// Tick advances the fade by one frame.
func (t *TermTile) Tick() {
	if t.fade > 0 {
		t.fade--
	}
}

// Color returns the color to paint this frame.
func (t *TermTile) Color() pool.Color {
	if t.fade > 0 {
		return t.hidden
	}
	return t.revealed
}
