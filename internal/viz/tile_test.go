package viz

import (
	"testing"

	"github.com/san-kum/mazegen/internal/pool"
)

func TestTermTile_RevealFade(t *testing.T) {
	tile := NewTermTile()
	if !tile.Idle() {
		t.Fatal("fresh tile should be idle")
	}

	tile.SetHiddenColor("#111111")
	tile.SetRevealedColor("#cccccc")
	if tile.Idle() {
		t.Fatal("placed tile should be fading")
	}
	if got := tile.Color(); got != "#111111" {
		t.Fatalf("fading tile color = %s, want hidden", got)
	}

	for i := 0; i < revealFrames; i++ {
		tile.Tick()
	}
	if !tile.Idle() {
		t.Fatal("tile should be idle after the fade")
	}
	if got := tile.Color(); got != "#cccccc" {
		t.Fatalf("settled tile color = %s, want revealed", got)
	}
}

func TestTermTile_ResetClears(t *testing.T) {
	tile := NewTermTile()
	tile.SetHiddenColor("#111111")
	tile.SetRevealedColor("#cccccc")
	tile.Reset()
	if !tile.Idle() {
		t.Fatal("reset tile should be idle")
	}
	if got := tile.Color(); got != pool.Color("") {
		t.Fatalf("reset tile color = %q, want empty", got)
	}
}
