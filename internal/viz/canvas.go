package viz

import (
	"strings"

	"github.com/san-kum/mazegen/internal/grid"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel buffer. Each character cell packs a 2x4 dot
// block, so a maze cell maps to a single dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// FitCanvas sizes a canvas so a maze of w x h cells fits one cell per dot.
func FitCanvas(w, h int) *Canvas {
	return NewCanvas((w+1)/2, (h+3)/4)
}

// Set sets a pixel at (x, y) in dot coordinates. The canvas size in dots
// is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// PlotWalls sets one dot per wall cell, querying wallAt for every cell of a
// w x h maze. Cells outside the materialized region read as walls, so a
// half-built maze renders as a solid block eroding into corridors.
func (c *Canvas) PlotWalls(w, h int, wallAt func(x, y int) bool) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if wallAt(x, y) {
				c.Set(x, y)
			}
		}
	}
}

// PlotPath overlays a cell path, connecting consecutive points so the
// route reads against the wall texture.
func (c *Canvas) PlotPath(path []grid.Point) {
	for i := 1; i < len(path); i++ {
		c.DrawLine(path[i-1].X, path[i-1].Y, path[i].X, path[i].Y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
