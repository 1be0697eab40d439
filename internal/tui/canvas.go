package tui

import "strings"

// Braille cells pack a 2x4 sub-pixel grid per character. Dot numbering:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille raster for the live view. Its sub-pixel resolution is
// (width*2) x (height*4).
type Canvas struct {
	width, height int
	cells         []rune
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.width || row >= c.height {
		return
	}
	c.cells[row*c.width+col] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = 0x2800
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		b.WriteString(string(c.cells[row*c.width : (row+1)*c.width]))
		b.WriteByte('\n')
	}
	return b.String()
}
