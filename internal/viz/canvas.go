package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot grid. Width and Height count terminal cells; dot
// coordinates run over (Width*2) x (Height*4). Each cell also carries a
// layer index so a front end can colour highlighted geometry differently.
type Canvas struct {
	Width, Height int
	cells         [][]rune
	layers        [][]uint8
	pen           uint8
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{Width: w, Height: h}
	c.cells = make([][]rune, h)
	c.layers = make([][]uint8, h)
	for i := range c.cells {
		c.cells[i] = make([]rune, w)
		c.layers[i] = make([]uint8, w)
	}
	c.Clear()
	return c
}

// DotWidth and DotHeight return the canvas size in dots.
func (c *Canvas) DotWidth() int  { return c.Width * 2 }
func (c *Canvas) DotHeight() int { return c.Height * 4 }

// SetLayer selects the layer recorded for subsequent dots. Layer 0 is the
// base layer; a cell keeps the highest layer drawn into it.
func (c *Canvas) SetLayer(l uint8) { c.pen = l }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Set turns on the dot at (x, y).
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.cells[row][col] |= dotBits[y%4][x%2]
	if c.pen > c.layers[row][col] {
		c.layers[row][col] = c.pen
	}
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.cells[row][col] &^= dotBits[y%4][x%2]
	if c.cells[row][col] == brailleBase {
		c.layers[row][col] = 0
	}
}

// IsSet reports whether the dot at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.cells[row][col]&dotBits[y%4][x%2] != 0
}

// Layer returns the layer of the cell containing dot (x, y).
func (c *Canvas) Layer(x, y int) uint8 {
	row, col, ok := c.cell(x, y)
	if !ok {
		return 0
	}
	return c.layers[row][col]
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		for j := range c.cells[i] {
			c.cells[i][j] = brailleBase
			c.layers[i][j] = 0
		}
	}
	c.pen = 0
}

// DrawLine draws a Bresenham line between two dots.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Render draws the canvas with one style per layer. Layers without a style
// fall back to styles[0]; with no styles it is String without the trailing
// newline.
func (c *Canvas) Render(styles ...lipgloss.Style) string {
	if len(styles) == 0 {
		return strings.TrimSuffix(c.String(), "\n")
	}
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		var b strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.layers[i][j] == c.layers[i][start] {
				continue
			}
			l := int(c.layers[i][start])
			st := styles[0]
			if l < len(styles) {
				st = styles[l]
			}
			b.WriteString(st.Render(string(row[start:j])))
			start = j
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
