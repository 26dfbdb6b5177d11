package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/field"
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

const blank = 0x2800

// Canvas is a grid of braille cells. Each cell remembers the most opaque
// color drawn into it; text can be laid over cells without touching dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	tint          [][]field.Color
	overlay       [][]rune
	overlayStyle  [][]*lipgloss.Style
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:        w,
		Height:       h,
		Grid:         make([][]rune, h),
		tint:         make([][]field.Color, h),
		overlay:      make([][]rune, h),
		overlayStyle: make([][]*lipgloss.Style, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.tint[i] = make([]field.Color, w)
		c.overlay[i] = make([]rune, w)
		c.overlayStyle[i] = make([]*lipgloss.Style, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if row, col, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

// SetColor sets a pixel and keeps the more opaque of the cell's colors.
func (c *Canvas) SetColor(x, y int, col field.Color) {
	row, cc, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][cc] |= rune(pixelMap[y%4][x%2])
	if col.A >= c.tint[row][cc].A {
		c.tint[row][cc] = col
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

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

// Clear resets dots, colors and overlay text.
func (c *Canvas) Clear() {
	c.ClearDots()
	c.ClearOverlay()
}

// ClearOverlay drops all overlay text, leaving dots in place.
func (c *Canvas) ClearOverlay() {
	for i := range c.overlay {
		for j := range c.overlay[i] {
			c.overlay[i][j] = 0
			c.overlayStyle[i][j] = nil
		}
	}
}

// ClearDots resets dots and colors, leaving overlay text in place.
func (c *Canvas) ClearDots() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.tint[i][j] = field.Color{}
		}
	}
}

// Overlay writes text over the cells starting at (row, col). Cells past the
// right edge are dropped.
func (c *Canvas) Overlay(row, col int, text string, style *lipgloss.Style) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range text {
		if col >= c.Width {
			return
		}
		if col >= 0 {
			c.overlay[row][col] = r
			c.overlayStyle[row][col] = style
		}
		col++
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	bresenham(x0, y0, x1, y1, c.Set)
}

// DrawLineColor draws a line tinting every touched cell.
func (c *Canvas) DrawLineColor(x0, y0, x1, y1 int, col field.Color) {
	bresenham(x0, y0, x1, y1, func(x, y int) { c.SetColor(x, y, col) })
}

func bresenham(x0, y0, x1, y1 int, plot func(x, y int)) {
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
		plot(x0, y0)
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

// String renders the canvas without colors; overlay text wins over dots.
func (c *Canvas) String() string {
	var b strings.Builder
	for i := range c.Grid {
		for j, r := range c.Grid[i] {
			if o := c.overlay[i][j]; o != 0 {
				r = o
			}
			b.WriteRune(r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRows renders rows [from, to) with theme colors.
func (c *Canvas) RenderRows(from, to int, theme Theme) []string {
	if from < 0 {
		from = 0
	}
	if to > c.Height {
		to = c.Height
	}
	rows := make([]string, 0, max(to-from, 0))
	for i := from; i < to; i++ {
		rows = append(rows, c.renderRow(i, theme))
	}
	return rows
}

func (c *Canvas) renderRow(i int, theme Theme) string {
	var b, run strings.Builder
	var runStyle *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyle != nil {
			b.WriteString(runStyle.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for j, r := range c.Grid[i] {
		style := c.styleAt(i, j, theme)
		if o := c.overlay[i][j]; o != 0 {
			r = o
		} else if r == blank {
			r = ' '
		}
		if style != runStyle {
			flush()
			runStyle = style
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

func (c *Canvas) styleAt(i, j int, theme Theme) *lipgloss.Style {
	if c.overlay[i][j] != 0 {
		return c.overlayStyle[i][j]
	}
	if c.Grid[i][j] == blank {
		return nil
	}
	return theme.dotStyle(c.tint[i][j])
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
