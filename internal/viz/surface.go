package viz

import (
	"math"

	"github.com/san-kum/plexus/internal/field"
)

// Typical terminal cell size in pixels; a cell holds 2x4 braille dots.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Surface adapts a braille Canvas to field.Surface. Field coordinates are in
// pixels; each terminal cell stands for CellWidth x CellHeight pixels.
type Surface struct {
	canvas     *Canvas
	cellWidth  float64
	cellHeight float64
	// MinAlpha drops lines fainter than this; a braille dot is all or nothing.
	MinAlpha float64
}

func NewSurface(cols, rows int, cellWidth, cellHeight float64) *Surface {
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	if cellHeight <= 0 {
		cellHeight = DefaultCellHeight
	}
	return &Surface{
		canvas:     NewCanvas(cols, rows),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		MinAlpha:   0.02,
	}
}

func (s *Surface) Canvas() *Canvas { return s.canvas }

// Resize replaces the canvas with one of the new cell dimensions.
func (s *Surface) Resize(cols, rows int) {
	minAlpha := s.MinAlpha
	*s = *NewSurface(cols, rows, s.cellWidth, s.cellHeight)
	s.MinAlpha = minAlpha
}

func (s *Surface) Size() (w, h float64) {
	return float64(s.canvas.Width) * s.cellWidth, float64(s.canvas.Height) * s.cellHeight
}

// CellSize reports the pixel size of one terminal cell.
func (s *Surface) CellSize() (w, h float64) { return s.cellWidth, s.cellHeight }

// Clear wipes the dots only; overlay text is owned by the caller.
func (s *Surface) Clear() { s.canvas.ClearDots() }

func (s *Surface) toSub(x, y float64) (int, int) {
	return int(math.Floor(x / (s.cellWidth / 2))), int(math.Floor(y / (s.cellHeight / 4)))
}

func (s *Surface) FillCircle(x, y, r float64, c field.Color) {
	sx, sy := x/(s.cellWidth/2), y/(s.cellHeight/4)
	rx, ry := r/(s.cellWidth/2), r/(s.cellHeight/4)
	if rx < 0.5 && ry < 0.5 {
		cx, cy := s.toSub(x, y)
		s.canvas.SetColor(cx, cy, c)
		return
	}
	for py := int(math.Floor(sy - ry)); py <= int(math.Ceil(sy+ry)); py++ {
		for px := int(math.Floor(sx - rx)); px <= int(math.Ceil(sx+rx)); px++ {
			dx := (float64(px) + 0.5 - sx) / math.Max(rx, 0.5)
			dy := (float64(py) + 0.5 - sy) / math.Max(ry, 0.5)
			if dx*dx+dy*dy <= 1 {
				s.canvas.SetColor(px, py, c)
			}
		}
	}
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	if c.A < s.MinAlpha {
		return
	}
	ax, ay := s.toSub(x0, y0)
	bx, by := s.toSub(x1, y1)
	s.canvas.DrawLineColor(ax, ay, bx, by, c)
}
