package field

type recordedLine struct {
	x0, y0, x1, y1, width float64
	color             Color
}

type recordSurface struct {
	w, h    float64
	clears  int
	circles int
	lines   []recordedLine
}

func (s *recordSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordSurface) Clear() {
	s.clears++
	s.circles = 0
	s.lines = s.lines[:0]
}
func (s *recordSurface) FillCircle(x, y, r float64, c Color) { s.circles++ }
func (s *recordSurface) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	s.lines = append(s.lines, recordedLine{x0, y0, x1, y1, width, c})
}
