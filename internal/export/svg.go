package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/plexus/internal/field"
)

const DefaultBackground = "#0a0a0a"

// SVG is a field.Surface that records each frame as SVG elements.
type SVG struct {
	Width, Height float64
	Background    string
	body          strings.Builder
	elements      int
}

func NewSVG(width, height float64) *SVG {
	return &SVG{Width: width, Height: height, Background: DefaultBackground}
}

func (s *SVG) Size() (w, h float64) { return s.Width, s.Height }

func (s *SVG) Clear() {
	s.body.Reset()
	s.elements = 0
}

func (s *SVG) FillCircle(x, y, r float64, c field.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.2f" fill="%s"/>
`, x, y, r, c.CSS())
	s.elements++
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	fmt.Fprintf(&s.body, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f"/>
`, x0, y0, x1, y1, c.CSS(), width)
	s.elements++
}

// Elements is the number of shapes drawn since the last Clear.
func (s *SVG) Elements() int { return s.elements }

// String returns the current frame as a standalone SVG document.
func (s *SVG) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>")
	return sb.String()
}

// WriteTo writes the current frame to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
