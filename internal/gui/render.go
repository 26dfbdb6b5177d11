package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plexus/internal/field"
)

// surface paints on the current raylib frame buffer.
type surface struct {
	background rl.Color
}

func (s *surface) Size() (w, h float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (s *surface) Clear() {
	rl.ClearBackground(s.background)
}

func (s *surface) FillCircle(x, y, r float64, c field.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(x), float32(y)), float32(r), toRL(c))
}

func (s *surface) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {
	rl.DrawLineEx(
		rl.NewVector2(float32(x0), float32(y0)),
		rl.NewVector2(float32(x1), float32(y1)),
		float32(width),
		toRL(c),
	)
}

func toRL(c field.Color) rl.Color {
	a := math.Max(0, math.Min(1, c.A))
	return rl.NewColor(c.R, c.G, c.B, uint8(math.Round(a*255)))
}
