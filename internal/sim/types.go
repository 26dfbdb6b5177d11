package sim

import (
	"math"
	"time"

	"github.com/san-kum/plexus/internal/field"
)

type Observer interface {
	OnFrame(st field.FrameStats)
}

// PointerPath scripts the pointer for headless runs. ok=false leaves the
// pointer where it is.
type PointerPath func(frame int) (x, y float64, ok bool)

// Orbit circles the pointer around (cx, cy), one lap per period frames.
func Orbit(cx, cy, radius float64, period int) PointerPath {
	if period <= 0 {
		period = 1
	}
	return func(frame int) (float64, float64, bool) {
		a := 2 * math.Pi * float64(frame%period) / float64(period)
		return cx + radius*math.Cos(a), cy + radius*math.Sin(a), true
	}
}

type Config struct {
	Width  float64
	Height float64
	Frames int
	Seed   int64
	Params field.Params
	// Pointer is optional; nil keeps the pointer at its start position.
	Pointer PointerPath
}

type Result struct {
	Frames  []field.FrameStats
	Metrics map[string]float64
	Elapsed time.Duration
}

// blank sizes a field without drawing anything.
type blank struct{ w, h float64 }

func (b blank) Size() (w, h float64)                                 { return b.w, b.h }
func (blank) Clear()                                                 {}
func (blank) FillCircle(x, y, r float64, c field.Color)              {}
func (blank) StrokeLine(x0, y0, x1, y1, width float64, c field.Color) {}
