package field

import (
	"math"
	"math/rand"
	"time"
)

// Field owns the points and the last known pointer position.
type Field struct {
	params        Params
	rng           *rand.Rand
	width, height float64
	points        []Point
	pointerX      float64
	pointerY      float64
	frame         int
}

// Count is the number of points for a surface: one per density px², floored.
// Sizes that are not finite or would not fit in an int32 give no points.
func Count(width, height, density float64) int {
	if width <= 0 || height <= 0 || density <= 0 {
		return 0
	}
	n := math.Floor(width * height / density)
	if math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// NewField sizes a field and populates it. A nil rng is seeded from the clock.
func NewField(width, height float64, params Params, rng *rand.Rand) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f := &Field{params: params, rng: rng}
	f.Resize(width, height)
	return f
}

// Resize discards every point and generates a fresh set for the new bounds.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = math.Max(width, 0), math.Max(height, 0)
	n := Count(f.width, f.height, f.params.Density)
	f.points = make([]Point, n)
	for i := range f.points {
		f.points[i] = f.newPoint()
	}
}

func (f *Field) newPoint() Point {
	radiusSpan := f.params.MaxRadius - f.params.MinRadius
	return Point{
		X:      f.rng.Float64() * f.width,
		Y:      f.rng.Float64() * f.height,
		VX:     (f.rng.Float64() - 0.5) * f.params.Speed,
		VY:     (f.rng.Float64() - 0.5) * f.params.Speed,
		Radius: f.rng.Float64()*radiusSpan + f.params.MinRadius,
	}
}

func (f *Field) Size() (w, h float64) { return f.width, f.height }
func (f *Field) Params() Params        { return f.params }
func (f *Field) Len() int              { return len(f.points) }
func (f *Field) Frames() int           { return f.frame }

// Points returns a copy of the current points.
func (f *Field) Points() []Point {
	out := make([]Point, len(f.points))
	copy(out, f.points)
	return out
}

// Recolor swaps the drawing colors without touching positions.
func (f *Field) Recolor(point, link, pointer Color) {
	f.params.PointColor = point
	f.params.LinkColor = link
	f.params.PointerColor = pointer
}

func (f *Field) Pointer() (x, y float64) { return f.pointerX, f.pointerY }

func (f *Field) SetPointer(x, y float64) {
	f.pointerX, f.pointerY = x, y
}

// PointerMove records a pointer position given in viewport coordinates; the
// vertical scroll offset moves it into document space.
func (f *Field) PointerMove(clientX, clientY, scrollY float64) {
	f.SetPointer(clientX, clientY+scrollY)
}

// Step advances every point by one velocity step. A coordinate outside its
// bound flips the matching velocity component; positions are never clamped.
// It returns the number of flips.
func (f *Field) Step() int {
	bounces := 0
	for i := range f.points {
		p := &f.points[i]
		p.X += p.VX
		p.Y += p.VY
		if p.X < 0 || p.X > f.width {
			p.VX = -p.VX
			bounces++
		}
		if p.Y < 0 || p.Y > f.height {
			p.VY = -p.VY
			bounces++
		}
	}
	return bounces
}

// Draw paints the current state: points, point links, then pointer links.
func (f *Field) Draw(s Surface) (links, pointerLinks int) {
	s.Clear()
	for _, p := range f.points {
		s.FillCircle(p.X, p.Y, p.Radius, f.params.PointColor)
	}
	eachLink(f.points, f.params.LinkDistance, f.params.LinkAlpha, func(l Link) {
		s.StrokeLine(l.X0, l.Y0, l.X1, l.Y1, f.params.LinkWidth, f.params.LinkColor.WithAlpha(l.Alpha))
		links++
	})
	eachPointerLink(f.points, f.pointerX, f.pointerY, f.params.PointerDistance, f.params.PointerAlpha, func(l Link) {
		s.StrokeLine(l.X0, l.Y0, l.X1, l.Y1, f.params.PointerWidth, f.params.PointerColor.WithAlpha(l.Alpha))
		pointerLinks++
	})
	return links, pointerLinks
}

// Frame steps the field once and draws it.
func (f *Field) Frame(s Surface) FrameStats {
	bounces := f.Step()
	links, pointerLinks := f.Draw(s)
	st := FrameStats{
		Frame:        f.frame,
		Points:       len(f.points),
		Links:        links,
		PointerLinks: pointerLinks,
		Bounces:      bounces,
		MeanSpeed:    f.meanSpeed(),
	}
	f.frame++
	return st
}

func (f *Field) meanSpeed() float64 {
	if len(f.points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range f.points {
		sum += p.Speed()
	}
	return sum / float64(len(f.points))
}
