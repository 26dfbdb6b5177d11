package field

import (
	"fmt"
	"math"
)

// Point is a single dot of the field, in surface pixels.
type Point struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"r"`
}

func (p Point) Speed() float64 {
	return math.Hypot(p.VX, p.VY)
}

// Color mirrors a CSS rgba() value: 8-bit channels, alpha in [0,1].
type Color struct {
	R uint8   `yaml:"r" koanf:"r" json:"r"`
	G uint8   `yaml:"g" koanf:"g" json:"g"`
	B uint8   `yaml:"b" koanf:"b" json:"b"`
	A float64 `yaml:"a" koanf:"a" json:"a"`
}

func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// CSS formats the color as an rgba() string.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, formatAlpha(c.A))
}

// Hex formats the color channels as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func formatAlpha(a float64) string {
	s := fmt.Sprintf("%.3f", a)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// Link is a line between two positions with its drawing alpha.
type Link struct {
	X0, Y0   float64
	X1, Y1   float64
	Distance float64
	Alpha    float64
}

// Surface is anything the field can paint on. Size reports the full drawing
// area in pixels (for a page, the whole scrollable document).
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillCircle(x, y, r float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
}

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	Frame        int     `json:"frame"`
	Points       int     `json:"points"`
	Links        int     `json:"links"`
	PointerLinks int     `json:"pointer_links"`
	Bounces      int     `json:"bounces"`
	MeanSpeed    float64 `json:"mean_speed"`
}

const (
	DefaultDensity         = 15000.0
	DefaultLinkDistance    = 150.0
	DefaultPointerDistance = 200.0
	DefaultSpeed           = 0.5
	DefaultMinRadius       = 1.0
	DefaultMaxRadius       = 3.0
	DefaultLinkAlpha       = 0.2
	DefaultPointerAlpha    = 0.3
	DefaultLinkWidth       = 0.5
	DefaultPointerWidth    = 1.0
)

// Params holds the visual parameters of a field.
type Params struct {
	Density         float64 `yaml:"density" koanf:"density"`
	LinkDistance    float64 `yaml:"link_distance" koanf:"link_distance"`
	PointerDistance float64 `yaml:"pointer_distance" koanf:"pointer_distance"`
	Speed           float64 `yaml:"speed" koanf:"speed"`
	MinRadius       float64 `yaml:"min_radius" koanf:"min_radius"`
	MaxRadius       float64 `yaml:"max_radius" koanf:"max_radius"`
	LinkAlpha       float64 `yaml:"link_alpha" koanf:"link_alpha"`
	PointerAlpha    float64 `yaml:"pointer_alpha" koanf:"pointer_alpha"`
	LinkWidth       float64 `yaml:"link_width" koanf:"link_width"`
	PointerWidth    float64 `yaml:"pointer_width" koanf:"pointer_width"`
	PointColor      Color   `yaml:"point_color" koanf:"point_color"`
	LinkColor       Color   `yaml:"link_color" koanf:"link_color"`
	PointerColor    Color   `yaml:"pointer_color" koanf:"pointer_color"`
}

func DefaultParams() Params {
	return Params{
		Density:         DefaultDensity,
		LinkDistance:    DefaultLinkDistance,
		PointerDistance: DefaultPointerDistance,
		Speed:           DefaultSpeed,
		MinRadius:       DefaultMinRadius,
		MaxRadius:       DefaultMaxRadius,
		LinkAlpha:       DefaultLinkAlpha,
		PointerAlpha:    DefaultPointerAlpha,
		LinkWidth:       DefaultLinkWidth,
		PointerWidth:    DefaultPointerWidth,
		PointColor:      RGBA(0, 255, 255, 0.5),
		LinkColor:       RGBA(0, 255, 255, 1),
		PointerColor:    RGBA(168, 85, 247, 1),
	}
}

func (p Params) Validate() error {
	switch {
	case p.Density <= 0:
		return fmt.Errorf("%w: density must be positive, got %f", ErrParameterBounds, p.Density)
	case p.LinkDistance <= 0:
		return fmt.Errorf("%w: link_distance must be positive, got %f", ErrParameterBounds, p.LinkDistance)
	case p.PointerDistance <= 0:
		return fmt.Errorf("%w: pointer_distance must be positive, got %f", ErrParameterBounds, p.PointerDistance)
	case p.Speed < 0:
		return fmt.Errorf("%w: speed must be non-negative, got %f", ErrParameterBounds, p.Speed)
	case p.MinRadius <= 0 || p.MaxRadius < p.MinRadius:
		return fmt.Errorf("%w: radius range [%f, %f]", ErrParameterBounds, p.MinRadius, p.MaxRadius)
	case p.LinkAlpha < 0 || p.LinkAlpha > 1 || p.PointerAlpha < 0 || p.PointerAlpha > 1:
		return fmt.Errorf("%w: alpha must be within [0, 1]", ErrParameterBounds)
	}
	return nil
}
