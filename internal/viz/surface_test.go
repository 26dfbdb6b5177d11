package viz

import (
	"math/rand"
	"testing"

	"github.com/san-kum/plexus/internal/field"
)

func TestSurface_SizeInPixels(t *testing.T) {
	s := NewSurface(120, 40, 0, 0)
	w, h := s.Size()
	if w != 960 || h != 640 {
		t.Errorf("Size() = %vx%v, want 960x640", w, h)
	}

	s.Resize(60, 80)
	w, h = s.Size()
	if w != 480 || h != 1280 {
		t.Errorf("after resize Size() = %vx%v, want 480x1280", w, h)
	}
}

func TestSurface_FillCircleMapsToSubpixel(t *testing.T) {
	s := NewSurface(10, 10, 8, 16)
	// (13, 37) px -> sub-pixel (3, 9) with 4 px per dot on both axes
	s.FillCircle(13, 37, 1, field.RGBA(0, 255, 255, 0.5))
	if !s.Canvas().IsSet(3, 9) {
		t.Error("expected dot at sub-pixel (3, 9)")
	}
}

func TestSurface_FaintLinesSkipped(t *testing.T) {
	s := NewSurface(10, 10, 8, 16)
	s.StrokeLine(0, 0, 70, 0, 1, field.RGBA(0, 255, 255, 0.01))
	if s.Canvas().IsSet(0, 0) {
		t.Error("expected faint line to be dropped")
	}

	s.StrokeLine(0, 0, 70, 0, 1, field.RGBA(0, 255, 255, 0.1))
	if !s.Canvas().IsSet(0, 0) || !s.Canvas().IsSet(17, 0) {
		t.Error("expected visible line endpoints")
	}
}

func TestSurface_MountsField(t *testing.T) {
	s := NewSurface(150, 50, 10, 20)
	r := field.Mount(s, field.DefaultParams(), rand.New(rand.NewSource(1)))
	if got := r.Field().Len(); got != 100 {
		t.Errorf("expected 100 points for 1500x1000 px, got %d", got)
	}
	st := r.Frame()
	if st.Points != 100 {
		t.Errorf("expected 100 points drawn, got %d", st.Points)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "neon" {
		t.Error("unknown theme should fall back to neon")
	}
	if NextTheme("sunset").Name != "neon" {
		t.Error("NextTheme should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}

	if got := ThemeNeon.Blend(field.RGBA(0, 255, 255, 0.5)); got != "#00ffff" {
		t.Errorf("saturated blend = %s, want #00ffff", got)
	}
	if got := ThemeNeon.Blend(field.RGBA(0, 255, 255, 0)); got != "#0a0a0a" {
		t.Errorf("transparent blend = %s, want background", got)
	}
}
