package tui

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/portfolio"
	"github.com/san-kum/plexus/internal/viz"
)

func newTestPage(t *testing.T, clip *portfolio.Clipboard) *Page {
	t.Helper()
	cfg := config.DefaultConfig()
	p := NewPage(Options{
		Config:    cfg,
		Profile:   portfolio.DefaultProfile(),
		Clipboard: clip,
		Rand:      rand.New(rand.NewSource(1)),
	})
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return p
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLayout_SectionsInOrder(t *testing.T) {
	doc := layout(portfolio.DefaultProfile(), 100, 28, portfolio.FilterAll)

	want := []string{"home", "about", "projects", "skills", "contact"}
	if len(doc.Sections) != len(want) {
		t.Fatalf("expected %d sections, got %d", len(want), len(doc.Sections))
	}
	prevEnd := 0
	for i, s := range doc.Sections {
		if s.ID != want[i] {
			t.Errorf("section %d: expected %s, got %s", i, want[i], s.ID)
		}
		if s.Top < prevEnd {
			t.Errorf("section %s overlaps previous one", s.ID)
		}
		prevEnd = s.Top + s.Height
	}
	if doc.Sections[0].Height < 28 {
		t.Errorf("home should fill the screen, got %d rows", doc.Sections[0].Height)
	}
	if doc.Rows < prevEnd {
		t.Errorf("document rows %d shorter than last section end %d", doc.Rows, prevEnd)
	}
}

func TestLayout_FilterHidesProjects(t *testing.T) {
	p := portfolio.DefaultProfile()
	all := layout(p, 100, 28, portfolio.FilterAll)
	sec := layout(p, 100, 28, "security")

	if sec.Rows >= all.Rows {
		t.Errorf("filtered page should be shorter: %d >= %d", sec.Rows, all.Rows)
	}
	for _, l := range sec.Lines {
		if l.Text == "Edge Detector  *" {
			t.Error("ml project should be filtered out")
		}
	}
}

func TestLayout_WrapsToWidth(t *testing.T) {
	doc := layout(portfolio.DefaultProfile(), 40, 20, portfolio.FilterAll)
	for _, l := range doc.Lines {
		if len([]rune(l.Text)) > 40-2*margin {
			t.Errorf("line wider than text column: %q", l.Text)
		}
	}
}

func TestPage_FieldCoversDocument(t *testing.T) {
	p := newTestPage(t, nil)

	w, h := p.surface.Size()
	if w != 100*8 || h != float64(p.fullRows)*16 {
		t.Fatalf("unexpected surface size %vx%v", w, h)
	}
	want := field.Count(w, h, field.DefaultDensity)
	if got := p.renderer.Field().Len(); got != want {
		t.Errorf("expected %d points, got %d", want, got)
	}
}

func TestPage_FilterKeepsField(t *testing.T) {
	p := newTestPage(t, nil)
	before := p.renderer.Field().Points()

	p.Update(runes("f"))
	if p.filter != "ml" {
		t.Fatalf("expected filter ml, got %s", p.filter)
	}
	after := p.renderer.Field().Points()
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("changing the filter should not regenerate the field")
	}
}

func TestPage_ResizeRegenerates(t *testing.T) {
	p := newTestPage(t, nil)
	first := p.renderer.Field().Points()[0]

	p.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	w, h := p.surface.Size()
	if got := p.renderer.Field().Len(); got != field.Count(w, h, field.DefaultDensity) {
		t.Errorf("point count %d does not match new size", got)
	}
	if p.renderer.Field().Points()[0] == first {
		t.Error("expected fresh points after resize")
	}
}

func TestPage_PointerIncludesScroll(t *testing.T) {
	p := newTestPage(t, nil)
	p.Update(runes("j"))
	p.Update(runes("j"))
	if p.scroll != 2 {
		t.Fatalf("expected scroll 2, got %d", p.scroll)
	}

	p.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})
	x, y := p.renderer.Field().Pointer()
	if x != 10.5*8 {
		t.Errorf("expected x %v, got %v", 10.5*8, x)
	}
	if want := 4.5*16 + 2*16; y != want {
		t.Errorf("expected y %v, got %v", want, y)
	}
}

func TestPage_JumpScrollsSmoothly(t *testing.T) {
	p := newTestPage(t, nil)
	projects, _ := p.doc.Section("projects")
	want := min(max(projects.Top-p.navbar.ScrollOffset, 0), p.maxScroll())

	p.Update(runes("3"))
	now := time.Now()
	for i := 0; i < 200 && p.scroll != want; i++ {
		now = now.Add(time.Second / 30)
		p.Update(frameMsg(now))
	}
	if p.scroll != want {
		t.Errorf("expected scroll %d, got %d", want, p.scroll)
	}
	if p.target != -1 {
		t.Error("target should clear once reached")
	}
}

func TestPage_JumpHighlightsTarget(t *testing.T) {
	p := newTestPage(t, nil)
	about, _ := p.doc.Section("about")
	if about.Top-p.navbar.ScrollOffset > p.maxScroll() {
		t.Fatalf("about at %d is past max scroll %d", about.Top, p.maxScroll())
	}

	p.Update(runes("2"))
	now := time.Now()
	for i := 0; i < 200 && p.target != -1; i++ {
		now = now.Add(time.Second / 30)
		p.Update(frameMsg(now))
	}
	if got := p.navbar.Active(p.doc.Sections, p.scroll); got != "about" {
		t.Errorf("expected about highlighted at scroll %d, got %q", p.scroll, got)
	}
}

func TestPage_CopyEmail(t *testing.T) {
	var buf bytes.Buffer
	p := newTestPage(t, portfolio.NewClipboard(&buf, false))

	p.Update(runes("e"))
	if !strings.HasPrefix(buf.String(), "\x1b]52;c;") {
		t.Errorf("expected OSC 52 sequence, got %q", buf.String())
	}
	if p.toast.State(p.now) != portfolio.ToastShowing {
		t.Error("toast should be showing")
	}
	if !strings.Contains(p.View(), portfolio.EmailCopied) {
		t.Error("toast missing from view")
	}
	if p.toast.State(p.now.Add(3*time.Second)) != portfolio.ToastHidden {
		t.Error("toast should be gone after its lifetime")
	}
}

func TestPage_ThemeCycleRecolors(t *testing.T) {
	p := newTestPage(t, nil)
	p.Update(runes("t"))

	if p.theme.Name != viz.ThemeRetroGreen.Name {
		t.Fatalf("expected retro theme, got %s", p.theme.Name)
	}
	if got := p.renderer.Field().Params().LinkColor; got != viz.ThemeRetroGreen.Link {
		t.Errorf("field not recolored: %+v", got)
	}
}

func TestPage_PauseStopsFrames(t *testing.T) {
	p := newTestPage(t, nil)
	p.Update(frameMsg(time.Now()))
	frames := p.renderer.Field().Frames()

	p.Update(runes(" "))
	p.Update(frameMsg(time.Now()))
	if p.renderer.Field().Frames() != frames {
		t.Error("paused page should not advance the field")
	}
	if !strings.Contains(p.View(), "PAUSED") {
		t.Error("status should show PAUSED")
	}
}

func TestPage_RevealOnScroll(t *testing.T) {
	p := newTestPage(t, nil)
	p.Update(frameMsg(time.Now()))
	if p.reveal.Revealed("contact") {
		t.Fatal("contact should not be revealed before scrolling")
	}

	p.Update(runes("G"))
	p.Update(frameMsg(time.Now()))
	if !p.reveal.Revealed("contact") {
		t.Error("contact should be revealed at the bottom of the page")
	}
}

func TestPage_Quit(t *testing.T) {
	p := newTestPage(t, nil)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLiveRenderer_Frames(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, 60, 20, field.DefaultParams(), viz.ThemeNeon, rand.New(rand.NewSource(2)))
	r.SetColor(false)

	if err := r.Run(context.Background(), 1000, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, clearScreen); got != 3 {
		t.Errorf("expected 3 frames, got %d", got)
	}
	if !strings.HasPrefix(out, hideCursor) || !strings.HasSuffix(out, showCursor) {
		t.Error("cursor should be hidden for the run and restored after")
	}
	if !strings.Contains(out, "frame 2") {
		t.Error("missing stats line for last frame")
	}
}
