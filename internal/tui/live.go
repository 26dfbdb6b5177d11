package tui

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints braille frames of a field straight to a writer, for
// terminals where a full-screen program is unwanted.
type LiveRenderer struct {
	out      io.Writer
	surface  *viz.Surface
	renderer *field.Renderer
	theme    viz.Theme
	color    bool
	frames   int
}

func NewLiveRenderer(out io.Writer, cols, rows int, params field.Params, theme viz.Theme, rng *rand.Rand) *LiveRenderer {
	s := viz.NewSurface(cols, rows, viz.DefaultCellWidth, viz.DefaultCellHeight)
	params.PointColor, params.LinkColor, params.PointerColor = theme.Point, theme.Link, theme.Pointer
	return &LiveRenderer{
		out:      out,
		surface:  s,
		renderer: field.Mount(s, params, rng),
		theme:    theme,
		color:    true,
	}
}

// SetColor turns theme colors on or off.
func (r *LiveRenderer) SetColor(on bool) { r.color = on }

func (r *LiveRenderer) Renderer() *field.Renderer { return r.renderer }

// OnFrame prints one frame with its stats line.
func (r *LiveRenderer) OnFrame(st field.FrameStats) {
	r.frames++
	var b strings.Builder
	b.WriteString(clearScreen)

	c := r.surface.Canvas()
	if r.color {
		b.WriteString(strings.Join(c.RenderRows(0, c.Height, r.theme), "\n"))
		b.WriteString("\n")
	} else {
		b.WriteString(c.String())
	}

	b.WriteString(viz.Separator(c.Width))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  frame %d  points %d  links %d  bounces %d\n",
		st.Frame, st.Points, st.Links, st.Bounces))
	fmt.Fprint(r.out, b.String())
}

// Run prints frames at fps until n frames have been drawn (n <= 0 means
// no limit) or ctx is done.
func (r *LiveRenderer) Run(ctx context.Context, fps, n int) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	r.Start()
	defer r.Stop()

	err := r.renderer.Run(ctx, ticker.C, func(st field.FrameStats) {
		r.OnFrame(st)
		if n > 0 && r.frames >= n {
			r.renderer.Stop()
		}
	})
	if n > 0 && r.frames >= n {
		return nil
	}
	return err
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
