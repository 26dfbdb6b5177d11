package tui

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/clock"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/portfolio"
	"github.com/san-kum/plexus/internal/typewriter"
	"github.com/san-kum/plexus/internal/viz"
)

const (
	historyLen  = 60
	wheelRows   = 3
	chromeRows  = 2 // navbar on top, status line at the bottom
	sparkWidth  = 20
	defaultCols = 80
	defaultRows = 24
)

type frameMsg time.Time
type typeMsg struct{}
type clockMsg time.Time

// Options wires a page to its content and collaborators.
type Options struct {
	Config    *config.Config
	Profile   *portfolio.Profile
	Clipboard *portfolio.Clipboard
	Rand      *rand.Rand
}

// Page is the terminal portfolio: profile text laid over a particle field
// that spans the whole document.
type Page struct {
	cfg       *config.Config
	profile   *portfolio.Profile
	clipboard *portfolio.Clipboard

	theme  viz.Theme
	styles styleSet

	width, height int
	scroll        int
	target        int
	doc           document
	fullRows      int
	filter        string

	surface  *viz.Surface
	renderer *field.Renderer

	navbar  portfolio.Navbar
	reveal  *portfolio.Reveal
	toast   portfolio.Toast
	tw      *typewriter.Typewriter
	clock   *clock.Clock
	loaded  time.Time
	now     time.Time
	paused  bool
	history []float64
	last    field.FrameStats

	headline  string
	clockText string
}

type styleSet map[role]*lipgloss.Style

func newStyles(t viz.Theme) styleSet {
	mk := func(s lipgloss.Style) *lipgloss.Style { return &s }
	return styleSet{
		roleText:    mk(lipgloss.NewStyle().Foreground(t.Text)),
		roleTitle:   mk(lipgloss.NewStyle().Bold(true).Foreground(t.Primary)),
		roleHeading: mk(lipgloss.NewStyle().Bold(true).Foreground(t.Secondary)),
		roleMuted:   mk(lipgloss.NewStyle().Foreground(t.Muted)),
		roleAccent:  mk(lipgloss.NewStyle().Foreground(t.Accent)),
	}
}

func NewPage(opts Options) *Page {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	profile := opts.Profile
	if profile == nil {
		profile = portfolio.DefaultProfile()
	}
	theme := viz.GetTheme(cfg.Theme)

	params := cfg.Field
	params.PointColor, params.LinkColor, params.PointerColor = theme.Point, theme.Link, theme.Pointer

	p := &Page{
		cfg:       cfg,
		profile:   profile,
		clipboard: opts.Clipboard,
		theme:     theme,
		styles:    newStyles(theme),
		width:     defaultCols,
		height:    defaultRows,
		target:    -1,
		filter:    portfolio.FilterAll,
		navbar: portfolio.Navbar{
			ScrolledAfter: cfg.Terminal.ScrolledAfter,
			ActiveOffset:  cfg.Terminal.ActiveOffset,
			ScrollOffset:  cfg.Terminal.ScrollOffset,
		},
		reveal: portfolio.NewReveal(cfg.Terminal.RevealThreshold, cfg.Terminal.RevealMargin),
		tw: typewriter.New(profile.Headlines, typewriter.Delays{
			Type:   cfg.Typewriter.TypeDelay,
			Delete: cfg.Typewriter.DeleteDelay,
			Hold:   cfg.Typewriter.HoldDelay,
			Next:   cfg.Typewriter.NextDelay,
		}),
		clock:   clock.New(cfg.Clock.Zone, cfg.Clock.Label, cfg.Clock.Interval),
		loaded:  time.Now(),
		history: make([]float64, 0, historyLen),
	}
	p.now = p.loaded
	p.relayout()
	p.surface = viz.NewSurface(p.width, p.fullRows, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	p.renderer = field.Mount(p.surface, params, opts.Rand)
	p.clockText = p.clock.String()
	return p
}

func (p *Page) viewRows() int {
	return max(p.height-chromeRows, 1)
}

func (p *Page) maxScroll() int {
	return max(p.doc.Rows-p.viewRows(), 0)
}

// relayout lays out the page for the current width and filter. The field
// covers the unfiltered page, so changing the filter never regenerates it.
func (p *Page) relayout() {
	p.doc = layout(p.profile, p.width, p.viewRows(), p.filter)
	p.fullRows = layout(p.profile, p.width, p.viewRows(), portfolio.FilterAll).Rows
	p.scroll = min(p.scroll, p.maxScroll())
}

func (p *Page) resize(w, h int) {
	p.width, p.height = max(w, 1), max(h, chromeRows+1)
	p.relayout()
	p.surface.Resize(p.width, p.fullRows)
	p.renderer.Resize()
}

func frameTick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func clockTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func typeAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return typeMsg{} })
}

func (p *Page) Init() tea.Cmd {
	return tea.Batch(frameTick(p.cfg.FPS), typeAfter(0), clockTick(p.cfg.Clock.Interval))
}

func (p *Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.resize(msg.Width, msg.Height)
		return p, nil

	case frameMsg:
		p.now = time.Time(msg)
		p.frame()
		return p, frameTick(p.cfg.FPS)

	case typeMsg:
		text, delay := p.tw.Next()
		p.headline = text
		if delay <= 0 {
			return p, nil
		}
		return p, typeAfter(delay)

	case clockMsg:
		p.clockText = p.clock.String()
		return p, clockTick(p.cfg.Clock.Interval)

	case tea.MouseMsg:
		p.handleMouse(msg)
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *Page) frame() {
	if p.target >= 0 {
		p.scroll = portfolio.SmoothStep(p.scroll, p.target)
		if p.scroll == p.target {
			p.target = -1
		}
	}
	if !p.paused {
		p.last = p.renderer.Frame()
		p.history = append(p.history, float64(p.last.Links))
		if len(p.history) > historyLen {
			p.history = p.history[len(p.history)-historyLen:]
		}
	}
	for _, s := range p.doc.Sections {
		p.reveal.Observe(s.ID, s.Top, s.Height, p.scroll, p.viewRows(), p.now)
	}
}

func (p *Page) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.scrollBy(-wheelRows)
		return
	case tea.MouseButtonWheelDown:
		p.scrollBy(wheelRows)
		return
	}
	if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
		return
	}
	row := msg.Y - 1
	if row < 0 || row >= p.viewRows() {
		return
	}
	cw, ch := p.surface.CellSize()
	p.renderer.PointerMove(
		(float64(msg.X)+0.5)*cw,
		(float64(row)+0.5)*ch,
		float64(p.scroll)*ch,
	)
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if l, ok := p.lineAt(p.scroll + row); ok && l.Text == p.profile.Email {
			p.copyEmail()
		}
	}
}

func (p *Page) lineAt(row int) (line, bool) {
	for _, l := range p.doc.Lines {
		if l.Row == row {
			return l, true
		}
	}
	return line{}, false
}

func (p *Page) scrollBy(rows int) {
	p.target = -1
	p.scroll = max(0, min(p.scroll+rows, p.maxScroll()))
}

// jump starts a smooth scroll towards an in-page anchor.
func (p *Page) jump(href string) {
	top, ok := p.navbar.ScrollTarget(p.doc.Sections, href)
	if !ok {
		return
	}
	p.target = min(top, p.maxScroll())
}

func (p *Page) copyEmail() {
	if p.clipboard != nil {
		if err := p.clipboard.Copy(p.profile.Email); err != nil {
			log.Printf("tui: %v", err)
			return
		}
	}
	p.toast.Show(portfolio.EmailCopied, p.now)
}

func (p *Page) cycleTheme() {
	p.theme = viz.NextTheme(p.theme.Name)
	p.styles = newStyles(p.theme)
	p.renderer.Field().Recolor(p.theme.Point, p.theme.Link, p.theme.Pointer)
}

func (p *Page) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := msg.String(); k {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		p.scrollBy(-1)
	case "down", "j":
		p.scrollBy(1)
	case "pgup":
		p.scrollBy(-p.viewRows())
	case "pgdown", "pgdn":
		p.scrollBy(p.viewRows())
	case "home", "g":
		p.jump("#home")
	case "end", "G":
		p.scrollBy(p.maxScroll())
	case "f":
		p.filter = portfolio.NextFilter(p.profile.Filters, p.filter)
		p.relayout()
	case "e":
		p.copyEmail()
	case "t":
		p.cycleTheme()
	case " ", "p":
		p.paused = !p.paused
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			i := int(k[0] - '1')
			if i < len(p.doc.Sections) {
				p.jump("#" + p.doc.Sections[i].ID)
			}
		}
	}
	return p, nil
}

// paint lays the visible text over the field. Sections appear once revealed
// and are drawn muted while their transition runs.
func (p *Page) paint() {
	c := p.surface.Canvas()
	c.ClearOverlay()
	since := p.now.Sub(p.loaded)
	for _, l := range p.doc.Lines {
		if l.Row < p.scroll || l.Row >= p.scroll+p.viewRows() {
			continue
		}
		if l.Section != "home" && !p.reveal.Revealed(l.Section) {
			continue
		}
		style := p.styles[l.Role]
		if l.Section != "home" && p.reveal.Progress(l.Section, p.now) < 1 {
			style = p.styles[roleMuted]
		}
		switch l.Kind {
		case lineHeadline:
			c.Overlay(l.Row, l.Col, p.headline+"|", style)
		case lineStat:
			if portfolio.StatVisible(l.Index, since) {
				c.Overlay(l.Row, l.Col, l.Text, style)
			}
		case lineFilters:
			col := l.Col
			for _, f := range p.profile.Filters {
				s := p.styles[roleMuted]
				label := " " + f + " "
				if f == p.filter {
					s = p.styles[roleAccent]
					label = "[" + f + "]"
				}
				c.Overlay(l.Row, col, label, s)
				col += len(label) + 1
			}
		default:
			c.Overlay(l.Row, l.Col, l.Text, style)
		}
	}
}

func (p *Page) View() string {
	p.paint()
	rows := p.surface.Canvas().RenderRows(p.scroll, p.scroll+p.viewRows(), p.theme)
	for len(rows) < p.viewRows() {
		rows = append(rows, "")
	}

	var b strings.Builder
	b.WriteString(p.navbarView())
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(p.statusView())
	return b.String()
}

func (p *Page) navbarView() string {
	active := p.navbar.Active(p.doc.Sections, p.scroll)
	parts := make([]string, 0, len(p.doc.Sections))
	for i, s := range p.doc.Sections {
		label := fmt.Sprintf("%d %s", i+1, s.Title)
		if s.ID == active {
			parts = append(parts, p.styles[roleTitle].Render(label))
		} else {
			parts = append(parts, p.styles[roleMuted].Render(label))
		}
	}
	left := viz.GradientText(p.profile.Name, p.theme.Primary, p.theme.Secondary) + "   " + strings.Join(parts, "  ")
	right := p.styles[roleMuted].Render(p.clockText)

	bar := lipgloss.NewStyle().Width(p.width)
	if p.navbar.Scrolled(p.scroll) {
		bar = bar.Background(lipgloss.Color("#111111"))
	}
	gap := max(p.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar.Render(left + strings.Repeat(" ", gap) + right)
}

func (p *Page) statusView() string {
	status := viz.StatusRunning.Render("LIVE")
	if p.paused {
		status = viz.StatusPaused.Render("PAUSED")
	}
	left := fmt.Sprintf("%s %s %s", status,
		viz.SparklineChart(p.history, sparkWidth),
		viz.Subtle.Render(fmt.Sprintf("links %d  pointer %d", p.last.Links, p.last.PointerLinks)))

	right := viz.KeyHint.Render("f filter  e email  t theme  space pause  q quit")
	if st := p.toast.State(p.now); st != portfolio.ToastHidden {
		toast := viz.ToastStyle.Render(p.toast.Message)
		shift := int(p.toast.SlideOffset(p.now) * float64(lipgloss.Width(toast)))
		right = strings.Repeat(" ", shift) + toast
	}
	gap := max(p.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Run starts the page on the terminal and blocks until the user quits.
func Run(opts Options, in io.Reader, out io.Writer) error {
	prog := tea.NewProgram(NewPage(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running terminal page: %w", err)
	}
	return nil
}
