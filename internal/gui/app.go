package gui

import (
	"fmt"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type Options struct {
	Width, Height int
	Title         string
	// FPS caps the frame rate; zero leaves it uncapped.
	FPS     int
	Params  field.Params
	Seed    int64
	ShowHUD bool
}

type App struct {
	opts     Options
	surface  *surface
	renderer *field.Renderer
	metrics  metrics.Set
	last     field.FrameStats
	paused   bool
	quit     bool
}

func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}
	rl.SetExitKey(0)
}

// NewApp mounts a field on the open window.
func NewApp(opts Options) *App {
	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	s := &surface{background: ColBg}
	return &App{
		opts:     opts,
		surface:  s,
		renderer: field.Mount(s, opts.Params, rng),
		metrics:  metrics.Default(),
	}
}

// Run opens the window and blocks until it is closed. It returns the
// aggregate metrics of the frames shown.
func Run(opts Options) map[string]float64 {
	initWindow(opts)
	defer rl.CloseWindow()
	app := NewApp(opts)
	app.RunLoop()
	return app.Metrics()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.opts.ShowHUD = !a.opts.ShowHUD
	}
	if rl.IsWindowResized() {
		a.renderer.Resize()
	}
	mouse := rl.GetMousePosition()
	a.renderer.PointerMove(float64(mouse.X), float64(mouse.Y), 0)
}

func (a *App) Draw() {
	rl.BeginDrawing()

	if a.paused {
		a.renderer.Field().Draw(a.surface)
	} else {
		a.last = a.renderer.Frame()
		a.metrics.Observe(a.last)
	}

	if a.opts.ShowHUD {
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int32(rl.GetScreenHeight())
	rl.DrawText(a.opts.Title, 30, 30, 24, rl.White)

	status := "RUNNING"
	col := ColText
	if a.paused {
		status = "PAUSED"
		col = ColTextDim
	}
	rl.DrawText(status, int32(rl.GetScreenWidth())-130, 30, 16, col)

	rl.DrawText(fmt.Sprintf("points %d  links %d  pointer %d",
		a.last.Points, a.last.Links, a.last.PointerLinks), 30, 64, 14, ColText)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, h-40, 14, ColTextDim)
	rl.DrawText("[SPACE] PAUSE  [H] HUD  [Q] QUIT", 160, h-40, 14, ColTextDim)
}

// Metrics returns aggregate values for the frames drawn so far.
func (a *App) Metrics() map[string]float64 {
	return a.metrics.Values()
}
