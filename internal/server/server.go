// Package server serves the field over HTTP: SVG frames, JSON snapshots and
// a websocket that streams frames and takes pointer input.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/san-kum/plexus/internal/clock"
	"github.com/san-kum/plexus/internal/config"
	"github.com/san-kum/plexus/internal/export"
	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/portfolio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const shutdownTimeout = 5 * time.Second

// Snapshot is the JSON view of the field after a frame.
type Snapshot struct {
	Width   float64          `json:"width"`
	Height  float64          `json:"height"`
	Pointer [2]float64       `json:"pointer"`
	Stats   field.FrameStats `json:"stats"`
	Points  []field.Point    `json:"points"`
}

type Server struct {
	cfg     config.ServerConfig
	profile *portfolio.Profile
	clock   *clock.Clock
	about   template.HTML

	// mu guards the field and the SVG it draws on; only Step advances it.
	mu       sync.Mutex
	svg      *export.SVG
	renderer *field.Renderer
	last     field.FrameStats

	hub    *hub
	engine *gin.Engine
}

// New builds a server for the given profile. The field is mounted on an SVG
// surface of the configured size.
func New(cfg *config.Config, profile *portfolio.Profile, rng *rand.Rand) (*Server, error) {
	if profile == nil {
		profile = portfolio.DefaultProfile()
	}
	about, err := renderMarkdown(profile.About)
	if err != nil {
		return nil, fmt.Errorf("rendering about: %w", err)
	}

	svg := export.NewSVG(cfg.Server.Width, cfg.Server.Height)
	s := &Server{
		cfg:      cfg.Server,
		profile:  profile,
		clock:    clock.New(cfg.Clock.Zone, cfg.Clock.Label, cfg.Clock.Interval),
		about:    about,
		svg:      svg,
		renderer: field.Mount(svg, cfg.Field, rng),
		hub:      newHub(),
	}
	s.engine = s.routes()
	return s, nil
}

func renderMarkdown(src string) (template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) Handler() http.Handler { return s.engine }

// Step draws one frame and pushes it to websocket clients.
func (s *Server) Step() field.FrameStats {
	s.mu.Lock()
	st := s.renderer.Frame()
	s.last = st
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.hub.broadcast(frameEvent{Type: "frame", Snapshot: snap})
	return st
}

func (s *Server) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Server) snapshotLocked() Snapshot {
	f := s.renderer.Field()
	w, h := f.Size()
	px, py := f.Pointer()
	return Snapshot{
		Width:   w,
		Height:  h,
		Pointer: [2]float64{px, py},
		Stats:   s.last,
		Points:  f.Points(),
	}
}

// SVG returns the last drawn frame as an SVG document.
func (s *Server) SVG() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svg.String()
}

func (s *Server) pointerMove(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.Field().SetPointer(x, y)
}

// resize changes the drawing area and regenerates every point.
func (s *Server) resize(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.svg.Width, s.svg.Height = w, h
	s.renderer.Resize()
}

// Run serves HTTP and draws frames until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.frames(ctx)
	}()

	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine}
	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server: shutdown: %v", err)
		}
	}()

	log.Printf("server: listening on %s", s.cfg.Addr)
	err := srv.ListenAndServe()
	cancel()
	wg.Wait()
	s.hub.closeAll()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) frames(ctx context.Context) {
	fps := s.cfg.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}
