package field

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Renderer is a field mounted on a surface.
//
// Mounting on a nil surface returns a nil *Renderer. Every method accepts a
// nil receiver and does nothing, so hosts can wire a missing surface without
// checks of their own.
type Renderer struct {
	surface  Surface
	field    *Field
	stop     chan struct{}
	stopOnce sync.Once
}

// Mount sizes a field from the surface and populates it.
func Mount(s Surface, params Params, rng *rand.Rand) *Renderer {
	if s == nil {
		return nil
	}
	w, h := s.Size()
	return &Renderer{
		surface: s,
		field:   NewField(w, h, params, rng),
		stop:    make(chan struct{}),
	}
}

func (r *Renderer) Field() *Field {
	if r == nil {
		return nil
	}
	return r.field
}

// Resize re-reads the surface size and regenerates every point.
func (r *Renderer) Resize() {
	if r == nil {
		return
	}
	w, h := r.surface.Size()
	r.field.Resize(w, h)
}

func (r *Renderer) PointerMove(clientX, clientY, scrollY float64) {
	if r == nil {
		return
	}
	r.field.PointerMove(clientX, clientY, scrollY)
}

func (r *Renderer) Frame() FrameStats {
	if r == nil {
		return FrameStats{}
	}
	return r.field.Frame(r.surface)
}

// Stop ends a running loop. Safe to call more than once.
func (r *Renderer) Stop() {
	if r == nil {
		return
	}
	r.stopOnce.Do(func() { close(r.stop) })
}

// Run draws one frame per value received on refresh and hands its stats to
// observe. There is no rate limit of its own; the refresh source sets the
// pace. It returns nil when refresh is closed, otherwise a *FrameError
// wrapping ctx.Err() or ErrStopped.
func (r *Renderer) Run(ctx context.Context, refresh <-chan time.Time, observe func(FrameStats)) error {
	if r == nil {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return &FrameError{Frame: r.field.Frames(), Wrapped: ctx.Err()}
		case <-r.stop:
			return &FrameError{Frame: r.field.Frames(), Wrapped: ErrStopped}
		case _, ok := <-refresh:
			if !ok {
				return nil
			}
			st := r.Frame()
			if observe != nil {
				observe(st)
			}
		}
	}
}
