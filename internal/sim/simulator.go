package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/plexus/internal/field"
	"github.com/san-kum/plexus/internal/metrics"
)

// Simulator runs a field headless for a fixed number of frames, feeding
// every frame to its metrics and observers.
type Simulator struct {
	metrics   metrics.Set
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make(metrics.Set, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddMetrics(set metrics.Set) {
	for _, m := range set {
		s.AddMetric(m)
	}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		Frames:  make([]field.FrameStats, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	surface := blank{w: cfg.Width, h: cfg.Height}
	r := field.Mount(surface, cfg.Params, rand.New(rand.NewSource(cfg.Seed)))

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, &field.FrameError{Frame: i, Wrapped: ctx.Err()}
		default:
		}

		if cfg.Pointer != nil {
			if x, y, ok := cfg.Pointer(i); ok {
				r.Field().SetPointer(x, y)
			}
		}

		st := r.Frame()
		for _, m := range s.metrics {
			m.Observe(st)
		}
		for _, obs := range s.observers {
			obs.OnFrame(st)
		}
		result.Frames = append(result.Frames, st)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Elapsed = time.Since(start)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %.0fx%.0f", field.ErrParameterBounds, cfg.Width, cfg.Height)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", field.ErrParameterBounds, cfg.Frames)
	}
	return cfg.Params.Validate()
}
