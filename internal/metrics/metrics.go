// Package metrics aggregates per-frame field statistics over a run.
package metrics

import "github.com/san-kum/plexus/internal/field"

type Metric interface {
	Name() string
	Observe(st field.FrameStats)
	Value() float64
	Reset()
}

// Set fans a frame out to several metrics.
type Set []Metric

// Default returns the metrics recorded for every run.
func Default() Set {
	return Set{
		NewMeanLinks(),
		NewPeakLinks(),
		NewPointerEngagement(),
		NewBounceRate(),
		NewMeanSpeed(),
	}
}

func (s Set) Observe(st field.FrameStats) {
	for _, m := range s {
		m.Observe(st)
	}
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}
