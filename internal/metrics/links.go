package metrics

import "github.com/san-kum/plexus/internal/field"

type MeanLinks struct {
	sum     float64
	samples int
}

func NewMeanLinks() *MeanLinks { return &MeanLinks{} }

func (m *MeanLinks) Name() string { return "mean_links" }

func (m *MeanLinks) Observe(st field.FrameStats) {
	m.sum += float64(st.Links)
	m.samples++
}

func (m *MeanLinks) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanLinks) Reset() {
	m.sum = 0
	m.samples = 0
}

type PeakLinks struct {
	peak int
}

func NewPeakLinks() *PeakLinks { return &PeakLinks{} }

func (p *PeakLinks) Name() string { return "peak_links" }

func (p *PeakLinks) Observe(st field.FrameStats) {
	p.peak = max(p.peak, st.Links)
}

func (p *PeakLinks) Value() float64 { return float64(p.peak) }
func (p *PeakLinks) Reset()         { p.peak = 0 }

// PointerEngagement is the fraction of frames with at least one pointer line.
type PointerEngagement struct {
	engaged int
	samples int
}

func NewPointerEngagement() *PointerEngagement { return &PointerEngagement{} }

func (p *PointerEngagement) Name() string { return "pointer_engagement" }

func (p *PointerEngagement) Observe(st field.FrameStats) {
	p.samples++
	if st.PointerLinks > 0 {
		p.engaged++
	}
}

func (p *PointerEngagement) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.engaged) / float64(p.samples)
}

func (p *PointerEngagement) Reset() {
	p.engaged = 0
	p.samples = 0
}
