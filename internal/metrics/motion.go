package metrics

import "github.com/san-kum/plexus/internal/field"

// BounceRate is the number of velocity flips per point per frame.
type BounceRate struct {
	bounces    int
	pointSteps int
}

func NewBounceRate() *BounceRate { return &BounceRate{} }

func (b *BounceRate) Name() string { return "bounce_rate" }

func (b *BounceRate) Observe(st field.FrameStats) {
	b.bounces += st.Bounces
	b.pointSteps += st.Points
}

func (b *BounceRate) Value() float64 {
	if b.pointSteps == 0 {
		return 0
	}
	return float64(b.bounces) / float64(b.pointSteps)
}

func (b *BounceRate) Reset() {
	b.bounces = 0
	b.pointSteps = 0
}

type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(st field.FrameStats) {
	m.sum += st.MeanSpeed
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
