package portfolio

import "time"

const (
	DefaultRevealThreshold = 0.1
	DefaultRevealDuration  = 600 * time.Millisecond
	StatInitialDelay       = 500 * time.Millisecond
	StatStagger            = 100 * time.Millisecond
)

// Reveal tracks which page elements have scrolled into view. Once revealed,
// an element stays revealed.
type Reveal struct {
	Threshold float64
	// Margin shrinks the viewport at the bottom, in rows.
	Margin   int
	Duration time.Duration
	revealed map[string]time.Time
}

func NewReveal(threshold float64, margin int) *Reveal {
	return &Reveal{
		Threshold: threshold,
		Margin:    margin,
		Duration:  DefaultRevealDuration,
		revealed:  make(map[string]time.Time),
	}
}

// Observe checks an element spanning [top, top+height) against the
// viewport [viewTop, viewTop+viewHeight) and reports whether it is revealed.
func (r *Reveal) Observe(id string, top, height, viewTop, viewHeight int, now time.Time) bool {
	if _, ok := r.revealed[id]; ok {
		return true
	}
	if height <= 0 {
		return false
	}
	lo := max(top, viewTop)
	hi := min(top+height, viewTop+viewHeight-r.Margin)
	if hi <= lo {
		return false
	}
	if float64(hi-lo)/float64(height) >= r.Threshold {
		r.revealed[id] = now
		return true
	}
	return false
}

func (r *Reveal) Revealed(id string) bool {
	_, ok := r.revealed[id]
	return ok
}

// Progress is how far the reveal transition of id has run, in [0, 1].
func (r *Reveal) Progress(id string, now time.Time) float64 {
	at, ok := r.revealed[id]
	if !ok {
		return 0
	}
	if r.Duration <= 0 {
		return 1
	}
	return min(float64(now.Sub(at))/float64(r.Duration), 1)
}

// StatVisible reports whether the stat at index has appeared, given the
// time since the page loaded.
func StatVisible(index int, sinceLoad time.Duration) bool {
	return sinceLoad >= StatInitialDelay+time.Duration(index)*StatStagger
}
