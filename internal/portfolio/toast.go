package portfolio

import "time"

const (
	ToastVisible  = 2 * time.Second
	ToastSlideOut = 300 * time.Millisecond

	EmailCopied = "Email copied!"
)

type ToastState int

const (
	ToastHidden ToastState = iota
	ToastShowing
	ToastLeaving
)

func (s ToastState) String() string {
	switch s {
	case ToastShowing:
		return "showing"
	case ToastLeaving:
		return "leaving"
	default:
		return "hidden"
	}
}

// Toast is a transient notification: shown, then sliding out, then gone.
type Toast struct {
	Message string
	shownAt time.Time
	active  bool
}

func (t *Toast) Show(msg string, now time.Time) {
	t.Message, t.shownAt, t.active = msg, now, true
}

func (t *Toast) State(now time.Time) ToastState {
	if !t.active {
		return ToastHidden
	}
	elapsed := now.Sub(t.shownAt)
	switch {
	case elapsed < ToastVisible:
		return ToastShowing
	case elapsed < ToastVisible+ToastSlideOut:
		return ToastLeaving
	default:
		t.active = false
		return ToastHidden
	}
}

// SlideOffset is how far, in [0, 1], the toast has slid off screen.
func (t *Toast) SlideOffset(now time.Time) float64 {
	if t.State(now) != ToastLeaving {
		return 0
	}
	return float64(now.Sub(t.shownAt)-ToastVisible) / float64(ToastSlideOut)
}
