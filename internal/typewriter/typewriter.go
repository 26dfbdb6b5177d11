// Package typewriter cycles a list of strings with a typing and deleting
// animation.
package typewriter

import (
	"context"
	"time"
)

const (
	DefaultTypeDelay   = 50 * time.Millisecond
	DefaultDeleteDelay = 25 * time.Millisecond
	DefaultHoldDelay   = 1500 * time.Millisecond
	DefaultNextDelay   = 300 * time.Millisecond
)

type Delays struct {
	Type   time.Duration // between typed characters
	Delete time.Duration // between deleted characters
	Hold   time.Duration // after a string is complete
	Next   time.Duration // after a string is fully deleted
}

func DefaultDelays() Delays {
	return Delays{
		Type:   DefaultTypeDelay,
		Delete: DefaultDeleteDelay,
		Hold:   DefaultHoldDelay,
		Next:   DefaultNextDelay,
	}
}

type Typewriter struct {
	texts    [][]rune
	delays   Delays
	index    int
	chars    int
	deleting bool
}

func New(texts []string, delays Delays) *Typewriter {
	tw := &Typewriter{delays: delays}
	for _, t := range texts {
		tw.texts = append(tw.texts, []rune(t))
	}
	return tw
}

// Next advances one character and returns the visible text together with
// how long to wait before calling Next again.
func (tw *Typewriter) Next() (string, time.Duration) {
	if len(tw.texts) == 0 {
		return "", 0
	}
	current := tw.texts[tw.index]

	var delay time.Duration
	if tw.deleting {
		tw.chars = max(tw.chars-1, 0)
		delay = tw.delays.Delete
	} else {
		tw.chars = min(tw.chars+1, len(current))
		delay = tw.delays.Type
	}
	shown := string(current[:tw.chars])

	switch {
	case !tw.deleting && tw.chars == len(current):
		tw.deleting = true
		delay = tw.delays.Hold
	case tw.deleting && tw.chars == 0:
		tw.deleting = false
		tw.index = (tw.index + 1) % len(tw.texts)
		delay = tw.delays.Next
	}
	return shown, delay
}

// Index is the position of the string currently being typed or deleted.
func (tw *Typewriter) Index() int { return tw.index }

// Run calls emit with every step until ctx is done. It returns immediately
// when there is nothing to type.
func (tw *Typewriter) Run(ctx context.Context, emit func(string)) error {
	if len(tw.texts) == 0 {
		return nil
	}
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			text, delay := tw.Next()
			emit(text)
			timer.Reset(delay)
		}
	}
}
