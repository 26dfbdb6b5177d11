// Package clock formats a 12-hour wall clock for a fixed time zone.
package clock

import (
	"context"
	"fmt"
	"time"
)

// istOffset is used when the tz database has no entry for the zone.
const istOffset = 5*60*60 + 30*60

// Location loads the named zone, falling back to a fixed +05:30 zone.
func Location(name string) *time.Location {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	return time.FixedZone("IST", istOffset)
}

// Format renders t as "hh:mm:ss AM LABEL" in loc. Hour 0 shows as 12.
func Format(t time.Time, loc *time.Location, label string) string {
	t = t.In(loc)
	hours := t.Hour()
	ampm := "AM"
	if hours >= 12 {
		ampm = "PM"
	}
	hours %= 12
	if hours == 0 {
		hours = 12
	}
	s := fmt.Sprintf("%02d:%02d:%02d %s", hours, t.Minute(), t.Second(), ampm)
	if label != "" {
		s += " " + label
	}
	return s
}

type Clock struct {
	loc      *time.Location
	label    string
	interval time.Duration
	now      func() time.Time
}

func New(zone, label string, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{loc: Location(zone), label: label, interval: interval, now: time.Now}
}

func (c *Clock) String() string {
	return Format(c.now(), c.loc, c.label)
}

// Run emits the current time immediately, then once per interval until ctx
// is done.
func (c *Clock) Run(ctx context.Context, emit func(string)) error {
	emit(c.String())
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			emit(c.String())
		}
	}
}
