package typewriter

import (
	"context"
	"errors"
	"testing"
	"time"
)

type step struct {
	text  string
	delay time.Duration
}

func TestNext_Sequence(t *testing.T) {
	tw := New([]string{"ab", "c"}, DefaultDelays())

	expected := []step{
		{"a", 50 * time.Millisecond},
		{"ab", 1500 * time.Millisecond},
		{"a", 25 * time.Millisecond},
		{"", 300 * time.Millisecond},
		{"c", 1500 * time.Millisecond},
		{"", 300 * time.Millisecond},
		{"a", 50 * time.Millisecond},
	}

	for i, want := range expected {
		text, delay := tw.Next()
		if text != want.text || delay != want.delay {
			t.Errorf("step %d: got (%q, %v), want (%q, %v)", i, text, delay, want.text, want.delay)
		}
	}
}

func TestNext_Unicode(t *testing.T) {
	tw := New([]string{"héllo"}, DefaultDelays())
	tw.Next()
	text, _ := tw.Next()
	if text != "hé" {
		t.Errorf("expected rune-wise typing, got %q", text)
	}
}

func TestNext_Empty(t *testing.T) {
	tw := New(nil, DefaultDelays())
	if text, delay := tw.Next(); text != "" || delay != 0 {
		t.Errorf("expected empty step, got (%q, %v)", text, delay)
	}
	if err := tw.Run(context.Background(), func(string) { t.Error("emit should not be called") }); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestNext_WrapsAround(t *testing.T) {
	tw := New([]string{"x", "y"}, DefaultDelays())
	for i := 0; i < 4; i++ {
		tw.Next()
	}
	if tw.Index() != 0 {
		t.Errorf("expected index 0 after both strings, got %d", tw.Index())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	delays := Delays{Type: time.Millisecond, Delete: time.Millisecond, Hold: time.Millisecond, Next: time.Millisecond}
	tw := New([]string{"plexus"}, delays)

	ctx, cancel := context.WithCancel(context.Background())
	var got []string
	err := tw.Run(ctx, func(s string) {
		got = append(got, s)
		if len(got) == 6 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if got[5] != "plexus" {
		t.Errorf("expected full word on 6th step, got %q", got[5])
	}
}
