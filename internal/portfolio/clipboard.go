package portfolio

import (
	"fmt"
	"io"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard copies text through the terminal with an OSC 52 sequence.
type Clipboard struct {
	out  io.Writer
	tmux bool
}

func NewClipboard(out io.Writer, tmux bool) *Clipboard {
	return &Clipboard{out: out, tmux: tmux}
}

func (c *Clipboard) Copy(text string) error {
	seq := osc52.New(text)
	if c.tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("writing clipboard sequence: %w", err)
	}
	return nil
}
