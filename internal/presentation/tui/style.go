package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Styler colours simulation output. Writers that are not terminals get plain text.
type Styler struct {
	out *termenv.Output
}

// NewStyler detects the colour profile of w.
func NewStyler(w io.Writer) *Styler {
	return &Styler{out: termenv.NewOutput(w)}
}

// State highlights a state name.
func (s *Styler) State(name string) string {
	return s.out.String(name).Foreground(s.out.Color("#2dd4bf")).Bold().String()
}

// Transition highlights a running transition.
func (s *Styler) Transition(name string) string {
	return s.out.String(name).Foreground(s.out.Color("#fbbf24")).String()
}

// Muted dims secondary information.
func (s *Styler) Muted(text string) string {
	return s.out.String(text).Faint().String()
}
