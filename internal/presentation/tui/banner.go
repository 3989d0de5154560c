package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ABSM ASCII art banner to w.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	// Gradient from teal to indigo
	lines := []struct{ text, color string }{
		{"     _    ____  ____  __  __ ", "#2dd4bf"},
		{"    / \\  | __ )/ ___||  \\/  |", "#38bdf8"},
		{"   / _ \\ |  _ \\\\___ \\| |\\/| |", "#60a5fa"},
		{"  / ___ \\| |_) |___) | |  | |", "#818cf8"},
		{" /_/   \\_\\____/|____/|_|  |_|", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w)
}
