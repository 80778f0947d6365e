package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for grep and explain output
type styles struct {
	file    *color.Color
	lineNo  *color.Color
	match   *color.Color
	heading *color.Color
}

// newStyles creates color formatters.
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		file:    color.New(color.FgMagenta),
		lineNo:  color.New(color.FgGreen),
		match:   color.New(color.Bold, color.FgRed),
		heading: color.New(color.Bold),
	}

	for _, c := range []*color.Color{s.file, s.lineNo, s.match, s.heading} {
		if enabled {
			// overrides color.NoColor, which is set when stdout is not a TTY
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves a --color mode. auto enables color when stdout is
// a terminal and NO_COLOR is unset.
func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color %q: want auto, always or never", mode)
	}
}
