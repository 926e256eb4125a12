// Package output provides CLI output formatting utilities
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors when the environment allows it (default)
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to out and err
func NewPrinter(out, err io.Writer, mode ColorMode) *Printer {
	return &Printer{
		out:       out,
		err:       err,
		useColors: ResolveColors(mode),
	}
}

// Out returns the standard output writer
func (p *Printer) Out() io.Writer {
	return p.out
}

func (p *Printer) colored(w io.Writer, attr color.Attribute, format string, args ...interface{}) {
	if p.useColors {
		c := color.New(attr)
		c.EnableColor()
		c.Fprintf(w, format, args...)
		return
	}
	fmt.Fprintf(w, format, args...)
}

// Heading prints a section heading
func (p *Printer) Heading(format string, args ...interface{}) {
	p.colored(p.out, color.Bold, format+"\n", args...)
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...interface{}) {
	p.colored(p.out, color.FgCyan, format+"\n", args...)
}

// Warning prints a warning message to stderr
func (p *Printer) Warning(format string, args ...interface{}) {
	if p.useColors {
		p.colored(p.err, color.FgYellow, "⚠ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
}

// Error prints an error message to stderr
func (p *Printer) Error(format string, args ...interface{}) {
	if p.useColors {
		p.colored(p.err, color.FgRed, "✗ "+format+"\n", args...)
		return
	}
	fmt.Fprintf(p.err, "Error: "+format+"\n", args...)
}

// Print writes s verbatim to stdout
func (p *Printer) Print(s string) {
	fmt.Fprint(p.out, s)
}
