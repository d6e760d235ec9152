package core

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

// ColorPrinter colorizes output when it's enabled and the destination
// can render it.
type ColorPrinter struct {
	enabled bool
}

// NewColorPrinter creates a printer that colorizes output destined for
// w when the configuration asks for color and w is a terminal.
func NewColorPrinter(enabled bool, w io.Writer) *ColorPrinter {
	return &ColorPrinter{enabled: enabled && isTerminal(w)}
}

func (c *ColorPrinter) ShouldColor() bool {
	return c.enabled
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
