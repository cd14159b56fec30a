package display

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// paint returns c, with color switched off unless out is a terminal
func paint(out io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if f, ok := out.(*os.File); ok && !color.NoColor && isatty.IsTerminal(f.Fd()) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
