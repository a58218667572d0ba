package patchlog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console is a Sink writing to a terminal or plain stream. Colors are on
// only when the writer is a tty.
type Console struct {
	W     io.Writer
	color bool
}

func NewConsole(w io.Writer) *Console {
	c := &Console{W: w}
	if f, ok := w.(*os.File); ok {
		c.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return c
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	dbgColor  = color.New(color.FgCyan)
)

func (c *Console) Emit(level Level, msg string) {
	if !c.color {
		fmt.Fprintf(c.W, "[%s] %s\n", level, msg)
		return
	}
	switch level {
	case Error:
		errColor.Fprintf(c.W, "[%s] %s\n", level, msg)
	case Warning:
		warnColor.Fprintf(c.W, "[%s] %s\n", level, msg)
	case Verbose, Debug:
		dbgColor.Fprintf(c.W, "[%s] %s\n", level, msg)
	default:
		fmt.Fprintf(c.W, "[%s] %s\n", level, msg)
	}
}
