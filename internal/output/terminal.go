package output

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NoColorFor returns true when colored output should be disabled for w:
// either it was asked for or w is not a terminal.
func NoColorFor(w io.Writer, noColor bool) bool {
	return noColor || !IsTerminal(w)
}
