package log

import (
	"io"
	"os"
)

// colorFor reports whether output to w should be coloured: only
// terminals, and never with NO_COLOR set.
func colorFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && isTerminal(f.Fd())
}
