// Package diagnostics formats the one user-facing diagnostic shape this
// shell prints: "-<progName>: <message>", the same "-shellname: ..."
// prefix real login shells (and spec.md's own seed scenarios) use.
// Before this package existed the prefix was hand-formatted at every
// print site in internal/shell and main.go; collecting it here means
// the format only has one place to drift.
package diagnostics

import (
	"fmt"
	"io"
)

// Fprintf writes "-progName: <formatted err>\n" to w.
func Fprintf(w io.Writer, progName, format string, args ...any) {
	fmt.Fprintf(w, "-%s: %s\n", progName, fmt.Sprintf(format, args...))
}
