package dump

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/token"
)

// PrintDiagnostic renders a single diagnostic the way spec §6
// requires: "path:line:col [code] message", followed by an underlined
// source frame (the offending source line, and a caret under the
// column) when source text is available. path or source may be empty,
// in which case the path prefix or the frame is omitted respectively.
func PrintDiagnostic(path string, source string, d token.Diagnostic) string {
	var b strings.Builder

	if path != "" {
		fmt.Fprintf(&b, "%s:%s\n", path, d.String())
	} else {
		fmt.Fprintf(&b, "%s\n", d.String())
	}

	if source == "" {
		return b.String()
	}

	lines := strings.Split(source, "\n")
	if d.Line < 1 || d.Line > len(lines) {
		return b.String()
	}
	srcLine := lines[d.Line-1]
	b.WriteString(srcLine)
	b.WriteString("\n")

	col := d.Col
	if col < 1 {
		col = 1
	}
	if col > len(srcLine)+1 {
		col = len(srcLine) + 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString("^\n")

	return b.String()
}

// PrintDiagnostics renders every diagnostic in d, in order, separated
// by a blank line.
func PrintDiagnostics(path, source string, diags []token.Diagnostic) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(PrintDiagnostic(path, source, d))
	}
	return b.String()
}
