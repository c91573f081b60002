// Package lint implements the legacy-keyword detection pass (spec §6,
// §8 "Lint legacy-keyword detection"), grounded on original_source's
// patakha/lint.py: a pass over the raw token stream, independent of
// whether the program goes on to parse or type-check successfully.
package lint

import (
	"fmt"

	"github.com/skx/source-compiler/token"
)

// Issue is a single lint finding: a code, a message, and the source
// position it was raised at.
type Issue struct {
	Code    string
	Message string
	Line    int
	Col     int
}

// String renders an issue the way dump.PrintDiagnostic renders a
// compile diagnostic: "line:col [code] message".
func (i Issue) String() string {
	return fmt.Sprintf("%d:%d [%s] %s", i.Line, i.Col, i.Code, i.Message)
}

// Check scans tokens for legacy/alias keyword spellings and reports
// one legacy_keyword Issue per occurrence, in token order. It runs on
// the raw token stream and never touches the parser, so a lint pass
// can still report on a program that fails to parse.
func Check(tokens []token.Token) []Issue {
	var issues []Issue
	for _, t := range tokens {
		if !token.IsLegacySpelling(t.Lexeme) {
			continue
		}
		canonical := token.Canonical(t.Kind)
		issues = append(issues, Issue{
			Code:    token.WarnLegacyKeyword,
			Message: fmt.Sprintf("use %q instead of legacy %q", canonical, t.Lexeme),
			Line:    t.Line,
			Col:     t.Col,
		})
	}
	return issues
}
