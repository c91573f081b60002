package dump

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/token"
)

// Tokens renders one line per token, "line:col kind(lexeme)" (spec §6
// "Pipeline outputs" - the raw lexer dump), using token.Token.String
// for the kind/lexeme rendering the lexer/parser tests already rely on.
func Tokens(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&b, "%d:%d %s\n", t.Line, t.Col, t.String())
	}
	return b.String()
}
