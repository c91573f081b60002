package gencee

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skx/source-compiler/ast"
)

func (g *Generator) genExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *ast.FloatLit:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.BoolLit:
		if n.Value {
			return "1"
		}
		return "0"
	case *ast.StringLit:
		return cStringLit(n.Value)
	case *ast.Unary:
		return fmt.Sprintf("(%s%s)", n.Op, g.genExpr(n.Expr))
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", g.genExpr(n.Left), n.Op, g.genExpr(n.Right))
	case *ast.Call:
		return g.genCall(n)
	case *ast.Index:
		return fmt.Sprintf("%s[%s]", g.genExpr(n.Base), g.genExpr(n.Index))
	case *ast.Member:
		return fmt.Sprintf("%s.%s", g.genExpr(n.Base), n.Field)
	case *ast.Cast:
		return fmt.Sprintf("((%s)%s)", cType(n.Type), g.genExpr(n.Expr))
	}
	panic("gencee: unhandled expression type")
}

// genCall lowers the builtin call forms of spec §4.8, falling through
// to an ordinary C call for user functions.
func (g *Generator) genCall(n *ast.Call) string {
	switch n.Callee {
	case "input", "bata":
		g.needsReadInt = true
		return "read_int_helper()"

	case "max":
		a, b := g.genExpr(n.Args[0]), g.genExpr(n.Args[1])
		return fmt.Sprintf("((%s) > (%s) ? (%s) : (%s))", a, b, a, b)

	case "len":
		arg := n.Args[0]
		av := g.genExpr(arg)
		t, _ := g.sem.TypeOf(arg.ID())
		switch {
		case ast.IsArray(t):
			return fmt.Sprintf("((int)(sizeof(%s)/sizeof(%s[0])))", av, av)
		case t == ast.Text:
			return fmt.Sprintf("((int)strlen(%s))", av)
		}
		return "0"
	}

	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.genExpr(a)
	}
	return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(args, ", "))
}

// cStringLit re-escapes a string literal's decoded value for a C
// string constant (spec §4.8): backslash, double-quote, newline, tab.
func cStringLit(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
	)
	return `"` + r.Replace(s) + `"`
}
