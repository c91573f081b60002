package gencee

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/ast"
)

func indent(n int) string { return strings.Repeat("\t", n) }

func (g *Generator) genBlock(stmts []ast.Stmt, depth int) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(g.genStmt(s, depth))
	}
	return b.String()
}

// genForClause renders a for-loop init/post statement without the
// trailing ";\n" genStmt normally appends, since the surrounding
// for(...) header supplies its own separators.
func (g *Generator) genForClause(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			return fmt.Sprintf("%s = %s", cDecl(n.Type, n.Name), g.genExpr(n.Init))
		}
		return cDecl(n.Type, n.Name)
	case *ast.Assign:
		return fmt.Sprintf("%s = %s", g.genExpr(n.Target), g.genExpr(n.Value))
	}
	return ""
}

func (g *Generator) genStmt(s ast.Stmt, depth int) string {
	ind := indent(depth)
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			return fmt.Sprintf("%s%s = %s;\n", ind, cDecl(n.Type, n.Name), g.genExpr(n.Init))
		}
		return fmt.Sprintf("%s%s;\n", ind, cDecl(n.Type, n.Name))

	case *ast.Assign:
		return fmt.Sprintf("%s%s = %s;\n", ind, g.genExpr(n.Target), g.genExpr(n.Value))

	case *ast.If:
		var b strings.Builder
		fmt.Fprintf(&b, "%sif (%s) {\n", ind, g.genExpr(n.Cond))
		b.WriteString(g.genBlock(n.Then, depth+1))
		if n.Else != nil {
			fmt.Fprintf(&b, "%s} else {\n", ind)
			b.WriteString(g.genBlock(n.Else, depth+1))
		}
		fmt.Fprintf(&b, "%s}\n", ind)
		return b.String()

	case *ast.While:
		var b strings.Builder
		fmt.Fprintf(&b, "%swhile (%s) {\n", ind, g.genExpr(n.Cond))
		b.WriteString(g.genBlock(n.Body, depth+1))
		fmt.Fprintf(&b, "%s}\n", ind)
		return b.String()

	case *ast.For:
		var initStr, condStr, postStr string
		if n.Init != nil {
			initStr = g.genForClause(n.Init)
		}
		if n.Cond != nil {
			condStr = g.genExpr(n.Cond)
		}
		if n.Post != nil {
			postStr = g.genForClause(n.Post)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%sfor (%s; %s; %s) {\n", ind, initStr, condStr, postStr)
		b.WriteString(g.genBlock(n.Body, depth+1))
		fmt.Fprintf(&b, "%s}\n", ind)
		return b.String()

	case *ast.DoWhile:
		var b strings.Builder
		fmt.Fprintf(&b, "%sdo {\n", ind)
		b.WriteString(g.genBlock(n.Body, depth+1))
		fmt.Fprintf(&b, "%s} while (%s);\n", ind, g.genExpr(n.Cond))
		return b.String()

	case *ast.Switch:
		var b strings.Builder
		fmt.Fprintf(&b, "%sswitch (%s) {\n", ind, g.genExpr(n.Cond))
		for _, c := range n.Cases {
			fmt.Fprintf(&b, "%scase %s:\n", indent(depth+1), g.genExpr(c.Label))
			b.WriteString(g.genBlock(c.Body, depth+2))
		}
		if n.Default != nil {
			fmt.Fprintf(&b, "%sdefault:\n", indent(depth+1))
			b.WriteString(g.genBlock(n.Default, depth+2))
		}
		fmt.Fprintf(&b, "%s}\n", ind)
		return b.String()

	case *ast.Break:
		return ind + "break;\n"

	case *ast.Continue:
		return ind + "continue;\n"

	case *ast.Print:
		return ind + g.genPrint(n)

	case *ast.Return:
		if n.Value == nil {
			return ind + "return;\n"
		}
		return fmt.Sprintf("%sreturn %s;\n", ind, g.genExpr(n.Value))

	case *ast.ExprStmt:
		return fmt.Sprintf("%s%s;\n", ind, g.genExpr(n.X))

	case *ast.Block:
		var b strings.Builder
		fmt.Fprintf(&b, "%s{\n", ind)
		b.WriteString(g.genBlock(n.Stmts, depth+1))
		fmt.Fprintf(&b, "%s}\n", ind)
		return b.String()
	}
	panic("gencee: unhandled statement type")
}

// genPrint selects a printf format via the semantic expression-type
// map (spec §4.8): text->%s, float->%g, everything else (int, bool)->%d.
func (g *Generator) genPrint(n *ast.Print) string {
	format := "%d\\n"
	if t, ok := g.sem.TypeOf(n.Value.ID()); ok {
		switch t {
		case ast.Text:
			format = "%s\\n"
		case ast.Float:
			format = "%g\\n"
		}
	}
	return fmt.Sprintf("printf(\"%s\", %s);\n", format, g.genExpr(n.Value))
}
