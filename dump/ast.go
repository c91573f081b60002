package dump

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/ast"
)

// Tree renders prog as an indented textual tree, one node per line
// with its position, for the AST dump pipeline output (spec §6).
func Tree(prog *ast.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program\n")
	for _, imp := range prog.Imports {
		fmt.Fprintf(&b, "  Import %q\n", imp)
	}
	for _, td := range prog.Types {
		fmt.Fprintf(&b, "  TypeDecl %s %s\n", td.Kind, td.Name)
		for _, f := range td.Fields {
			fmt.Fprintf(&b, "    Field %s %s\n", f.Name, f.Type)
		}
	}
	for _, fn := range prog.Functions {
		fmt.Fprintf(&b, "  FuncDecl %s -> %s\n", fn.Name, fn.ReturnType)
		for _, p := range fn.Params {
			fmt.Fprintf(&b, "    Param %s %s\n", p.Name, p.Type)
		}
		for _, s := range fn.Body {
			treeStmt(&b, s, 2)
		}
	}
	fmt.Fprintf(&b, "  Main\n")
	for _, s := range prog.Stmts {
		treeStmt(&b, s, 2)
	}
	return b.String()
}

func treeStmt(b *strings.Builder, s ast.Stmt, depth int) {
	pad := strings.Repeat("  ", depth)
	pos := s.Pos()
	switch n := s.(type) {
	case *ast.VarDecl:
		fmt.Fprintf(b, "%sVarDecl %s %s (%d:%d)\n", pad, n.Type, n.Name, pos.Line, pos.Col)
		if n.Init != nil {
			treeExpr(b, n.Init, depth+1)
		}
	case *ast.Assign:
		fmt.Fprintf(b, "%sAssign (%d:%d)\n", pad, pos.Line, pos.Col)
		treeExpr(b, n.Target, depth+1)
		treeExpr(b, n.Value, depth+1)
	case *ast.If:
		fmt.Fprintf(b, "%sIf (%d:%d)\n", pad, pos.Line, pos.Col)
		treeExpr(b, n.Cond, depth+1)
		for _, inner := range n.Then {
			treeStmt(b, inner, depth+1)
		}
		for _, inner := range n.Else {
			treeStmt(b, inner, depth+1)
		}
	case *ast.While:
		fmt.Fprintf(b, "%sWhile (%d:%d)\n", pad, pos.Line, pos.Col)
		treeExpr(b, n.Cond, depth+1)
		for _, inner := range n.Body {
			treeStmt(b, inner, depth+1)
		}
	case *ast.For:
		fmt.Fprintf(b, "%sFor (%d:%d)\n", pad, pos.Line, pos.Col)
		if n.Init != nil {
			treeStmt(b, n.Init, depth+1)
		}
		if n.Cond != nil {
			treeExpr(b, n.Cond, depth+1)
		}
		if n.Post != nil {
			treeStmt(b, n.Post, depth+1)
		}
		for _, inner := range n.Body {
			treeStmt(b, inner, depth+1)
		}
	case *ast.DoWhile:
		fmt.Fprintf(b, "%sDoWhile (%d:%d)\n", pad, pos.Line, pos.Col)
		for _, inner := range n.Body {
			treeStmt(b, inner, depth+1)
		}
		treeExpr(b, n.Cond, depth+1)
	case *ast.Switch:
		fmt.Fprintf(b, "%sSwitch (%d:%d)\n", pad, pos.Line, pos.Col)
		treeExpr(b, n.Cond, depth+1)
		for _, c := range n.Cases {
			fmt.Fprintf(b, "%s  Case\n", pad)
			treeExpr(b, c.Label, depth+2)
			for _, inner := range c.Body {
				treeStmt(b, inner, depth+2)
			}
		}
		for _, inner := range n.Default {
			treeStmt(b, inner, depth+1)
		}
	case *ast.Break:
		fmt.Fprintf(b, "%sBreak (%d:%d)\n", pad, pos.Line, pos.Col)
	case *ast.Continue:
		fmt.Fprintf(b, "%sContinue (%d:%d)\n", pad, pos.Line, pos.Col)
	case *ast.Print:
		fmt.Fprintf(b, "%sPrint (%d:%d)\n", pad, pos.Line, pos.Col)
		treeExpr(b, n.Value, depth+1)
	case *ast.Return:
		fmt.Fprintf(b, "%sReturn (%d:%d)\n", pad, pos.Line, pos.Col)
		if n.Value != nil {
			treeExpr(b, n.Value, depth+1)
		}
	case *ast.ExprStmt:
		fmt.Fprintf(b, "%sExprStmt (%d:%d)\n", pad, pos.Line, pos.Col)
		treeExpr(b, n.X, depth+1)
	case *ast.Block:
		fmt.Fprintf(b, "%sBlock (%d:%d)\n", pad, pos.Line, pos.Col)
		for _, inner := range n.Stmts {
			treeStmt(b, inner, depth+1)
		}
	default:
		fmt.Fprintf(b, "%s<unknown stmt>\n", pad)
	}
}

func treeExpr(b *strings.Builder, e ast.Expr, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case *ast.Ident:
		fmt.Fprintf(b, "%sIdent %s\n", pad, n.Name)
	case *ast.IntLit:
		fmt.Fprintf(b, "%sIntLit %d\n", pad, n.Value)
	case *ast.FloatLit:
		fmt.Fprintf(b, "%sFloatLit %g\n", pad, n.Value)
	case *ast.BoolLit:
		fmt.Fprintf(b, "%sBoolLit %t\n", pad, n.Value)
	case *ast.StringLit:
		fmt.Fprintf(b, "%sStringLit %q\n", pad, n.Value)
	case *ast.Unary:
		fmt.Fprintf(b, "%sUnary %s\n", pad, n.Op)
		treeExpr(b, n.Expr, depth+1)
	case *ast.Binary:
		fmt.Fprintf(b, "%sBinary %s\n", pad, n.Op)
		treeExpr(b, n.Left, depth+1)
		treeExpr(b, n.Right, depth+1)
	case *ast.Call:
		fmt.Fprintf(b, "%sCall %s\n", pad, n.Callee)
		for _, a := range n.Args {
			treeExpr(b, a, depth+1)
		}
	case *ast.Index:
		fmt.Fprintf(b, "%sIndex\n", pad)
		treeExpr(b, n.Base, depth+1)
		treeExpr(b, n.Index, depth+1)
	case *ast.Member:
		fmt.Fprintf(b, "%sMember %s\n", pad, n.Field)
		treeExpr(b, n.Base, depth+1)
	case *ast.Cast:
		fmt.Fprintf(b, "%sCast %s\n", pad, n.Type)
		treeExpr(b, n.Expr, depth+1)
	default:
		fmt.Fprintf(b, "%s<unknown expr>\n", pad)
	}
}

// Dot renders prog's top-level statement list (the entry module's
// main body) as a Graphviz dot graph, one node per statement/
// expression, edges following the same parent/child structure Tree
// walks. Functions are omitted; the CFG dot dump (CFGDot) is the
// intended tool for per-function control-flow visualization.
func Dot(prog *ast.Program) string {
	var b strings.Builder
	b.WriteString("digraph AST {\n")
	id := 0
	next := func() int { id++; return id }
	root := next()
	fmt.Fprintf(&b, "  n%d [label=\"Program\"];\n", root)
	for _, s := range prog.Stmts {
		child := dotStmt(&b, s, next)
		fmt.Fprintf(&b, "  n%d -> n%d;\n", root, child)
	}
	b.WriteString("}\n")
	return b.String()
}

func dotStmt(b *strings.Builder, s ast.Stmt, next func() int) int {
	id := next()
	label := fmt.Sprintf("%T", s)
	label = strings.TrimPrefix(label, "*ast.")
	fmt.Fprintf(b, "  n%d [label=%q];\n", id, label)

	link := func(child int) { fmt.Fprintf(b, "  n%d -> n%d;\n", id, child) }

	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			link(dotExpr(b, n.Init, next))
		}
	case *ast.Assign:
		link(dotExpr(b, n.Target, next))
		link(dotExpr(b, n.Value, next))
	case *ast.If:
		link(dotExpr(b, n.Cond, next))
		for _, inner := range n.Then {
			link(dotStmt(b, inner, next))
		}
		for _, inner := range n.Else {
			link(dotStmt(b, inner, next))
		}
	case *ast.While:
		link(dotExpr(b, n.Cond, next))
		for _, inner := range n.Body {
			link(dotStmt(b, inner, next))
		}
	case *ast.For:
		if n.Init != nil {
			link(dotStmt(b, n.Init, next))
		}
		if n.Cond != nil {
			link(dotExpr(b, n.Cond, next))
		}
		if n.Post != nil {
			link(dotStmt(b, n.Post, next))
		}
		for _, inner := range n.Body {
			link(dotStmt(b, inner, next))
		}
	case *ast.DoWhile:
		for _, inner := range n.Body {
			link(dotStmt(b, inner, next))
		}
		link(dotExpr(b, n.Cond, next))
	case *ast.Switch:
		link(dotExpr(b, n.Cond, next))
		for _, c := range n.Cases {
			link(dotExpr(b, c.Label, next))
			for _, inner := range c.Body {
				link(dotStmt(b, inner, next))
			}
		}
		for _, inner := range n.Default {
			link(dotStmt(b, inner, next))
		}
	case *ast.Print:
		link(dotExpr(b, n.Value, next))
	case *ast.Return:
		if n.Value != nil {
			link(dotExpr(b, n.Value, next))
		}
	case *ast.ExprStmt:
		link(dotExpr(b, n.X, next))
	case *ast.Block:
		for _, inner := range n.Stmts {
			link(dotStmt(b, inner, next))
		}
	}
	return id
}

func dotExpr(b *strings.Builder, e ast.Expr, next func() int) int {
	id := next()
	var label string
	switch n := e.(type) {
	case *ast.Ident:
		label = "Ident:" + n.Name
	case *ast.IntLit:
		label = fmt.Sprintf("IntLit:%d", n.Value)
	case *ast.FloatLit:
		label = fmt.Sprintf("FloatLit:%g", n.Value)
	case *ast.BoolLit:
		label = fmt.Sprintf("BoolLit:%t", n.Value)
	case *ast.StringLit:
		label = fmt.Sprintf("StringLit:%q", n.Value)
	case *ast.Unary:
		label = "Unary:" + n.Op
	case *ast.Binary:
		label = "Binary:" + n.Op
	case *ast.Call:
		label = "Call:" + n.Callee
	case *ast.Index:
		label = "Index"
	case *ast.Member:
		label = "Member:" + n.Field
	case *ast.Cast:
		label = "Cast:" + n.Type
	default:
		label = "?"
	}
	fmt.Fprintf(b, "  n%d [label=%q];\n", id, label)

	switch n := e.(type) {
	case *ast.Unary:
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Expr, next))
	case *ast.Binary:
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Left, next))
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Right, next))
	case *ast.Call:
		for _, a := range n.Args {
			fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, a, next))
		}
	case *ast.Index:
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Base, next))
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Index, next))
	case *ast.Member:
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Base, next))
	case *ast.Cast:
		fmt.Fprintf(b, "  n%d -> n%d;\n", id, dotExpr(b, n.Expr, next))
	}
	return id
}
