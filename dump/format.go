package dump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skx/source-compiler/ast"
)

// indentStr is the canonical re-printer's per-level unit (spec §6's
// "formatted output uses only canonical spellings"), grounded on
// original_source's patakha/formatter.py (same four-space, one
// statement per line, brace-per-line shape), adapted to this
// language's own English keyword spellings.
const indentStr = "    "

// Format re-prints prog in the one canonical textual form: imports,
// type declarations, functions, then the begin/end main block. It is
// a pure function of the AST - running it twice on its own output
// produces byte-identical text (spec §8's round-trip-idempotence
// property), since every literal/keyword spelling it emits is
// canonical by construction.
func Format(prog *ast.Program) string {
	var lines []string

	for _, imp := range prog.Imports {
		lines = append(lines, fmt.Sprintf("import %s;", quoteString(imp)))
	}
	if len(prog.Imports) > 0 {
		lines = append(lines, "")
	}

	for _, td := range prog.Types {
		lines = append(lines, formatTypeDecl(td)...)
		lines = append(lines, "")
	}

	for _, fn := range prog.Functions {
		lines = append(lines, formatFunction(fn)...)
		lines = append(lines, "")
	}

	lines = append(lines, "begin")
	for _, s := range prog.Stmts {
		lines = append(lines, formatStmt(s, 1)...)
	}
	lines = append(lines, "end")

	return strings.Join(lines, "\n") + "\n"
}

func formatTypeDecl(td *ast.TypeDecl) []string {
	lines := []string{fmt.Sprintf("%s %s {", td.Kind, td.Name)}
	for _, f := range td.Fields {
		base, suffix := typeText(f.Type)
		lines = append(lines, fmt.Sprintf("%s%s %s%s;", indentStr, base, f.Name, suffix))
	}
	lines = append(lines, "}")
	return lines
}

func formatFunction(fn *ast.FuncDecl) []string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		base, suffix := typeText(p.Type)
		params[i] = fmt.Sprintf("%s %s%s", base, p.Name, suffix)
	}
	retBase, _ := typeText(fn.ReturnType)
	lines := []string{fmt.Sprintf("function %s(%s) -> %s {", fn.Name, strings.Join(params, ", "), retBase)}
	for _, s := range fn.Body {
		lines = append(lines, formatStmt(s, 1)...)
	}
	lines = append(lines, "}")
	return lines
}

func formatStmt(s ast.Stmt, depth int) []string {
	pad := strings.Repeat(indentStr, depth)

	switch n := s.(type) {
	case *ast.VarDecl:
		base, suffix := typeText(n.Type)
		if n.Init == nil {
			return []string{fmt.Sprintf("%s%s %s%s;", pad, base, n.Name, suffix)}
		}
		return []string{fmt.Sprintf("%s%s %s%s = %s;", pad, base, n.Name, suffix, formatExpr(n.Init))}

	case *ast.Assign:
		return []string{fmt.Sprintf("%s%s = %s;", pad, formatExpr(n.Target), formatExpr(n.Value))}

	case *ast.If:
		lines := []string{fmt.Sprintf("%sif (%s) {", pad, formatExpr(n.Cond))}
		for _, inner := range n.Then {
			lines = append(lines, formatStmt(inner, depth+1)...)
		}
		if n.Else == nil {
			lines = append(lines, pad+"}")
			return lines
		}
		lines = append(lines, pad+"} else {")
		for _, inner := range n.Else {
			lines = append(lines, formatStmt(inner, depth+1)...)
		}
		lines = append(lines, pad+"}")
		return lines

	case *ast.While:
		lines := []string{fmt.Sprintf("%swhile (%s) {", pad, formatExpr(n.Cond))}
		for _, inner := range n.Body {
			lines = append(lines, formatStmt(inner, depth+1)...)
		}
		lines = append(lines, pad+"}")
		return lines

	case *ast.For:
		init, cond, post := "", "", ""
		if n.Init != nil {
			init = formatForClause(n.Init)
		}
		if n.Cond != nil {
			cond = formatExpr(n.Cond)
		}
		if n.Post != nil {
			post = formatForClause(n.Post)
		}
		lines := []string{fmt.Sprintf("%sfor (%s; %s; %s) {", pad, init, cond, post)}
		for _, inner := range n.Body {
			lines = append(lines, formatStmt(inner, depth+1)...)
		}
		lines = append(lines, pad+"}")
		return lines

	case *ast.DoWhile:
		lines := []string{pad + "do {"}
		for _, inner := range n.Body {
			lines = append(lines, formatStmt(inner, depth+1)...)
		}
		lines = append(lines, fmt.Sprintf("%s} while (%s);", pad, formatExpr(n.Cond)))
		return lines

	case *ast.Switch:
		lines := []string{fmt.Sprintf("%sswitch (%s) {", pad, formatExpr(n.Cond))}
		for _, c := range n.Cases {
			lines = append(lines, fmt.Sprintf("%scase %s:", strings.Repeat(indentStr, depth+1), formatExpr(c.Label)))
			for _, inner := range c.Body {
				lines = append(lines, formatStmt(inner, depth+2)...)
			}
		}
		if n.Default != nil {
			lines = append(lines, strings.Repeat(indentStr, depth+1)+"default:")
			for _, inner := range n.Default {
				lines = append(lines, formatStmt(inner, depth+2)...)
			}
		}
		lines = append(lines, pad+"}")
		return lines

	case *ast.Break:
		return []string{pad + "break;"}

	case *ast.Continue:
		return []string{pad + "continue;"}

	case *ast.Print:
		return []string{fmt.Sprintf("%sprint(%s);", pad, formatExpr(n.Value))}

	case *ast.Return:
		if n.Value == nil {
			return []string{pad + "return;"}
		}
		return []string{fmt.Sprintf("%sreturn %s;", pad, formatExpr(n.Value))}

	case *ast.ExprStmt:
		return []string{fmt.Sprintf("%s%s;", pad, formatExpr(n.X))}

	case *ast.Block:
		lines := []string{pad + "{"}
		for _, inner := range n.Stmts {
			lines = append(lines, formatStmt(inner, depth+1)...)
		}
		lines = append(lines, pad+"}")
		return lines
	}
	panic("dump: unhandled statement type")
}

// formatForClause renders a for-loop init/post statement without its
// own trailing semicolon, since the surrounding for(...) header
// supplies the separators.
func formatForClause(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.VarDecl:
		base, suffix := typeText(n.Type)
		if n.Init == nil {
			return fmt.Sprintf("%s %s%s", base, n.Name, suffix)
		}
		return fmt.Sprintf("%s %s%s = %s", base, n.Name, suffix, formatExpr(n.Init))
	case *ast.Assign:
		return fmt.Sprintf("%s = %s", formatExpr(n.Target), formatExpr(n.Value))
	}
	return ""
}

func formatExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *ast.FloatLit:
		text := strconv.FormatFloat(n.Value, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return text
	case *ast.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.StringLit:
		return quoteString(n.Value)
	case *ast.Unary:
		inner := formatExpr(n.Expr)
		if n.Op == "-" && strings.HasPrefix(inner, "-") {
			inner = "(" + inner + ")" // "--" would lex as a decrement
		}
		return fmt.Sprintf("%s%s", n.Op, inner)
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", formatExpr(n.Left), n.Op, formatExpr(n.Right))
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = formatExpr(a)
		}
		return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(args, ", "))
	case *ast.Index:
		return fmt.Sprintf("%s[%s]", formatExpr(n.Base), formatExpr(n.Index))
	case *ast.Member:
		return fmt.Sprintf("%s.%s", formatExpr(n.Base), n.Field)
	case *ast.Cast:
		base, _ := typeText(n.Type)
		return fmt.Sprintf("%s(%s)", base, formatExpr(n.Expr))
	}
	panic("dump: unhandled expression type")
}

// typeText splits a spec §3 type string into its base spelling and
// any array-size suffix ("[N]" per dimension, innermost-declared
// first, matching parser.parseTypeName's left-to-right bracket order).
func typeText(t string) (base, suffix string) {
	var dims []int
	for {
		elem, n, ok := ast.ArrayElemAndSize(t)
		if !ok {
			break
		}
		dims = append(dims, n)
		t = elem
	}
	for i, j := 0, len(dims)-1; i < j; i, j = i+1, j-1 {
		dims[i], dims[j] = dims[j], dims[i]
	}
	for _, n := range dims {
		suffix += fmt.Sprintf("[%d]", n)
	}
	return t, suffix
}

func quoteString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
	)
	return `"` + r.Replace(s) + `"`
}
