package gencee

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/ast"
)

func (g *Generator) funcSignature(fn *ast.FuncDecl) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = cDecl(p.Type, p.Name)
	}
	if len(params) == 0 {
		params = []string{"void"}
	}
	return fmt.Sprintf("%s %s(%s)", cType(fn.ReturnType), fn.Name, strings.Join(params, ", "))
}

func (g *Generator) genForwardDecl(fn *ast.FuncDecl) string {
	return g.funcSignature(fn) + ";\n"
}

func (g *Generator) genFuncDef(fn *ast.FuncDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", g.funcSignature(fn))
	b.WriteString(g.genBlock(fn.Body, 1))
	b.WriteString("}\n")
	return b.String()
}

// genMain evaluates the top-level statements inside a generated
// main() (spec §4.8). A trailing "return 0" covers entry points that
// fall off the end without an explicit return.
func (g *Generator) genMain(stmts []ast.Stmt) string {
	var b strings.Builder
	b.WriteString("int main(void) {\n")
	b.WriteString(g.genBlock(stmts, 1))
	b.WriteString("\treturn 0;\n}\n")
	return b.String()
}
