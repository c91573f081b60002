// Package genstack emits a labeled stack-machine instruction listing
// directly from the AST (spec §4.9). Like gencee, it does not consume
// the ir/cfg/optimize pipeline, so backend output survives even when
// IR generation or optimization degrades (spec §7) — mirroring the
// teacher compiler's instructions package, which walked its own
// internal form straight to a textual/assembly listing without a
// separate analysis IR in between.
package genstack

import (
	"strconv"
	"strings"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/sema"
)

// MainFunctionName matches sema.MainFunctionName; duplicated here the
// same way ir.MainFunctionName is, to avoid a needless field dependency.
const MainFunctionName = "__main__"

// controlFrame is a per-loop (or per-switch) break/continue target
// pair, threaded through nested control structures (spec §4.9).
// continueLabel is empty for a switch frame, so continue searches
// past it to the nearest enclosing loop.
type controlFrame struct {
	breakLabel    string
	continueLabel string
}

// Generator holds one function's worth of stack-backend lowering
// state: the emitted instruction lines, a label/temp counter, and the
// break/continue control stack.
type Generator struct {
	sem     *sema.SemanticResult
	lines   []string
	labelN  int
	tempN   int
	control []controlFrame
}

// Generate renders prog as a labeled stack-machine listing: one FUNC
// block per declared function, a synthetic __main__ block last.
func Generate(prog *ast.Program, sem *sema.SemanticResult) string {
	var out strings.Builder

	for _, fn := range prog.Functions {
		g := &Generator{sem: sem}
		g.genFunction(fn)
		writeLines(&out, g.lines)
	}

	g := &Generator{sem: sem}
	g.genMain(prog.Stmts)
	writeLines(&out, g.lines)

	return out.String()
}

func writeLines(out *strings.Builder, lines []string) {
	for _, l := range lines {
		out.WriteString(l)
		out.WriteString("\n")
	}
}

func (g *Generator) emit(op string, args ...string) {
	if len(args) == 0 {
		g.lines = append(g.lines, op)
		return
	}
	g.lines = append(g.lines, op+" "+strings.Join(args, " "))
}

func (g *Generator) newLabel() string {
	g.labelN++
	return "L" + strconv.Itoa(g.labelN)
}

func (g *Generator) newTemp() string {
	g.tempN++
	return "_sw" + strconv.Itoa(g.tempN)
}

func (g *Generator) genFunction(fn *ast.FuncDecl) {
	g.emit("FUNC", fn.Name, strconv.Itoa(len(fn.Params)))
	for _, p := range fn.Params {
		g.emit("PARAM", p.Name)
	}
	g.genBlock(fn.Body)
	g.emit("END")
}

func (g *Generator) genMain(stmts []ast.Stmt) {
	g.emit("FUNC", MainFunctionName, "0")
	g.genBlock(stmts)
	g.emit("END")
}

func (g *Generator) genBlock(stmts []ast.Stmt) {
	for _, s := range stmts {
		g.genStmt(s)
	}
}

// continueTarget searches the control stack from the top for the
// first frame that forwards continue (spec §4.9).
func (g *Generator) continueTarget() string {
	for i := len(g.control) - 1; i >= 0; i-- {
		if g.control[i].continueLabel != "" {
			return g.control[i].continueLabel
		}
	}
	return ""
}
