package ir

import (
	"strconv"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/sema"
)

// MainFunctionName matches sema.MainFunctionName; duplicated here as a
// literal so this package stays free of a needless field dependency.
const MainFunctionName = "__main__"

// Generate lowers every function plus the top-level statement list
// (as a synthetic __main__) into flat per-function instruction lists.
func Generate(prog *ast.Program, sem *sema.SemanticResult) *Program {
	out := &Program{Functions: map[string]*Function{}}

	for _, fn := range prog.Functions {
		f := newGenerator().genFunction(fn)
		out.Functions[f.Name] = f
		out.Order = append(out.Order, f.Name)
	}

	main := newGenerator().genMain(prog.Stmts)
	out.Functions[main.Name] = main
	out.Order = append(out.Order, main.Name)

	return out
}

type controlFrame struct {
	breakLabel    string
	continueLabel string // empty if this frame doesn't handle continue (switch)
}

// generator holds one function's worth of lowering state (spec
// §4.5's "per function" state): fresh temp/label counters, a scope
// stack for the renaming policy, and the break/continue target stack.
type generator struct {
	instrs   []Instruction
	tempN    int
	labelN   int
	scopes   []map[string]string
	declCnt  map[string]int
	temps    map[string]bool
	control  []controlFrame
}

func newGenerator() *generator {
	return &generator{declCnt: map[string]int{}, temps: map[string]bool{}}
}

func (g *generator) newTemp() string {
	name := "_t" + strconv.Itoa(g.tempN)
	g.tempN++
	g.temps[name] = true
	return name
}

func (g *generator) newLabel() string {
	name := "L" + strconv.Itoa(g.labelN)
	g.labelN++
	return name
}

func (g *generator) emit(op, arg1, arg2, result string) {
	g.instrs = append(g.instrs, Instruction{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
}

func (g *generator) pushScope() { g.scopes = append(g.scopes, map[string]string{}) }
func (g *generator) popScope()  { g.scopes = g.scopes[:len(g.scopes)-1] }

// declareVar implements the renaming policy of spec §4.5: first
// occurrence of a source name keeps it as-is; later declarations of
// the same source name (in sibling scopes) get a unique "__N" suffix.
func (g *generator) declareVar(source string) string {
	g.declCnt[source]++
	n := g.declCnt[source]
	internal := source
	if n > 1 {
		internal = source + "__" + strconv.Itoa(n)
	}
	g.scopes[len(g.scopes)-1][source] = internal
	return internal
}

// resolveVar searches innermost-out; a miss falls through to the bare
// source name, trusted to have already been checked semantically.
func (g *generator) resolveVar(source string) string {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if v, ok := g.scopes[i][source]; ok {
			return v
		}
	}
	return source
}

func (g *generator) genFunction(fn *ast.FuncDecl) *Function {
	g.pushScope()
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = g.declareVar(p.Name)
	}
	g.genBlock(fn.Body)
	g.popScope()

	return &Function{Name: fn.Name, Params: params, Instrs: g.instrs, Temps: g.temps, Locals: map[string]string{}}
}

func (g *generator) genMain(stmts []ast.Stmt) *Function {
	g.pushScope()
	g.genBlock(stmts)
	g.popScope()
	return &Function{Name: MainFunctionName, Instrs: g.instrs, Temps: g.temps, Locals: map[string]string{}}
}

func (g *generator) genBlock(stmts []ast.Stmt) {
	for _, s := range stmts {
		g.genStmt(s)
	}
}

func (g *generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		internal := g.declareVar(n.Name)
		if n.Init != nil {
			v := g.genValue(n.Init)
			g.emit("copy", v, "", internal)
		}
	case *ast.Assign:
		g.genAssign(n)
	case *ast.If:
		g.genIf(n)
	case *ast.While:
		g.genWhile(n)
	case *ast.For:
		g.genFor(n)
	case *ast.DoWhile:
		g.genDoWhile(n)
	case *ast.Switch:
		g.genSwitch(n)
	case *ast.Break:
		top := g.control[len(g.control)-1]
		g.emit("goto", top.breakLabel, "", "")
	case *ast.Continue:
		g.emit("goto", g.continueTarget(), "", "")
	case *ast.Print:
		if str, ok := n.Value.(*ast.StringLit); ok {
			g.emit("print", strconv.Quote(str.Value), "string", "")
		} else {
			v := g.genValue(n.Value)
			g.emit("print", v, "int", "")
		}
	case *ast.Return:
		if n.Value == nil {
			g.emit("return", "0", "", "")
		} else {
			v := g.genValue(n.Value)
			g.emit("return", v, "", "")
		}
	case *ast.ExprStmt:
		g.genValue(n.X)
	case *ast.Block:
		g.pushScope()
		g.genBlock(n.Stmts)
		g.popScope()
	}
}

// continueTarget searches the control stack from the top for the
// first frame that handles continue (spec §4.9's rule, reused here:
// switch pushes an empty continueLabel so continue passes through it
// to the enclosing loop).
func (g *generator) continueTarget() string {
	for i := len(g.control) - 1; i >= 0; i-- {
		if g.control[i].continueLabel != "" {
			return g.control[i].continueLabel
		}
	}
	return ""
}

// genAssign lowers an identifier-target assignment to a copy.
// Indexed and member-target assignments are not lowered by this
// component (spec §4.5): the backends read those directly from the AST.
func (g *generator) genAssign(n *ast.Assign) {
	ident, ok := n.Target.(*ast.Ident)
	if !ok {
		return
	}
	v := g.genValue(n.Value)
	g.emit("copy", v, "", g.resolveVar(ident.Name))
}

func (g *generator) genIf(n *ast.If) {
	thenL := g.newLabel()
	elseL := g.newLabel()

	if n.Else == nil {
		g.genCondJump(n.Cond, thenL, elseL)
		g.emit("label", thenL, "", "")
		g.pushScope()
		g.genBlock(n.Then)
		g.popScope()
		g.emit("label", elseL, "", "")
		return
	}

	endL := g.newLabel()
	g.genCondJump(n.Cond, thenL, elseL)
	g.emit("label", thenL, "", "")
	g.pushScope()
	g.genBlock(n.Then)
	g.popScope()
	g.emit("goto", endL, "", "")
	g.emit("label", elseL, "", "")
	g.pushScope()
	g.genBlock(n.Else)
	g.popScope()
	g.emit("label", endL, "", "")
}

func (g *generator) genWhile(n *ast.While) {
	checkL := g.newLabel()
	bodyL := g.newLabel()
	endL := g.newLabel()

	g.emit("label", checkL, "", "")
	g.genCondJump(n.Cond, bodyL, endL)
	g.emit("label", bodyL, "", "")
	g.control = append(g.control, controlFrame{breakLabel: endL, continueLabel: checkL})
	g.pushScope()
	g.genBlock(n.Body)
	g.popScope()
	g.control = g.control[:len(g.control)-1]
	g.emit("goto", checkL, "", "")
	g.emit("label", endL, "", "")
}

// genFor is not given an explicit pattern by spec §4.5 (only if/while
// are); it is lowered analogously, desugaring to init; while(cond){
// body; post } with continue targeting the post step.
func (g *generator) genFor(n *ast.For) {
	g.pushScope()
	if n.Init != nil {
		g.genStmt(n.Init)
	}

	checkL := g.newLabel()
	bodyL := g.newLabel()
	postL := g.newLabel()
	endL := g.newLabel()

	g.emit("label", checkL, "", "")
	if n.Cond != nil {
		g.genCondJump(n.Cond, bodyL, endL)
	} else {
		g.emit("goto", bodyL, "", "")
	}
	g.emit("label", bodyL, "", "")
	g.control = append(g.control, controlFrame{breakLabel: endL, continueLabel: postL})
	g.genBlock(n.Body)
	g.control = g.control[:len(g.control)-1]
	g.emit("label", postL, "", "")
	if n.Post != nil {
		g.genStmt(n.Post)
	}
	g.emit("goto", checkL, "", "")
	g.emit("label", endL, "", "")
	g.popScope()
}

func (g *generator) genDoWhile(n *ast.DoWhile) {
	bodyL := g.newLabel()
	condL := g.newLabel()
	endL := g.newLabel()

	g.emit("label", bodyL, "", "")
	g.control = append(g.control, controlFrame{breakLabel: endL, continueLabel: condL})
	g.pushScope()
	g.genBlock(n.Body)
	g.popScope()
	g.control = g.control[:len(g.control)-1]
	g.emit("label", condL, "", "")
	g.genCondJump(n.Cond, bodyL, endL)
	g.emit("label", endL, "", "")
}

// genSwitch lowers to a chain of equality comparisons against each
// constant case label, followed by contiguous case bodies (so a case
// without a break falls through into the next, C-style); spec §4.5
// gives no explicit switch pattern, so this mirrors the control-stack
// discipline spec §4.9 specifies for the stack backend.
func (g *generator) genSwitch(n *ast.Switch) {
	cond := g.genValue(n.Cond)
	endL := g.newLabel()

	caseLabels := make([]string, len(n.Cases))
	for i := range n.Cases {
		caseLabels[i] = g.newLabel()
	}
	defaultL := endL
	if n.Default != nil {
		defaultL = g.newLabel()
	}

	for i, c := range n.Cases {
		lit := caseLiteral(c.Label)
		eqT := g.newTemp()
		g.emit("eq", cond, lit, eqT)
		g.emit("ifnz", eqT, caseLabels[i], "")
	}
	g.emit("goto", defaultL, "", "")

	for i, c := range n.Cases {
		g.emit("label", caseLabels[i], "", "")
		g.control = append(g.control, controlFrame{breakLabel: endL})
		g.pushScope()
		g.genBlock(c.Body)
		g.popScope()
		g.control = g.control[:len(g.control)-1]
	}
	if n.Default != nil {
		g.emit("label", defaultL, "", "")
		g.control = append(g.control, controlFrame{breakLabel: endL})
		g.pushScope()
		g.genBlock(n.Default)
		g.popScope()
		g.control = g.control[:len(g.control)-1]
	}
	g.emit("label", endL, "", "")
}

// caseLiteral renders a switch-case label's already-validated
// constant value (spec §4.4 guarantees EvalConst succeeds here).
func caseLiteral(e ast.Expr) string {
	cv, ok := sema.EvalConst(e)
	if !ok {
		return "0"
	}
	iv, _ := cv.AsInt()
	return strconv.FormatInt(iv, 10)
}

// genValue evaluates e to a reference (a temp or a literal), emitting
// whatever instructions are needed; &&, ||, and a value-position !
// go through the short-circuit triple-label pattern of spec §4.5.
func (g *generator) genValue(e ast.Expr) string {
	switch n := e.(type) {
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
		return strconv.Quote(n.Value)
	case *ast.Ident:
		return g.resolveVar(n.Name)
	case *ast.Unary:
		if n.Op == "!" {
			return g.genBoolValue(n)
		}
		v := g.genValue(n.Expr)
		t := g.newTemp()
		g.emit("neg", v, "", t)
		return t
	case *ast.Binary:
		if n.Op == "&&" || n.Op == "||" {
			return g.genBoolValue(n)
		}
		l := g.genValue(n.Left)
		r := g.genValue(n.Right)
		t := g.newTemp()
		g.emit(irBinOp(n.Op), l, r, t)
		return t
	case *ast.Call:
		args := make([]string, len(n.Args))
		for i, arg := range n.Args {
			args[i] = g.genValue(arg)
		}
		for _, a := range args {
			g.emit("param", a, "", "")
		}
		t := g.newTemp()
		g.emit("call", n.Callee, strconv.Itoa(len(args)), t)
		return t
	case *ast.Index:
		b := g.genValue(n.Base)
		i := g.genValue(n.Index)
		t := g.newTemp()
		g.emit("index", b, i, t)
		return t
	case *ast.Member:
		b := g.genValue(n.Base)
		t := g.newTemp()
		g.emit("field."+n.Field, b, "", t)
		return t
	case *ast.Cast:
		v := g.genValue(n.Expr)
		t := g.newTemp()
		g.emit("cast."+n.Type, v, "", t)
		return t
	}
	panic("ir: unhandled expression type")
}

func irBinOp(op string) string {
	switch op {
	case "+":
		return "add"
	case "-":
		return "sub"
	case "*":
		return "mul"
	case "/":
		return "div"
	case "%":
		return "mod"
	case "<":
		return "lt"
	case "<=":
		return "le"
	case ">":
		return "gt"
	case ">=":
		return "ge"
	case "==":
		return "eq"
	case "!=":
		return "ne"
	}
	panic("ir: unknown binary operator " + op)
}

// genBoolValue lowers a boolean-valued &&, ||, or unary ! to a result
// temporary via spec §4.5's triple-label pattern.
func (g *generator) genBoolValue(e ast.Expr) string {
	r := g.newTemp()
	trueL := g.newLabel()
	falseL := g.newLabel()
	endL := g.newLabel()

	g.emit("copy", "0", "", r)
	g.genCondJump(e, trueL, falseL)
	g.emit("label", trueL, "", "")
	g.emit("copy", "1", "", r)
	g.emit("goto", endL, "", "")
	g.emit("label", falseL, "", "")
	g.emit("label", endL, "", "")
	return r
}

// genCondJump lowers e, used in a condition position, to jumps toward
// trueL/falseL, recursively decomposing boolean connectives rather
// than first materializing a value (spec §4.5).
func (g *generator) genCondJump(e ast.Expr, trueL, falseL string) {
	switch n := e.(type) {
	case *ast.BoolLit:
		if n.Value {
			g.emit("goto", trueL, "", "")
		} else {
			g.emit("goto", falseL, "", "")
		}
		return
	case *ast.Unary:
		if n.Op == "!" {
			g.genCondJump(n.Expr, falseL, trueL)
			return
		}
	case *ast.Binary:
		switch n.Op {
		case "&&":
			mid := g.newLabel()
			g.genCondJump(n.Left, mid, falseL)
			g.emit("label", mid, "", "")
			g.genCondJump(n.Right, trueL, falseL)
			return
		case "||":
			mid := g.newLabel()
			g.genCondJump(n.Left, trueL, mid)
			g.emit("label", mid, "", "")
			g.genCondJump(n.Right, trueL, falseL)
			return
		}
	}

	ref := g.genValue(e)
	g.emit("ifnz", ref, trueL, "")
	g.emit("goto", falseL, "", "")
}
