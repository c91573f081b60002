package optimize

import (
	"strconv"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/cfg"
	"github.com/skx/source-compiler/ir"
	"github.com/skx/source-compiler/sema"
)

// ConstProp runs forward constant propagation to a fixpoint (spec
// §4.7 pass 2). Per block it tracks a map from variable name to the
// literal it's known to hold; a block's in-state is the meet of its
// predecessors' out-states (a name survives the meet only if every
// predecessor agrees on its value). Constant operands are substituted
// into each instruction before it's inspected, and BIN_OP lit,lit
// folds to a copy. Integer division (and modulus) by zero aborts
// folding for that instruction rather than propagating a bogus value.
func ConstProp(g *cfg.Graph) {
	n := len(g.Blocks)
	if n == 0 {
		return
	}
	inState := make([]map[string]string, n)
	outState := make([]map[string]string, n)
	for i := range g.Blocks {
		inState[i] = map[string]string{}
		outState[i] = map[string]string{}
	}

	changed := true
	for changed {
		changed = false
		for _, b := range g.Blocks {
			newIn := meet(b.Predecessors, outState)
			if !mapsEqual(newIn, inState[b.ID]) {
				inState[b.ID] = newIn
				changed = true
			}

			working := cloneStrMap(newIn)
			newInstrs := make([]ir.Instruction, len(b.Instrs))
			rewrote := false
			for i, ins := range b.Instrs {
				ni := substituteArgs(ins, working)
				if folded, ok := fold(ni); ok {
					ni = folded
				}
				if ni != ins {
					rewrote = true
				}
				newInstrs[i] = ni
				applyConstUpdate(ni, working)
			}
			if rewrote {
				b.Instrs = newInstrs
				changed = true
			}
			if !mapsEqual(working, outState[b.ID]) {
				outState[b.ID] = working
				changed = true
			}
		}
	}
}

func meet(preds []int, outState []map[string]string) map[string]string {
	if len(preds) == 0 {
		return map[string]string{}
	}
	result := map[string]string{}
	first := outState[preds[0]]
	for k, v := range first {
		agree := true
		for _, p := range preds[1:] {
			if pv, ok := outState[p][k]; !ok || pv != v {
				agree = false
				break
			}
		}
		if agree {
			result[k] = v
		}
	}
	return result
}

func substituteArgs(ins ir.Instruction, state map[string]string) ir.Instruction {
	useA1, useA2 := valueArgPositions(ins.Op)
	out := ins
	if useA1 {
		if v, ok := state[ins.Arg1]; ok {
			out.Arg1 = v
		}
	}
	if useA2 {
		if v, ok := state[ins.Arg2]; ok {
			out.Arg2 = v
		}
	}
	return out
}

func applyConstUpdate(ins ir.Instruction, state map[string]string) {
	if ins.Op == "copy" && ins.Result != "" {
		if isNumericLiteral(ins.Arg1) {
			state[ins.Result] = ins.Arg1
		} else {
			delete(state, ins.Result)
		}
		return
	}
	if ins.IsDefining() {
		delete(state, ins.Result)
	}
}

// foldIDGen hands out expression identities for the throwaway AST
// literals folding builds; nothing ever looks one back up, so a
// single shared generator across every fold call is fine.
var foldIDGen ast.IDGen

// fold reduces a BIN lit,lit or neg-lit instruction to a copy of its
// folded literal. Arithmetic goes through sema.EvalConst by building
// the equivalent one-off AST expression, rather than reimplementing
// the operator semantics here, so this pass and the constant
// evaluator used for switch-case keys (spec §4.4) can never drift
// apart (spec §8's constant-propagation soundness property).
func fold(ins ir.Instruction) (ir.Instruction, bool) {
	switch {
	case ins.Op == "neg":
		if v, ok := foldUnary("-", ins.Arg1); ok {
			return ir.Instruction{Op: "copy", Arg1: v, Result: ins.Result}, true
		}
	case isBinaryOp(ins.Op):
		if v, ok := foldBinary(ins.Op, ins.Arg1, ins.Arg2); ok {
			return ir.Instruction{Op: "copy", Arg1: v, Result: ins.Result}, true
		}
	}
	return ins, false
}

func foldUnary(op, a string) (string, bool) {
	lit, ok := literalExpr(a)
	if !ok {
		return "", false
	}
	v, ok := sema.EvalConst(ast.NewUnary(&foldIDGen, ast.Pos{}, op, lit))
	if !ok {
		return "", false
	}
	return constValueLit(v), true
}

func foldBinary(op, a1, a2 string) (string, bool) {
	srcOp, ok := irBinOpToSource(op)
	if !ok {
		return "", false
	}
	left, ok := literalExpr(a1)
	if !ok {
		return "", false
	}
	right, ok := literalExpr(a2)
	if !ok {
		return "", false
	}
	v, ok := sema.EvalConst(ast.NewBinary(&foldIDGen, ast.Pos{}, srcOp, left, right))
	if !ok {
		return "", false
	}
	return constValueLit(v), true
}

// irBinOpToSource maps an IR binary opcode back to the source
// operator spelling sema.EvalConst's ast.Binary.Op expects.
func irBinOpToSource(op string) (string, bool) {
	switch op {
	case "add":
		return "+", true
	case "sub":
		return "-", true
	case "mul":
		return "*", true
	case "div":
		return "/", true
	case "mod":
		return "%", true
	case "lt":
		return "<", true
	case "le":
		return "<=", true
	case "gt":
		return ">", true
	case "ge":
		return ">=", true
	case "eq":
		return "==", true
	case "ne":
		return "!=", true
	}
	return "", false
}

// literalExpr parses an IR operand string back into the ephemeral
// AST literal node sema.EvalConst expects. Operands that are neither
// an int nor a float literal (a variable name, or a string constant)
// are not foldable.
func literalExpr(s string) (ast.Expr, bool) {
	if iv, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ast.NewIntLit(&foldIDGen, ast.Pos{}, iv), true
	}
	if fv, err := strconv.ParseFloat(s, 64); err == nil {
		return ast.NewFloatLit(&foldIDGen, ast.Pos{}, fv), true
	}
	return nil, false
}

func constValueLit(v sema.ConstValue) string {
	switch v.Kind {
	case sema.ConstInt:
		return strconv.FormatInt(v.Int, 10)
	case sema.ConstFloat:
		return formatFloat(v.Float)
	default:
		return boolLit(v.Bool)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func cloneStrMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
