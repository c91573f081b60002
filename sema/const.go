package sema

import "github.com/skx/source-compiler/ast"

// ConstKind tags the payload a ConstValue carries.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
)

// ConstValue is the result of folding a compile-time-constant expression.
type ConstValue struct {
	Kind  ConstKind
	Int   int64
	Float float64
	Bool  bool
}

// AsInt narrows a ConstValue to the integer key spec §4.4 requires for
// switch-case labels: a bool narrows to 0/1, an int passes through,
// and ok is false for a float (case labels must be int/bool).
func (c ConstValue) AsInt() (int64, bool) {
	switch c.Kind {
	case ConstInt:
		return c.Int, true
	case ConstBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func intConst(v int64) ConstValue   { return ConstValue{Kind: ConstInt, Int: v} }
func floatConst(v float64) ConstValue { return ConstValue{Kind: ConstFloat, Float: v} }
func boolConst(v bool) ConstValue   { return ConstValue{Kind: ConstBool, Bool: v} }

func (c ConstValue) asFloat() float64 {
	switch c.Kind {
	case ConstFloat:
		return c.Float
	case ConstInt:
		return float64(c.Int)
	default:
		if c.Bool {
			return 1
		}
		return 0
	}
}

func (c ConstValue) isFloaty() bool { return c.Kind == ConstFloat }

// EvalConst folds a compile-time-constant expression: literals,
// arithmetic, comparisons, logical operators, unary operators, and
// casts. It returns (_, false) for anything non-constant (an
// identifier, a call, an index/member access), on integer division or
// modulus by zero, and on string operands - matching spec §4.4's
// constant evaluator used both for switch-case keys and for the
// constant_condition warning, and shared with the optimizer's constant
// propagation pass (spec §4.7) so the two stay in the soundness
// relationship spec §8 requires.
func EvalConst(e ast.Expr) (ConstValue, bool) {
	switch n := e.(type) {
	case *ast.IntLit:
		return intConst(n.Value), true
	case *ast.FloatLit:
		return floatConst(n.Value), true
	case *ast.BoolLit:
		return boolConst(n.Value), true
	case *ast.StringLit:
		return ConstValue{}, false

	case *ast.Unary:
		v, ok := EvalConst(n.Expr)
		if !ok {
			return ConstValue{}, false
		}
		switch n.Op {
		case "-":
			if v.isFloaty() {
				return floatConst(-v.asFloat()), true
			}
			iv, _ := v.AsInt()
			return intConst(-iv), true
		case "!":
			return boolConst(!truthy(v)), true
		}
		return ConstValue{}, false

	case *ast.Cast:
		v, ok := EvalConst(n.Expr)
		if !ok {
			return ConstValue{}, false
		}
		switch n.Type {
		case ast.Int:
			iv, _ := v.AsInt()
			if v.isFloaty() {
				iv = int64(v.Float)
			}
			return intConst(iv), true
		case ast.Float:
			return floatConst(v.asFloat()), true
		case ast.Bool:
			return boolConst(truthy(v)), true
		}
		return ConstValue{}, false

	case *ast.Binary:
		return evalConstBinary(n)
	}

	return ConstValue{}, false
}

func truthy(v ConstValue) bool {
	switch v.Kind {
	case ConstBool:
		return v.Bool
	case ConstInt:
		return v.Int != 0
	default:
		return v.Float != 0
	}
}

func evalConstBinary(n *ast.Binary) (ConstValue, bool) {
	l, ok := EvalConst(n.Left)
	if !ok {
		return ConstValue{}, false
	}
	r, ok := EvalConst(n.Right)
	if !ok {
		return ConstValue{}, false
	}

	switch n.Op {
	case "+", "-", "*", "/":
		return evalArith(n.Op, l, r)
	case "%":
		if l.isFloaty() || r.isFloaty() {
			return ConstValue{}, false
		}
		li, _ := l.AsInt()
		ri, _ := r.AsInt()
		if ri == 0 {
			return ConstValue{}, false
		}
		return intConst(li % ri), true
	case "<", "<=", ">", ">=":
		return boolConst(compare(n.Op, l, r)), true
	case "==", "!=":
		eq := l.asFloat() == r.asFloat()
		if n.Op == "!=" {
			eq = !eq
		}
		return boolConst(eq), true
	case "&&":
		return boolConst(truthy(l) && truthy(r)), true
	case "||":
		return boolConst(truthy(l) || truthy(r)), true
	}
	return ConstValue{}, false
}

func evalArith(op string, l, r ConstValue) (ConstValue, bool) {
	if l.isFloaty() || r.isFloaty() {
		lf, rf := l.asFloat(), r.asFloat()
		switch op {
		case "+":
			return floatConst(lf + rf), true
		case "-":
			return floatConst(lf - rf), true
		case "*":
			return floatConst(lf * rf), true
		case "/":
			if rf == 0 {
				return ConstValue{}, false
			}
			return floatConst(lf / rf), true
		}
	}
	li, _ := l.AsInt()
	ri, _ := r.AsInt()
	switch op {
	case "+":
		return intConst(li + ri), true
	case "-":
		return intConst(li - ri), true
	case "*":
		return intConst(li * ri), true
	case "/":
		if ri == 0 {
			return ConstValue{}, false
		}
		return intConst(li / ri), true // truncated-towards-zero, per Go's integer division
	}
	return ConstValue{}, false
}

func compare(op string, l, r ConstValue) bool {
	a, b := l.asFloat(), r.asFloat()
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}
