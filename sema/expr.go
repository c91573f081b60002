package sema

import (
	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// typeOf infers e's type, records it in the expression-type map keyed
// by e.ID() (spec §9), and returns it. Every Expr variant is handled
// by an exhaustive type switch; an unrecognized variant is a bug in
// the parser, not a user error, so it panics rather than failing.
func (a *Analyzer) typeOf(e ast.Expr) string {
	t := a.inferType(e)
	a.result.ExprTypes[e.ID()] = t
	return t
}

func (a *Analyzer) inferType(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.Int
	case *ast.FloatLit:
		return ast.Float
	case *ast.BoolLit:
		return ast.Bool
	case *ast.StringLit:
		return ast.Text
	case *ast.Ident:
		sym := a.scopes.lookup(a, n.Name, n.Pos())
		return sym.Type
	case *ast.Unary:
		return a.typeOfUnary(n)
	case *ast.Binary:
		return a.typeOfBinary(n)
	case *ast.Call:
		return a.typeOfCall(n)
	case *ast.Index:
		return a.typeOfIndex(n)
	case *ast.Member:
		return a.typeOfMember(n)
	case *ast.Cast:
		return a.typeOfCast(n)
	}
	panic("sema: unhandled expression type")
}

func (a *Analyzer) typeOfUnary(n *ast.Unary) string {
	t := a.typeOf(n.Expr)
	switch n.Op {
	case "-":
		if !IsNumeric(t) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "unary - requires a numeric operand, got %s", t)
		}
		return t
	case "!":
		if !IsNumeric(t) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "unary ! requires a numeric-or-bool operand, got %s", t)
		}
		return ast.Bool
	}
	panic("sema: unknown unary operator " + n.Op)
}

func (a *Analyzer) typeOfBinary(n *ast.Binary) string {
	lt := a.typeOf(n.Left)
	rt := a.typeOf(n.Right)

	switch n.Op {
	case "+":
		if lt == ast.Text && rt == ast.Text {
			return ast.Text
		}
		fallthrough
	case "-", "*", "/":
		if !IsNumeric(lt) || !IsNumeric(rt) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "operator %s requires numeric operands, got %s and %s", n.Op, lt, rt)
		}
		return NumericResult(lt, rt)
	case "%":
		if lt != ast.Int || rt != ast.Int {
			a.fail(token.CodeTypeMismatch, n.Pos(), "operator %% requires int operands, got %s and %s", lt, rt)
		}
		return ast.Int
	case "<", "<=", ">", ">=":
		if !IsNumeric(lt) || !IsNumeric(rt) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "operator %s requires numeric operands, got %s and %s", n.Op, lt, rt)
		}
		return ast.Bool
	case "==", "!=":
		if !IsAssignable(lt, rt) && !IsAssignable(rt, lt) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "cannot compare %s and %s", lt, rt)
		}
		return ast.Bool
	case "&&", "||":
		if !IsNumeric(lt) || !IsNumeric(rt) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "operator %s requires int, float, or bool operands, got %s and %s", n.Op, lt, rt)
		}
		return ast.Bool
	}
	panic("sema: unknown binary operator " + n.Op)
}

func (a *Analyzer) typeOfCast(n *ast.Cast) string {
	st := a.typeOf(n.Expr)
	if !IsCastable(st, n.Type) {
		a.fail(token.CodeTypeMismatch, n.Pos(), "cannot cast %s to %s", st, n.Type)
	}
	return n.Type
}

func (a *Analyzer) typeOfIndex(n *ast.Index) string {
	bt := a.typeOf(n.Base)
	it := a.typeOf(n.Index)
	if !IsNumeric(it) {
		a.fail(token.CodeTypeMismatch, n.Index.Pos(), "array index must be numeric or bool, got %s", it)
	}
	if elem, _, ok := ast.ArrayElemAndSize(bt); ok {
		return elem
	}
	if bt == ast.Text {
		return ast.Text
	}
	a.fail(token.CodeTypeMismatch, n.Pos(), "cannot index a value of type %s", bt)
	return ""
}

func (a *Analyzer) typeOfMember(n *ast.Member) string {
	bt := a.typeOf(n.Base)
	name, ok := ast.CompositeName(bt)
	if !ok {
		a.fail(token.CodeTypeMismatch, n.Pos(), "cannot access field %q on non-composite type %s", n.Field, bt)
	}
	ct, exists := a.result.Composites[name]
	if !exists {
		a.fail(token.CodeUnknownType, n.Pos(), "unknown composite type %q", name)
	}
	ft, ok := ct.FieldTypes[n.Field]
	if !ok {
		msg := "has no field %q"
		if s := closestMatch(n.Field, ct.FieldOrder); s != "" {
			a.fail(token.CodeTypeMismatch, n.Pos(), "%s %s "+msg+". Did you mean `%s`?", ct.Kind, ct.Name, n.Field, s)
		}
		a.fail(token.CodeTypeMismatch, n.Pos(), "%s %s "+msg, ct.Kind, ct.Name, n.Field)
	}
	return ft
}

// typeOfCall resolves a call against the builtin table first, then
// against user-declared functions (spec §4.4's "resolved against
// builtins before user functions, so a user function may never shadow
// one").
func (a *Analyzer) typeOfCall(n *ast.Call) string {
	if t, ok := a.typeOfBuiltinCall(n); ok {
		return t
	}

	sig, exists := a.result.Funcs[n.Callee]
	if !exists {
		msg := "undeclared function %q"
		names := make([]string, 0, len(a.result.Funcs))
		for name := range a.result.Funcs {
			names = append(names, name)
		}
		if s := closestMatch(n.Callee, names); s != "" {
			a.fail(token.CodeUndeclaredFunction, n.Pos(), msg+". Did you mean `%s`?", n.Callee, s)
		}
		a.fail(token.CodeUndeclaredFunction, n.Pos(), msg, n.Callee)
	}

	if len(n.Args) != len(sig.ParamTypes) {
		a.fail(token.CodeArityMismatch, n.Pos(), "function %q expects %d argument(s), got %d", n.Callee, len(sig.ParamTypes), len(n.Args))
	}
	for i, arg := range n.Args {
		at := a.typeOf(arg)
		if !IsAssignable(sig.ParamTypes[i], at) {
			a.fail(token.CodeTypeMismatch, arg.Pos(), "argument %d of %q: cannot use %s as %s", i+1, n.Callee, at, sig.ParamTypes[i])
		}
	}
	return sig.ReturnType
}

// typeOfBuiltinCall handles the reserved call targets the backends
// special-case (spec §4.8/§4.9): input/bata (read an int from stdin),
// max (two-argument numeric maximum), len (array or text length).
func (a *Analyzer) typeOfBuiltinCall(n *ast.Call) (string, bool) {
	switch n.Callee {
	case "input", "bata":
		if len(n.Args) != 0 {
			a.fail(token.CodeArityMismatch, n.Pos(), "%q takes no arguments", n.Callee)
		}
		return ast.Int, true

	case "max":
		if len(n.Args) != 2 {
			a.fail(token.CodeArityMismatch, n.Pos(), "max expects 2 arguments, got %d", len(n.Args))
		}
		lt := a.typeOf(n.Args[0])
		rt := a.typeOf(n.Args[1])
		if !IsNumeric(lt) || !IsNumeric(rt) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "max requires numeric arguments, got %s and %s", lt, rt)
		}
		return NumericResult(lt, rt), true

	case "len":
		if len(n.Args) != 1 {
			a.fail(token.CodeArityMismatch, n.Pos(), "len expects 1 argument, got %d", len(n.Args))
		}
		at := a.typeOf(n.Args[0])
		if at != ast.Text && !ast.IsArray(at) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "len requires an array or text argument, got %s", at)
		}
		return ast.Int, true
	}
	return "", false
}
