package sema

import (
	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// analyzeBlock type-checks a statement list in the current (already
// pushed) scope; callers that need a fresh lexical scope push/pop
// around the call themselves.
func (a *Analyzer) analyzeBlock(stmts []ast.Stmt) {
	for i, s := range stmts {
		a.analyzeStmt(s)
		if stmtTerminates(s) && i+1 < len(stmts) {
			a.warnf(token.WarnUnreachableCode, stmts[i+1].Pos(), "unreachable code after this point")
			break
		}
	}
}

func (a *Analyzer) analyzeStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		a.analyzeVarDecl(n)
	case *ast.Assign:
		a.analyzeAssign(n)
	case *ast.If:
		a.analyzeIf(n)
	case *ast.While:
		a.analyzeWhile(n)
	case *ast.For:
		a.analyzeFor(n)
	case *ast.DoWhile:
		a.analyzeDoWhile(n)
	case *ast.Switch:
		a.analyzeSwitch(n)
	case *ast.Break:
		if a.loopDepth == 0 && a.switchDep == 0 {
			a.fail(token.CodeBreakOutsideLoop, n.Pos(), "break outside of a loop or switch")
		}
	case *ast.Continue:
		if a.loopDepth == 0 {
			a.fail(token.CodeContinueOutsideLoop, n.Pos(), "continue outside of a loop")
		}
	case *ast.Print:
		pt := a.typeOf(n.Value)
		if !IsNumeric(pt) && pt != ast.Text {
			a.fail(token.CodeTypeMismatch, n.Value.Pos(), "print requires an int, float, bool, or text argument, got %s", pt)
		}
	case *ast.Return:
		a.analyzeReturn(n)
	case *ast.ExprStmt:
		a.typeOf(n.X)
	case *ast.Block:
		a.scopes.push("block")
		a.analyzeBlock(n.Stmts)
		a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	default:
		panic("sema: unhandled statement type")
	}
}

func (a *Analyzer) analyzeVarDecl(n *ast.VarDecl) {
	a.resolveTypeName(n.Type, n.Pos())
	if n.Init != nil {
		if ast.IsArray(n.Type) {
			a.fail(token.CodeArrayInitNotSupp, n.Pos(), "array variable %q may not have an initializer", n.Name)
		}
		it := a.typeOf(n.Init)
		if !IsAssignable(n.Type, it) {
			a.fail(token.CodeTypeMismatch, n.Pos(), "cannot assign %s to variable %q of type %s", it, n.Name, n.Type)
		}
	}
	a.scopes.declare(a, n.Name, n.Type, n.Pos())
}

// analyzeAssign checks the lvalue form and assignability (spec §4.4).
func (a *Analyzer) analyzeAssign(n *ast.Assign) {
	var targetType string
	switch t := n.Target.(type) {
	case *ast.Ident:
		sym := a.scopes.lookup(a, t.Name, t.Pos())
		sym.Used = true
		targetType = sym.Type
	case *ast.Index:
		targetType = a.typeOfIndex(t)
	case *ast.Member:
		targetType = a.typeOfMember(t)
	default:
		a.fail(token.CodeInvalidLValue, n.Pos(), "invalid assignment target")
	}

	vt := a.typeOf(n.Value)
	a.result.ExprTypes[n.Target.ID()] = targetType
	if !IsAssignable(targetType, vt) {
		a.fail(token.CodeTypeMismatch, n.Pos(), "cannot assign %s to target of type %s", vt, targetType)
	}
}

func (a *Analyzer) analyzeIf(n *ast.If) {
	a.checkCondition(n.Cond)
	a.scopes.push("then")
	a.analyzeBlock(n.Then)
	a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	if n.Else != nil {
		a.scopes.push("else")
		a.analyzeBlock(n.Else)
		a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	}
}

func (a *Analyzer) analyzeWhile(n *ast.While) {
	a.checkCondition(n.Cond)
	a.loopDepth++
	a.scopes.push("while")
	a.analyzeBlock(n.Body)
	a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	a.loopDepth--
}

func (a *Analyzer) analyzeFor(n *ast.For) {
	a.scopes.push("for")
	if n.Init != nil {
		a.analyzeStmt(n.Init)
	}
	if n.Cond != nil {
		a.checkCondition(n.Cond)
	}
	a.loopDepth++
	a.analyzeBlock(n.Body)
	if n.Post != nil {
		a.analyzeStmt(n.Post)
	}
	a.loopDepth--
	a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
}

func (a *Analyzer) analyzeDoWhile(n *ast.DoWhile) {
	a.loopDepth++
	a.scopes.push("dowhile")
	a.analyzeBlock(n.Body)
	a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	a.loopDepth--
	a.checkCondition(n.Cond)
}

func (a *Analyzer) analyzeSwitch(n *ast.Switch) {
	ct := a.typeOf(n.Cond)
	if ct != ast.Int && ct != ast.Bool {
		a.fail(token.CodeInvalidCondition, n.Cond.Pos(), "switch condition must be int or bool, got %s", ct)
	}

	a.switchDep++
	seen := map[int64]bool{}
	for _, c := range n.Cases {
		cv, ok := EvalConst(c.Label)
		if !ok {
			a.fail(token.CodeInvalidCaseLabel, c.Label.Pos(), "case label must be a compile-time constant")
		}
		iv, ok := cv.AsInt()
		if !ok {
			a.fail(token.CodeInvalidCaseLabel, c.Label.Pos(), "case label must be an int or bool constant")
		}
		if seen[iv] {
			a.fail(token.CodeDuplicateCase, c.Label.Pos(), "duplicate case label")
		}
		seen[iv] = true

		a.scopes.push("case")
		a.analyzeBlock(c.Body)
		a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	}
	if n.Default != nil {
		a.scopes.push("default")
		a.analyzeBlock(n.Default)
		a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
	}
	a.switchDep--
}

func (a *Analyzer) analyzeReturn(n *ast.Return) {
	if n.Value == nil {
		if a.curRetType != ast.Void {
			a.fail(token.CodeReturnType, n.Pos(), "function %q must return a value of type %s", a.curFunc, a.curRetType)
		}
		return
	}
	if a.curRetType == ast.Void {
		a.fail(token.CodeReturnType, n.Pos(), "function %q returns void and may not return a value", a.curFunc)
	}
	vt := a.typeOf(n.Value)
	if !IsAssignable(a.curRetType, vt) {
		a.fail(token.CodeReturnType, n.Pos(), "function %q must return %s, got %s", a.curFunc, a.curRetType, vt)
	}
}

// checkCondition requires a numeric (int/float/bool) condition, and
// warns if it folds to a compile-time constant (spec §4.4's
// constant_condition).
func (a *Analyzer) checkCondition(e ast.Expr) {
	t := a.typeOf(e)
	if !IsNumeric(t) {
		a.fail(token.CodeInvalidCondition, e.Pos(), "condition must be int, float, or bool, got %s", t)
	}
	if _, ok := EvalConst(e); ok {
		a.warnf(token.WarnConstantCondition, e.Pos(), "condition is always the same value")
	}
}

// stmtTerminates reports whether s unconditionally transfers control
// out of the block it's in: return/break/continue, or an if whose
// both branches terminate (spec §4.4's unreachable-code warning).
func stmtTerminates(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Return, *ast.Break, *ast.Continue:
		return true
	case *ast.If:
		return n.Else != nil && blockTerminates(n.Then) && blockTerminates(n.Else)
	case *ast.Block:
		return blockTerminates(n.Stmts)
	}
	return false
}

// blockTerminates reports whether any statement in stmts unconditionally
// transfers control out of the block (spec §4.4's "terminates control
// flow": return/break/continue, or an if whose both branches terminate).
func blockTerminates(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		if stmtTerminates(s) {
			return true
		}
	}
	return false
}

// blockAlwaysReturns reports whether every path through stmts ends in
// a return (or an exhaustive if/else that does), for the
// missing-return warning. It does not attempt to prove anything about
// loops, switches, or break/continue.
func blockAlwaysReturns(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Return:
			return true
		case *ast.If:
			if n.Else != nil && blockAlwaysReturns(n.Then) && blockAlwaysReturns(n.Else) {
				return true
			}
		case *ast.Block:
			if blockAlwaysReturns(n.Stmts) {
				return true
			}
		}
	}
	return false
}
