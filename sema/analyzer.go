package sema

import (
	"fmt"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// builtins are the reserved call-target names the C backend (spec
// §4.8) and stack backend (spec §4.9) special-case; a struct/class or
// function declared with one of these names is a collision.
var builtins = map[string]bool{
	"input": true, "bata": true, "max": true, "len": true,
}

// Analyzer implements the three-pass semantic analysis of spec §4.4.
// It raises a fatal *token.Error (via panic/recover at the Analyze
// entry point) on the first name/type error; it never recovers
// mid-analysis, unlike the parser.
type Analyzer struct {
	prog       *ast.Program
	result     *SemanticResult
	scopes     *scopeStack
	curFunc    string
	curRetType string
	loopDepth  int
	switchDep  int
	collected  []token.Diagnostic
}

// Analyze runs the three-pass semantic analysis of a merged program
// (spec §4.4) and returns the aggregated result, or the first fatal
// diagnostic encountered.
func Analyze(prog *ast.Program) (res *SemanticResult, err error) {
	a := &Analyzer{prog: prog, result: newResult()}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				res = nil
				return
			}
			panic(r)
		}
	}()

	a.registerComposites()
	a.resolveCompositeFields()
	a.collectFunctionSignatures()

	for _, fn := range prog.Functions {
		a.analyzeFunction(fn)
	}
	a.analyzeMain()

	a.result.Warnings = append(a.result.Warnings, a.collected...)
	return a.result, nil
}

func (a *Analyzer) fail(code string, pos ast.Pos, format string, args ...interface{}) {
	panic(token.NewError(code, fmt.Sprintf(format, args...), pos.Line, pos.Col))
}

func (a *Analyzer) warnf(code string, pos ast.Pos, format string, args ...interface{}) {
	a.collected = append(a.collected, token.Diagnostic{
		Code: code, Message: fmt.Sprintf(format, args...),
		Line: pos.Line, Col: pos.Col, Severity: token.SeverityWarning,
	})
}

// --- pass 1: composite name collection ---------------------------------

func (a *Analyzer) registerComposites() {
	for _, td := range a.prog.Types {
		if ast.IsPrimitive(td.Name) || builtins[td.Name] {
			a.fail(token.CodeUnknownType, td.Pos(), "type name %q collides with a builtin", td.Name)
		}
		if _, exists := a.result.Composites[td.Name]; exists {
			a.fail(token.CodeRedeclaredVariable, td.Pos(), "type %q already declared", td.Name)
		}
		a.result.Composites[td.Name] = &CompositeType{
			Kind: td.Kind, Name: td.Name, FieldTypes: map[string]string{},
		}
	}
}

// --- pass 2: composite field resolution ---------------------------------

func (a *Analyzer) resolveCompositeFields() {
	for _, td := range a.prog.Types {
		ct := a.result.Composites[td.Name]
		seen := map[string]bool{}
		for _, f := range td.Fields {
			if seen[f.Name] {
				a.fail(token.CodeRedeclaredVariable, f.Pos(), "duplicate field %q in %s %s", f.Name, td.Kind, td.Name)
			}
			seen[f.Name] = true
			a.resolveTypeName(f.Type, f.Pos())
			ct.FieldOrder = append(ct.FieldOrder, f.Name)
			ct.FieldTypes[f.Name] = f.Type
		}
	}
}

// resolveTypeName checks that t names a primitive, a previously
// registered composite, or an array of such (spec §4.4 pass 2).
func (a *Analyzer) resolveTypeName(t string, pos ast.Pos) {
	if ast.IsPrimitive(t) {
		return
	}
	if elem, n, ok := ast.ArrayElemAndSize(t); ok {
		if n <= 0 {
			a.fail(token.CodeUnknownType, pos, "array size must be positive")
		}
		a.resolveTypeName(elem, pos)
		return
	}
	if name, ok := ast.CompositeName(t); ok {
		if _, exists := a.result.Composites[name]; !exists {
			a.fail(token.CodeUnknownType, pos, "unknown composite type %q", name)
		}
		return
	}
	a.fail(token.CodeUnknownType, pos, "unknown type %q", t)
}

// --- pass 3: function-signature collection ------------------------------

func (a *Analyzer) collectFunctionSignatures() {
	for _, fn := range a.prog.Functions {
		if ast.IsPrimitive(fn.Name) || builtins[fn.Name] {
			a.fail(token.CodeInvalidFunction, fn.Pos(), "function name %q collides with a builtin", fn.Name)
		}
		if _, exists := a.result.Composites[fn.Name]; exists {
			a.fail(token.CodeInvalidFunction, fn.Pos(), "function name %q collides with a type", fn.Name)
		}
		if _, exists := a.result.Funcs[fn.Name]; exists {
			a.fail(token.CodeInvalidFunction, fn.Pos(), "function %q already declared", fn.Name)
		}

		a.resolveTypeName(fn.ReturnType, fn.Pos())
		sig := FuncSig{ReturnType: fn.ReturnType}

		seen := map[string]bool{}
		for _, p := range fn.Params {
			if seen[p.Name] {
				a.fail(token.CodeInvalidParams, p.Pos(), "duplicate parameter name %q", p.Name)
			}
			seen[p.Name] = true
			a.resolveTypeName(p.Type, p.Pos())
			sig.ParamNames = append(sig.ParamNames, p.Name)
			sig.ParamTypes = append(sig.ParamTypes, p.Type)
		}
		a.result.Funcs[fn.Name] = sig
	}
}

// --- per-function / top-level body analysis -----------------------------

func (a *Analyzer) analyzeFunction(fn *ast.FuncDecl) {
	a.curFunc = fn.Name
	a.curRetType = fn.ReturnType
	a.loopDepth = 0
	a.switchDep = 0
	a.scopes = newScopeStack(fn.Name)

	a.scopes.push("body")
	sig := a.result.Funcs[fn.Name]
	for i, name := range sig.ParamNames {
		a.scopes.declare(a, name, sig.ParamTypes[i], fn.Pos())
		a.scopes.frames[len(a.scopes.frames)-1][name].Used = true // params are never flagged unused
	}

	a.analyzeBlock(fn.Body)

	if fn.ReturnType != ast.Void && !blockAlwaysReturns(fn.Body) {
		a.warnf(token.WarnMissingReturn, fn.Pos(), "function %q does not return on every path", fn.Name)
	}

	a.recordLocals(fn.Name)
	a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
}

func (a *Analyzer) analyzeMain() {
	a.curFunc = MainFunctionName
	a.curRetType = ast.Int
	a.loopDepth = 0
	a.switchDep = 0
	a.scopes = newScopeStack(MainFunctionName)

	a.scopes.push("body")
	a.analyzeBlock(a.prog.Stmts)
	a.recordLocals(MainFunctionName)
	a.result.Scopes = append(a.result.Scopes, a.scopes.pop(a))
}

// recordLocals snapshots every variable declared anywhere in the
// function's (still-open, about-to-pop) scope stack, for IRFunction's
// "set of locals" (spec §3).
func (a *Analyzer) recordLocals(funcName string) {
	locals := map[string]string{}
	for _, frame := range a.scopes.frames {
		for name, sym := range frame {
			locals[name] = sym.Type
		}
	}
	a.result.FuncLocals[funcName] = locals
}
