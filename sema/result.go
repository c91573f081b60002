package sema

import "github.com/skx/source-compiler/token"

// MainFunctionName is the reserved pseudo-function name holding the
// top-level statements' scope (spec §3's "VarSymbol... reserved
// identifier, e.g. __main__").
const MainFunctionName = "__main__"

// CompositeType is the resolved {kind, name, ordered field mapping} of
// a struct or class declaration (spec §3).
type CompositeType struct {
	Kind       string // "struct" or "class"
	Name       string
	FieldOrder []string
	FieldTypes map[string]string
}

// FuncSig is a resolved function signature: return type plus ordered
// (name, type) parameters.
type FuncSig struct {
	ReturnType string
	ParamNames []string
	ParamTypes []string
}

// SemanticResult aggregates everything later stages need from semantic
// analysis: signatures, per-function locals, final scope snapshots (for
// the symbol-table dump), collected warnings, the expression-type map
// keyed by ast.Expr.ID(), and the composite-type tables (spec §3).
type SemanticResult struct {
	Funcs      map[string]FuncSig
	FuncLocals map[string]map[string]string
	Scopes     []ScopeSnapshot
	Warnings   []token.Diagnostic
	ExprTypes  map[int]string
	Composites map[string]*CompositeType
}

// TypeOf returns the inferred type recorded for an expression node,
// and whether one was recorded at all.
func (r *SemanticResult) TypeOf(id int) (string, bool) {
	t, ok := r.ExprTypes[id]
	return t, ok
}

func newResult() *SemanticResult {
	return &SemanticResult{
		Funcs:      map[string]FuncSig{},
		FuncLocals: map[string]map[string]string{},
		ExprTypes:  map[int]string{},
		Composites: map[string]*CompositeType{},
	}
}
