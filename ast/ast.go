// Package ast defines the tagged-union node set the parser builds and
// every later pass (semantic analysis, IR generation, both backends)
// walks via a type switch.
//
// Declarations, statements and expressions are each their own Go
// interface so a misplaced node (a statement where an expression is
// wanted) is a compile error, not a runtime one; within each interface
// passes dispatch with an exhaustive type switch that panics on an
// unknown variant, so a forgotten case fails loudly instead of silently
// no-oping.
package ast

// Pos is a 1-based line/column span's start. Spans are immutable once
// a node is built (spec §3).
type Pos struct {
	Line int
	Col  int
}

// Node is implemented by every AST node.
type Node interface {
	Pos() Pos
}

// Expr is implemented by every expression node. ID is a stable,
// per-compilation identity used to key the semantic analyzer's
// expression-type map (design note in spec §9) without relying on
// pointer identity, which backends that reconstruct nodes cannot rely on.
type Expr interface {
	Node
	exprNode()
	ID() int
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is implemented by every top-level declaration node.
type Decl interface {
	Node
	declNode()
}

// exprBase is embedded by every Expr to provide Pos/ID.
type exprBase struct {
	pos Pos
	id  int
}

func (e exprBase) Pos() Pos  { return e.pos }
func (e exprBase) ID() int   { return e.id }
func (exprBase) exprNode()   {}

// IDGen hands out unique, stable expression identities within one
// compilation. The parser owns one instance for the whole parse.
type IDGen struct{ next int }

// Next returns the next identity.
func (g *IDGen) Next() int {
	g.next++
	return g.next
}

// Program bundles a module's imports (ordered paths), its merged type
// declarations, its functions, and (for the entry module only) its
// top-level statements.
type Program struct {
	Imports   []string
	Types     []*TypeDecl
	Functions []*FuncDecl
	Stmts     []Stmt
}
