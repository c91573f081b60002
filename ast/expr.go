package ast

// Ident is a bare identifier reference.
type Ident struct {
	exprBase
	Name string
}

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Value int64
}

// FloatLit is a floating-point literal.
type FloatLit struct {
	exprBase
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	exprBase
	Value bool
}

// StringLit is a string literal (value already has escapes resolved).
type StringLit struct {
	exprBase
	Value string
}

// Unary is a prefix unary expression: "!" or "-".
type Unary struct {
	exprBase
	Op   string
	Expr Expr
}

// Binary is an infix binary expression.
type Binary struct {
	exprBase
	Op          string
	Left, Right Expr
}

// Call is a function-call expression.
type Call struct {
	exprBase
	Callee string
	Args   []Expr
}

// Index is an array- or text-indexing expression: base[index].
type Index struct {
	exprBase
	Base  Expr
	Index Expr
}

// Member is a struct/class field access: base.field.
type Member struct {
	exprBase
	Base  Expr
	Field string
}

// Cast is a primitive-type cast: TYPE(expr).
type Cast struct {
	exprBase
	Type string
	Expr Expr
}

func newExprBase(g *IDGen, pos Pos) exprBase { return exprBase{pos, g.Next()} }

// NewIdent builds an Ident.
func NewIdent(g *IDGen, pos Pos, name string) *Ident {
	return &Ident{newExprBase(g, pos), name}
}

// NewIntLit builds an IntLit.
func NewIntLit(g *IDGen, pos Pos, v int64) *IntLit {
	return &IntLit{newExprBase(g, pos), v}
}

// NewFloatLit builds a FloatLit.
func NewFloatLit(g *IDGen, pos Pos, v float64) *FloatLit {
	return &FloatLit{newExprBase(g, pos), v}
}

// NewBoolLit builds a BoolLit.
func NewBoolLit(g *IDGen, pos Pos, v bool) *BoolLit {
	return &BoolLit{newExprBase(g, pos), v}
}

// NewStringLit builds a StringLit.
func NewStringLit(g *IDGen, pos Pos, v string) *StringLit {
	return &StringLit{newExprBase(g, pos), v}
}

// NewUnary builds a Unary.
func NewUnary(g *IDGen, pos Pos, op string, e Expr) *Unary {
	return &Unary{newExprBase(g, pos), op, e}
}

// NewBinary builds a Binary.
func NewBinary(g *IDGen, pos Pos, op string, l, r Expr) *Binary {
	return &Binary{newExprBase(g, pos), op, l, r}
}

// NewCall builds a Call.
func NewCall(g *IDGen, pos Pos, callee string, args []Expr) *Call {
	return &Call{newExprBase(g, pos), callee, args}
}

// NewIndex builds an Index.
func NewIndex(g *IDGen, pos Pos, base, index Expr) *Index {
	return &Index{newExprBase(g, pos), base, index}
}

// NewMember builds a Member.
func NewMember(g *IDGen, pos Pos, base Expr, field string) *Member {
	return &Member{newExprBase(g, pos), base, field}
}

// NewCast builds a Cast.
func NewCast(g *IDGen, pos Pos, typ string, e Expr) *Cast {
	return &Cast{newExprBase(g, pos), typ, e}
}
