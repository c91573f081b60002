package ast

// declBase is embedded by every Decl to provide Pos.
type declBase struct{ pos Pos }

func (d declBase) Pos() Pos { return d.pos }
func (declBase) declNode()  {}

// Field is a single struct/class field declaration.
type Field struct {
	declBase
	Name string
	Type string
}

// TypeDecl declares a struct or class composite type.
type TypeDecl struct {
	declBase
	Kind   string // "struct" or "class"
	Name   string
	Fields []*Field
}

// Param is a single function parameter.
type Param struct {
	declBase
	Name string
	Type string
}

// FuncDecl declares a function: signature plus body.
type FuncDecl struct {
	declBase
	Name       string
	Params     []*Param
	ReturnType string
	Body       []Stmt
}

// NewField builds a Field at pos.
func NewField(pos Pos, name, typ string) *Field {
	return &Field{declBase{pos}, name, typ}
}

// NewTypeDecl builds a TypeDecl at pos.
func NewTypeDecl(pos Pos, kind, name string, fields []*Field) *TypeDecl {
	return &TypeDecl{declBase{pos}, kind, name, fields}
}

// NewParam builds a Param at pos.
func NewParam(pos Pos, name, typ string) *Param {
	return &Param{declBase{pos}, name, typ}
}

// NewFuncDecl builds a FuncDecl at pos.
func NewFuncDecl(pos Pos, name string, params []*Param, ret string, body []Stmt) *FuncDecl {
	return &FuncDecl{declBase{pos}, name, params, ret, body}
}
