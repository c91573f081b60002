package gencee

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/ast"
)

// cType maps one of this compiler's type spellings to a C type (spec
// §4.8): int->int, float->double, bool->int, text->char*, void->void,
// composite->struct tag. An array's element type is returned here;
// cDecl is responsible for placing the "[N]" after the variable name,
// the way C's own declarator syntax requires.
func cType(t string) string {
	switch t {
	case ast.Int:
		return "int"
	case ast.Float:
		return "double"
	case ast.Bool:
		return "int"
	case ast.Text:
		return "char *"
	case ast.Void:
		return "void"
	}
	if name, ok := ast.CompositeName(t); ok {
		return "struct " + name
	}
	if elem, _, ok := ast.ArrayElemAndSize(t); ok {
		return cType(elem)
	}
	return "int"
}

// cDecl renders a C variable declaration "TYPE name" for t, handling
// the array form's trailing dimension.
func cDecl(t, name string) string {
	if elem, n, ok := ast.ArrayElemAndSize(t); ok {
		return fmt.Sprintf("%s %s[%d]", cType(elem), name, n)
	}
	return fmt.Sprintf("%s %s", cType(t), name)
}

// genTypedef emits one composite's C struct definition. Both struct
// and class composites map to a C struct (spec §4.8); fields are
// emitted in declaration order, relying on the source convention that
// a composite is declared before any other composite that embeds it.
func (g *Generator) genTypedef(t *ast.TypeDecl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %s {\n", t.Name)
	for _, f := range t.Fields {
		fmt.Fprintf(&b, "\t%s;\n", cDecl(f.Type, f.Name))
	}
	b.WriteString("};\n\n")
	return b.String()
}
