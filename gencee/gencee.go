// Package gencee emits a single portable C translation unit from the
// AST and semantic result directly (spec §4.8). It does not consume
// the ir/cfg/optimize pipeline, so a C program is still produced when
// IR generation or optimization degrades (spec §7's graceful-backend
// guarantee) — this mirrors the teacher compiler's Compiler.Output(),
// which walked its own internal instruction form straight to text.
package gencee

import (
	"strings"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/sema"
)

// Generator holds per-compilation state while walking the AST: the
// semantic result (print-format selection, composite layouts) and a
// couple of on-demand builtin flags, the same role the teacher's
// Compiler.constants map played for its PUSH constant pool.
type Generator struct {
	sem          *sema.SemanticResult
	needsReadInt bool
}

// Generate renders prog as one C translation unit.
func Generate(prog *ast.Program, sem *sema.SemanticResult) string {
	g := &Generator{sem: sem}

	var typedefs strings.Builder
	for _, t := range prog.Types {
		typedefs.WriteString(g.genTypedef(t))
	}

	var forward strings.Builder
	for _, fn := range prog.Functions {
		forward.WriteString(g.genForwardDecl(fn))
	}

	var bodies strings.Builder
	for _, fn := range prog.Functions {
		bodies.WriteString(g.genFuncDef(fn))
		bodies.WriteString("\n")
	}
	bodies.WriteString(g.genMain(prog.Stmts))

	var out strings.Builder
	out.WriteString(header())
	out.WriteString(typedefs.String())
	out.WriteString(forward.String())
	out.WriteString("\n")
	if g.needsReadInt {
		out.WriteString(readIntHelper())
	}
	out.WriteString(bodies.String())

	return out.String()
}

func header() string {
	return `#include <stdio.h>
#include <stdlib.h>
#include <string.h>

`
}

// readIntHelper is emitted on demand, the first time input/bata() is
// called anywhere in the program (spec §4.8).
func readIntHelper() string {
	return `static int read_int_helper(void) {
	int v = 0;
	if (scanf("%d", &v) != 1) {
		return 0;
	}
	return v;
}

`
}
