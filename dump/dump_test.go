package dump

import (
	"strings"
	"testing"

	"github.com/skx/source-compiler/ir"
	"github.com/skx/source-compiler/token"
)

func TestPrintDiagnosticWithSourceFrame(t *testing.T) {
	d := token.Diagnostic{
		Code:    token.CodeUndeclaredVariable,
		Message: "undeclared variable `scor`. Did you mean `score`?",
		Line:    2,
		Col:     7,
	}
	source := "int score = 1;\nprint(scor);\n"

	got := PrintDiagnostic("main.src", source, d)
	if !strings.Contains(got, "main.src:2:7 [undeclared_variable]") {
		t.Fatalf("expected path:line:col [code] prefix, got:\n%s", got)
	}
	if !strings.Contains(got, "print(scor);") {
		t.Fatalf("expected the offending source line in the frame, got:\n%s", got)
	}
	if !strings.Contains(got, "      ^") {
		t.Fatalf("expected a caret under column 7, got:\n%s", got)
	}
}

func TestPrintDiagnosticWithoutSource(t *testing.T) {
	d := token.Diagnostic{Code: token.CodeBreakOutsideLoop, Message: "break outside loop", Line: 1, Col: 1}
	got := PrintDiagnostic("", "", d)
	if got != "1:1 [break_outside_loop] break outside loop\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestIRRendersInstructions(t *testing.T) {
	prog := &ir.Program{
		Functions: map[string]*ir.Function{
			"__main__": {
				Name: "__main__",
				Instrs: []ir.Instruction{
					{Op: "copy", Arg1: "1", Result: "x"},
					{Op: "print", Arg1: "x", Arg2: "int"},
					{Op: "return"},
				},
			},
		},
		Order: []string{"__main__"},
	}

	got := IR(prog)
	if !strings.Contains(got, "function __main__():") {
		t.Fatalf("expected a function header, got:\n%s", got)
	}
	if !strings.Contains(got, "x = copy 1") {
		t.Fatalf("expected the copy instruction rendered, got:\n%s", got)
	}
	if !strings.Contains(got, "return") {
		t.Fatalf("expected the return instruction rendered, got:\n%s", got)
	}
}
