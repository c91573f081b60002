package sema

import (
	"strings"
	"testing"

	"github.com/skx/source-compiler/parser"
	"github.com/skx/source-compiler/token"
)

func mustAnalyze(t *testing.T, src string) *SemanticResult {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	res, err := Analyze(prog)
	if err != nil {
		t.Fatalf("unexpected analysis error: %s", err)
	}
	return res
}

func analyzeErr(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	_, err = Analyze(prog)
	if err == nil {
		t.Fatalf("expected an analysis error, got none")
	}
	return err
}

func TestAnalyzeSimpleMain(t *testing.T) {
	res := mustAnalyze(t, `
begin
int x = 1 + 2;
print(x);
return 0;
end
`)
	locals := res.FuncLocals[MainFunctionName]
	if locals["x"] != "int" {
		t.Fatalf("expected x to be recorded as int local, got %q", locals["x"])
	}
}

func TestAnalyzeUndeclaredVariableSuggestsClosestMatch(t *testing.T) {
	err := analyzeErr(t, `
begin
int counter = 0;
print(countr);
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok {
		t.Fatalf("expected a *token.Error, got %T: %s", err, err)
	}
	if e.Code != token.CodeUndeclaredVariable {
		t.Fatalf("expected undeclared_variable, got %s", e.Code)
	}
	if !strings.Contains(e.Message, "Did you mean `counter`?") {
		t.Fatalf("expected a suggestion of counter, got %q", e.Message)
	}
}

func TestAnalyzeTypeMismatchOnAssignment(t *testing.T) {
	err := analyzeErr(t, `
begin
text s = "hi";
int n = s;
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok {
		t.Fatalf("expected a *token.Error, got %T", err)
	}
	if e.Code != token.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %s", e.Code)
	}
}

func TestAnalyzeRedeclaredVariableInSameScope(t *testing.T) {
	err := analyzeErr(t, `
begin
int x = 1;
int x = 2;
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok || e.Code != token.CodeRedeclaredVariable {
		t.Fatalf("expected redeclared_variable, got %v", err)
	}
}

func TestAnalyzeBreakOutsideLoop(t *testing.T) {
	err := analyzeErr(t, `
begin
break;
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok || e.Code != token.CodeBreakOutsideLoop {
		t.Fatalf("expected break_outside_loop, got %v", err)
	}
}

func TestAnalyzeFunctionCallArityAndReturnType(t *testing.T) {
	res := mustAnalyze(t, `
function add(int a, int b) -> int {
	return a + b;
}

begin
int total = add(1, 2);
print(total);
return 0;
end
`)
	sig, ok := res.Funcs["add"]
	if !ok {
		t.Fatalf("expected add to be registered")
	}
	if sig.ReturnType != "int" || len(sig.ParamTypes) != 2 {
		t.Fatalf("unexpected signature: %+v", sig)
	}
}

func TestAnalyzeArityMismatch(t *testing.T) {
	err := analyzeErr(t, `
function add(int a, int b) -> int {
	return a + b;
}

begin
int total = add(1);
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok || e.Code != token.CodeArityMismatch {
		t.Fatalf("expected arity_mismatch, got %v", err)
	}
}

func TestAnalyzeUnknownBuiltinNotShadowed(t *testing.T) {
	err := analyzeErr(t, `
function max(int a, int b) -> int {
	return a;
}

begin
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok || e.Code != token.CodeInvalidFunction {
		t.Fatalf("expected invalid_function for builtin collision, got %v", err)
	}
}

func TestAnalyzeMissingReturnWarning(t *testing.T) {
	res := mustAnalyze(t, `
function maybe(bool flag) -> int {
	if (flag) {
		return 1;
	}
}

begin
return 0;
end
`)
	found := false
	for _, w := range res.Warnings {
		if w.Code == token.WarnMissingReturn {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a missing_return warning, got %+v", res.Warnings)
	}
}

func TestAnalyzeUnusedVariableWarning(t *testing.T) {
	res := mustAnalyze(t, `
begin
int unused = 1;
return 0;
end
`)
	found := false
	for _, w := range res.Warnings {
		if w.Code == token.WarnUnusedVariable {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unused_variable warning, got %+v", res.Warnings)
	}
}

func TestAnalyzeStructFieldAccess(t *testing.T) {
	res := mustAnalyze(t, `
struct Point {
	int x;
	int y;
}

begin
struct Point p;
p.x = 1;
print(p.x);
return 0;
end
`)
	if _, ok := res.Composites["Point"]; !ok {
		t.Fatalf("expected Point to be registered as a composite")
	}
}

func TestAnalyzeUnknownFieldSuggestsClosestMatch(t *testing.T) {
	err := analyzeErr(t, `
struct Point {
	int x;
	int y;
}

begin
struct Point p;
print(p.xx);
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok {
		t.Fatalf("expected a *token.Error, got %T", err)
	}
	if e.Code != token.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %s", e.Code)
	}
	if !strings.Contains(e.Message, "Did you mean `x`?") {
		t.Fatalf("expected a suggestion of x, got %q", e.Message)
	}
}

func TestAnalyzeSwitchDuplicateCase(t *testing.T) {
	err := analyzeErr(t, `
begin
int x = 1;
switch (x) {
case 1:
	print(x);
case 1:
	print(x);
}
return 0;
end
`)
	e, ok := err.(*token.Error)
	if !ok || e.Code != token.CodeDuplicateCase {
		t.Fatalf("expected duplicate_case, got %v", err)
	}
}
