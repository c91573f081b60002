package ir

import (
	"testing"

	"github.com/skx/source-compiler/parser"
	"github.com/skx/source-compiler/sema"
)

func mustGen(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	res, err := sema.Analyze(prog)
	if err != nil {
		t.Fatalf("analyze error: %s", err)
	}
	return Generate(prog, res)
}

func opsOf(fn *Function) []string {
	ops := make([]string, len(fn.Instrs))
	for i, ins := range fn.Instrs {
		ops[i] = ins.Op
	}
	return ops
}

func TestGenerateVarDeclAndPrint(t *testing.T) {
	p := mustGen(t, `
begin
int x = 1 + 2;
print(x);
return 0;
end
`)
	fn := p.Functions[MainFunctionName]
	if fn == nil {
		t.Fatalf("expected a __main__ function")
	}
	foundAdd, foundPrint, foundReturn := false, false, false
	for _, ins := range fn.Instrs {
		switch ins.Op {
		case "add":
			foundAdd = true
		case "print":
			foundPrint = true
			if ins.Arg2 != "int" {
				t.Fatalf("expected print arg2 'int', got %q", ins.Arg2)
			}
		case "return":
			foundReturn = true
		}
	}
	if !foundAdd || !foundPrint || !foundReturn {
		t.Fatalf("missing expected ops: add=%v print=%v return=%v", foundAdd, foundPrint, foundReturn)
	}
}

func TestGenerateRenamesShadowedDeclarations(t *testing.T) {
	p := mustGen(t, `
begin
int x = 1;
if (true) {
	int x = 2;
	print(x);
}
print(x);
return 0;
end
`)
	fn := p.Functions[MainFunctionName]
	seen := map[string]bool{}
	for _, ins := range fn.Instrs {
		if ins.Op == "copy" && ins.Result != "" {
			seen[ins.Result] = true
		}
	}
	if !seen["x"] {
		t.Fatalf("expected first declaration to keep name x, got %+v", seen)
	}
	if !seen["x__2"] {
		t.Fatalf("expected shadowed declaration to rename to x__2, got %+v", seen)
	}
}

func TestGenerateWhileLowersToLabelsAndJumps(t *testing.T) {
	p := mustGen(t, `
begin
int i = 0;
while (i < 3) {
	print(i);
	i = i + 1;
}
return 0;
end
`)
	fn := p.Functions[MainFunctionName]
	wantAny := map[string]bool{"label": false, "ifnz": false, "goto": false, "lt": false}
	for _, ins := range fn.Instrs {
		if _, ok := wantAny[ins.Op]; ok {
			wantAny[ins.Op] = true
		}
	}
	for op, found := range wantAny {
		if !found {
			t.Fatalf("expected op %q to appear in while lowering", op)
		}
	}
}

func TestGenerateShortCircuitAnd(t *testing.T) {
	p := mustGen(t, `
begin
bool a = true;
bool b = false;
bool c = a && b;
print(c);
return 0;
end
`)
	fn := p.Functions[MainFunctionName]
	copies := 0
	for _, ins := range fn.Instrs {
		if ins.Op == "copy" && (ins.Arg1 == "0" || ins.Arg1 == "1") {
			copies++
		}
	}
	if copies == 0 {
		t.Fatalf("expected the triple-label copy-0/copy-1 pattern to appear")
	}
}

func TestGenerateCallEmitsParamsAndCall(t *testing.T) {
	p := mustGen(t, `
function add(int a, int b) -> int {
	return a + b;
}

begin
int total = add(1, 2);
print(total);
return 0;
end
`)
	fn := p.Functions["add"]
	if fn == nil {
		t.Fatalf("expected an add function")
	}
	main := p.Functions[MainFunctionName]
	paramCount, callCount := 0, 0
	for _, ins := range main.Instrs {
		if ins.Op == "param" {
			paramCount++
		}
		if ins.Op == "call" {
			callCount++
			if ins.Arg1 != "add" || ins.Arg2 != "2" {
				t.Fatalf("unexpected call instruction: %+v", ins)
			}
		}
	}
	if paramCount != 2 || callCount != 1 {
		t.Fatalf("expected 2 params and 1 call, got %d/%d", paramCount, callCount)
	}
}

func TestGenerateBreakTargetsLoopEnd(t *testing.T) {
	p := mustGen(t, `
begin
while (true) {
	break;
}
return 0;
end
`)
	fn := p.Functions[MainFunctionName]
	found := false
	for _, ins := range fn.Instrs {
		if ins.Op == "goto" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected break to lower to a goto")
	}
}
