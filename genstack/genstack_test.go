package genstack

import (
	"strings"
	"testing"

	"github.com/skx/source-compiler/parser"
	"github.com/skx/source-compiler/sema"
)

func mustGenerate(t *testing.T, src string) string {
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

func TestGenerateArithmeticAndPrint(t *testing.T) {
	out := mustGenerate(t, `
begin
int x = 1 + 2 * 3;
print(x);
return 0;
end
`)
	if !strings.Contains(out, "FUNC __main__ 0") {
		t.Fatalf("expected a __main__ function block: %s", out)
	}
	if !strings.Contains(out, "ADD") || !strings.Contains(out, "MUL") {
		t.Fatalf("expected ADD and MUL opcodes: %s", out)
	}
	if !strings.Contains(out, "PRINT") {
		t.Fatalf("expected a PRINT opcode: %s", out)
	}
	if !strings.Contains(out, "END") {
		t.Fatalf("expected a trailing END: %s", out)
	}
}

func TestGenerateFunctionUsesParamAndCall(t *testing.T) {
	out := mustGenerate(t, `
function add(int a, int b) -> int {
	return a + b;
}

begin
int total = add(1, 2);
print(total);
return 0;
end
`)
	if !strings.Contains(out, "FUNC add 2") {
		t.Fatalf("expected a FUNC add 2 header: %s", out)
	}
	if !strings.Contains(out, "PARAM a") || !strings.Contains(out, "PARAM b") {
		t.Fatalf("expected PARAM bindings for both parameters: %s", out)
	}
	if !strings.Contains(out, "CALL add 2") {
		t.Fatalf("expected a CALL add 2 at the call site: %s", out)
	}
}

func TestGenerateWhileLoopUsesJZAndBackEdge(t *testing.T) {
	out := mustGenerate(t, `
begin
int i = 0;
while (i < 3) {
	i = i + 1;
}
return 0;
end
`)
	if strings.Count(out, "JZ") != 1 {
		t.Fatalf("expected exactly one JZ guarding the loop, got: %s", out)
	}
	if strings.Count(out, "JMP") != 1 {
		t.Fatalf("expected exactly one JMP closing the back-edge, got: %s", out)
	}
}

func TestGenerateBreakJumpsToLoopEnd(t *testing.T) {
	out := mustGenerate(t, `
begin
int i = 0;
while (i < 10) {
	if (i == 5) {
		break;
	}
	i = i + 1;
}
return 0;
end
`)
	if !strings.Contains(out, "JMP") {
		t.Fatalf("expected break to lower to a JMP, got: %s", out)
	}
	if strings.Contains(out, "TRAP") {
		t.Fatalf("did not expect a TRAP for a break inside a loop: %s", out)
	}
}

func TestGenerateContinueInsideSwitchTargetsEnclosingLoop(t *testing.T) {
	out := mustGenerate(t, `
begin
int i = 0;
while (i < 10) {
	switch (i) {
	case 1:
		continue;
	}
	i = i + 1;
}
return 0;
end
`)
	if strings.Contains(out, "TRAP") {
		t.Fatalf("continue inside a switch nested in a loop should not TRAP: %s", out)
	}
}

func TestGenerateSwitchMaterializesConditionOnce(t *testing.T) {
	out := mustGenerate(t, `
begin
int i = 2;
switch (i) {
case 1:
	print(1);
case 2:
	print(2);
default:
	print(0);
}
return 0;
end
`)
	if strings.Count(out, "STORE _sw1") != 1 {
		t.Fatalf("expected the switch subject stored exactly once, got: %s", out)
	}
	if strings.Count(out, "LOAD _sw1") != 2 {
		t.Fatalf("expected the switch subject loaded once per case, got: %s", out)
	}
}

func TestGenerateIndexAssignmentUsesStorex(t *testing.T) {
	out := mustGenerate(t, `
begin
int a[3];
a[0] = 1;
print(a[0]);
return 0;
end
`)
	if !strings.Contains(out, "STOREX index") {
		t.Fatalf("expected an indexed STOREX, got: %s", out)
	}
	if !strings.Contains(out, "GETINDEX") {
		t.Fatalf("expected a GETINDEX read, got: %s", out)
	}
}

func TestGenerateMemberAssignmentUsesStorexField(t *testing.T) {
	out := mustGenerate(t, `
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
	if !strings.Contains(out, "STOREX field.x") {
		t.Fatalf("expected a field STOREX, got: %s", out)
	}
	if !strings.Contains(out, "GETFIELD x") {
		t.Fatalf("expected a GETFIELD read, got: %s", out)
	}
}

func TestGenerateMaxAndLenBuiltins(t *testing.T) {
	out := mustGenerate(t, `
begin
text s = "hello";
int m = max(3, 4);
int n = len(s);
print(m);
print(n);
return 0;
end
`)
	if !strings.Contains(out, "MAX") {
		t.Fatalf("expected a MAX opcode, got: %s", out)
	}
	if !strings.Contains(out, "LEN") {
		t.Fatalf("expected a LEN opcode, got: %s", out)
	}
}

func TestGenerateInputBuiltin(t *testing.T) {
	out := mustGenerate(t, `
begin
int a = input();
int b = bata();
print(a);
print(b);
return 0;
end
`)
	if strings.Count(out, "INPUT") != 2 {
		t.Fatalf("expected two INPUT opcodes, got: %s", out)
	}
}
