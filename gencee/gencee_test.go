package gencee

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
	if !strings.Contains(out, "int main(void)") {
		t.Fatalf("expected a main(): %s", out)
	}
	if !strings.Contains(out, "%d\\n") {
		t.Fatalf("expected an int print format: %s", out)
	}
}

func TestGenerateTextPrintUsesStringFormat(t *testing.T) {
	out := mustGenerate(t, `
begin
text s = "hi";
print(s);
return 0;
end
`)
	if !strings.Contains(out, `"%s\n"`) {
		t.Fatalf("expected a %%s print format for text, got: %s", out)
	}
}

func TestGenerateFloatPrintUsesGFormat(t *testing.T) {
	out := mustGenerate(t, `
begin
float f = 1.5;
print(f);
return 0;
end
`)
	if !strings.Contains(out, `"%g\n"`) {
		t.Fatalf("expected a %%g print format for float, got: %s", out)
	}
}

func TestGenerateFunctionDefinitionAndForwardDecl(t *testing.T) {
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
	if strings.Count(out, "int add(int a, int b)") < 2 {
		t.Fatalf("expected both a forward declaration and a definition for add: %s", out)
	}
}

func TestGenerateInputBuiltinEmitsHelperOnce(t *testing.T) {
	out := mustGenerate(t, `
begin
int a = input();
int b = bata();
print(a);
print(b);
return 0;
end
`)
	if strings.Count(out, "static int read_int_helper(void)") != 1 {
		t.Fatalf("expected exactly one read_int_helper definition, got: %s", out)
	}
	if strings.Count(out, "read_int_helper()") != 2 {
		t.Fatalf("expected two call sites for read_int_helper, got: %s", out)
	}
}

func TestGenerateMaxBuiltinLowersToTernary(t *testing.T) {
	out := mustGenerate(t, `
begin
int m = max(3, 4);
print(m);
return 0;
end
`)
	if !strings.Contains(out, "?") || !strings.Contains(out, ":") {
		t.Fatalf("expected a ternary for max(), got: %s", out)
	}
}

func TestGenerateLenBuiltinOnText(t *testing.T) {
	out := mustGenerate(t, `
begin
text s = "hello";
int n = len(s);
print(n);
return 0;
end
`)
	if !strings.Contains(out, "strlen(s)") {
		t.Fatalf("expected strlen() for len() on text, got: %s", out)
	}
}

func TestGenerateStructTypedef(t *testing.T) {
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
	if !strings.Contains(out, "struct Point {") {
		t.Fatalf("expected a struct Point typedef, got: %s", out)
	}
	if !strings.Contains(out, "p.x = 1;") {
		t.Fatalf("expected member-assignment to pass through, got: %s", out)
	}
}

func TestGenerateStringLiteralEscaping(t *testing.T) {
	out := mustGenerate(t, `
begin
print("a\tb\nc\\d");
return 0;
end
`)
	if !strings.Contains(out, `\t`) || !strings.Contains(out, `\n`) || !strings.Contains(out, `\\`) {
		t.Fatalf("expected re-escaped string literal, got: %s", out)
	}
}
