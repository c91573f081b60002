package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.src")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %s", path, err)
	}
	return path
}

func TestCompileArithmeticAndPrint(t *testing.T) {
	path := writeSource(t, `
begin
int x = 1 + 2 * 3;
print(x);
return 0;
end
`)

	res, err := New(path).Compile()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(res.CCode, "int main") {
		t.Fatalf("expected generated C to contain a main(), got:\n%s", res.CCode)
	}
	if res.StackCode == "" {
		t.Fatalf("expected non-empty stack output")
	}
	if _, ok := res.Optimized["__main__"]; !ok {
		t.Fatalf("expected an optimized CFG for __main__, got %v", res.Optimized)
	}
}

func TestCompileDuplicateCaseFails(t *testing.T) {
	path := writeSource(t, `
begin
int x = 1;
switch (x) {
    case 1:
        break;
    case 1:
        break;
}
return 0;
end
`)

	_, err := New(path).Compile()
	if err == nil {
		t.Fatalf("expected duplicate_case to fail semantic analysis")
	}
	if !strings.Contains(err.Error(), "duplicate_case") {
		t.Fatalf("expected duplicate_case in error, got %s", err.Error())
	}
}

func TestCompileBreakOutsideLoopFails(t *testing.T) {
	path := writeSource(t, `
begin
break;
end
`)

	_, err := New(path).Compile()
	if err == nil {
		t.Fatalf("expected break_outside_loop to fail semantic analysis")
	}
	if !strings.Contains(err.Error(), "break_outside_loop") {
		t.Fatalf("expected break_outside_loop in error, got %s", err.Error())
	}
}

func TestCompileLintLegacyKeywords(t *testing.T) {
	path := writeSource(t, `
start_program
return 0;
end_program
`)

	c := New(path)
	c.SetOptions(Options{LintLegacyKeywords: true})
	res, err := c.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(res.Lint) != 2 {
		t.Fatalf("expected 2 legacy_keyword issues (start_program, end_program), got %d: %v", len(res.Lint), res.Lint)
	}
}
