package imports

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModule(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %s", path, err)
	}
	return path
}

func TestResolveMergesDependencyBeforeEntry(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "twice.src", `
function twice(float n) -> float {
    return n * 2.0;
}

begin
end
`)

	entry := writeModule(t, dir, "main.src", `
import "twice";

begin
print(twice(3.5));
return 0;
end
`)

	prog, err := Resolve(entry)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(prog.Functions) != 1 || prog.Functions[0].Name != "twice" {
		t.Fatalf("expected merged twice() function, got %+v", prog.Functions)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected entry's 2 top-level statements preserved, got %d", len(prog.Stmts))
	}
	if len(prog.Imports) != 1 || prog.Imports[0] != "twice" {
		t.Fatalf("expected entry's import list preserved, got %v", prog.Imports)
	}
}

func TestResolveDetectsCircularImport(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "a.src", `
import "b";

begin
end
`)
	entry := writeModule(t, dir, "b.src", `
import "a";

begin
end
`)

	_, err := Resolve(entry)
	if err == nil {
		t.Fatalf("expected a circular import error")
	}
}

func TestResolveRejectsMainInDependency(t *testing.T) {
	dir := t.TempDir()

	writeModule(t, dir, "dep.src", `
begin
return 0;
end
`)
	entry := writeModule(t, dir, "main.src", `
import "dep";

begin
end
`)

	_, err := Resolve(entry)
	if err == nil {
		t.Fatalf("expected module_has_main error")
	}
}

func TestResolveMissingFile(t *testing.T) {
	dir := t.TempDir()
	entry := writeModule(t, dir, "main.src", `
import "nope";

begin
end
`)

	_, err := Resolve(entry)
	if err == nil {
		t.Fatalf("expected a missing-file error")
	}
}
