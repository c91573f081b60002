package parser

import (
	"testing"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected parse error: %s", err)
	}
	return prog
}

func TestParseArithmeticAndPrint(t *testing.T) {
	prog := mustParse(t, `
begin
int x = 1 + 2 * 3;
print(x);
return 0;
end
`)
	if len(prog.Stmts) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d", len(prog.Stmts))
	}
	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected a VarDecl, got %T", prog.Stmts[0])
	}
	if vd.Name != "x" || vd.Type != ast.Int {
		t.Fatalf("unexpected var decl: %+v", vd)
	}
}

func TestParseImportsTypesFunctions(t *testing.T) {
	prog := mustParse(t, `
import "other";

struct Point {
    int x;
    int y;
}

function twice(float n) -> float {
    return n * 2.0;
}

begin
print(twice(3.5));
end
`)
	if len(prog.Imports) != 1 || prog.Imports[0] != "other" {
		t.Fatalf("unexpected imports: %+v", prog.Imports)
	}
	if len(prog.Types) != 1 || prog.Types[0].Name != "Point" || len(prog.Types[0].Fields) != 2 {
		t.Fatalf("unexpected types: %+v", prog.Types)
	}
	if len(prog.Functions) != 1 || prog.Functions[0].Name != "twice" {
		t.Fatalf("unexpected functions: %+v", prog.Functions)
	}
}

func TestParseKnownCompositeVarDecl(t *testing.T) {
	prog := mustParse(t, `
struct Point {
    int x;
}

begin
Point p;
end
`)
	vd, ok := prog.Stmts[0].(*ast.VarDecl)
	if !ok || vd.Type != "struct Point" {
		t.Fatalf("expected Point var decl, got %#v", prog.Stmts[0])
	}
}

func TestParseControlFlow(t *testing.T) {
	prog := mustParse(t, `
begin
int i = 0;
while (i < 10) {
    if (i == 5) {
        break;
    } else {
        i = i + 1;
    }
}
for (int j = 0; j < 3; j++) {
    print(j);
}
do {
    i -= 1;
} while (i > 0);
switch (i) {
    case 0:
        print(0);
    case 1:
        print(1);
    default:
        print(-1);
}
end
`)
	if len(prog.Stmts) != 5 {
		t.Fatalf("expected 5 top-level statements, got %d: %#v", len(prog.Stmts), prog.Stmts)
	}
	sw, ok := prog.Stmts[4].(*ast.Switch)
	if !ok || len(sw.Cases) != 2 || sw.Default == nil {
		t.Fatalf("unexpected switch: %#v", prog.Stmts[4])
	}
}

func TestDesugarCompoundAndIncDec(t *testing.T) {
	prog := mustParse(t, `
begin
int i = 0;
i += 1;
i++;
i--;
end
`)
	for _, idx := range []int{1, 2, 3} {
		as, ok := prog.Stmts[idx].(*ast.Assign)
		if !ok {
			t.Fatalf("stmt %d: expected Assign, got %T", idx, prog.Stmts[idx])
		}
		if _, ok := as.Value.(*ast.Binary); !ok {
			t.Fatalf("stmt %d: expected desugared Binary value, got %T", idx, as.Value)
		}
	}
}

func TestMultipleSyntaxErrorsAggregate(t *testing.T) {
	_, err := Parse(`
begin
int x = 1
int y = 2
int z = +;
end
`)
	if err == nil {
		t.Fatalf("expected an aggregate parse error")
	}
	agg, ok := err.(*token.AggregateError)
	if !ok {
		t.Fatalf("expected *token.AggregateError, got %T: %s", err, err)
	}
	if len(agg.Diagnostics) < 2 {
		t.Fatalf("expected at least 2 diagnostics, got %d: %+v", len(agg.Diagnostics), agg.Diagnostics)
	}
}

func TestCastExpression(t *testing.T) {
	prog := mustParse(t, `
begin
float x = 3.0;
int y = int(x);
end
`)
	vd := prog.Stmts[1].(*ast.VarDecl)
	if _, ok := vd.Init.(*ast.Cast); !ok {
		t.Fatalf("expected a Cast init expression, got %T", vd.Init)
	}
}

func TestExpressionPrecedence(t *testing.T) {
	prog := mustParse(t, `
begin
bool b = 1 + 2 * 3 == 7 && !false;
end
`)
	vd := prog.Stmts[0].(*ast.VarDecl)
	top, ok := vd.Init.(*ast.Binary)
	if !ok || top.Op != "&&" {
		t.Fatalf("expected top-level '&&', got %#v", vd.Init)
	}
}
