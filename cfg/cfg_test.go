package cfg

import (
	"testing"

	"github.com/skx/source-compiler/ir"
	"github.com/skx/source-compiler/parser"
	"github.com/skx/source-compiler/sema"
)

func buildFor(t *testing.T, src, fn string) *Graph {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %s", err)
	}
	res, err := sema.Analyze(prog)
	if err != nil {
		t.Fatalf("analyze error: %s", err)
	}
	irProg := ir.Generate(prog, res)
	f := irProg.Functions[fn]
	if f == nil {
		t.Fatalf("no IR function %q", fn)
	}
	return Build(fn, f.Instrs)
}

func TestBuildStraightLineSingleBlock(t *testing.T) {
	g := buildFor(t, `
begin
int x = 1;
int y = x + 1;
return y;
end
`, ir.MainFunctionName)

	if len(g.Blocks) != 1 {
		t.Fatalf("expected exactly one block for straight-line code, got %d", len(g.Blocks))
	}
	if len(g.Blocks[0].Successors) != 0 {
		t.Fatalf("expected no successors after a return, got %v", g.Blocks[0].Successors)
	}
}

func TestBuildWhileHasBackEdge(t *testing.T) {
	g := buildFor(t, `
begin
int i = 0;
while (i < 3) {
	i = i + 1;
}
return 0;
end
`, ir.MainFunctionName)

	if len(g.Blocks) < 3 {
		t.Fatalf("expected multiple blocks for a while loop, got %d", len(g.Blocks))
	}
	if g.Blocks[0].ID != 0 {
		t.Fatalf("expected block 0 to be the entry")
	}

	foundBackEdge := false
	for _, b := range g.Blocks {
		for _, s := range b.Successors {
			if s <= b.ID {
				foundBackEdge = true
			}
		}
	}
	if !foundBackEdge {
		t.Fatalf("expected a back edge somewhere in the while loop's CFG")
	}
}

func TestPredecessorsAreInverseOfSuccessors(t *testing.T) {
	g := buildFor(t, `
begin
int x = 1;
if (x > 0) {
	print(x);
} else {
	print(0);
}
return 0;
end
`, ir.MainFunctionName)

	for _, b := range g.Blocks {
		for _, s := range b.Successors {
			found := false
			for _, p := range g.Blocks[s].Predecessors {
				if p == b.ID {
					found = true
				}
			}
			if !found {
				t.Fatalf("block %d lists %d as successor, but %d doesn't list %d as predecessor", b.ID, s, s, b.ID)
			}
		}
	}
}
