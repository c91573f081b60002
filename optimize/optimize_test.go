package optimize

import (
	"testing"

	"github.com/skx/source-compiler/cfg"
	"github.com/skx/source-compiler/ir"
	"github.com/skx/source-compiler/parser"
	"github.com/skx/source-compiler/sema"
)

func buildGraph(t *testing.T, src string) *cfg.Graph {
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
	fn := irProg.Functions[ir.MainFunctionName]
	if fn == nil {
		t.Fatalf("no __main__ function generated")
	}
	return cfg.Build(ir.MainFunctionName, fn.Instrs)
}

func allInstrs(g *cfg.Graph) []ir.Instruction {
	var all []ir.Instruction
	for _, b := range g.Blocks {
		all = append(all, b.Instrs...)
	}
	return all
}

func TestConstPropFoldsArithmetic(t *testing.T) {
	g := buildGraph(t, `
begin
int x = 2 + 3;
print(x);
return 0;
end
`)
	ConstProp(g)

	foundFoldedFive := false
	for _, ins := range allInstrs(g) {
		if ins.Op == "copy" && ins.Arg1 == "5" {
			foundFoldedFive = true
		}
		if ins.Op == "add" {
			t.Fatalf("expected constant-folded add to disappear, still found: %+v", ins)
		}
	}
	if !foundFoldedFive {
		t.Fatalf("expected a folded literal 5 to appear somewhere")
	}
}

func TestConstPropSkipsIntegerDivisionByZero(t *testing.T) {
	g := buildGraph(t, `
begin
int z = 0;
int x = 5 / z;
print(x);
return 0;
end
`)
	ConstProp(g)

	foundDiv := false
	for _, ins := range allInstrs(g) {
		if ins.Op == "div" {
			foundDiv = true
		}
	}
	if !foundDiv {
		t.Fatalf("expected division by a propagated zero to abort folding and survive as div")
	}
}

func TestReachabilityDropsUnreachableBlock(t *testing.T) {
	g := &cfg.Graph{FuncName: "f"}
	b0 := &cfg.Block{ID: 0, Instrs: []ir.Instruction{{Op: "goto", Arg1: "L"}}, Successors: []int{2}}
	b1 := &cfg.Block{ID: 1, Instrs: []ir.Instruction{{Op: "return"}}}
	b2 := &cfg.Block{ID: 2, Instrs: []ir.Instruction{{Op: "return"}}}
	g.Blocks = []*cfg.Block{b0, b1, b2}
	b0.Predecessors, b1.Predecessors, b2.Predecessors = nil, nil, []int{0}

	Reachability(g)

	if len(g.Blocks) != 2 {
		t.Fatalf("expected unreachable block 1 to be pruned, got %d blocks", len(g.Blocks))
	}
	for _, b := range g.Blocks {
		for _, s := range b.Successors {
			if s < 0 || s >= len(g.Blocks) {
				t.Fatalf("successor %d out of range after renumbering", s)
			}
		}
	}
}

func TestLocalCSEDeduplicatesRepeatedExpression(t *testing.T) {
	g := buildGraph(t, `
begin
int a = 1;
int b = 2;
int x = a + b;
int y = a + b;
print(x);
print(y);
return 0;
end
`)
	LocalCSE(g)

	addCount := 0
	for _, ins := range allInstrs(g) {
		if ins.Op == "add" {
			addCount++
		}
	}
	if addCount != 1 {
		t.Fatalf("expected the second a+b to be eliminated as redundant, got %d add instructions", addCount)
	}
}

func TestDeadStoreElimRemovesUnusedAssignment(t *testing.T) {
	g := buildGraph(t, `
begin
int x = 1 + 2;
int y = 9;
print(y);
return 0;
end
`)
	DeadStoreElim(g)

	for _, ins := range allInstrs(g) {
		if ins.Op == "add" {
			t.Fatalf("expected the dead x = 1+2 computation to be removed, still found: %+v", ins)
		}
	}
}

func TestDeadStoreElimKeepsCalls(t *testing.T) {
	g := buildGraph(t, `
function sideEffect() -> int {
	return 1;
}

begin
int unused = sideEffect();
print(0);
return 0;
end
`)
	DeadStoreElim(g)

	foundCall := false
	for _, ins := range allInstrs(g) {
		if ins.Op == "call" {
			foundCall = true
		}
	}
	if !foundCall {
		t.Fatalf("expected call to survive dead-store elimination even though its result is unused")
	}
}

func TestRunPipelineIsIdempotentOnCleanCode(t *testing.T) {
	g := buildGraph(t, `
begin
int i = 0;
while (i < 3) {
	print(i);
	i = i + 1;
}
return 0;
end
`)
	Run(g)

	if len(g.Blocks) == 0 {
		t.Fatalf("expected surviving blocks after the full pipeline")
	}
	for i, b := range g.Blocks {
		if b.ID != i {
			t.Fatalf("expected blocks renumbered 0..N-1, block at index %d has ID %d", i, b.ID)
		}
	}
}
