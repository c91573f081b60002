package optimize

import (
	"github.com/skx/source-compiler/cfg"
	"github.com/skx/source-compiler/ir"
)

type cseEntry struct{ arg1, arg2, result string }

// LocalCSE eliminates redundant recomputation of the same binary
// expression within a single block (spec §4.7 pass 3). It keys an
// expression by (op, arg1, arg2), with arg1/arg2 order-normalized for
// commutative ops (add, mul, eq, ne) so `a+b` and `b+a` share an
// entry. Redefining either operand invalidates every entry that
// mentions it.
func LocalCSE(g *cfg.Graph) {
	for _, b := range g.Blocks {
		table := map[string]cseEntry{}
		out := make([]ir.Instruction, 0, len(b.Instrs))

		for _, inst := range b.Instrs {
			key := ""
			if isBinaryOp(inst.Op) && inst.Result != "" {
				a1, a2 := inst.Arg1, inst.Arg2
				if isCommutative(inst.Op) && a1 > a2 {
					a1, a2 = a2, a1
				}
				key = inst.Op + "|" + a1 + "|" + a2
				if e, ok := table[key]; ok {
					inst = ir.Instruction{Op: "copy", Arg1: e.result, Result: inst.Result}
					key = ""
				}
			}
			out = append(out, inst)
			if inst.Result != "" {
				invalidate(table, inst.Result)
			}
			if key != "" && inst.Arg1 != inst.Result && inst.Arg2 != inst.Result {
				table[key] = cseEntry{arg1: inst.Arg1, arg2: inst.Arg2, result: inst.Result}
			}
		}
		b.Instrs = out
	}
}

func invalidate(table map[string]cseEntry, varName string) {
	for key, e := range table {
		if e.arg1 == varName || e.arg2 == varName || e.result == varName {
			delete(table, key)
		}
	}
}
