package optimize

import (
	"github.com/skx/source-compiler/cfg"
	"github.com/skx/source-compiler/ir"
)

// DeadStoreElim removes defining instructions whose result is never
// live, via a backward-liveness fixpoint over the CFG (spec §4.7 pass
// 5): live_in[B] = use[B] ∪ (live_out[B] - def[B]), live_out[B] = the
// union of live_in over B's successors. A call is never dropped, even
// if its result is dead, since it may carry side effects.
func DeadStoreElim(g *cfg.Graph) {
	n := len(g.Blocks)
	if n == 0 {
		return
	}

	use := make([]map[string]bool, n)
	def := make([]map[string]bool, n)
	for i, b := range g.Blocks {
		use[i], def[i] = useDefOf(b)
	}

	liveIn := make([]map[string]bool, n)
	liveOut := make([]map[string]bool, n)
	for i := range g.Blocks {
		liveIn[i] = map[string]bool{}
		liveOut[i] = map[string]bool{}
	}

	changed := true
	for changed {
		changed = false
		for _, b := range g.Blocks {
			newOut := map[string]bool{}
			for _, s := range b.Successors {
				for v := range liveIn[s] {
					newOut[v] = true
				}
			}
			newIn := map[string]bool{}
			for v := range use[b.ID] {
				newIn[v] = true
			}
			for v := range newOut {
				if !def[b.ID][v] {
					newIn[v] = true
				}
			}
			if !setsEqual(newIn, liveIn[b.ID]) {
				liveIn[b.ID] = newIn
				changed = true
			}
			if !setsEqual(newOut, liveOut[b.ID]) {
				liveOut[b.ID] = newOut
				changed = true
			}
		}
	}

	for _, b := range g.Blocks {
		live := cloneBoolSet(liveOut[b.ID])
		reversed := make([]ir.Instruction, 0, len(b.Instrs))
		for i := len(b.Instrs) - 1; i >= 0; i-- {
			inst := b.Instrs[i]
			dead := inst.Op != "call" && inst.Result != "" && inst.IsDefining() && !live[inst.Result]
			if dead {
				continue
			}
			reversed = append(reversed, inst)
			if inst.Result != "" && inst.IsDefining() {
				delete(live, inst.Result)
			}
			useA1, useA2 := valueArgPositions(inst.Op)
			if useA1 && isVarName(inst.Arg1) {
				live[inst.Arg1] = true
			}
			if useA2 && isVarName(inst.Arg2) {
				live[inst.Arg2] = true
			}
		}
		kept := make([]ir.Instruction, len(reversed))
		for i, inst := range reversed {
			kept[len(reversed)-1-i] = inst
		}
		b.Instrs = kept
	}
}

func useDefOf(b *cfg.Block) (use, def map[string]bool) {
	use = map[string]bool{}
	def = map[string]bool{}
	for _, inst := range b.Instrs {
		useA1, useA2 := valueArgPositions(inst.Op)
		if useA1 && isVarName(inst.Arg1) && !def[inst.Arg1] {
			use[inst.Arg1] = true
		}
		if useA2 && isVarName(inst.Arg2) && !def[inst.Arg2] {
			use[inst.Arg2] = true
		}
		if inst.Result != "" && inst.IsDefining() {
			def[inst.Result] = true
		}
	}
	return use, def
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func cloneBoolSet(m map[string]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
