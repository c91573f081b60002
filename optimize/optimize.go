package optimize

import "github.com/skx/source-compiler/cfg"

// Run applies the five-pass pipeline of spec §4.7 to g, in order:
// reachability pruning, constant propagation, local CSE, loop-
// invariant code motion, and dead-store elimination. Passes mutate g
// in place; Run also returns g for chaining.
func Run(g *cfg.Graph) *cfg.Graph {
	Reachability(g)
	ConstProp(g)
	LocalCSE(g)
	LICM(g)
	DeadStoreElim(g)
	return g
}
