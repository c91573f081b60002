package optimize

import (
	"github.com/skx/source-compiler/cfg"
	"github.com/skx/source-compiler/ir"
)

// LICM is a structural, non-dominator-based loop-invariant code
// motion pass (spec §4.7 pass 4). It treats any successor edge
// tail -> head with head.ID <= tail.ID as a back edge identifying a
// loop body [head.ID, tail.ID]; the preheader is the block at
// head.ID-1, when one exists outside the loop range. An instruction
// hoists when it's a defining op, uses no variable assigned anywhere
// in the loop body, and isn't the block's own terminator.
//
// This is a best-effort approximation, not a dominator-correct LICM:
// the preheader is picked by block number alone, with no check that
// it dominates the loop header or is the loop's only entry, and the
// operand check above is the only safety test. An instruction from a
// conditionally executed block of the loop, or one whose result is
// also assigned elsewhere in the loop, is hoisted all the same; it can
// also miss hoisting opportunities in irreducible control flow.
func LICM(g *cfg.Graph) {
	byID := make(map[int]*cfg.Block, len(g.Blocks))
	for _, b := range g.Blocks {
		byID[b.ID] = b
	}

	for _, tail := range g.Blocks {
		for _, head := range tail.Successors {
			if head > tail.ID {
				continue
			}
			preheaderID := head - 1
			if preheaderID < 0 {
				continue
			}
			preheader := byID[preheaderID]
			if preheader == nil {
				continue
			}

			var loopBlocks []*cfg.Block
			assigned := map[string]bool{}
			for _, b := range g.Blocks {
				if b.ID >= head && b.ID <= tail.ID {
					loopBlocks = append(loopBlocks, b)
					for _, inst := range b.Instrs {
						if inst.Result != "" && inst.IsDefining() {
							assigned[inst.Result] = true
						}
					}
				}
			}

			for _, b := range loopBlocks {
				kept := make([]ir.Instruction, 0, len(b.Instrs))
				for i, inst := range b.Instrs {
					isTerminator := i == len(b.Instrs)-1 && inst.IsJump()
					if !isTerminator && inst.IsDefining() && isLoopInvariant(inst, assigned) {
						appendBeforeTerminator(preheader, inst)
						continue
					}
					kept = append(kept, inst)
				}
				b.Instrs = kept
			}
		}
	}
}

func isLoopInvariant(inst ir.Instruction, assigned map[string]bool) bool {
	useA1, useA2 := valueArgPositions(inst.Op)
	if useA1 && assigned[inst.Arg1] {
		return false
	}
	if useA2 && assigned[inst.Arg2] {
		return false
	}
	return true
}

func appendBeforeTerminator(b *cfg.Block, inst ir.Instruction) {
	if n := len(b.Instrs); n > 0 && b.Instrs[n-1].IsJump() {
		last := b.Instrs[n-1]
		b.Instrs = append(b.Instrs[:n-1], inst, last)
		return
	}
	b.Instrs = append(b.Instrs, inst)
}
