// Package cfg builds a control-flow graph from one function's flat IR
// instruction list, per spec §4.6: leader computation, block
// partitioning, successor/predecessor edges.
package cfg

import (
	"sort"

	"github.com/skx/source-compiler/ir"
)

// Block is one basic block: a contiguous instruction range with its
// successor and predecessor block ids.
type Block struct {
	ID           int
	Start, End   int // [Start, End) indices into the owning Graph's source instruction list
	Instrs       []ir.Instruction
	Successors   []int
	Predecessors []int
}

// Graph is one function's control-flow graph: an ordered block list,
// block 0 is always the entry (spec §3's CFG invariants).
type Graph struct {
	FuncName string
	Blocks   []*Block
}

// Build computes leaders, partitions the instruction list into
// blocks, and wires successor/predecessor edges (spec §4.6, steps 1-4).
func Build(funcName string, instrs []ir.Instruction) *Graph {
	leaders := computeLeaders(instrs)
	g := &Graph{FuncName: funcName}

	labelToBlock := map[string]int{}
	for i, start := range leaders {
		end := len(instrs)
		if i+1 < len(leaders) {
			end = leaders[i+1]
		}
		b := &Block{ID: i, Start: start, End: end, Instrs: instrs[start:end]}
		g.Blocks = append(g.Blocks, b)
		for _, ins := range b.Instrs {
			if ins.Op == "label" {
				labelToBlock[ins.Arg1] = i
			}
		}
	}

	for i, b := range g.Blocks {
		if len(b.Instrs) == 0 {
			if i+1 < len(g.Blocks) {
				g.addEdge(i, i+1)
			}
			continue
		}
		last := b.Instrs[len(b.Instrs)-1]
		switch last.Op {
		case "goto":
			g.addEdge(i, labelToBlock[last.Arg1])
		case "ifz", "ifnz":
			g.addEdge(i, labelToBlock[last.Arg1])
			if i+1 < len(g.Blocks) {
				g.addEdge(i, i+1)
			}
		case "return":
			// no outgoing edges
		default:
			if i+1 < len(g.Blocks) {
				g.addEdge(i, i+1)
			}
		}
	}

	return g
}

func (g *Graph) addEdge(from, to int) {
	g.Blocks[from].Successors = append(g.Blocks[from].Successors, to)
	g.Blocks[to].Predecessors = append(g.Blocks[to].Predecessors, from)
}

// computeLeaders implements spec §4.6 step 1: instruction 0, the
// instruction after any goto|ifz|ifnz|return, and the target of any
// goto|ifz|ifnz are all leaders. Returned in ascending order, deduplicated.
func computeLeaders(instrs []ir.Instruction) []int {
	isLeader := map[int]bool{0: true}
	labelIndex := map[string]int{}
	for i, ins := range instrs {
		if ins.Op == "label" {
			labelIndex[ins.Arg1] = i
		}
	}
	for i, ins := range instrs {
		switch ins.Op {
		case "goto", "ifz", "ifnz", "return":
			if i+1 < len(instrs) {
				isLeader[i+1] = true
			}
		}
		switch ins.Op {
		case "goto", "ifz", "ifnz":
			if idx, ok := labelIndex[ins.Arg1]; ok {
				isLeader[idx] = true
			}
		}
	}

	leaders := make([]int, 0, len(isLeader))
	for idx := range isLeader {
		leaders = append(leaders, idx)
	}
	sort.Ints(leaders)
	return leaders
}
