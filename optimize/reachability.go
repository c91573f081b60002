package optimize

import "github.com/skx/source-compiler/cfg"

// Reachability prunes blocks unreachable from the entry block (block
// 0) via a DFS over successor edges, then renumbers the surviving
// blocks 0..K-1 in DFS-discovery order and rewrites every remaining
// successor/predecessor reference to the new numbering (spec §4.7
// pass 1).
func Reachability(g *cfg.Graph) {
	if len(g.Blocks) == 0 {
		return
	}
	byID := map[int]*cfg.Block{}
	for _, b := range g.Blocks {
		byID[b.ID] = b
	}

	var order []int
	visited := map[int]bool{}
	var walk func(id int)
	walk = func(id int) {
		if visited[id] {
			return
		}
		visited[id] = true
		order = append(order, id)
		b := byID[id]
		if b == nil {
			return
		}
		for _, s := range b.Successors {
			walk(s)
		}
	}
	walk(g.Blocks[0].ID)

	oldToNew := make(map[int]int, len(order))
	for newID, oldID := range order {
		oldToNew[oldID] = newID
	}

	kept := make([]*cfg.Block, 0, len(order))
	for _, oldID := range order {
		b := byID[oldID]
		b.ID = oldToNew[oldID]
		b.Successors = renumber(b.Successors, oldToNew)
		b.Predecessors = renumber(b.Predecessors, oldToNew)
		kept = append(kept, b)
	}
	g.Blocks = kept
}

func renumber(ids []int, oldToNew map[int]int) []int {
	out := ids[:0]
	for _, id := range ids {
		if n, ok := oldToNew[id]; ok {
			out = append(out, n)
		}
	}
	return out
}
