package dump

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skx/source-compiler/cfg"
)

// sortedNames returns the map's keys in sorted order, so dumping a
// map[string]*cfg.Graph is deterministic (spec §6's "stable iteration
// order of all containers").
func sortedNames(m map[string]*cfg.Graph) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CFGs renders a listing dump of every function's control-flow graph:
// one "function NAME:" header, then one "B<id>: preds=[...]
// succs=[...]" block header followed by its instructions.
func CFGs(graphs map[string]*cfg.Graph) string {
	var b strings.Builder
	for _, name := range sortedNames(graphs) {
		g := graphs[name]
		fmt.Fprintf(&b, "function %s:\n", name)
		for _, blk := range g.Blocks {
			fmt.Fprintf(&b, "  B%d: preds=%v succs=%v\n", blk.ID, blk.Predecessors, blk.Successors)
			for _, ins := range blk.Instrs {
				b.WriteString("    ")
				b.WriteString(formatInstr(ins))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// CFGDot renders every function's CFG as a Graphviz "dot" digraph,
// one sub-cluster per function, node labels holding each block's
// instructions (spec §6 "CFG dot graph").
func CFGDot(graphs map[string]*cfg.Graph) string {
	var b strings.Builder
	b.WriteString("digraph CFG {\n")
	for _, name := range sortedNames(graphs) {
		g := graphs[name]
		fmt.Fprintf(&b, "  subgraph cluster_%s {\n", sanitizeID(name))
		fmt.Fprintf(&b, "    label=%q;\n", name)
		for _, blk := range g.Blocks {
			nodeID := fmt.Sprintf("%s_B%d", sanitizeID(name), blk.ID)
			label := blockLabel(blk)
			fmt.Fprintf(&b, "    %s [shape=box label=%q];\n", nodeID, label)
		}
		for _, blk := range g.Blocks {
			from := fmt.Sprintf("%s_B%d", sanitizeID(name), blk.ID)
			for _, s := range blk.Successors {
				to := fmt.Sprintf("%s_B%d", sanitizeID(name), s)
				fmt.Fprintf(&b, "    %s -> %s;\n", from, to)
			}
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	return b.String()
}

func blockLabel(blk *cfg.Block) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("B%d", blk.ID))
	for _, ins := range blk.Instrs {
		lines = append(lines, formatInstr(ins))
	}
	return strings.Join(lines, "\\n")
}

func sanitizeID(name string) string {
	return strings.NewReplacer("__", "_", ".", "_").Replace(name)
}
