package dump

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skx/source-compiler/sema"
)

// Symbols renders the symbol-table dump (spec §6): one block per
// scope snapshot, in the order scopes were popped during analysis,
// listing each variable's type and whether it was ever read.
func Symbols(res *sema.SemanticResult) string {
	var b strings.Builder
	for _, snap := range res.Scopes {
		fmt.Fprintf(&b, "scope %s:\n", snap.Label)
		names := make([]string, 0, len(snap.Vars))
		for name := range snap.Vars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sym := snap.Vars[name]
			fmt.Fprintf(&b, "  %s %s (declared %d:%d, used=%v)\n",
				sym.Type, name, sym.Pos.Line, sym.Pos.Col, sym.Used)
		}
	}
	return b.String()
}
