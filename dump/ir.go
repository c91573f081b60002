package dump

import (
	"fmt"
	"strings"

	"github.com/skx/source-compiler/ir"
)

// IR renders a three-address IR program: one "function NAME(PARAMS):" header
// per function (in Program.Order, deterministic per spec §6), then
// one instruction per line.
func IR(prog *ir.Program) string {
	var b strings.Builder
	if prog == nil {
		return ""
	}
	for _, name := range prog.Order {
		fn := prog.Functions[name]
		fmt.Fprintf(&b, "function %s(%s):\n", name, strings.Join(fn.Params, ", "))
		for _, ins := range fn.Instrs {
			b.WriteString("    ")
			b.WriteString(formatInstr(ins))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// formatInstr renders one instruction as "result = op arg1, arg2",
// dropping operands an op doesn't use.
func formatInstr(i ir.Instruction) string {
	switch i.Op {
	case "label":
		return i.Arg1 + ":"
	case "goto":
		return "goto " + i.Arg1
	case "ifz", "ifnz":
		return fmt.Sprintf("%s %s, %s", i.Op, i.Arg1, i.Arg2)
	case "return":
		if i.Arg1 == "" {
			return "return"
		}
		return "return " + i.Arg1
	case "param":
		return "param " + i.Arg1
	case "print":
		return fmt.Sprintf("print %s (%s)", i.Arg1, i.Arg2)
	case "call":
		if i.Result != "" {
			return fmt.Sprintf("%s = call %s, %s", i.Result, i.Arg1, i.Arg2)
		}
		return fmt.Sprintf("call %s, %s", i.Arg1, i.Arg2)
	}
	if i.Arg2 != "" {
		return fmt.Sprintf("%s = %s %s, %s", i.Result, i.Op, i.Arg1, i.Arg2)
	}
	if i.Arg1 != "" {
		return fmt.Sprintf("%s = %s %s", i.Result, i.Op, i.Arg1)
	}
	return fmt.Sprintf("%s = %s", i.Result, i.Op)
}
