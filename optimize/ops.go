// Package optimize implements the five-pass CFG optimizer of spec
// §4.7: reachability pruning, forward constant propagation, local
// common-subexpression elimination, loop-invariant code motion, and
// backward-liveness dead-store elimination. Each pass rewrites a
// cfg.Graph's blocks in place.
package optimize

import (
	"strconv"
	"strings"
)

// valueArgPositions reports, for an instruction's op, whether Arg1
// and/or Arg2 hold a value reference (a variable name or a literal)
// as opposed to a label or function name. Constant propagation,
// LICM, and dead-store elimination all need this distinction to know
// which operand positions to treat as uses.
func valueArgPositions(op string) (arg1, arg2 bool) {
	switch {
	case op == "label" || op == "goto" || op == "call":
		return false, false
	case op == "ifz" || op == "ifnz":
		return true, false
	case op == "print" || op == "return" || op == "param" || op == "copy" || op == "neg":
		return true, false
	case op == "index":
		return true, true
	case strings.HasPrefix(op, "field.") || strings.HasPrefix(op, "cast."):
		return true, false
	default:
		// add, sub, mul, div, mod, lt, le, gt, ge, eq, ne
		return true, true
	}
}

// isNumericLiteral reports whether s parses as an integer or
// floating-point literal (as opposed to a variable name or a
// Go-quoted string literal).
func isNumericLiteral(s string) bool {
	if s == "" {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return false
}

// isVarName reports whether s is plausibly a variable reference: not
// empty, not a numeric literal, not a Go-quoted string literal.
func isVarName(s string) bool {
	if s == "" || isNumericLiteral(s) {
		return false
	}
	if strings.HasPrefix(s, `"`) {
		return false
	}
	return true
}

func boolLit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func isBinaryOp(op string) bool {
	switch op {
	case "add", "sub", "mul", "div", "mod", "lt", "le", "gt", "ge", "eq", "ne":
		return true
	}
	return false
}

func isCommutative(op string) bool {
	switch op {
	case "add", "mul", "eq", "ne":
		return true
	}
	return false
}
