// Package sema implements the three-pass semantic analyzer of spec §4.4:
// composite-type and function-signature collection, then per-function
// and top-level scope-checked type inference, constant folding for
// diagnostics, and warning collection.
package sema

import "github.com/skx/source-compiler/ast"

// IsNumeric reports whether t is one of int/float/bool (spec §4.4).
func IsNumeric(t string) bool {
	return t == ast.Int || t == ast.Float || t == ast.Bool
}

// IsAssignable reports whether a value of type src may be assigned
// to, or passed where, a value of type dst is expected.
func IsAssignable(dst, src string) bool {
	if dst == src {
		return true
	}
	if (dst == ast.Int && src == ast.Bool) || (dst == ast.Bool && src == ast.Int) {
		return true
	}
	if dst == ast.Float && (src == ast.Int || src == ast.Float || src == ast.Bool) {
		return true
	}
	return false
}

// NumericResult returns the result type of a binary arithmetic
// operator applied to two numeric operand types: float if either
// operand is float, else int.
func NumericResult(a, b string) string {
	if a == ast.Float || b == ast.Float {
		return ast.Float
	}
	return ast.Int
}

// IsCastable reports whether an expression of type src can be cast to dst.
func IsCastable(src, dst string) bool {
	if src == dst {
		return true
	}
	if IsNumeric(src) && (dst == ast.Int || dst == ast.Float || dst == ast.Bool) {
		return true
	}
	if src == ast.Text && dst == ast.Text {
		return true
	}
	return false
}
