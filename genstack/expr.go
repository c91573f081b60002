package genstack

import (
	"strconv"

	"github.com/skx/source-compiler/ast"
)

func (g *Generator) genExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		g.emit("LOAD", n.Name)

	case *ast.IntLit:
		g.emit("PUSH_INT", strconv.FormatInt(n.Value, 10))

	case *ast.FloatLit:
		g.emit("PUSH_FLOAT", strconv.FormatFloat(n.Value, 'g', -1, 64))

	case *ast.BoolLit:
		if n.Value {
			g.emit("PUSH_INT", "1")
		} else {
			g.emit("PUSH_INT", "0")
		}

	case *ast.StringLit:
		g.emit("PUSH_STR", strconv.Quote(n.Value))

	case *ast.Unary:
		g.genExpr(n.Expr)
		switch n.Op {
		case "-":
			g.emit("NEG")
		case "!":
			g.emit("NOT")
		default:
			panic("genstack: unknown unary operator " + n.Op)
		}

	case *ast.Binary:
		g.genExpr(n.Left)
		g.genExpr(n.Right)
		g.emit(stackOp(n.Op))

	case *ast.Call:
		g.genCall(n)

	case *ast.Index:
		g.genExpr(n.Base)
		g.genExpr(n.Index)
		g.emit("GETINDEX")

	case *ast.Member:
		g.genExpr(n.Base)
		g.emit("GETFIELD", n.Field)

	case *ast.Cast:
		g.genExpr(n.Expr)
		switch n.Type {
		case ast.Int:
			g.emit("CAST_INT")
		case ast.Float:
			g.emit("CAST_FLOAT")
		case ast.Bool:
			g.emit("CAST_BOOL")
		}

	default:
		panic("genstack: unhandled expression type")
	}
}

// stackOp maps a source binary operator to its opcode. && and || map
// straight onto AND/OR: unlike ir generation (spec §4.5), the stack
// machine has no short-circuit requirement to honor, since its
// opcode table gives AND/OR as plain binary operators alongside the
// arithmetic and comparison ones (spec §4.9).
func stackOp(op string) string {
	switch op {
	case "+":
		return "ADD"
	case "-":
		return "SUB"
	case "*":
		return "MUL"
	case "/":
		return "DIV"
	case "%":
		return "MOD"
	case "<":
		return "LT"
	case "<=":
		return "LE"
	case ">":
		return "GT"
	case ">=":
		return "GE"
	case "==":
		return "EQ"
	case "!=":
		return "NE"
	case "&&":
		return "AND"
	case "||":
		return "OR"
	}
	panic("genstack: unknown binary operator " + op)
}

// genCall lowers the builtin call forms of spec §4.9, falling through
// to CALL name N for ordinary user functions.
func (g *Generator) genCall(n *ast.Call) {
	switch n.Callee {
	case "input", "bata":
		g.emit("INPUT")
		return

	case "max":
		g.genExpr(n.Args[0])
		g.genExpr(n.Args[1])
		g.emit("MAX")
		return

	case "len":
		g.genExpr(n.Args[0])
		g.emit("LEN")
		return
	}

	for _, a := range n.Args {
		g.genExpr(a)
	}
	g.emit("CALL", n.Callee, strconv.Itoa(len(n.Args)))
}
