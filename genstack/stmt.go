package genstack

import (
	"github.com/skx/source-compiler/ast"
)

func (g *Generator) genStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		g.emit("DECL", n.Name)
		if n.Init != nil {
			g.genExpr(n.Init)
			g.emit("STORE", n.Name)
		}

	case *ast.Assign:
		g.genAssign(n)

	case *ast.If:
		g.genIf(n)

	case *ast.While:
		g.genWhile(n)

	case *ast.For:
		g.genFor(n)

	case *ast.DoWhile:
		g.genDoWhile(n)

	case *ast.Switch:
		g.genSwitch(n)

	case *ast.Break:
		if len(g.control) == 0 {
			g.emit("TRAP", "break_outside_loop")
			return
		}
		g.emit("JMP", g.control[len(g.control)-1].breakLabel)

	case *ast.Continue:
		target := g.continueTarget()
		if target == "" {
			g.emit("TRAP", "continue_outside_loop")
			return
		}
		g.emit("JMP", target)

	case *ast.Print:
		g.genExpr(n.Value)
		g.emit("PRINT")

	case *ast.Return:
		if n.Value != nil {
			g.genExpr(n.Value)
		} else {
			g.emit("PUSH_INT", "0")
		}
		g.emit("RET")

	case *ast.ExprStmt:
		g.genExpr(n.X)
		g.emit("POP")

	case *ast.Block:
		g.genBlock(n.Stmts)

	default:
		panic("genstack: unhandled statement type")
	}
}

// genAssign pushes whatever operands the target needs before the
// value, then stores. Plain identifiers use STORE; indexed and
// member targets use STOREX with a textual description of the
// target, since the opcode set has no separate addressing mode per
// target shape (spec §4.9).
func (g *Generator) genAssign(n *ast.Assign) {
	switch t := n.Target.(type) {
	case *ast.Ident:
		g.genExpr(n.Value)
		g.emit("STORE", t.Name)

	case *ast.Index:
		g.genExpr(t.Base)
		g.genExpr(t.Index)
		g.genExpr(n.Value)
		g.emit("STOREX", "index")

	case *ast.Member:
		g.genExpr(t.Base)
		g.genExpr(n.Value)
		g.emit("STOREX", "field."+t.Field)

	default:
		panic("genstack: unhandled assignment target")
	}
}

func (g *Generator) genIf(n *ast.If) {
	if n.Else == nil {
		endL := g.newLabel()
		g.genExpr(n.Cond)
		g.emit("JZ", endL)
		g.genBlock(n.Then)
		g.emit("LABEL", endL)
		return
	}

	elseL := g.newLabel()
	endL := g.newLabel()
	g.genExpr(n.Cond)
	g.emit("JZ", elseL)
	g.genBlock(n.Then)
	g.emit("JMP", endL)
	g.emit("LABEL", elseL)
	g.genBlock(n.Else)
	g.emit("LABEL", endL)
}

func (g *Generator) genWhile(n *ast.While) {
	checkL := g.newLabel()
	endL := g.newLabel()

	g.emit("LABEL", checkL)
	g.genExpr(n.Cond)
	g.emit("JZ", endL)

	g.control = append(g.control, controlFrame{breakLabel: endL, continueLabel: checkL})
	g.genBlock(n.Body)
	g.control = g.control[:len(g.control)-1]

	g.emit("JMP", checkL)
	g.emit("LABEL", endL)
}

// genFor lowers the three-clause for loop the same way ir.gen does:
// init once, then a while-shaped check/body/post with continue
// jumping to post rather than check (spec §4.6).
func (g *Generator) genFor(n *ast.For) {
	if n.Init != nil {
		g.genStmt(n.Init)
	}

	checkL := g.newLabel()
	postL := g.newLabel()
	endL := g.newLabel()

	g.emit("LABEL", checkL)
	if n.Cond != nil {
		g.genExpr(n.Cond)
		g.emit("JZ", endL)
	}

	g.control = append(g.control, controlFrame{breakLabel: endL, continueLabel: postL})
	g.genBlock(n.Body)
	g.control = g.control[:len(g.control)-1]

	g.emit("LABEL", postL)
	if n.Post != nil {
		g.genStmt(n.Post)
	}
	g.emit("JMP", checkL)
	g.emit("LABEL", endL)
}

func (g *Generator) genDoWhile(n *ast.DoWhile) {
	bodyL := g.newLabel()
	condL := g.newLabel()
	endL := g.newLabel()

	g.emit("LABEL", bodyL)
	g.control = append(g.control, controlFrame{breakLabel: endL, continueLabel: condL})
	g.genBlock(n.Body)
	g.control = g.control[:len(g.control)-1]

	g.emit("LABEL", condL)
	g.genExpr(n.Cond)
	g.emit("JNZ", bodyL)
	g.emit("LABEL", endL)
}

// genSwitch materializes the switch value into a synthetic local
// once (there is no DUP opcode), then tests it against each case
// label in source order before falling through to default or end.
// The pushed control frame has no continueLabel, so continue inside
// a case searches past it to the enclosing loop (spec §4.9).
func (g *Generator) genSwitch(n *ast.Switch) {
	tmp := g.newTemp()
	g.emit("DECL", tmp)
	g.genExpr(n.Cond)
	g.emit("STORE", tmp)

	endL := g.newLabel()
	caseLabels := make([]string, len(n.Cases))
	for i := range n.Cases {
		caseLabels[i] = g.newLabel()
	}
	defaultL := endL
	if n.Default != nil {
		defaultL = g.newLabel()
	}

	for i, c := range n.Cases {
		g.emit("LOAD", tmp)
		g.genExpr(c.Label)
		g.emit("EQ")
		g.emit("JNZ", caseLabels[i])
	}
	g.emit("JMP", defaultL)

	g.control = append(g.control, controlFrame{breakLabel: endL})
	for i, c := range n.Cases {
		g.emit("LABEL", caseLabels[i])
		g.genBlock(c.Body)
	}
	if n.Default != nil {
		g.emit("LABEL", defaultL)
		g.genBlock(n.Default)
	}
	g.control = g.control[:len(g.control)-1]

	g.emit("LABEL", endL)
}
