package parser

import (
	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// parseBlockBody parses a brace-delimited statement list, recovering
// from a malformed statement by synchronizing before trying the next one.
func (p *Parser) parseBlockBody() []ast.Stmt {
	if _, ok := p.expect(token.LBRACE, token.CodeMissingLBrace, "expected '{' to open a block"); !ok {
		p.synchronize()
	}

	var stmts []ast.Stmt
	for !p.at(token.RBRACE) && !p.atEOF() {
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
	}
	p.expect(token.RBRACE, token.CodeMissingRBrace, "expected '}' to close a block")
	return stmts
}

// parseStmt dispatches on the current token to the right statement
// production, recording a diagnostic and synchronizing on failure.
func (p *Parser) parseStmt() ast.Stmt {
	switch {
	case p.isVarDeclStart():
		return p.parseVarDecl()
	case p.at(token.IF):
		return p.parseIf()
	case p.at(token.WHILE):
		return p.parseWhile()
	case p.at(token.FOR):
		return p.parseFor()
	case p.at(token.DO):
		return p.parseDoWhile()
	case p.at(token.SWITCH):
		return p.parseSwitch()
	case p.at(token.BREAK):
		pos := posOf(p.advance())
		p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after break")
		return ast.NewBreak(pos)
	case p.at(token.CONTINUE):
		pos := posOf(p.advance())
		p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after continue")
		return ast.NewContinue(pos)
	case p.at(token.PRINT):
		return p.parsePrint()
	case p.at(token.RETURN):
		return p.parseReturn()
	case p.at(token.LBRACE):
		pos := posOf(p.cur())
		body := p.parseBlockBody()
		return ast.NewBlock(pos, body)
	case p.at(token.SEMI):
		p.advance() // empty statement
		return nil
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	pos := posOf(p.cur())
	typ := p.parseTypeName()
	nameTok, ok := p.expect(token.IDENT, token.CodeInvalidStatement, "expected a variable name")
	if !ok {
		p.synchronize()
		return nil
	}
	for p.at(token.LBRACKET) { // C-style "int a[3];" array suffix
		p.advance()
		sizeTok, ok := p.expect(token.INT, token.CodeUnknownType, "expected an array size")
		if !ok {
			break
		}
		p.expect(token.RBRACKET, token.CodeMissingRBrace, "expected ']' after array size")
		if sizeTok.IntVal <= 0 {
			p.errorf(token.CodeUnknownType, "array size must be positive, got %d", sizeTok.IntVal)
			continue
		}
		typ = ast.ArrayType(typ, int(sizeTok.IntVal))
	}

	var init ast.Expr
	if p.at(token.ASSIGN) {
		p.advance()
		init = p.parseExpr()
	}
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after variable declaration")
	return ast.NewVarDecl(pos, nameTok.Lexeme, typ, init)
}

func (p *Parser) parseIf() ast.Stmt {
	pos := posOf(p.advance()) // 'if'
	p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after if")
	cond := p.parseExpr()
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' after if condition")
	then := p.parseBlockBody()

	var els []ast.Stmt
	if p.at(token.ELSE) {
		p.advance()
		if p.at(token.IF) {
			els = []ast.Stmt{p.parseIf()}
		} else {
			els = p.parseBlockBody()
		}
	}
	return ast.NewIf(pos, cond, then, els)
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := posOf(p.advance()) // 'while'
	p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after while")
	cond := p.parseExpr()
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' after while condition")
	body := p.parseBlockBody()
	return ast.NewWhile(pos, cond, body)
}

func (p *Parser) parseDoWhile() ast.Stmt {
	pos := posOf(p.advance()) // 'do'
	body := p.parseBlockBody()
	p.expect(token.WHILE, token.CodeInvalidStatement, "expected 'while' after do-block")
	p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after while")
	cond := p.parseExpr()
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' after while condition")
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after do-while")
	return ast.NewDoWhile(pos, body, cond)
}

// parseForClause parses one of the three for(...) clauses: a var decl
// or an assignment-style statement, without consuming the separator
// that follows it (the caller does that). Returns nil for an empty clause.
func (p *Parser) parseForClause(term token.Kind) ast.Stmt {
	if p.at(term) {
		return nil
	}
	if p.isVarDeclStart() {
		pos := posOf(p.cur())
		typ := p.parseTypeName()
		nameTok, ok := p.expect(token.IDENT, token.CodeInvalidStatement, "expected a variable name")
		if !ok {
			return nil
		}
		var init ast.Expr
		if p.at(token.ASSIGN) {
			p.advance()
			init = p.parseExpr()
		}
		return ast.NewVarDecl(pos, nameTok.Lexeme, typ, init)
	}
	return p.parseAssignOrExprNoSemi()
}

func (p *Parser) parseFor() ast.Stmt {
	pos := posOf(p.advance()) // 'for'
	p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after for")

	init := p.parseForClause(token.SEMI)
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after for-init")

	var cond ast.Expr
	if !p.at(token.SEMI) {
		cond = p.parseExpr()
	}
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after for-condition")

	post := p.parseForClause(token.RPAREN)
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' after for-clauses")

	body := p.parseBlockBody()
	return ast.NewFor(pos, init, cond, post, body)
}

func (p *Parser) parseSwitch() ast.Stmt {
	pos := posOf(p.advance()) // 'switch'
	p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after switch")
	cond := p.parseExpr()
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' after switch condition")
	p.expect(token.LBRACE, token.CodeMissingLBrace, "expected '{' to open switch body")

	var cases []*ast.CaseClause
	var def []ast.Stmt
	haveDefault := false

	for !p.at(token.RBRACE) && !p.atEOF() {
		switch {
		case p.at(token.CASE):
			casePos := posOf(p.advance())
			label := p.parseExpr()
			p.expect(token.COLON, token.CodeInvalidCaseLabel, "expected ':' after case label")
			var body []ast.Stmt
			for !p.at(token.CASE) && !p.at(token.DEFAULT) && !p.at(token.RBRACE) && !p.atEOF() {
				if s := p.parseStmt(); s != nil {
					body = append(body, s)
				}
			}
			cases = append(cases, &ast.CaseClause{Pos: casePos, Label: label, Body: body})

		case p.at(token.DEFAULT):
			p.advance()
			p.expect(token.COLON, token.CodeInvalidCaseLabel, "expected ':' after default")
			if haveDefault {
				p.errorf(token.CodeDuplicateDefault, "duplicate default clause in switch")
			}
			haveDefault = true
			var body []ast.Stmt
			for !p.at(token.CASE) && !p.at(token.DEFAULT) && !p.at(token.RBRACE) && !p.atEOF() {
				if s := p.parseStmt(); s != nil {
					body = append(body, s)
				}
			}
			def = body

		default:
			p.errorf(token.CodeInvalidStatement, "expected 'case' or 'default' in switch body, got %s", p.cur().Kind)
			p.synchronize()
		}
	}
	p.expect(token.RBRACE, token.CodeMissingRBrace, "expected '}' to close switch body")
	return ast.NewSwitch(pos, cond, cases, def)
}

func (p *Parser) parsePrint() ast.Stmt {
	pos := posOf(p.advance()) // 'print'
	p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after print")
	val := p.parseExpr()
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' after print argument")
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after print")
	return ast.NewPrint(pos, val)
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := posOf(p.advance()) // 'return'
	var val ast.Expr
	if !p.at(token.SEMI) {
		val = p.parseExpr()
	}
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after return")
	return ast.NewReturn(pos, val)
}

// parseExprOrAssignStmt handles assignment (plain and compound), ++/--
// (desugared per spec §6 to "x = x ± 1"), and bare expression
// statements, consuming the trailing semicolon itself.
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	s := p.parseAssignOrExprNoSemi()
	p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after statement")
	return s
}

func (p *Parser) parseAssignOrExprNoSemi() ast.Stmt {
	pos := posOf(p.cur())
	lhs := p.parseExpr()

	switch {
	case p.at(token.ASSIGN):
		p.advance()
		rhs := p.parseExpr()
		return ast.NewAssign(pos, lhs, rhs)

	case p.at(token.PLUS_EQ), p.at(token.MINUS_EQ), p.at(token.STAR_EQ),
		p.at(token.SLASH_EQ), p.at(token.PCT_EQ):
		opTok := p.advance()
		rhs := p.parseExpr()
		binOp := compoundBinOp(opTok.Kind)
		return ast.NewAssign(pos, lhs, ast.NewBinary(p.ids, pos, binOp, lhs, rhs))

	case p.at(token.INC):
		p.advance()
		one := ast.NewIntLit(p.ids, pos, 1)
		return ast.NewAssign(pos, lhs, ast.NewBinary(p.ids, pos, "+", lhs, one))

	case p.at(token.DEC):
		p.advance()
		one := ast.NewIntLit(p.ids, pos, 1)
		return ast.NewAssign(pos, lhs, ast.NewBinary(p.ids, pos, "-", lhs, one))

	default:
		return ast.NewExprStmt(pos, lhs)
	}
}

func compoundBinOp(k token.Kind) string {
	switch k {
	case token.PLUS_EQ:
		return "+"
	case token.MINUS_EQ:
		return "-"
	case token.STAR_EQ:
		return "*"
	case token.SLASH_EQ:
		return "/"
	case token.PCT_EQ:
		return "%"
	}
	return "+"
}
