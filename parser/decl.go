package parser

import (
	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// parseProgram implements spec §4.2's top level: imports, type
// declarations and function declarations in any order, followed by
// exactly one begin-of-main, the top-level statement list, one
// end-of-main, and EOF.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.at(token.BEGIN_MAIN) && !p.atEOF() {
		switch {
		case p.at(token.IMPORT):
			if path, ok := p.parseImport(); ok {
				prog.Imports = append(prog.Imports, path)
			}
		case p.at(token.STRUCT) || p.at(token.CLASS):
			if td := p.parseTypeDecl(); td != nil {
				prog.Types = append(prog.Types, td)
				p.knownTypes[td.Name] = td.Kind
			}
		case p.at(token.FUNCTION):
			if fd := p.parseFuncDecl(); fd != nil {
				prog.Functions = append(prog.Functions, fd)
			}
		default:
			p.errorf(token.CodeUnexpectedToken,
				"expected an import, type, or function declaration, or the start of main, got %s", p.cur().Kind)
			p.synchronize()
		}
	}

	p.expect(token.BEGIN_MAIN, token.CodeExpectedStart, "expected the start of the main program")

	for !p.at(token.END_MAIN) && !p.atEOF() {
		if s := p.parseStmt(); s != nil {
			prog.Stmts = append(prog.Stmts, s)
		}
	}

	p.expect(token.END_MAIN, token.CodeExpectedEnd, "expected the end of the main program")
	p.expect(token.EOF, token.CodeUnexpectedToken, "expected end of file after the end of main")

	return prog
}

// parseImport parses `import "path";` with an optional trailing semicolon.
func (p *Parser) parseImport() (string, bool) {
	p.advance() // 'import'
	strTok, ok := p.expect(token.STRING, token.CodeMissingImport, "expected a quoted import path")
	if !ok {
		p.synchronize()
		return "", false
	}
	if p.at(token.SEMI) {
		p.advance()
	}
	return strTok.StrVal, true
}

// parseTypeDecl parses `struct NAME { field decls } [;]` or the class form.
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	startTok := p.cur()
	kind := "struct"
	if p.at(token.CLASS) {
		kind = "class"
	}
	p.advance()

	nameTok, ok := p.expect(token.IDENT, token.CodeUnknownType, "expected a type name")
	if !ok {
		p.synchronize()
		return nil
	}

	if _, ok := p.expect(token.LBRACE, token.CodeMissingLBrace, "expected '{' to open type body"); !ok {
		p.synchronize()
		return nil
	}

	var fields []*ast.Field
	seen := map[string]bool{}
	for !p.at(token.RBRACE) && !p.atEOF() {
		fieldPos := posOf(p.cur())
		typ := p.parseTypeName()
		fnameTok, ok := p.expect(token.IDENT, token.CodeUnknownType, "expected a field name")
		if !ok {
			p.synchronize()
			continue
		}
		p.expect(token.SEMI, token.CodeMissingSemicolon, "expected ';' after field declaration")

		if seen[fnameTok.Lexeme] {
			p.errorf(token.CodeRedeclaredVariable, "duplicate field %q in %s %s", fnameTok.Lexeme, kind, nameTok.Lexeme)
			continue
		}
		seen[fnameTok.Lexeme] = true
		fields = append(fields, ast.NewField(fieldPos, fnameTok.Lexeme, typ))
	}
	p.expect(token.RBRACE, token.CodeMissingRBrace, "expected '}' to close type body")
	if p.at(token.SEMI) {
		p.advance()
	}

	return ast.NewTypeDecl(posOf(startTok), kind, nameTok.Lexeme, fields)
}

// parseFuncDecl parses `function NAME(params) [-> TYPE] { body }`.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	startTok := p.cur()
	p.advance() // 'function'

	nameTok, ok := p.expect(token.IDENT, token.CodeInvalidFunction, "expected a function name")
	if !ok {
		p.synchronize()
		return nil
	}

	if _, ok := p.expect(token.LPAREN, token.CodeMissingLParen, "expected '(' after function name"); !ok {
		p.synchronize()
		return nil
	}

	var params []*ast.Param
	if !p.at(token.RPAREN) {
		for {
			pPos := posOf(p.cur())
			typ := p.parseTypeName()
			pname, ok := p.expect(token.IDENT, token.CodeInvalidParams, "expected a parameter name")
			if !ok {
				break
			}
			params = append(params, ast.NewParam(pPos, pname.Lexeme, typ))
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' to close parameter list")

	ret := ast.Void
	if p.at(token.ARROW) {
		p.advance()
		ret = p.parseTypeName()
	}

	body := p.parseBlockBody()
	return ast.NewFuncDecl(posOf(startTok), nameTok.Lexeme, params, ret, body)
}
