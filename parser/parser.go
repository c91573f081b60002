// Package parser implements the recursive-descent parser with
// panic-mode error recovery described in spec §4.2: predictive one-
// or two-token lookahead, layered expression precedence, and
// synchronization to a statement-starting keyword or a closing brace
// whenever a production fails.
package parser

import (
	"fmt"

	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/lexer"
	"github.com/skx/source-compiler/token"
)

// Parser holds parse-time state: the token stream, a read cursor, the
// accumulated diagnostics, the set of known composite-type names seen
// so far (so a later `Name ident` is recognized as a declaration even
// without a keyword - spec §4.2 "Known types"), and the expression-id
// generator shared by every node built during this parse.
type Parser struct {
	toks []token.Token
	pos  int

	errors []token.Diagnostic

	// knownTypes maps a declared struct/class name to its kind
	// ("struct" or "class"), populated as type declarations are parsed.
	knownTypes map[string]string

	ids *ast.IDGen
}

// Parse lexes and parses a single module's source text into a Program.
// A lexical failure is returned as-is (spec §7: the lexer's failures
// are fatal, single diagnostics). A parse failure, once one or more
// diagnostics have been recorded, is returned as a *token.AggregateError
// once the whole program has been walked (spec §4.2, §7).
func Parse(input string) (*ast.Program, error) {
	toks, err := lexer.Tokens(input)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		toks:       toks,
		knownTypes: make(map[string]string),
		ids:        &ast.IDGen{},
	}

	prog := p.parseProgram()

	if aggErr := token.NewAggregateError(p.errors); aggErr != nil {
		return nil, aggErr
	}
	return prog, nil
}

// --- cursor helpers ---------------------------------------------------

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }
func (p *Parser) atEOF() bool          { return p.cur().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// expect consumes the current token if it has kind k, recording a
// diagnostic and leaving the cursor untouched otherwise.
func (p *Parser) expect(k token.Kind, code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf(code, "%s (got %s)", msg, p.cur().Kind)
	return token.Token{}, false
}

func (p *Parser) errorf(code, format string, args ...interface{}) {
	t := p.cur()
	p.errors = append(p.errors, token.Diagnostic{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Line:     t.Line,
		Col:      t.Col,
		Severity: token.SeverityError,
	})
}

// syncKinds anchors panic-mode recovery: every statement-starting
// keyword, the top-level declaration starters, a closing brace, and
// the main-program delimiters.
var syncKinds = map[token.Kind]bool{
	token.IMPORT: true, token.STRUCT: true, token.CLASS: true, token.FUNCTION: true,
	token.IF: true, token.WHILE: true, token.FOR: true, token.DO: true,
	token.SWITCH: true, token.BREAK: true, token.CONTINUE: true,
	token.PRINT: true, token.RETURN: true,
	token.TYPE_INT: true, token.TYPE_FLOAT: true, token.TYPE_BOOL: true,
	token.TYPE_TEXT: true, token.TYPE_VOID: true,
	token.RBRACE: true, token.BEGIN_MAIN: true, token.END_MAIN: true,
}

// synchronize advances at least one token (guaranteeing forward
// progress even if the cursor was already sitting on a sync point)
// then skips forward until a sync point or EOF.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEOF() {
		if syncKinds[p.cur().Kind] {
			return
		}
		p.advance()
	}
}

func posOf(t token.Token) ast.Pos { return ast.Pos{Line: t.Line, Col: t.Col} }

// --- expression grammar, low to high precedence -----------------------

func (p *Parser) parseExpr() ast.Expr { return p.parseLogicalOr() }

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.at(token.OR) {
		pos := posOf(p.cur())
		p.advance()
		right := p.parseLogicalAnd()
		left = ast.NewBinary(p.ids, pos, "||", left, right)
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AND) {
		pos := posOf(p.cur())
		p.advance()
		right := p.parseEquality()
		left = ast.NewBinary(p.ids, pos, "&&", left, right)
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NE) {
		op := p.cur()
		p.advance()
		right := p.parseRelational()
		left = ast.NewBinary(p.ids, posOf(op), string(op.Kind), left, right)
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) {
		op := p.cur()
		p.advance()
		right := p.parseAdditive()
		left = ast.NewBinary(p.ids, posOf(op), string(op.Kind), left, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.cur()
		p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinary(p.ids, posOf(op), string(op.Kind), left, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.cur()
		p.advance()
		right := p.parseUnary()
		left = ast.NewBinary(p.ids, posOf(op), string(op.Kind), left, right)
	}
	return left
}

// parseUnary handles right-associative "!"/"-" and the TYPE(expr) cast
// form (spec §4.2's cast disambiguation: a primitive keyword directly
// followed by "(" at the start of a unary production).
func (p *Parser) parseUnary() ast.Expr {
	if p.at(token.NOT) || p.at(token.MINUS) {
		op := p.cur()
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnary(p.ids, posOf(op), string(op.Kind), operand)
	}

	if isPrimitiveTypeKind(p.cur().Kind) && p.peek(1).Kind == token.LPAREN {
		typeTok := p.cur()
		typ := token.Canonical(typeTok.Kind)
		p.advance()
		p.advance() // '('
		inner := p.parseExpr()
		p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' to close cast")
		return ast.NewCast(p.ids, posOf(typeTok), typ, inner)
	}

	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.at(token.LBRACKET):
			pos := posOf(p.cur())
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBRACKET, token.CodeMissingRBrace, "expected ']' to close index")
			expr = ast.NewIndex(p.ids, pos, expr, idx)
		case p.at(token.DOT):
			pos := posOf(p.cur())
			p.advance()
			name, ok := p.expect(token.IDENT, token.CodeUnexpectedToken, "expected field name after '.'")
			if !ok {
				return expr
			}
			expr = ast.NewMember(p.ids, pos, expr, name.Lexeme)
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()
	pos := posOf(t)

	switch t.Kind {
	case token.INT:
		p.advance()
		return ast.NewIntLit(p.ids, pos, t.IntVal)
	case token.FLOAT:
		p.advance()
		return ast.NewFloatLit(p.ids, pos, t.FloatVal)
	case token.TRUE:
		p.advance()
		return ast.NewBoolLit(p.ids, pos, true)
	case token.FALSE:
		p.advance()
		return ast.NewBoolLit(p.ids, pos, false)
	case token.STRING:
		p.advance()
		return ast.NewStringLit(p.ids, pos, t.StrVal)
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' to close parenthesized expression")
		return inner
	case token.IDENT:
		p.advance()
		if p.at(token.LPAREN) {
			p.advance()
			var args []ast.Expr
			if !p.at(token.RPAREN) {
				args = append(args, p.parseExpr())
				for p.at(token.COMMA) {
					p.advance()
					args = append(args, p.parseExpr())
				}
			}
			p.expect(token.RPAREN, token.CodeMissingRParen, "expected ')' to close call arguments")
			return ast.NewCall(p.ids, pos, t.Lexeme, args)
		}
		return ast.NewIdent(p.ids, pos, t.Lexeme)
	}

	p.errorf(token.CodeInvalidExpression, "expected an expression, got %s", t.Kind)
	// Don't consume: let the caller's synchronize() make progress, and
	// return a placeholder so the caller always has a non-nil Expr.
	return ast.NewIntLit(p.ids, pos, 0)
}

func isPrimitiveTypeKind(k token.Kind) bool {
	switch k {
	case token.TYPE_INT, token.TYPE_FLOAT, token.TYPE_BOOL, token.TYPE_TEXT, token.TYPE_VOID:
		return true
	}
	return false
}
