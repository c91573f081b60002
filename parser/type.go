package parser

import (
	"github.com/skx/source-compiler/ast"
	"github.com/skx/source-compiler/token"
)

// isTypeStart reports whether the current token can begin a type name:
// a primitive keyword, struct/class, or an already-known composite name.
func (p *Parser) isTypeStart() bool {
	if isPrimitiveTypeKind(p.cur().Kind) {
		return true
	}
	if p.at(token.STRUCT) || p.at(token.CLASS) {
		return true
	}
	if p.at(token.IDENT) {
		_, ok := p.knownTypes[p.cur().Lexeme]
		return ok
	}
	return false
}

// isVarDeclStart implements spec §4.2's disambiguation: a primitive
// type keyword followed by an identifier, struct/class followed by
// identifier followed by identifier, or a known composite name
// followed by an identifier.
func (p *Parser) isVarDeclStart() bool {
	switch {
	case isPrimitiveTypeKind(p.cur().Kind):
		return p.peek(1).Kind == token.IDENT
	case p.at(token.STRUCT) || p.at(token.CLASS):
		return p.peek(1).Kind == token.IDENT && p.peek(2).Kind == token.IDENT
	case p.at(token.IDENT):
		if _, ok := p.knownTypes[p.cur().Lexeme]; ok {
			return p.peek(1).Kind == token.IDENT
		}
	}
	return false
}

// parseTypeName consumes a full type name: a primitive keyword, a
// "struct NAME"/"class NAME" form, or a known composite name, followed
// by zero or more "[N]" suffixes building the recursive array form
// (spec §3's "array<ELEM,N>").
func (p *Parser) parseTypeName() string {
	var base string

	switch {
	case isPrimitiveTypeKind(p.cur().Kind):
		base = token.Canonical(p.cur().Kind)
		p.advance()

	case p.at(token.STRUCT) || p.at(token.CLASS):
		kind := string(p.cur().Kind)
		if kind == string(token.STRUCT) {
			kind = "struct"
		} else {
			kind = "class"
		}
		p.advance()
		name, ok := p.expect(token.IDENT, token.CodeUnknownType, "expected a composite type name")
		if !ok {
			return ast.Void
		}
		base = kind + " " + name.Lexeme

	case p.at(token.IDENT):
		name := p.cur().Lexeme
		kind, ok := p.knownTypes[name]
		if !ok {
			p.errorf(token.CodeUnknownType, "unknown type %q", name)
			p.advance()
			return ast.Void
		}
		p.advance()
		base = kind + " " + name

	default:
		p.errorf(token.CodeUnknownType, "expected a type name, got %s", p.cur().Kind)
		return ast.Void
	}

	for p.at(token.LBRACKET) {
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
		base = ast.ArrayType(base, int(sizeTok.IntVal))
	}

	return base
}
