package parser

import (
	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/token"
)

// parseTypeExpr parses a type annotation. Arrows are right associative:
// Int -> Int -> Bool is Int -> (Int -> Bool).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	left := p.parseTypeApp()
	if left == nil {
		return nil
	}

	if p.peekTokenIs(token.ARROW) {
		tok := p.peekToken
		p.nextToken() // ->
		p.nextToken()
		result := p.parseTypeExpr()
		if result == nil {
			return nil
		}
		return &ast.FuncType{Token: tok, Param: left, Result: result}
	}

	return left
}

// parseTypeApp parses an applied type name (Option Int, Ref a) or falls
// through to a type atom.
func (p *Parser) parseTypeApp() ast.TypeExpr {
	switch p.curToken.Type {
	case token.REF:
		tok := p.curToken
		p.nextToken()
		elem := p.parseTypeAtom()
		if elem == nil {
			return nil
		}
		return &ast.RefType{Token: tok, Elem: elem}

	case token.CTOR:
		nt := &ast.NamedType{Token: p.curToken, Name: p.curToken.Lexeme}
		for p.typeAtomFollows() {
			p.nextToken()
			arg := p.parseTypeAtom()
			if arg == nil {
				return nil
			}
			nt.Args = append(nt.Args, arg)
		}
		return nt

	default:
		return p.parseTypeAtom()
	}
}

func (p *Parser) typeAtomFollows() bool {
	if p.peekToken.Line != p.curToken.Line {
		return false
	}
	switch p.peekToken.Type {
	case token.CTOR, token.IDENT, token.LPAREN, token.LBRACE:
		return true
	}
	return false
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	switch p.curToken.Type {
	case token.CTOR:
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Lexeme}

	case token.IDENT:
		// Lowercase names are type variables.
		return &ast.NamedType{Token: p.curToken, Name: p.curToken.Lexeme}

	case token.LPAREN:
		return p.parseParenType()

	case token.LBRACE:
		return p.parseRecordType()

	default:
		p.errorf(p.curToken, "unexpected token %s in type", p.curToken.Type)
		return nil
	}
}

// parseParenType handles grouping (T) and tuple types (T1, T2).
func (p *Parser) parseParenType() ast.TypeExpr {
	tok := p.curToken

	p.nextToken()
	first := p.parseTypeExpr()
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}

	elements := []ast.TypeExpr{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // ,
		p.nextToken()
		el := p.parseTypeExpr()
		if el == nil {
			return nil
		}
		elements = append(elements, el)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.TupleType{Token: tok, Elements: elements}
}

// parseRecordType parses a closed record annotation {x: Int, y: Bool}.
func (p *Parser) parseRecordType() ast.TypeExpr {
	rt := &ast.RecordType{Token: p.curToken, Fields: map[string]ast.TypeExpr{}}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := p.curToken.Lexeme
		if _, ok := rt.Fields[name]; ok {
			p.errorf(p.curToken, "duplicate record field %q in type", name)
			return nil
		}

		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		fieldType := p.parseTypeExpr()
		if fieldType == nil {
			return nil
		}
		rt.Fields[name] = fieldType

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return rt
}
