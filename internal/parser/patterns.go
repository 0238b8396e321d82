package parser

import (
	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/token"
)

// parsePattern parses a full match pattern. A leading constructor may take
// argument sub-patterns: Cons x xs. Nested constructors with arguments
// need parentheses: Cons x (Cons y Nil).
func (p *Parser) parsePattern() ast.Pattern {
	if p.curTokenIs(token.CTOR) {
		pat := &ast.ConstructorPattern{Token: p.curToken, Name: p.curToken.Lexeme}
		for p.patternAtomFollows() {
			p.nextToken()
			arg := p.parsePatternAtom()
			if arg == nil {
				return nil
			}
			pat.Args = append(pat.Args, arg)
		}
		return pat
	}
	return p.parsePatternAtom()
}

func (p *Parser) patternAtomFollows() bool {
	if p.peekToken.Line != p.curToken.Line {
		return false
	}
	switch p.peekToken.Type {
	case token.UNDERSCORE, token.IDENT, token.CTOR, token.INT, token.FLOAT,
		token.CHAR, token.TRUE, token.FALSE, token.MINUS, token.LPAREN,
		token.LBRACE:
		return true
	}
	return false
}

func (p *Parser) parsePatternAtom() ast.Pattern {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Token: p.curToken}

	case token.IDENT:
		return &ast.IdentifierPattern{Token: p.curToken, Value: p.curToken.Lexeme}

	case token.CTOR:
		return &ast.ConstructorPattern{Token: p.curToken, Name: p.curToken.Lexeme}

	case token.INT:
		tok := p.curToken
		lit := p.parseIntegerLiteral(false)
		if lit == nil {
			return nil
		}
		return &ast.LiteralPattern{Token: tok, Value: lit}

	case token.FLOAT:
		tok := p.curToken
		lit := p.parseFloatLiteral(false)
		if lit == nil {
			return nil
		}
		return &ast.LiteralPattern{Token: tok, Value: lit}

	case token.MINUS:
		tok := p.curToken
		switch p.peekToken.Type {
		case token.INT:
			p.nextToken()
			lit := p.parseIntegerLiteral(true)
			if lit == nil {
				return nil
			}
			return &ast.LiteralPattern{Token: tok, Value: lit}
		case token.FLOAT:
			p.nextToken()
			lit := p.parseFloatLiteral(true)
			if lit == nil {
				return nil
			}
			return &ast.LiteralPattern{Token: tok, Value: lit}
		default:
			p.errorf(p.peekToken, "expected numeric literal after '-' in pattern")
			return nil
		}

	case token.CHAR:
		runes := []rune(p.curToken.Lexeme)
		return &ast.LiteralPattern{
			Token: p.curToken,
			Value: &ast.CharLiteral{Token: p.curToken, Value: runes[0]},
		}

	case token.TRUE:
		return &ast.LiteralPattern{
			Token: p.curToken,
			Value: &ast.BooleanLiteral{Token: p.curToken, Value: true},
		}

	case token.FALSE:
		return &ast.LiteralPattern{
			Token: p.curToken,
			Value: &ast.BooleanLiteral{Token: p.curToken, Value: false},
		}

	case token.LPAREN:
		return p.parseParenPattern()

	case token.LBRACE:
		return p.parseRecordPattern()

	default:
		p.errorf(p.curToken, "unexpected token %s in pattern", p.curToken.Type)
		return nil
	}
}

// parseParenPattern handles (), (p) and (p1, p2, ...).
func (p *Parser) parseParenPattern() ast.Pattern {
	tok := p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.LiteralPattern{Token: tok, Value: &ast.UnitLiteral{Token: tok}}
	}

	p.nextToken()
	first := p.parsePattern()
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}

	elements := []ast.Pattern{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // ,
		p.nextToken()
		el := p.parsePattern()
		if el == nil {
			return nil
		}
		elements = append(elements, el)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.TuplePattern{Token: tok, Elements: elements}
}

// parseRecordPattern parses {x = p, y = _}. Record patterns are partial:
// the matched record may carry additional fields.
func (p *Parser) parseRecordPattern() ast.Pattern {
	pat := &ast.RecordPattern{Token: p.curToken, Fields: map[string]ast.Pattern{}}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := p.curToken.Lexeme
		if _, ok := pat.Fields[name]; ok {
			p.errorf(p.curToken, "duplicate record field %q in pattern", name)
			return nil
		}

		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.nextToken()
		sub := p.parsePattern()
		if sub == nil {
			return nil
		}
		pat.Fields[name] = sub

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return pat
}
