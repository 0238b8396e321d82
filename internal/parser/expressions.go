package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		opTok := p.peekToken
		p.nextToken()

		if opTok.Type == token.WALRUS {
			p.nextToken()
			// Right associative: r := s := v assigns s first.
			value := p.parseExpression(ASSIGN - 1)
			if value == nil {
				return nil
			}
			left = &ast.AssignExpression{Token: opTok, Target: left, Value: value}
			continue
		}

		opPrec := precedences[opTok.Type]
		p.nextToken()
		right := p.parseExpression(opPrec)
		if right == nil {
			return nil
		}
		left = &ast.InfixExpression{
			Token:    opTok,
			Left:     left,
			Operator: opTok.Lexeme,
			Right:    right,
		}
	}

	return left
}

// parseUnary parses the operand of a binary operator: a lambda, an if, a
// match, a let-in, or an application chain of atoms.
func (p *Parser) parseUnary() ast.Expression {
	switch p.curToken.Type {
	case token.FUN:
		return p.parseFunctionLiteral()
	case token.IF:
		return p.parseIfExpression()
	case token.MATCH:
		return p.parseMatchExpression()
	case token.LET:
		return p.parseLetExpression()
	default:
		return p.parseApplication()
	}
}

// parseApplication parses juxtaposition: `f x y` is ((f x) y). A leading
// constructor collects its arguments instead: `Cons x xs`.
func (p *Parser) parseApplication() ast.Expression {
	expr := p.parseAtom()
	if expr == nil {
		return nil
	}

	if ctor, ok := expr.(*ast.ConstructorExpression); ok {
		for p.atomFollows() {
			p.nextToken()
			arg := p.parseAtom()
			if arg == nil {
				return nil
			}
			ctor.Args = append(ctor.Args, arg)
		}
		return ctor
	}

	for p.atomFollows() {
		tok := p.peekToken
		p.nextToken()
		arg := p.parseAtom()
		if arg == nil {
			return nil
		}
		expr = &ast.CallExpression{Token: tok, Function: expr, Argument: arg}
	}
	return expr
}

// atomFollows reports whether the peek token can begin an application
// argument. Arguments must start on the same line as the function
// expression, otherwise `f x` followed by a new statement line would
// swallow the next expression as another argument.
func (p *Parser) atomFollows() bool {
	if p.peekToken.Line != p.curToken.Line {
		return false
	}
	switch p.peekToken.Type {
	case token.INT, token.FLOAT, token.CHAR, token.TRUE, token.FALSE,
		token.IDENT, token.CTOR, token.LPAREN, token.LBRACE, token.LARRAY,
		token.BANG:
		return true
	}
	return false
}

// parseAtom parses a primary expression plus any postfix projections,
// field accesses and index reads.
func (p *Parser) parseAtom() ast.Expression {
	var expr ast.Expression

	switch p.curToken.Type {
	case token.INT:
		expr = p.parseIntegerLiteral(false)
	case token.FLOAT:
		expr = p.parseFloatLiteral(false)
	case token.MINUS:
		expr = p.parseNegation()
	case token.CHAR:
		runes := []rune(p.curToken.Lexeme)
		expr = &ast.CharLiteral{Token: p.curToken, Value: runes[0]}
	case token.TRUE:
		expr = &ast.BooleanLiteral{Token: p.curToken, Value: true}
	case token.FALSE:
		expr = &ast.BooleanLiteral{Token: p.curToken, Value: false}
	case token.IDENT:
		expr = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.CTOR:
		expr = &ast.ConstructorExpression{Token: p.curToken, Name: p.curToken.Lexeme}
	case token.BANG:
		tok := p.curToken
		p.nextToken()
		value := p.parseAtom()
		if value == nil {
			return nil
		}
		return &ast.DerefExpression{Token: tok, Value: value}
	case token.REF:
		tok := p.curToken
		p.nextToken()
		value := p.parseAtom()
		if value == nil {
			return nil
		}
		expr = &ast.RefExpression{Token: tok, Value: value}
	case token.LOAD:
		p.errorf(p.curToken, "load is only allowed at the top level")
		return nil
	case token.LPAREN:
		expr = p.parseParenExpression()
	case token.LBRACE:
		expr = p.parseRecordLiteral()
	case token.LARRAY:
		expr = p.parseArrayLiteral()
	default:
		p.errorf(p.curToken, "unexpected token %s", p.curToken.Type)
		return nil
	}

	if expr == nil {
		return nil
	}
	return p.parsePostfix(expr)
}

func (p *Parser) parsePostfix(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.peekTokenIs(token.DOT):
			p.nextToken() // .
			p.nextToken()
			switch p.curToken.Type {
			case token.INT:
				idx, err := strconv.Atoi(p.curToken.Lexeme)
				if err != nil {
					p.errorf(p.curToken, "invalid projection index %q", p.curToken.Lexeme)
					return nil
				}
				expr = &ast.ProjectionExpression{Token: p.curToken, Tuple: expr, Index: idx}
			case token.FLOAT:
				// Chained projection: `.1.0` lexes as one float token.
				parts := strings.SplitN(p.curToken.Lexeme, ".", 2)
				idx1, err1 := strconv.Atoi(parts[0])
				idx2, err2 := strconv.Atoi(parts[1])
				if err1 != nil || err2 != nil {
					p.errorf(p.curToken, "invalid projection index %q", p.curToken.Lexeme)
					return nil
				}
				inner := &ast.ProjectionExpression{Token: p.curToken, Tuple: expr, Index: idx1}
				expr = &ast.ProjectionExpression{Token: p.curToken, Tuple: inner, Index: idx2}
			case token.IDENT:
				expr = &ast.MemberExpression{Token: p.curToken, Left: expr, Field: p.curToken.Lexeme}
			default:
				p.errorf(p.curToken, "expected field name or tuple index after '.', got %s", p.curToken.Type)
				return nil
			}
		case p.peekTokenIs(token.LBRACKET):
			p.nextToken() // [
			tok := p.curToken
			p.nextToken()
			index := p.parseExpression(LOWEST)
			if index == nil {
				return nil
			}
			if !p.expectPeek(token.RBRACKET) {
				return nil
			}
			expr = &ast.IndexExpression{Token: tok, Left: expr, Index: index}
		default:
			return expr
		}
	}
}

func (p *Parser) parseIntegerLiteral(negative bool) ast.Expression {
	lexeme := p.curToken.Lexeme
	if negative {
		lexeme = "-" + lexeme
	}
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			p.errorf(p.curToken, "integer literal %s overflows 64 bits", lexeme)
		} else {
			p.errorf(p.curToken, "invalid integer literal %q", lexeme)
		}
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral(negative bool) ast.Expression {
	lexeme := p.curToken.Lexeme
	if negative {
		lexeme = "-" + lexeme
	}
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		p.errorf(p.curToken, "invalid float literal %q", lexeme)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

// parseNegation folds a minus sign into a numeric literal, so that
// -9223372036854775808 parses; any other operand desugars to 0 - e.
func (p *Parser) parseNegation() ast.Expression {
	tok := p.curToken
	switch p.peekToken.Type {
	case token.INT:
		p.nextToken()
		return p.parseIntegerLiteral(true)
	case token.FLOAT:
		p.nextToken()
		return p.parseFloatLiteral(true)
	}

	p.nextToken()
	operand := p.parseAtom()
	if operand == nil {
		return nil
	}
	return &ast.InfixExpression{
		Token:    tok,
		Left:     &ast.IntegerLiteral{Token: tok, Value: 0},
		Operator: "-",
		Right:    operand,
	}
}

// parseParenExpression handles (), (e), and (e1, e2, ...).
func (p *Parser) parseParenExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.UnitLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.COMMA) {
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}

	elements := []ast.Expression{first}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // ,
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		elements = append(elements, el)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.TupleLiteral{Token: tok, Elements: elements}
}

// parseRecordLiteral parses {x = e, y = e}. The field order is preserved.
func (p *Parser) parseRecordLiteral() ast.Expression {
	lit := &ast.RecordLiteral{Token: p.curToken}
	seen := map[string]bool{}

	if p.peekTokenIs(token.RBRACE) {
		p.errorf(p.peekToken, "record literal must have at least one field")
		return nil
	}

	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		name := p.curToken.Lexeme
		if seen[name] {
			p.errorf(p.curToken, "duplicate record field %q", name)
			return nil
		}
		seen[name] = true

		if !p.expectPeek(token.ASSIGN) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		lit.Fields = append(lit.Fields, &ast.RecordField{Name: name, Value: value})

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return lit
}

// parseArrayLiteral parses [|e1, e2|] and the empty array [||].
func (p *Parser) parseArrayLiteral() ast.Expression {
	lit := &ast.ArrayLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RARRAY) {
		p.nextToken()
		return lit
	}

	for {
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, el)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RARRAY) {
		return nil
	}
	return lit
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	lit := &ast.FunctionLiteral{Token: p.curToken}

	switch p.peekToken.Type {
	case token.IDENT:
		p.nextToken()
		lit.Param = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.LPAREN:
		// fun (x: T) -> e
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		lit.Param = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		lit.Annotation = p.parseTypeExpr()
		if lit.Annotation == nil {
			return nil
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	default:
		p.peekError(token.IDENT)
		return nil
	}

	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	lit.Body = p.parseExpression(LOWEST)
	if lit.Body == nil {
		return nil
	}
	return lit
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}

	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if expr.Condition == nil {
		return nil
	}

	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	expr.Consequence = p.parseExpression(LOWEST)
	if expr.Consequence == nil {
		return nil
	}

	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(LOWEST)
	if expr.Alternative == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseLetExpression() ast.Expression {
	letTok := p.curToken
	name, annotation, value, isRec, ok := p.parseLetBinding()
	if !ok {
		return nil
	}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}

	return &ast.LetExpression{
		Token:      letTok,
		Name:       name,
		Annotation: annotation,
		Value:      value,
		Body:       body,
		IsRec:      isRec,
	}
}

func (p *Parser) parseMatchExpression() ast.Expression {
	expr := &ast.MatchExpression{Token: p.curToken}

	p.nextToken()
	expr.Scrutinee = p.parseExpression(LOWEST)
	if expr.Scrutinee == nil {
		return nil
	}

	if !p.expectPeek(token.WITH) {
		return nil
	}

	for p.peekTokenIs(token.PIPE) {
		p.nextToken() // |
		p.nextToken()
		pattern := p.parsePattern()
		if pattern == nil {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		p.nextToken()
		body := p.parseExpression(LOWEST)
		if body == nil {
			return nil
		}
		expr.Arms = append(expr.Arms, &ast.MatchArm{Pattern: pattern, Body: body})
	}

	if len(expr.Arms) == 0 {
		p.errorf(p.peekToken, "match expression needs at least one arm")
		return nil
	}
	return expr
}
