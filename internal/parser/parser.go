package parser

import (
	"fmt"

	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/lexer"
	"github.com/mell-lang/mell/internal/token"
)

// Operator precedences, lowest first.
const (
	_ int = iota
	LOWEST
	ASSIGN      // :=
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x !x
	CALL        // f x, e.field, e[i]
)

var precedences = map[token.Type]int{
	token.WALRUS:   ASSIGN,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LE:       LESSGREATER,
	token.GE:       LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.PERCENT:  PRODUCT,
}

// Error is a descriptive syntax error with a source position.
type Error struct {
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*Error
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse is the convenience entry point: lex and parse one source unit.
func Parse(file, input string) (*ast.Program, error) {
	p := New(lexer.New(input))
	program := p.ParseProgram()
	program.File = file
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return program, nil
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, &Error{
		Msg:    fmt.Sprintf(format, args...),
		Line:   tok.Line,
		Column: tok.Column,
	})
}

func (p *Parser) peekError(t token.Type) {
	p.errorf(p.peekToken, "expected %s, got %s", t, p.peekToken.Type)
}

// Errors returns all syntax errors collected so far.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// ParseProgram parses a whole source unit: a sequence of top-level let
// bindings, type declarations, loads and expressions.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			// Error recovery: skip to the next plausible statement start.
			p.skipToStatementBoundary()
			continue
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}

	return program
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LET:
		return p.parseLetStatement()
	case token.TYPE:
		return p.parseTypeDeclaration()
	case token.LOAD:
		return p.parseLoadStatement()
	default:
		tok := p.curToken
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		return &ast.ExpressionStatement{Token: tok, Expression: expr}
	}
}

// parseLetStatement handles both the top-level binding form and the
// expression form: if the binding is followed by `in`, it is re-wrapped
// as a let expression.
func (p *Parser) parseLetStatement() ast.Statement {
	letTok := p.curToken
	name, annotation, value, isRec, ok := p.parseLetBinding()
	if !ok {
		return nil
	}

	if p.peekTokenIs(token.IN) {
		p.nextToken() // in
		p.nextToken()
		body := p.parseExpression(LOWEST)
		if body == nil {
			return nil
		}
		return &ast.ExpressionStatement{
			Token: letTok,
			Expression: &ast.LetExpression{
				Token:      letTok,
				Name:       name,
				Annotation: annotation,
				Value:      value,
				Body:       body,
				IsRec:      isRec,
			},
		}
	}

	return &ast.LetStatement{
		Token:      letTok,
		Name:       name,
		Annotation: annotation,
		Value:      value,
		IsRec:      isRec,
	}
}

// parseLetBinding parses `[rec] name [: T] = expr` after the `let` token.
func (p *Parser) parseLetBinding() (*ast.Identifier, ast.TypeExpr, ast.Expression, bool, bool) {
	isRec := false
	if p.peekTokenIs(token.REC) {
		isRec = true
		p.nextToken()
	}

	if !p.expectPeek(token.IDENT) {
		return nil, nil, nil, false, false
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	var annotation ast.TypeExpr
	if p.peekTokenIs(token.COLON) {
		p.nextToken() // :
		p.nextToken()
		annotation = p.parseTypeExpr()
		if annotation == nil {
			return nil, nil, nil, false, false
		}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil, nil, nil, false, false
	}
	p.nextToken()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil, nil, nil, false, false
	}

	return name, annotation, value, isRec, true
}

// parseTypeDeclaration parses `type Name a b = Ctor T ... | Ctor2 | ...`.
func (p *Parser) parseTypeDeclaration() ast.Statement {
	decl := &ast.TypeDeclaration{Token: p.curToken}

	if !p.expectPeek(token.CTOR) {
		return nil
	}
	decl.Name = p.curToken.Lexeme

	for p.peekTokenIs(token.IDENT) {
		p.nextToken()
		decl.Params = append(decl.Params, p.curToken.Lexeme)
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}

	// Optional leading pipe: type T = | A | B
	if p.peekTokenIs(token.PIPE) {
		p.nextToken()
	}

	for {
		if !p.expectPeek(token.CTOR) {
			return nil
		}
		ctor := &ast.ConstructorDef{Token: p.curToken, Name: p.curToken.Lexeme}
		for p.typeAtomFollows() {
			p.nextToken()
			arg := p.parseTypeAtom()
			if arg == nil {
				return nil
			}
			ctor.Args = append(ctor.Args, arg)
		}
		decl.Constructors = append(decl.Constructors, ctor)

		if !p.peekTokenIs(token.PIPE) {
			break
		}
		p.nextToken()
	}

	return decl
}

func (p *Parser) parseLoadStatement() ast.Statement {
	stmt := &ast.LoadStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	stmt.Path = p.curToken.Lexeme
	return stmt
}

// skipToStatementBoundary advances past the broken statement so one syntax
// error does not cascade. It always makes progress.
func (p *Parser) skipToStatementBoundary() {
	p.nextToken()
	for !p.curTokenIs(token.EOF) &&
		!p.curTokenIs(token.LET) &&
		!p.curTokenIs(token.TYPE) &&
		!p.curTokenIs(token.LOAD) {
		p.nextToken()
	}
}
