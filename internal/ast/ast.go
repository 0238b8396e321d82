package ast

import (
	"github.com/mell-lang/mell/internal/token"
)

// Node is the base interface for all nodes of the expression tree. The tree
// is built once by the parser and never mutated afterwards.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Statement is a top-level form of a source unit: a (possibly recursive)
// let binding, a type declaration, a load, or a trailing expression.
type Statement interface {
	Node
	statementNode()
}

// Expression is any evaluable node.
type Expression interface {
	Node
	expressionNode()
}

// TypeExpr is a syntactic type annotation. The checker converts these into
// typesystem values; the evaluator ignores them.
type TypeExpr interface {
	Node
	typeExprNode()
}

// Pattern appears on the left side of match arms.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root of every parsed source unit: an ordered sequence of
// top-level statements (the file/REPL sequential-let form).
type Program struct {
	File       string // source path, "" for REPL input
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// LetStatement is a top-level binding: let x = e, or let rec f : T = e.
type LetStatement struct {
	Token      token.Token // the 'let' token
	Name       *Identifier
	Annotation TypeExpr // optional
	Value      Expression
	IsRec      bool
}

func (ls *LetStatement) statementNode()        {}
func (ls *LetStatement) TokenLiteral() string  { return ls.Token.Lexeme }
func (ls *LetStatement) GetToken() token.Token { return ls.Token }

// TypeDeclaration declares a sum type and its constructors:
// type Shape a = Circle a | Point
type TypeDeclaration struct {
	Token        token.Token // the 'type' token
	Name         string
	Params       []string // lowercase type parameters, in order
	Constructors []*ConstructorDef
}

// ConstructorDef is one alternative of a sum type declaration.
type ConstructorDef struct {
	Token token.Token // the constructor name token
	Name  string
	Args  []TypeExpr
}

func (td *TypeDeclaration) statementNode()        {}
func (td *TypeDeclaration) TokenLiteral() string  { return td.Token.Lexeme }
func (td *TypeDeclaration) GetToken() token.Token { return td.Token }

// LoadStatement pulls the top-level bindings of another source unit into
// the current environment: load "lib.mel"
type LoadStatement struct {
	Token token.Token // the 'load' token
	Path  string
}

func (ld *LoadStatement) statementNode()        {}
func (ld *LoadStatement) TokenLiteral() string  { return ld.Token.Lexeme }
func (ld *LoadStatement) GetToken() token.Token { return ld.Token }

// ExpressionStatement wraps a bare expression at the top level.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }
