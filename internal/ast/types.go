package ast

import (
	"github.com/mell-lang/mell/internal/token"
)

// NamedType is a type name with optional arguments: Int, Option Int.
// Lowercase names are type variables introduced by a declaration's
// parameter list (or by an annotation).
type NamedType struct {
	Token token.Token
	Name  string
	Args  []TypeExpr
}

func (nt *NamedType) typeExprNode()         {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// FuncType is a function annotation: T1 -> T2 (right associative).
type FuncType struct {
	Token  token.Token
	Param  TypeExpr
	Result TypeExpr
}

func (ft *FuncType) typeExprNode()         {}
func (ft *FuncType) TokenLiteral() string  { return ft.Token.Lexeme }
func (ft *FuncType) GetToken() token.Token { return ft.Token }

// TupleType is a tuple annotation: (T1, T2).
type TupleType struct {
	Token    token.Token
	Elements []TypeExpr
}

func (tt *TupleType) typeExprNode()         {}
func (tt *TupleType) TokenLiteral() string  { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token { return tt.Token }

// RecordType is a closed record annotation: {x: Int, y: Bool}.
type RecordType struct {
	Token  token.Token
	Fields map[string]TypeExpr
}

func (rt *RecordType) typeExprNode()         {}
func (rt *RecordType) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *RecordType) GetToken() token.Token { return rt.Token }

// RefType is a reference cell annotation: Ref T.
type RefType struct {
	Token token.Token
	Elem  TypeExpr
}

func (rt *RefType) typeExprNode()         {}
func (rt *RefType) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *RefType) GetToken() token.Token { return rt.Token }
