package ast

import (
	"github.com/mell-lang/mell/internal/token"
)

// Identifier is a variable reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral is a 64-bit integer literal. Overflowing literals are
// rejected by the lexer, so Value is always in range.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type CharLiteral struct {
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token { return cl.Token }

// UnitLiteral is the () value.
type UnitLiteral struct {
	Token token.Token
}

func (ul *UnitLiteral) expressionNode()       {}
func (ul *UnitLiteral) TokenLiteral() string  { return ul.Token.Lexeme }
func (ul *UnitLiteral) GetToken() token.Token { return ul.Token }

// FunctionLiteral is a single-parameter lambda: fun x -> e, with an
// optional parameter annotation: fun (x: Int) -> e.
type FunctionLiteral struct {
	Token      token.Token // the 'fun' token
	Param      *Identifier
	Annotation TypeExpr // optional
	Body       Expression
}

func (fl *FunctionLiteral) expressionNode()       {}
func (fl *FunctionLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token { return fl.Token }

// CallExpression applies a function to a single argument. Multi-argument
// calls are nested applications (currying).
type CallExpression struct {
	Token    token.Token
	Function Expression
	Argument Expression
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// LetExpression is the expression form: let x = e1 in e2, or
// let rec f : T = e1 in e2.
type LetExpression struct {
	Token      token.Token // the 'let' token
	Name       *Identifier
	Annotation TypeExpr // optional
	Value      Expression
	Body       Expression
	IsRec      bool
}

func (le *LetExpression) expressionNode()       {}
func (le *LetExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LetExpression) GetToken() token.Token { return le.Token }

type IfExpression struct {
	Token       token.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// InfixExpression is a binary operator application.
type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

type TupleLiteral struct {
	Token    token.Token // the '(' token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// ProjectionExpression extracts a tuple component by position: e.0, e.1
type ProjectionExpression struct {
	Token token.Token // the index token
	Tuple Expression
	Index int
}

func (pe *ProjectionExpression) expressionNode()       {}
func (pe *ProjectionExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *ProjectionExpression) GetToken() token.Token { return pe.Token }

// RecordField is one field of a record literal. Fields keep their written
// order so evaluation side effects run left to right.
type RecordField struct {
	Name  string
	Value Expression
}

type RecordLiteral struct {
	Token  token.Token // the '{' token
	Fields []*RecordField
}

func (rl *RecordLiteral) expressionNode()       {}
func (rl *RecordLiteral) TokenLiteral() string  { return rl.Token.Lexeme }
func (rl *RecordLiteral) GetToken() token.Token { return rl.Token }

// MemberExpression is record field access: e.name
type MemberExpression struct {
	Token token.Token // the field name token
	Left  Expression
	Field string
}

func (me *MemberExpression) expressionNode()       {}
func (me *MemberExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token { return me.Token }

// ArrayLiteral is a fixed-length homogeneous array: [|e1, e2|]
type ArrayLiteral struct {
	Token    token.Token // the '[|' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// IndexExpression reads an array element: e[i]
type IndexExpression struct {
	Token token.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// ConstructorExpression builds a sum-type value: Some e, Cons x xs, None.
// The parser groups constructor arguments eagerly, so arity is checked
// against the declaration at type-check and eval time.
type ConstructorExpression struct {
	Token token.Token // the constructor name token
	Name  string
	Args  []Expression
}

func (ce *ConstructorExpression) expressionNode()       {}
func (ce *ConstructorExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *ConstructorExpression) GetToken() token.Token { return ce.Token }

// MatchArm is one "| pattern -> body" alternative.
type MatchArm struct {
	Pattern Pattern
	Body    Expression
}

type MatchExpression struct {
	Token     token.Token // the 'match' token
	Scrutinee Expression
	Arms      []*MatchArm
}

func (me *MatchExpression) expressionNode()       {}
func (me *MatchExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MatchExpression) GetToken() token.Token { return me.Token }

// RefExpression allocates a fresh mutable cell: ref e
type RefExpression struct {
	Token token.Token // the 'ref' token
	Value Expression
}

func (re *RefExpression) expressionNode()       {}
func (re *RefExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RefExpression) GetToken() token.Token { return re.Token }

// DerefExpression reads a cell: !e
type DerefExpression struct {
	Token token.Token // the '!' token
	Value Expression
}

func (de *DerefExpression) expressionNode()       {}
func (de *DerefExpression) TokenLiteral() string  { return de.Token.Lexeme }
func (de *DerefExpression) GetToken() token.Token { return de.Token }

// AssignExpression overwrites a cell and yields unit: e1 := e2
type AssignExpression struct {
	Token  token.Token // the ':=' token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }
