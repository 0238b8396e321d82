package ast

import (
	"github.com/mell-lang/mell/internal/token"
)

// WildcardPattern matches anything and binds nothing: _
type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode()          {}
func (wp *WildcardPattern) TokenLiteral() string  { return wp.Token.Lexeme }
func (wp *WildcardPattern) GetToken() token.Token { return wp.Token }

// IdentifierPattern matches anything and binds it to a name.
type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (ip *IdentifierPattern) patternNode()          {}
func (ip *IdentifierPattern) TokenLiteral() string  { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token { return ip.Token }

// LiteralPattern matches by equality against a literal expression
// (integer, float, boolean, char or unit).
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (lp *LiteralPattern) patternNode()          {}
func (lp *LiteralPattern) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *LiteralPattern) GetToken() token.Token { return lp.Token }

// TuplePattern destructures a tuple positionally.
type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()          {}
func (tp *TuplePattern) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token { return tp.Token }

// RecordPattern destructures named fields. It is partial: the value may
// carry more fields than the pattern names.
type RecordPattern struct {
	Token  token.Token
	Fields map[string]Pattern
}

func (rp *RecordPattern) patternNode()          {}
func (rp *RecordPattern) TokenLiteral() string  { return rp.Token.Lexeme }
func (rp *RecordPattern) GetToken() token.Token { return rp.Token }

// ConstructorPattern matches a sum-type value by tag, then recurses into
// the payload sub-patterns.
type ConstructorPattern struct {
	Token token.Token
	Name  string
	Args  []Pattern
}

func (cp *ConstructorPattern) patternNode()          {}
func (cp *ConstructorPattern) TokenLiteral() string  { return cp.Token.Lexeme }
func (cp *ConstructorPattern) GetToken() token.Token { return cp.Token }
