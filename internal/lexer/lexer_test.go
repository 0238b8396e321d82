package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mell-lang/mell/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let rec fact : Int -> Int = fun n ->
  if n <= 1 then 1 else n * fact (n - 1)

type Shape a = Circle Float | Point
let r = ref 0
r := !r + 1
# a comment
let pair = (1, 'a')
let arr = [|1, 2|]
let ok = true && false || x != y
load "lib/util"
match p with | {x = _} -> 0.5`

	tests := []struct {
		expectedType   token.Type
		expectedLexeme string
	}{
		{token.LET, "let"},
		{token.REC, "rec"},
		{token.IDENT, "fact"},
		{token.COLON, ":"},
		{token.CTOR, "Int"},
		{token.ARROW, "->"},
		{token.CTOR, "Int"},
		{token.ASSIGN, "="},
		{token.FUN, "fun"},
		{token.IDENT, "n"},
		{token.ARROW, "->"},
		{token.IF, "if"},
		{token.IDENT, "n"},
		{token.LE, "<="},
		{token.INT, "1"},
		{token.THEN, "then"},
		{token.INT, "1"},
		{token.ELSE, "else"},
		{token.IDENT, "n"},
		{token.ASTERISK, "*"},
		{token.IDENT, "fact"},
		{token.LPAREN, "("},
		{token.IDENT, "n"},
		{token.MINUS, "-"},
		{token.INT, "1"},
		{token.RPAREN, ")"},
		{token.TYPE, "type"},
		{token.CTOR, "Shape"},
		{token.IDENT, "a"},
		{token.ASSIGN, "="},
		{token.CTOR, "Circle"},
		{token.CTOR, "Float"},
		{token.PIPE, "|"},
		{token.CTOR, "Point"},
		{token.LET, "let"},
		{token.IDENT, "r"},
		{token.ASSIGN, "="},
		{token.REF, "ref"},
		{token.INT, "0"},
		{token.IDENT, "r"},
		{token.WALRUS, ":="},
		{token.BANG, "!"},
		{token.IDENT, "r"},
		{token.PLUS, "+"},
		{token.INT, "1"},
		{token.LET, "let"},
		{token.IDENT, "pair"},
		{token.ASSIGN, "="},
		{token.LPAREN, "("},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.CHAR, "a"},
		{token.RPAREN, ")"},
		{token.LET, "let"},
		{token.IDENT, "arr"},
		{token.ASSIGN, "="},
		{token.LARRAY, "[|"},
		{token.INT, "1"},
		{token.COMMA, ","},
		{token.INT, "2"},
		{token.RARRAY, "|]"},
		{token.LET, "let"},
		{token.IDENT, "ok"},
		{token.ASSIGN, "="},
		{token.TRUE, "true"},
		{token.AND, "&&"},
		{token.FALSE, "false"},
		{token.OR, "||"},
		{token.IDENT, "x"},
		{token.NOT_EQ, "!="},
		{token.IDENT, "y"},
		{token.LOAD, "load"},
		{token.STRING, "lib/util"},
		{token.MATCH, "match"},
		{token.IDENT, "p"},
		{token.WITH, "with"},
		{token.PIPE, "|"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.UNDERSCORE, "_"},
		{token.RBRACE, "}"},
		{token.ARROW, "->"},
		{token.FLOAT, "0.5"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		assert.Equal(t, tt.expectedType, tok.Type, "token %d type", i)
		assert.Equal(t, tt.expectedLexeme, tok.Lexeme, "token %d lexeme", i)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("let x = 1\nlet y = 2")

	tok := l.NextToken()
	assert.Equal(t, 1, tok.Line)
	assert.Equal(t, 1, tok.Column)

	for tok.Type != token.EOF && tok.Lexeme != "y" {
		tok = l.NextToken()
	}
	assert.Equal(t, 2, tok.Line)
	assert.Equal(t, 5, tok.Column)
}

func TestCharEscapes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'\n'`, "\n"},
		{`'\t'`, "\t"},
		{`'\\'`, `\`},
		{`'\''`, "'"},
		{`'z'`, "z"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		assert.Equal(t, token.CHAR, tok.Type, "input %s", tt.input)
		assert.Equal(t, tt.expected, tok.Lexeme, "input %s", tt.input)
	}
}

func TestNegativeNumberLexing(t *testing.T) {
	l := New("-5")
	tok := l.NextToken()
	assert.Equal(t, token.MINUS, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, "5", tok.Lexeme)
}
