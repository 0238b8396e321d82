package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/mell-lang/mell/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	var tok token.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.EQ, "==")
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = l.makeToken(token.ARROW, "->")
		} else {
			tok = l.newToken(token.MINUS)
		}
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '/':
		tok = l.newToken(token.SLASH)
	case '%':
		tok = l.newToken(token.PERCENT)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.NOT_EQ, "!=")
		} else {
			tok = l.newToken(token.BANG)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.LE, "<=")
		} else {
			tok = l.newToken(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.GE, ">=")
		} else {
			tok = l.newToken(token.GT)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.makeToken(token.AND, "&&")
		} else {
			tok = l.newToken(token.ILLEGAL)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.makeToken(token.OR, "||")
		} else if l.peekChar() == ']' {
			l.readChar()
			tok = l.makeToken(token.RARRAY, "|]")
		} else {
			tok = l.newToken(token.PIPE)
		}
	case ':':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.makeToken(token.WALRUS, ":=")
		} else {
			tok = l.newToken(token.COLON)
		}
	case ',':
		tok = l.newToken(token.COMMA)
	case '.':
		tok = l.newToken(token.DOT)
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case '[':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.makeToken(token.LARRAY, "[|")
		} else {
			tok = l.newToken(token.LBRACKET)
		}
	case ']':
		tok = l.newToken(token.RBRACKET)
	case '\'':
		return l.readCharLiteral()
	case '"':
		return l.readStringLiteral()
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			return l.readIdentifier()
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType token.Type) token.Token {
	return token.Token{Type: tokenType, Lexeme: string(l.ch), Line: l.line, Column: l.column}
}

// makeToken builds a multi-character token ending at the current position.
func (l *Lexer) makeToken(tokenType token.Type, lexeme string) token.Token {
	return token.Token{Type: tokenType, Lexeme: lexeme, Line: l.line, Column: l.column - len(lexeme) + 1}
}

func (l *Lexer) skipWhitespace() {
	for {
		if l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
			l.readChar()
			continue
		}
		// line comments
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		return
	}
}

func (l *Lexer) readIdentifier() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[start:l.position]
	if lexeme == "_" {
		return token.Token{Type: token.UNDERSCORE, Lexeme: lexeme, Line: line, Column: column}
	}
	return token.Token{Type: token.LookupIdent(lexeme), Lexeme: lexeme, Line: line, Column: column}
}

func (l *Lexer) readNumber() token.Token {
	line, column := l.line, l.column
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	tokenType := token.Type(token.INT)
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return token.Token{Type: tokenType, Lexeme: l.input[start:l.position], Line: line, Column: column}
}

func (l *Lexer) readCharLiteral() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote

	var value rune
	switch l.ch {
	case 0, '\'':
		return token.Token{Type: token.ILLEGAL, Lexeme: "'", Line: line, Column: column}
	case '\\':
		l.readChar()
		switch l.ch {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		case 'r':
			value = '\r'
		case '\\':
			value = '\\'
		case '\'':
			value = '\''
		case '0':
			value = 0
		default:
			return token.Token{Type: token.ILLEGAL, Lexeme: string(l.ch), Line: line, Column: column}
		}
	default:
		value = l.ch
	}
	l.readChar()

	if l.ch != '\'' {
		return token.Token{Type: token.ILLEGAL, Lexeme: string(value), Line: line, Column: column}
	}
	l.readChar() // consume closing quote

	return token.Token{Type: token.CHAR, Lexeme: string(value), Line: line, Column: column}
}

func (l *Lexer) readStringLiteral() token.Token {
	line, column := l.line, l.column
	l.readChar() // consume opening quote

	var out []rune
	for l.ch != '"' {
		if l.ch == 0 {
			return token.Token{Type: token.ILLEGAL, Lexeme: string(out), Line: line, Column: column}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case '\\':
				out = append(out, '\\')
			case '"':
				out = append(out, '"')
			default:
				out = append(out, l.ch)
			}
			l.readChar()
			continue
		}
		out = append(out, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote

	return token.Token{Type: token.STRING, Lexeme: string(out), Line: line, Column: column}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
