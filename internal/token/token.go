package token

type Type string

type Token struct {
	Type   Type
	Lexeme string // the raw text of the token
	Line   int
	Column int
}

const (
	ILLEGAL Type = "ILLEGAL"
	EOF     Type = "EOF"

	// Identifiers and literals
	IDENT  Type = "IDENT"  // foo, bar (lowercase first letter)
	CTOR   Type = "CTOR"   // Some, Cons (uppercase first letter)
	INT    Type = "INT"    // 123
	FLOAT  Type = "FLOAT"  // 1.5
	CHAR   Type = "CHAR"   // 'a'
	STRING Type = "STRING" // "lib.mel" (only valid after load)

	// Operators
	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	PERCENT  Type = "%"
	EQ       Type = "=="
	NOT_EQ   Type = "!="
	LT       Type = "<"
	GT       Type = ">"
	LE       Type = "<="
	GE       Type = ">="
	AND      Type = "&&"
	OR       Type = "||"
	BANG     Type = "!"
	ASSIGN   Type = "="
	WALRUS   Type = ":="
	ARROW    Type = "->"

	// Delimiters
	COMMA      Type = ","
	COLON      Type = ":"
	DOT        Type = "."
	PIPE       Type = "|"
	LPAREN     Type = "("
	RPAREN     Type = ")"
	LBRACE     Type = "{"
	RBRACE     Type = "}"
	LBRACKET   Type = "["
	RBRACKET   Type = "]"
	LARRAY     Type = "[|"
	RARRAY     Type = "|]"
	UNDERSCORE Type = "_"

	// Keywords
	LET   Type = "LET"
	REC   Type = "REC"
	IN    Type = "IN"
	FUN   Type = "FUN"
	IF    Type = "IF"
	THEN  Type = "THEN"
	ELSE  Type = "ELSE"
	MATCH Type = "MATCH"
	WITH  Type = "WITH"
	TYPE  Type = "TYPE"
	OF    Type = "OF"
	REF   Type = "REF"
	LOAD  Type = "LOAD"
	TRUE  Type = "TRUE"
	FALSE Type = "FALSE"
)

var keywords = map[string]Type{
	"let":   LET,
	"rec":   REC,
	"in":    IN,
	"fun":   FUN,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
	"match": MATCH,
	"with":  WITH,
	"type":  TYPE,
	"of":    OF,
	"ref":   REF,
	"load":  LOAD,
	"true":  TRUE,
	"false": FALSE,
}

// LookupIdent returns the keyword type for ident, or IDENT/CTOR based on
// the case of the first letter.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	if ident[0] >= 'A' && ident[0] <= 'Z' {
		return CTOR
	}
	return IDENT
}
