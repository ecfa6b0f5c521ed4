package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	Illegal Kind = iota
	EOF

	// Single character.
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	Equals
	Smaller
	Greater
	OpenBracket
	CloseBracket
	Dot
	Semicolon
	OpenParen
	CloseParen
	OpenBrace
	CloseBrace
	Comma
	Colon

	// Two characters.
	EqualsEquals
	BangEquals
	SmallerEquals
	GreaterEquals
	PlusPlus
	MinusMinus
	Arrow

	// Literals.
	String
	Number
	Identifier

	// Keywords.
	Fun
	Val
	Var
	Continue
	Break
	If
	Else
	For
	While
	Import
	In
	Return
	True
	False
	Nil
	And
	Or
)

var kindNames = map[Kind]string{
	Illegal:       "ILLEGAL",
	EOF:           "EOF",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Bang:          "!",
	Equals:        "=",
	Smaller:       "<",
	Greater:       ">",
	OpenBracket:   "[",
	CloseBracket:  "]",
	Dot:           ".",
	Semicolon:     ";",
	OpenParen:     "(",
	CloseParen:    ")",
	OpenBrace:     "{",
	CloseBrace:    "}",
	Comma:         ",",
	Colon:         ":",
	EqualsEquals:  "==",
	BangEquals:    "!=",
	SmallerEquals: "<=",
	GreaterEquals: ">=",
	PlusPlus:      "++",
	MinusMinus:    "--",
	Arrow:         "->",
	String:        "STRING",
	Number:        "NUMBER",
	Identifier:    "IDENTIFIER",
	Fun:           "fun",
	Val:           "val",
	Var:           "var",
	Continue:      "continue",
	Break:         "break",
	If:            "if",
	Else:          "else",
	For:           "for",
	While:         "while",
	Import:        "import",
	In:            "in",
	Return:        "return",
	True:          "true",
	False:         "false",
	Nil:           "nil",
	And:           "and",
	Or:            "or",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("unknown_kind_%d", int(k))
}

// Keywords maps reserved words to their kinds. `import` and `in` are
// reserved without any grammar using them.
var Keywords = map[string]Kind{
	"fun":      Fun,
	"val":      Val,
	"var":      Var,
	"continue": Continue,
	"break":    Break,
	"if":       If,
	"else":     Else,
	"for":      For,
	"while":    While,
	"import":   Import,
	"in":       In,
	"return":   Return,
	"true":     True,
	"false":    False,
	"nil":      Nil,
	"and":      And,
	"or":       Or,
}

// Position is a 1-based line/column location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexeme scanned from source. Start and End are byte offsets
// into the chunk the token was scanned from.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
	Column  int
	Start   int
	End     int
}

// Pos returns the token's line/column.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}
