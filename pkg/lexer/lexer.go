package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"crispy/interpreter-go/pkg/token"
)

// Error reports a lexical problem. Scanning continues after it is recorded.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Option adjusts a Lexer before scanning.
type Option func(*Lexer)

// WithLineOffset shifts every reported line by offset. REPL sessions use it
// so that diagnostics count lines across all submitted chunks.
func WithLineOffset(offset int) Option {
	return func(l *Lexer) {
		l.line += offset
	}
}

// Lexer turns Crispy source text into tokens.
type Lexer struct {
	src       string
	start     int
	pos       int
	line      int
	lineStart int

	tokens []token.Token
	errors []*Error
}

// New prepares a lexer over src.
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{src: src, line: 1}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lex scans src completely.
func Lex(src string, opts ...Option) ([]token.Token, []*Error) {
	return New(src, opts...).Scan()
}

// Scan consumes the whole input. The returned slice always ends with EOF.
func (l *Lexer) Scan() ([]token.Token, []*Error) {
	for !l.atEnd() {
		l.start = l.pos
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.Token{
		Kind:   token.EOF,
		Line:   l.line,
		Column: l.pos - l.lineStart + 1,
		Start:  len(l.src),
		End:    len(l.src),
	})
	return l.tokens, l.errors
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) advance() byte {
	if l.atEnd() {
		return 0
	}
	c := l.src[l.pos]
	l.pos++
	return c
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) match(c byte) bool {
	if l.peek() != c {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) newline() {
	l.line++
	l.lineStart = l.pos
}

func (l *Lexer) add(kind token.Kind, literal any) {
	l.tokens = append(l.tokens, token.Token{
		Kind:    kind,
		Lexeme:  l.src[l.start:l.pos],
		Literal: literal,
		Line:    l.line,
		Column:  l.start - l.lineStart + 1,
		Start:   l.start,
		End:     l.pos,
	})
}

func (l *Lexer) errorAt(line, column int, format string, args ...any) {
	l.errors = append(l.errors, &Error{
		Pos:     token.Position{Line: line, Column: column},
		Message: fmt.Sprintf(format, args...),
	})
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case ' ', '\r', '\t':
	case '\n':
		l.newline()
	case '(':
		l.add(token.OpenParen, nil)
	case ')':
		l.add(token.CloseParen, nil)
	case '{':
		l.add(token.OpenBrace, nil)
	case '}':
		l.add(token.CloseBrace, nil)
	case '[':
		l.add(token.OpenBracket, nil)
	case ']':
		l.add(token.CloseBracket, nil)
	case ':':
		l.add(token.Colon, nil)
	case '%':
		l.add(token.Percent, nil)
	case '*':
		l.add(token.Star, nil)
	case '.':
		l.add(token.Dot, nil)
	case ';':
		l.add(token.Semicolon, nil)
	case ',':
		l.add(token.Comma, nil)
	case '+':
		if l.match('+') {
			l.add(token.PlusPlus, nil)
		} else {
			l.add(token.Plus, nil)
		}
	case '-':
		switch {
		case l.match('>'):
			l.add(token.Arrow, nil)
		case l.match('-'):
			l.add(token.MinusMinus, nil)
		default:
			l.add(token.Minus, nil)
		}
	case '/':
		switch {
		case l.match('/'):
			l.lineComment()
		case l.match('*'):
			l.blockComment()
		default:
			l.add(token.Slash, nil)
		}
	case '!':
		l.addEither('=', token.BangEquals, token.Bang)
	case '=':
		l.addEither('=', token.EqualsEquals, token.Equals)
	case '<':
		l.addEither('=', token.SmallerEquals, token.Smaller)
	case '>':
		l.addEither('=', token.GreaterEquals, token.Greater)
	case '"':
		l.string()
	default:
		switch {
		case isDigit(c):
			l.number()
		case isAlpha(c):
			l.identifier()
		default:
			r, width := utf8.DecodeRuneInString(l.src[l.start:])
			l.pos = l.start + width
			l.errorAt(l.line, l.start-l.lineStart+1, "Unrecognized character: '%c'", r)
		}
	}
}

func (l *Lexer) addEither(next byte, two, one token.Kind) {
	if l.match(next) {
		l.add(two, nil)
		return
	}
	l.add(one, nil)
}

func (l *Lexer) lineComment() {
	for !l.atEnd() && l.peek() != '\n' {
		l.pos++
	}
}

// blockComment skips to the first "*/"; comments do not nest.
func (l *Lexer) blockComment() {
	for !l.atEnd() {
		c := l.advance()
		if c == '\n' {
			l.newline()
			continue
		}
		if c == '*' && l.match('/') {
			return
		}
	}
}

func (l *Lexer) string() {
	startLine, startColumn := l.line, l.start-l.lineStart+1
	for !l.atEnd() && l.peek() != '"' {
		if l.advance() == '\n' {
			l.newline()
		}
	}
	if l.atEnd() {
		l.errorAt(startLine, startColumn, "Unterminated string")
		return
	}
	l.pos++ // closing quote

	lit := l.src[l.start+1 : l.pos-1]
	l.tokens = append(l.tokens, token.Token{
		Kind:    token.String,
		Lexeme:  l.src[l.start:l.pos],
		Literal: lit,
		Line:    startLine,
		Column:  startColumn,
		Start:   l.start,
		End:     l.pos,
	})
}

func (l *Lexer) number() {
	for isDigit(l.peek()) {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.pos++
		for isDigit(l.peek()) {
			l.pos++
		}
	}
	text := l.src[l.start:l.pos]
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		l.errorAt(l.line, l.start-l.lineStart+1, "Invalid number literal '%s'", text)
		return
	}
	l.add(token.Number, val)
}

func (l *Lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.pos++
	}
	text := l.src[l.start:l.pos]
	if kind, ok := token.Keywords[text]; ok {
		l.add(kind, nil)
		return
	}
	l.add(token.Identifier, text)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
