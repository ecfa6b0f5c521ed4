package parser

import (
	"fmt"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/lexer"
	"crispy/interpreter-go/pkg/token"
)

// Error is a syntax error anchored at the offending token.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Parser is a recursive-descent parser with one token of lookahead.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*Error
}

// New wraps a token stream; it must end with an EOF token.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		tokens = append(tokens, token.Token{Kind: token.EOF})
	}
	return &Parser{tokens: tokens}
}

// Parse parses a whole token stream.
func Parse(tokens []token.Token) ([]ast.Statement, []*Error) {
	return New(tokens).ParseProgram()
}

// ParseSource lexes and parses src, returning lexical and syntax errors
// separately.
func ParseSource(src string, opts ...lexer.Option) ([]ast.Statement, []*lexer.Error, []*Error) {
	tokens, lexErrs := lexer.Lex(src, opts...)
	stmts, parseErrs := Parse(tokens)
	return stmts, lexErrs, parseErrs
}

// ParseProgram parses statements until EOF. A malformed statement is
// recorded, skipped, and parsing resumes at the next statement boundary.
func (p *Parser) ParseProgram() ([]ast.Statement, []*Error) {
	var statements []ast.Statement
	for !p.atEnd() {
		start := p.pos
		stmt, err := p.statement()
		if err != nil {
			p.record(err)
			p.synchronize(start, false)
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, p.errors
}

func (p *Parser) record(err error) {
	if perr, ok := err.(*Error); ok {
		p.errors = append(p.errors, perr)
		return
	}
	p.errors = append(p.errors, &Error{Token: p.peek(), Message: err.Error()})
}

// synchronize discards tokens until it has passed a ';' or sits on a token
// that starts a statement. Braced groups opened while skipping are skipped
// whole. Inside a block it also stops before the '}' closing that block.
// It always consumes at least one token when the failed statement consumed
// none.
func (p *Parser) synchronize(start int, inBlock bool) {
	if p.pos == start {
		p.advance()
	}
	depth := 0
	for !p.atEnd() {
		if depth == 0 && p.pos > 0 && p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.OpenBrace:
			depth++
		case token.CloseBrace:
			if depth > 0 {
				depth--
			} else if inBlock {
				return
			}
		case token.Val, token.Var, token.If, token.While, token.Return, token.Break, token.Continue, token.For:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
