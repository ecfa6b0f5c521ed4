package parser

import (
	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/token"
)

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(token.True):
		return ast.NewBooleanLiteral(true), nil
	case p.match(token.False):
		return ast.NewBooleanLiteral(false), nil
	case p.match(token.Nil):
		return ast.NewNilLiteral(), nil
	case p.match(token.Number):
		value, _ := p.previous().Literal.(float64)
		return ast.NewNumberLiteral(value), nil
	case p.match(token.String):
		value, _ := p.previous().Literal.(string)
		return ast.NewStringLiteral(value), nil
	case p.match(token.Identifier):
		return ast.NewVariable(p.previous()), nil
	case p.match(token.OpenParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.CloseParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	case p.match(token.OpenBrace):
		return p.dictionary()
	case p.match(token.OpenBracket):
		return p.list()
	}
	return nil, p.errorAt(p.peek(), "Expected expression")
}

// dictionary parses `{ k: v, ... }` after its opening brace. A trailing
// comma is not allowed.
func (p *Parser) dictionary() (ast.Expression, error) {
	brace := p.previous()
	var entries []*ast.DictionaryEntry
	if !p.check(token.CloseBrace) {
		for {
			key, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.Colon, "Expected ':' between key and value in dictionary"); err != nil {
				return nil, err
			}
			value, err := p.expression()
			if err != nil {
				return nil, err
			}
			entries = append(entries, &ast.DictionaryEntry{Key: key, Value: value})
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.CloseBrace, "Expected '}' after dictionary literal"); err != nil {
		return nil, err
	}
	return ast.NewDictionaryLiteral(brace, entries), nil
}

func (p *Parser) list() (ast.Expression, error) {
	bracket := p.previous()
	var elements []ast.Expression
	if !p.check(token.CloseBracket) {
		for {
			element, err := p.expression()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(token.CloseBracket, "Expected ']' after list literal"); err != nil {
		return nil, err
	}
	return ast.NewListLiteral(bracket, elements), nil
}

// lambda parses the rest of `fun (a, b) -> body` after the keyword. The
// parameter list may be parenthesized, bare (`fun a, b -> ...`) or empty.
func (p *Parser) lambda() (ast.Expression, error) {
	keyword := p.previous()
	var params []token.Token
	switch {
	case p.match(token.OpenParen):
		if !p.check(token.CloseParen) {
			list, err := p.parameters()
			if err != nil {
				return nil, err
			}
			params = list
		}
		if _, err := p.consume(token.CloseParen, "Expected ')' after parameters"); err != nil {
			return nil, err
		}
	case p.check(token.Identifier):
		list, err := p.parameters()
		if err != nil {
			return nil, err
		}
		params = list
	}
	if _, err := p.consume(token.Arrow, "Expected '->' after parameters"); err != nil {
		return nil, err
	}

	if p.check(token.OpenBrace) {
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewLambda(keyword, params, body, nil), nil
	}
	result, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewLambda(keyword, params, nil, result), nil
}

func (p *Parser) parameters() ([]token.Token, error) {
	var params []token.Token
	for {
		name, err := p.consume(token.Identifier, "Expected parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		if !p.match(token.Comma) {
			return params, nil
		}
	}
}
