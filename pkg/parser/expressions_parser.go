package parser

import (
	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/token"
)

// expression is the entry point for every expression position. A lambda is
// only accepted here, never as the operand of an operator.
func (p *Parser) expression() (ast.Expression, error) {
	if p.match(token.Fun) {
		return p.lambda()
	}
	return p.or()
}

func (p *Parser) or() (ast.Expression, error) {
	return p.binaryLevel(p.and, token.Or)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.binaryLevel(p.equality, token.And)
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binaryLevel(p.comparison, token.EqualsEquals, token.BangEquals)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binaryLevel(p.additive, token.Smaller, token.SmallerEquals, token.Greater, token.GreaterEquals)
}

func (p *Parser) additive() (ast.Expression, error) {
	return p.binaryLevel(p.multiplicative, token.Plus, token.Minus)
}

func (p *Parser) multiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.unary, token.Star, token.Slash, token.Percent)
}

// binaryLevel parses a left-associative chain of operands produced by next
// and separated by any of ops.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops ...token.Kind) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(left, operator, right)
	}
	return left, nil
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(token.Minus, token.Bang) {
		operator := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(operator, operand), nil
	}
	return p.postfix()
}

// postfix applies calls, index lookups and field accesses, left to right.
func (p *Parser) postfix() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.OpenParen):
			expr, err = p.finishCall(expr)
		case p.match(token.OpenBracket):
			bracket := p.previous()
			var key ast.Expression
			key, err = p.expression()
			if err == nil {
				_, err = p.consume(token.CloseBracket, "Expected ']' after get expression")
			}
			if err == nil {
				expr = ast.NewIndex(expr, bracket, key)
			}
		case p.match(token.Dot):
			var name token.Token
			name, err = p.consume(token.Identifier, "Expected identifier after '.'")
			if err == nil {
				expr = ast.NewGet(expr, name)
			}
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(token.CloseParen) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren, err := p.consume(token.CloseParen, "Expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, args), nil
}
