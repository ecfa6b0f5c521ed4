package parser

import (
	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/token"
)

// statement dispatches flow statements first, then compound statements,
// then simple statements.
func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(token.Break):
		return p.breakStatement()
	case p.match(token.Continue):
		return p.continueStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.For):
		return p.forStatement()
	case p.check(token.OpenBrace):
		return p.block()
	default:
		return p.simpleStatement()
	}
}

func (p *Parser) simpleStatement() (ast.Statement, error) {
	switch {
	case p.match(token.Val):
		return p.valDeclaration()
	case p.match(token.Var):
		return p.varDeclaration()
	}
	stmt, err := p.assignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) breakStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(token.Semicolon, "Expected ';' after 'break'"); err != nil {
		return nil, err
	}
	return ast.NewBreakStatement(keyword), nil
}

func (p *Parser) continueStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(token.Semicolon, "Expected ';' after 'continue'"); err != nil {
		return nil, err
	}
	return ast.NewContinueStatement(keyword), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(token.Semicolon) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = expr
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(keyword, value), nil
}

func (p *Parser) block() (*ast.Block, error) {
	if _, err := p.consume(token.OpenBrace, "Expected '{' at beginning of block"); err != nil {
		return nil, err
	}
	var statements []ast.Statement
	for !p.check(token.CloseBrace) && !p.atEnd() {
		start := p.pos
		stmt, err := p.statement()
		if err != nil {
			p.record(err)
			p.synchronize(start, true)
			continue
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(token.CloseBrace, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return ast.NewBlock(statements...), nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	keyword := p.previous()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	if !p.match(token.Else) {
		return ast.NewIfStatement(keyword, condition, then, nil), nil
	}
	if p.check(token.OpenBrace) {
		elseBlock, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewIfStatement(keyword, condition, then, elseBlock), nil
	}
	if _, err := p.consume(token.If, "Expected 'if' or block after 'else'"); err != nil {
		return nil, err
	}
	elseIf, err := p.ifStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewIfStatement(keyword, condition, then, elseIf), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	keyword := p.previous()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileLoop(keyword, condition, body), nil
}

// forStatement lowers `for (init; cond; incr) block` to
// `{ init; while cond { block } }` with incr carried by the loop so that it
// runs after every iteration, including ones left through `continue`.
func (p *Parser) forStatement() (ast.Statement, error) {
	keyword := p.previous()
	if _, err := p.consume(token.OpenParen, "Expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var initializer ast.Statement
	if !p.match(token.Semicolon) {
		stmt, err := p.simpleStatement()
		if err != nil {
			return nil, err
		}
		initializer = stmt
	}

	var condition ast.Expression = ast.NewBooleanLiteral(true)
	if !p.check(token.Semicolon) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		condition = expr
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Statement
	if !p.check(token.CloseParen) {
		stmt, err := p.assignment()
		if err != nil {
			return nil, err
		}
		increment = stmt
	}
	if _, err := p.consume(token.CloseParen, "Expected ')' after for clauses"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	loop := ast.NewWhileLoop(keyword, condition, body)
	loop.Increment = increment
	if initializer == nil {
		return loop, nil
	}
	return ast.NewBlock(initializer, loop), nil
}

func (p *Parser) valDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expected variable name after 'val'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Equals, "Expected initialization of value"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after val initialization"); err != nil {
		return nil, err
	}
	return ast.NewValDeclaration(name, value), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(token.Identifier, "Expected variable name after 'var'")
	if err != nil {
		return nil, err
	}
	var value ast.Expression
	if p.match(token.Equals) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.Semicolon, "Expected ';' after var initialization"); err != nil {
		return nil, err
	}
	return ast.NewVarDeclaration(name, value), nil
}

// assignment parses an expression and then decides, from the token after
// it, whether the statement is an assignment, a set, an increment, a
// decrement, or a plain expression statement. The trailing ';' is left for
// the caller.
func (p *Parser) assignment() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	switch {
	case p.match(token.Equals):
		equals := p.previous()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.Variable:
			return ast.NewAssignment(target, equals, value), nil
		case *ast.Get:
			return ast.NewSetStatement(target, equals, value), nil
		case *ast.Index:
			return ast.NewSetStatement(target, equals, value), nil
		default:
			return nil, p.errorAt(equals, "Invalid assignment target")
		}
	case p.match(token.PlusPlus):
		target, ok := expr.(ast.AssignmentTarget)
		if !ok {
			return nil, p.errorAt(p.previous(), "Invalid increment target")
		}
		return ast.NewIncrement(target, p.previous()), nil
	case p.match(token.MinusMinus):
		target, ok := expr.(ast.AssignmentTarget)
		if !ok {
			return nil, p.errorAt(p.previous(), "Invalid decrement target")
		}
		return ast.NewDecrement(target, p.previous()), nil
	default:
		return ast.NewExpressionStatement(expr), nil
	}
}
