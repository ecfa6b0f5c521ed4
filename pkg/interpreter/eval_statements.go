package interpreter

import (
	"errors"
	"fmt"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/runtime"
	"crispy/interpreter-go/pkg/token"
)

type completionKind int

const (
	completionNormal completionKind = iota
	completionReturn
	completionBreak
	completionContinue
)

// completion describes how a statement finished. Only return carries a
// value.
type completion struct {
	kind  completionKind
	value runtime.Value
}

var normal = completion{kind: completionNormal}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		_, err := i.evaluateExpression(n.Expression, env)
		return normal, err
	case *ast.ValDeclaration:
		return normal, i.evaluateDeclaration(n.Name, n.Initializer, false, env)
	case *ast.VarDeclaration:
		return normal, i.evaluateDeclaration(n.Name, n.Initializer, true, env)
	case *ast.Block:
		return i.evaluateBlock(n, runtime.NewEnvironment(env))
	case *ast.IfStatement:
		return i.evaluateIfStatement(n, env)
	case *ast.WhileLoop:
		return i.evaluateWhileLoop(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.BreakStatement:
		return completion{kind: completionBreak}, nil
	case *ast.ContinueStatement:
		return completion{kind: completionContinue}, nil
	case *ast.Assignment:
		return normal, i.evaluateAssignment(n, env)
	case *ast.SetStatement:
		return normal, i.evaluateSetStatement(n, env)
	case *ast.Increment:
		return normal, i.evaluateStep(n.Target, n.Operator, 1, env)
	case *ast.Decrement:
		return normal, i.evaluateStep(n.Target, n.Operator, -1, env)
	default:
		return normal, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs statements in scope, which the caller has already
// created, stopping at the first non-normal completion.
func (i *Interpreter) evaluateBlock(block *ast.Block, scope *runtime.Environment) (completion, error) {
	return i.evaluateStatements(block.Statements, scope)
}

func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (completion, error) {
	for _, stmt := range stmts {
		c, err := i.evaluateStatement(stmt, env)
		if err != nil {
			return normal, err
		}
		if c.kind != completionNormal {
			return c, nil
		}
	}
	return normal, nil
}

func (i *Interpreter) evaluateDeclaration(name token.Token, init ast.Expression, assignable bool, env *runtime.Environment) error {
	var value runtime.Value = runtime.Nil
	if init != nil {
		v, err := i.evaluateExpression(init, env)
		if err != nil {
			return err
		}
		value = v
	}
	if err := env.Define(name.Lexeme, value, assignable); err != nil {
		return errorAt(name, "%s", err.Error())
	}
	return nil
}

func (i *Interpreter) evaluateIfStatement(stmt *ast.IfStatement, env *runtime.Environment) (completion, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return normal, err
	}
	if runtime.IsTruthy(cond) {
		return i.evaluateBlock(stmt.Then, runtime.NewEnvironment(env))
	}
	if stmt.Else != nil {
		return i.evaluateStatement(stmt.Else, env)
	}
	return normal, nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.WhileLoop, env *runtime.Environment) (completion, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return normal, err
		}
		if !runtime.IsTruthy(cond) {
			return normal, nil
		}
		c, err := i.evaluateBlock(loop.Body, runtime.NewEnvironment(env))
		if err != nil {
			return normal, err
		}
		switch c.kind {
		case completionReturn:
			return c, nil
		case completionBreak:
			return normal, nil
		}
		if loop.Increment != nil {
			if _, err := i.evaluateStatement(loop.Increment, env); err != nil {
				return normal, err
			}
		}
	}
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (completion, error) {
	var value runtime.Value = runtime.Nil
	if stmt.Value != nil {
		v, err := i.evaluateExpression(stmt.Value, env)
		if err != nil {
			return normal, err
		}
		value = v
	}
	return completion{kind: completionReturn, value: value}, nil
}

func (i *Interpreter) evaluateAssignment(stmt *ast.Assignment, env *runtime.Environment) error {
	value, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	return i.assignVariable(stmt.Target, value, env)
}

func (i *Interpreter) lookUpVariable(v *ast.Variable, env *runtime.Environment) (runtime.Value, error) {
	var (
		value runtime.Value
		err   error
	)
	if distance, ok := i.locals[v]; ok {
		value, err = env.GetAt(distance, v.Name.Lexeme)
	} else {
		value, err = i.unresolvedScope(v, env).Get(v.Name.Lexeme)
	}
	if err != nil {
		return nil, errorAt(v.Name, "%s", err.Error())
	}
	return value, nil
}

func (i *Interpreter) assignVariable(v *ast.Variable, value runtime.Value, env *runtime.Environment) error {
	var err error
	if distance, ok := i.locals[v]; ok {
		err = env.AssignAt(distance, v.Name.Lexeme, value)
	} else {
		err = i.unresolvedScope(v, env).Assign(v.Name.Lexeme, value)
	}
	if err == nil {
		return nil
	}
	var assignErr *runtime.AssignmentError
	if errors.As(err, &assignErr) {
		i.logger.Debug("rejected write to val binding", "name", assignErr.Name, "line", v.Name.Line)
	}
	return errorAt(v.Name, "%s", err.Error())
}

// unresolvedScope picks where a name the resolver did not bind is looked
// up. Such names are globals, except `self`, which is defined by the call
// frame of a bound function and is found by walking outward from env.
func (i *Interpreter) unresolvedScope(v *ast.Variable, env *runtime.Environment) *runtime.Environment {
	if v.Name.Lexeme == selfName {
		return env
	}
	return i.global
}

func errorAt(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Line: tok.Line, Column: tok.Column, Message: fmt.Sprintf(format, args...)}
}
