package interpreter

import (
	"fmt"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/runtime"
	"crispy/interpreter-go/pkg/token"
)

// selfName is bound in the call frame of functions stored in a dictionary.
const selfName = "self"

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.NumberValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NilLiteral:
		return runtime.Nil, nil
	case *ast.Variable:
		return i.lookUpVariable(n, env)
	case *ast.Grouping:
		return i.evaluateExpression(n.Expression, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Lambda:
		return &runtime.FunctionValue{Declaration: n, Closure: env, Distances: i.locals}, nil
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Index:
		return i.evaluateIndex(n, env)
	case *ast.ListLiteral:
		return i.evaluateListLiteral(n, env)
	case *ast.DictionaryLiteral:
		return i.evaluateDictionaryLiteral(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(expr.Operand, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.IsTruthy(operand)}, nil
	case token.Minus:
		n, ok := runtime.AsNumber(operand)
		if !ok {
			return nil, errorAt(expr.Operator, "Operand must be a number")
		}
		return runtime.NumberValue{Val: -n}, nil
	default:
		return nil, errorAt(expr.Operator, "Unknown unary operator %s", expr.Operator.Lexeme)
	}
}

// evaluateBinary short-circuits `and`/`or`, yielding the operand that
// decided the result, and evaluates both operands left to right otherwise.
func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Kind {
	case token.Or:
		if runtime.IsTruthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	case token.And:
		if !runtime.IsTruthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return binaryOperation(expr.Operator, left, right)
}

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	fn, ok := callee.(runtime.Callable)
	if !ok {
		return nil, errorAt(call.Paren, "Can only call functions")
	}
	if fn.Arity() != len(args) {
		return nil, errorAt(call.Paren, "Expected %d arguments but got %d", fn.Arity(), len(args))
	}
	return i.callFunction(fn, args, call.Paren, env)
}

func (i *Interpreter) callFunction(fn runtime.Callable, args []runtime.Value, paren token.Token, env *runtime.Environment) (runtime.Value, error) {
	if i.depth >= maxCallDepth {
		return nil, errorAt(paren, "Maximum call depth of %d exceeded", maxCallDepth)
	}
	i.depth++
	defer func() { i.depth-- }()

	switch f := fn.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(f, args, paren)
	case *runtime.NativeFunctionValue:
		result, err := f.Impl(i.callContext(env), args)
		if err != nil {
			if rtErr, ok := err.(*RuntimeError); ok {
				return nil, rtErr
			}
			return nil, errorAt(paren, "%s", err.Error())
		}
		if result == nil {
			return runtime.Nil, nil
		}
		return result, nil
	default:
		return nil, errorAt(paren, "Can only call functions")
	}
}

// invokeFunction runs a lambda in a fresh activation frame under its
// closure. The frame holds `self` (when bound), the parameters and the
// top-level declarations of a block body.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, paren token.Token) (runtime.Value, error) {
	frame := runtime.NewEnvironment(fn.Closure)
	outer := i.locals
	i.locals = fn.Distances
	defer func() { i.locals = outer }()
	if fn.Self != nil {
		if err := frame.Define(selfName, fn.Self, false); err != nil {
			return nil, errorAt(paren, "%s", err.Error())
		}
	}
	decl := fn.Declaration
	for idx, param := range decl.Params {
		if err := frame.Define(param.Lexeme, args[idx], true); err != nil {
			return nil, errorAt(param, "%s", err.Error())
		}
	}
	if decl.Body == nil {
		return i.evaluateExpression(decl.Result, frame)
	}
	c, err := i.evaluateStatements(decl.Body.Statements, frame)
	if err != nil {
		return nil, err
	}
	if c.kind == completionReturn {
		return c.value, nil
	}
	return runtime.Nil, nil
}

func (i *Interpreter) evaluateListLiteral(lit *ast.ListLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		v, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
	}
	return runtime.NewList(elements), nil
}

// evaluateDictionaryLiteral evaluates entries in source order. Function
// values are bound to the dictionary being built.
func (i *Interpreter) evaluateDictionaryLiteral(lit *ast.DictionaryLiteral, env *runtime.Environment) (runtime.Value, error) {
	dict := runtime.NewDictionary()
	for _, entry := range lit.Entries {
		keyVal, err := i.evaluateExpression(entry.Key, env)
		if err != nil {
			return nil, err
		}
		key, ok := runtime.AsString(keyVal)
		if !ok {
			return nil, errorAt(lit.Brace, "Dictionary keys must be strings")
		}
		value, err := i.evaluateExpression(entry.Value, env)
		if err != nil {
			return nil, err
		}
		dict.Set(key, value)
	}
	return dict, nil
}
