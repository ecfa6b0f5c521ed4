package interpreter

import (
	"fmt"
	"math"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/runtime"
	"crispy/interpreter-go/pkg/token"
)

// slot is a readable and writable location inside a container.
type slot struct {
	get func() runtime.Value
	set func(runtime.Value)
}

func (i *Interpreter) evaluateGet(expr *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	s, err := i.containerSlot(expr, env)
	if err != nil {
		return nil, err
	}
	return s.get(), nil
}

func (i *Interpreter) evaluateIndex(expr *ast.Index, env *runtime.Environment) (runtime.Value, error) {
	s, err := i.containerSlot(expr, env)
	if err != nil {
		return nil, err
	}
	return s.get(), nil
}

// containerSlot evaluates the object (and key) of a property or index
// target exactly once and returns accessors for the addressed element.
func (i *Interpreter) containerSlot(target ast.AssignmentTarget, env *runtime.Environment) (*slot, error) {
	switch t := target.(type) {
	case *ast.Get:
		obj, err := i.evaluateExpression(t.Object, env)
		if err != nil {
			return nil, err
		}
		dict, ok := obj.(*runtime.DictionaryValue)
		if !ok {
			return nil, errorAt(t.Name, "Can only use '.' on dictionaries")
		}
		name := t.Name.Lexeme
		return &slot{
			get: func() runtime.Value { return dict.Get(name) },
			set: func(v runtime.Value) { dict.Set(name, v) },
		}, nil
	case *ast.Index:
		obj, err := i.evaluateExpression(t.Object, env)
		if err != nil {
			return nil, err
		}
		key, err := i.evaluateExpression(t.Key, env)
		if err != nil {
			return nil, err
		}
		return indexSlot(obj, key, t.Bracket)
	default:
		return nil, fmt.Errorf("unsupported assignment target type: %s", target.NodeType())
	}
}

func indexSlot(obj, key runtime.Value, bracket token.Token) (*slot, error) {
	switch container := obj.(type) {
	case *runtime.DictionaryValue:
		k, ok := runtime.AsString(key)
		if !ok {
			return nil, errorAt(bracket, "Dictionary keys must be strings")
		}
		return &slot{
			get: func() runtime.Value { return container.Get(k) },
			set: func(v runtime.Value) { container.Set(k, v) },
		}, nil
	case *runtime.ListValue:
		n, ok := runtime.AsNumber(key)
		if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, errorAt(bracket, "Can only use numbers as list index")
		}
		idx := int(math.Trunc(n))
		if idx < 0 || idx >= len(container.Elements) {
			return nil, errorAt(bracket, "List index out of range: %d (length %d)", idx, len(container.Elements))
		}
		return &slot{
			get: func() runtime.Value { return container.Elements[idx] },
			set: func(v runtime.Value) { container.Elements[idx] = v },
		}, nil
	default:
		return nil, errorAt(bracket, "Can only use '[...]' on dictionaries or lists")
	}
}

func (i *Interpreter) evaluateSetStatement(stmt *ast.SetStatement, env *runtime.Environment) error {
	s, err := i.containerSlot(stmt.Target, env)
	if err != nil {
		return err
	}
	value, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return err
	}
	s.set(value)
	return nil
}

// evaluateStep implements `target++` (delta 1) and `target--` (delta -1).
func (i *Interpreter) evaluateStep(target ast.AssignmentTarget, op token.Token, delta float64, env *runtime.Environment) error {
	if v, ok := target.(*ast.Variable); ok {
		current, err := i.lookUpVariable(v, env)
		if err != nil {
			return err
		}
		n, ok := runtime.AsNumber(current)
		if !ok {
			return errorAt(op, "Operand of '%s' must be a number", op.Lexeme)
		}
		return i.assignVariable(v, runtime.NumberValue{Val: n + delta}, env)
	}
	s, err := i.containerSlot(target, env)
	if err != nil {
		return err
	}
	n, ok := runtime.AsNumber(s.get())
	if !ok {
		return errorAt(op, "Operand of '%s' must be a number", op.Lexeme)
	}
	s.set(runtime.NumberValue{Val: n + delta})
	return nil
}
