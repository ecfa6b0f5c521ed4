package interpreter

import (
	"math"

	"crispy/interpreter-go/pkg/runtime"
	"crispy/interpreter-go/pkg/token"
)

func binaryOperation(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case token.Plus:
		return add(op, left, right)
	case token.EqualsEquals, token.BangEquals:
		eq, err := valuesEqual(left, right)
		if err != nil {
			return nil, errorAt(op, "%s", err.Error())
		}
		if op.Kind == token.BangEquals {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	}

	l, lok := runtime.AsNumber(left)
	r, rok := runtime.AsNumber(right)
	if !lok || !rok {
		return nil, errorAt(op, "Both operands must be numbers")
	}
	switch op.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		return runtime.NumberValue{Val: l / r}, nil
	case token.Percent:
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	case token.Smaller:
		return runtime.BoolValue{Val: l < r}, nil
	case token.SmallerEquals:
		return runtime.BoolValue{Val: l <= r}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l > r}, nil
	case token.GreaterEquals:
		return runtime.BoolValue{Val: l >= r}, nil
	default:
		return nil, errorAt(op, "Unknown binary operator %s", op.Lexeme)
	}
}

// add sums numbers and appends the stringified right operand to a string.
func add(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	switch l := left.(type) {
	case runtime.NumberValue:
		r, ok := runtime.AsNumber(right)
		if !ok {
			return nil, errorAt(op, "Second operand must be a number")
		}
		return runtime.NumberValue{Val: l.Val + r}, nil
	case runtime.StringValue:
		return runtime.StringValue{Val: l.Val + valueToString(right)}, nil
	default:
		return nil, errorAt(op, "Invalid first operand")
	}
}

type equalityError struct{}

func (equalityError) Error() string {
	return "Operands must be two numbers, two strings or compared against nil"
}

// valuesEqual implements `==`. Nil compares with anything; otherwise both
// operands must share a kind. Containers compare structurally, functions by
// identity.
func valuesEqual(a, b runtime.Value) (bool, error) {
	if runtime.IsNil(a) || runtime.IsNil(b) {
		return runtime.IsNil(a) && runtime.IsNil(b), nil
	}
	if a.Kind() != b.Kind() {
		_, aCallable := a.(runtime.Callable)
		_, bCallable := b.(runtime.Callable)
		if aCallable && bCallable {
			return false, nil
		}
		return false, equalityError{}
	}
	return deepEqual(a, b, make(map[[2]runtime.Value]bool)), nil
}

// deepEqual compares two values of any kinds. Nested values of different
// kinds are simply unequal. seen breaks cycles between container pairs.
func deepEqual(a, b runtime.Value, seen map[[2]runtime.Value]bool) bool {
	if runtime.IsNil(a) || runtime.IsNil(b) {
		return runtime.IsNil(a) && runtime.IsNil(b)
	}
	switch x := a.(type) {
	case runtime.NumberValue:
		y, ok := b.(runtime.NumberValue)
		return ok && x.Val == y.Val
	case runtime.StringValue:
		y, ok := b.(runtime.StringValue)
		return ok && x.Val == y.Val
	case runtime.BoolValue:
		y, ok := b.(runtime.BoolValue)
		return ok && x.Val == y.Val
	case *runtime.ListValue:
		y, ok := b.(*runtime.ListValue)
		if !ok {
			return false
		}
		if x == y || seen[[2]runtime.Value{x, y}] {
			return true
		}
		if len(x.Elements) != len(y.Elements) {
			return false
		}
		seen[[2]runtime.Value{x, y}] = true
		for idx := range x.Elements {
			if !deepEqual(x.Elements[idx], y.Elements[idx], seen) {
				return false
			}
		}
		return true
	case *runtime.DictionaryValue:
		y, ok := b.(*runtime.DictionaryValue)
		if !ok {
			return false
		}
		if x == y || seen[[2]runtime.Value{x, y}] {
			return true
		}
		if len(x.Entries) != len(y.Entries) {
			return false
		}
		seen[[2]runtime.Value{x, y}] = true
		for k, xv := range x.Entries {
			yv, present := y.Entries[k]
			if !present || !deepEqual(xv, yv, seen) {
				return false
			}
		}
		return true
	case *runtime.FunctionValue:
		y, ok := b.(*runtime.FunctionValue)
		return ok && x == y
	case *runtime.NativeFunctionValue:
		y, ok := b.(*runtime.NativeFunctionValue)
		return ok && x == y
	default:
		return false
	}
}
