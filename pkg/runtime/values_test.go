package runtime

import (
	"testing"

	"crispy/interpreter-go/pkg/ast"
)

func TestIsTruthy(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{Nil, false},
		{nil, false},
		{BoolValue{Val: false}, false},
		{BoolValue{Val: true}, true},
		{NumberValue{Val: 0}, true},
		{StringValue{Val: ""}, true},
		{NewList(nil), true},
		{NewDictionary(), true},
	}
	for _, tc := range cases {
		if got := IsTruthy(tc.value); got != tc.want {
			t.Fatalf("IsTruthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestDictionarySetBindsFunctions(t *testing.T) {
	fn := &FunctionValue{Declaration: ast.Fn(nil), Closure: NewEnvironment(nil)}
	dict := NewDictionary()
	dict.Set("m", fn)

	stored, ok := dict.Get("m").(*FunctionValue)
	if !ok {
		t.Fatalf("expected function, got %#v", dict.Get("m"))
	}
	if stored.Self != dict {
		t.Fatalf("stored function not bound to its dictionary")
	}
	if fn.Self != nil {
		t.Fatalf("the unbound function must not change")
	}
	if stored.Closure != fn.Closure || stored.Arity() != 0 {
		t.Fatalf("bound copy should share closure and arity")
	}
	if !IsNil(dict.Get("missing")) {
		t.Fatalf("missing keys read as nil")
	}
}

func TestCallableArity(t *testing.T) {
	var fn Callable = &FunctionValue{Declaration: ast.FnExpr([]string{"a", "b"}, ast.Var("a"))}
	var native Callable = &NativeFunctionValue{Name: "len", ArgCount: 1}
	if fn.Arity() != 2 || native.Arity() != 1 {
		t.Fatalf("unexpected arities %d and %d", fn.Arity(), native.Arity())
	}
	if fn.Kind().String() != "function" || native.Kind().String() != "builtin" {
		t.Fatalf("unexpected kind names")
	}
}
