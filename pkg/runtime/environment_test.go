package runtime

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvironmentDefineRejectsRedefinitionInSameFrame(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Define("a", NumberValue{Val: 1}, false); err != nil {
		t.Fatalf("Define: %v", err)
	}
	err := env.Define("a", NumberValue{Val: 2}, true)
	var redef *RedefinitionError
	if !errors.As(err, &redef) || redef.Name != "a" {
		t.Fatalf("expected RedefinitionError for a, got %v", err)
	}

	child := NewEnvironment(env)
	if err := child.Define("a", NumberValue{Val: 3}, false); err != nil {
		t.Fatalf("shadowing in child frame should be allowed: %v", err)
	}
	got, _ := child.Get("a")
	if got != (NumberValue{Val: 3}) {
		t.Fatalf("expected shadowed value 3, got %#v", got)
	}
	outer, _ := env.Get("a")
	if outer != (NumberValue{Val: 1}) {
		t.Fatalf("outer binding changed: %#v", outer)
	}
}

func TestEnvironmentAssign(t *testing.T) {
	global := NewEnvironment(nil)
	_ = global.Define("fixed", StringValue{Val: "x"}, false)
	_ = global.Define("counter", NumberValue{Val: 0}, true)
	local := NewEnvironment(global)

	if err := local.Assign("counter", NumberValue{Val: 5}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if v, _ := global.Get("counter"); v != (NumberValue{Val: 5}) {
		t.Fatalf("expected counter 5 in defining frame, got %#v", v)
	}

	var assignErr *AssignmentError
	if err := local.Assign("fixed", NilValue{}); !errors.As(err, &assignErr) {
		t.Fatalf("expected AssignmentError, got %v", err)
	}
	if assignErr.Error() != "Cannot reassign value 'fixed'" {
		t.Fatalf("unexpected message %q", assignErr.Error())
	}

	var undef *UndefinedVariableError
	if err := local.Assign("missing", NilValue{}); !errors.As(err, &undef) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if _, err := local.Get("missing"); !errors.As(err, &undef) || undef.Error() != "Undefined variable 'missing'" {
		t.Fatalf("unexpected Get error %v", err)
	}
}

func TestEnvironmentDistanceAccess(t *testing.T) {
	root := NewEnvironment(nil)
	mid := NewEnvironment(root)
	leaf := NewEnvironment(mid)
	_ = root.Define("x", NumberValue{Val: 1}, true)
	_ = mid.Define("x", NumberValue{Val: 2}, true)

	if leaf.Ancestor(2) != root || leaf.Ancestor(0) != leaf || leaf.Ancestor(5) != nil {
		t.Fatalf("Ancestor walked the wrong frames")
	}
	if v, err := leaf.GetAt(2, "x"); err != nil || v != (NumberValue{Val: 1}) {
		t.Fatalf("GetAt(2) = %#v, %v", v, err)
	}
	if err := leaf.AssignAt(2, "x", NumberValue{Val: 10}); err != nil {
		t.Fatalf("AssignAt: %v", err)
	}
	if v, _ := mid.Get("x"); v != (NumberValue{Val: 2}) {
		t.Fatalf("AssignAt touched the wrong frame: %#v", v)
	}
	if v, _ := root.Get("x"); v != (NumberValue{Val: 10}) {
		t.Fatalf("AssignAt did not update root: %#v", v)
	}
	if _, err := leaf.GetAt(0, "x"); err == nil {
		t.Fatalf("GetAt must not search the chain")
	}
}

func TestEnvironmentKeysSorted(t *testing.T) {
	env := NewEnvironment(nil)
	for _, name := range []string{"b", "c", "a"} {
		_ = env.Define(name, NilValue{}, true)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, env.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
