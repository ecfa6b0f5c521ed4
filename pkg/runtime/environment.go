package runtime

import (
	"fmt"
	"sort"
)

// Binding is one named slot in a frame.
type Binding struct {
	Value      Value
	Assignable bool
}

// RedefinitionError is returned by Define when the frame already holds name.
type RedefinitionError struct {
	Name string
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("Variable '%s' already defined", e.Name)
}

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'", e.Name)
}

// AssignmentError is returned when writing to a `val` binding.
type AssignmentError struct {
	Name string
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("Cannot reassign value '%s'", e.Name)
}

// Environment is one lexical frame. Frames are shared by pointer between
// closures and child frames.
type Environment struct {
	values map[string]*Binding
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]*Binding),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define adds a binding to this frame. Shadowing a name from an ancestor is
// allowed; redefining one in the same frame is not.
func (e *Environment) Define(name string, value Value, assignable bool) error {
	if _, exists := e.values[name]; exists {
		return &RedefinitionError{Name: name}
	}
	e.values[name] = &Binding{Value: value, Assignable: assignable}
	return nil
}

func (e *Environment) lookup(name string) (*Binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	if b, ok := e.lookup(name); ok {
		return b.Value, nil
	}
	return nil, &UndefinedVariableError{Name: name}
}

// Assign updates the nearest binding of name.
func (e *Environment) Assign(name string, value Value) error {
	b, ok := e.lookup(name)
	if !ok {
		return &UndefinedVariableError{Name: name}
	}
	return assign(b, name, value)
}

// Ancestor walks distance parent links up. It returns nil if the chain is
// shorter than distance.
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance && env != nil; i++ {
		env = env.parent
	}
	return env
}

// GetAt reads name from the frame exactly distance hops up.
func (e *Environment) GetAt(distance int, name string) (Value, error) {
	if env := e.Ancestor(distance); env != nil {
		if b, ok := env.values[name]; ok {
			return b.Value, nil
		}
	}
	return nil, &UndefinedVariableError{Name: name}
}

// AssignAt writes name in the frame exactly distance hops up.
func (e *Environment) AssignAt(distance int, name string, value Value) error {
	if env := e.Ancestor(distance); env != nil {
		if b, ok := env.values[name]; ok {
			return assign(b, name, value)
		}
	}
	return &UndefinedVariableError{Name: name}
}

func assign(b *Binding, name string, value Value) error {
	if !b.Assignable {
		return &AssignmentError{Name: name}
	}
	b.Value = value
	return nil
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
