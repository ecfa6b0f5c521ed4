package runtime

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"time"

	"crispy/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindDictionary
	KindFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDictionary:
		return "dictionary"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "builtin"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NumberValue is the only numeric type: an IEEE double.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// Nil is the shared nil value.
var Nil Value = NilValue{}

//-----------------------------------------------------------------------------
// Containers (shared by reference)
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func (v *ListValue) Kind() Kind { return KindList }

func NewList(elements []Value) *ListValue {
	return &ListValue{Elements: elements}
}

// DictionaryValue maps string keys to values. Iteration order is not
// observable; stringification sorts keys.
type DictionaryValue struct {
	Entries map[string]Value
}

func (v *DictionaryValue) Kind() Kind { return KindDictionary }

func NewDictionary() *DictionaryValue {
	return &DictionaryValue{Entries: make(map[string]Value)}
}

// Get returns the value at key, or Nil when absent.
func (v *DictionaryValue) Get(key string) Value {
	if val, ok := v.Entries[key]; ok {
		return val
	}
	return Nil
}

// Set stores val at key. Functions are bound to the dictionary so that
// `self` inside them refers to it.
func (v *DictionaryValue) Set(key string, val Value) {
	if fn, ok := val.(*FunctionValue); ok {
		val = fn.Bind(v)
	}
	v.Entries[key] = val
}

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// Callable is implemented by both user and native functions.
type Callable interface {
	Value
	Arity() int
}

// FunctionValue is a lambda closed over the frame it was created in. Self
// is set once the function has been stored into a dictionary. Distances is
// the resolver's table for the chunk the lambda was parsed in.
type FunctionValue struct {
	Declaration *ast.Lambda
	Closure     *Environment
	Self        *DictionaryValue
	Distances   map[*ast.Variable]int
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

func (v *FunctionValue) Arity() int { return len(v.Declaration.Params) }

// Bind returns a copy of v whose calls see self. The closure is shared.
func (v *FunctionValue) Bind(self *DictionaryValue) *FunctionValue {
	return &FunctionValue{Declaration: v.Declaration, Closure: v.Closure, Self: self, Distances: v.Distances}
}

// NativeCallContext carries the interpreter's I/O and hooks into builtins.
type NativeCallContext struct {
	Env    *Environment
	Out    io.Writer
	In     *bufio.Reader
	Exit   func(code int)
	Now    func() time.Time
	Sleep  func(time.Duration)
	Logger *slog.Logger
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name     string
	ArgCount int
	Impl     NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v *NativeFunctionValue) Arity() int { return v.ArgCount }

//-----------------------------------------------------------------------------
// Helpers
//-----------------------------------------------------------------------------

// IsTruthy treats nil and false as false and everything else as true.
func IsTruthy(v Value) bool {
	switch val := v.(type) {
	case nil, NilValue:
		return false
	case BoolValue:
		return val.Val
	default:
		return true
	}
}

func AsNumber(v Value) (float64, bool) {
	n, ok := v.(NumberValue)
	return n.Val, ok
}

func AsString(v Value) (string, bool) {
	s, ok := v.(StringValue)
	return s.Val, ok
}

func IsNil(v Value) bool {
	switch v.(type) {
	case nil, NilValue:
		return true
	}
	return false
}
