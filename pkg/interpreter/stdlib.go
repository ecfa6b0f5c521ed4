package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"crispy/interpreter-go/pkg/runtime"
)

func (i *Interpreter) registerBuiltins() {
	builtins := []*runtime.NativeFunctionValue{
		{Name: "println", ArgCount: 1, Impl: builtinPrintln},
		{Name: "str", ArgCount: 1, Impl: builtinStr},
		{Name: "len", ArgCount: 1, Impl: builtinLen},
		{Name: "exit", ArgCount: 1, Impl: builtinExit},
		{Name: "sleep", ArgCount: 1, Impl: builtinSleep},
		{Name: "clock", ArgCount: 0, Impl: builtinClock},
		{Name: "input", ArgCount: 0, Impl: builtinInput},
		{Name: "p_input", ArgCount: 1, Impl: builtinPromptInput},
	}
	for _, fn := range builtins {
		if err := i.global.Define(fn.Name, fn, false); err != nil {
			panic(fmt.Sprintf("registering builtin %s: %v", fn.Name, err))
		}
	}
}

// println writes its argument and a newline, then returns the argument.
func builtinPrintln(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprintln(ctx.Out, valueToString(args[0])); err != nil {
		return nil, fmt.Errorf("println: %w", err)
	}
	return args[0], nil
}

func builtinStr(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: valueToString(args[0])}, nil
}

func builtinLen(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case *runtime.ListValue:
		return runtime.NumberValue{Val: float64(len(v.Elements))}, nil
	case *runtime.DictionaryValue:
		return runtime.NumberValue{Val: float64(len(v.Entries))}, nil
	case runtime.StringValue:
		return runtime.NumberValue{Val: float64(utf8.RuneCountInString(v.Val))}, nil
	default:
		return nil, fmt.Errorf("len expects a list, dictionary or string, got %s", args[0].Kind())
	}
}

func builtinExit(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	code, ok := runtime.AsNumber(args[0])
	if !ok {
		return nil, fmt.Errorf("exit expects a number, got %s", args[0].Kind())
	}
	ctx.Logger.Debug("exit requested", "code", int(code))
	ctx.Exit(int(code))
	return runtime.Nil, nil
}

// sleep pauses for the given number of milliseconds.
func builtinSleep(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	ms, ok := runtime.AsNumber(args[0])
	if !ok {
		return nil, fmt.Errorf("sleep expects a number, got %s", args[0].Kind())
	}
	if ms > 0 {
		ctx.Sleep(time.Duration(ms * float64(time.Millisecond)))
	}
	return runtime.Nil, nil
}

// clock reports milliseconds since the Unix epoch.
func builtinClock(ctx *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
	return runtime.NumberValue{Val: float64(ctx.Now().UnixMilli())}, nil
}

// input reads one line without its terminator; nil at end of input.
func builtinInput(ctx *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
	line, err := ctx.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return runtime.Nil, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return runtime.StringValue{Val: line}, nil
}

func builtinPromptInput(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if _, err := fmt.Fprint(ctx.Out, valueToString(args[0])); err != nil {
		return nil, fmt.Errorf("p_input: %w", err)
	}
	return builtinInput(ctx, nil)
}
