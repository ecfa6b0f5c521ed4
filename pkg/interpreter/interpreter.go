package interpreter

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"time"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/lexer"
	"crispy/interpreter-go/pkg/parser"
	"crispy/interpreter-go/pkg/resolver"
	"crispy/interpreter-go/pkg/runtime"
)

// maxCallDepth bounds nested calls so that runaway recursion surfaces as a
// runtime error instead of exhausting the goroutine stack.
const maxCallDepth = 10000

// Interpreter drives evaluation of Crispy programs. The global frame
// persists across Interpret calls. locals is the distance table of the code
// currently running: the chunk's own at top level, and the table captured
// by the function during a call.
type Interpreter struct {
	global *runtime.Environment
	locals resolver.Locals
	depth  int

	out    io.Writer
	in     *bufio.Reader
	exit   func(int)
	now    func() time.Time
	sleep  func(time.Duration)
	logger *slog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStdout redirects println and prompts.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithStdin sets the source for input and p_input.
func WithStdin(r io.Reader) Option {
	return func(i *Interpreter) { i.in = bufio.NewReader(r) }
}

// WithExit replaces the hook behind the exit builtin.
func WithExit(fn func(code int)) Option {
	return func(i *Interpreter) { i.exit = fn }
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// WithClock replaces the time source used by clock and sleep.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(i *Interpreter) {
		if now != nil {
			i.now = now
		}
		if sleep != nil {
			i.sleep = sleep
		}
	}
}

// New returns an interpreter whose global environment holds the builtins.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
		exit:   os.Exit,
		now:    time.Now,
		sleep:  time.Sleep,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.registerBuiltins()
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Interpret lexes, parses, resolves and runs one chunk of source. Lexical
// and syntax errors are reported but the statements that did parse still
// run; a resolve error prevents execution; a runtime error stops the chunk.
// The returned error is nil or a *ChunkError.
func (i *Interpreter) Interpret(sess *Session, source string) error {
	if sess == nil {
		sess = NewSession()
	}
	offset := sess.add(source)

	stmts, locals, diags, ok := analyze(source, offset)
	if !ok {
		i.logger.Debug("chunk rejected", "statements", len(stmts), "diagnostics", len(diags))
		return &ChunkError{Diagnostics: diags}
	}
	i.locals = locals

	i.logger.Debug("executing chunk", "statements", len(stmts), "locals", len(locals), "line_offset", offset, "interactive", sess.Interactive)
	if err := i.execute(stmts); err != nil {
		diags = append(diags, runtimeDiagnostic(err))
	}
	if len(diags) > 0 {
		return &ChunkError{Diagnostics: diags}
	}
	return nil
}

// Check runs the static phases over source without executing it. It keeps
// no state and is safe to call from several goroutines.
func Check(source string) []Diagnostic {
	_, _, diags, _ := analyze(source, 0)
	return diags
}

// analyze collects lex, parse and resolve diagnostics. ok is false when
// resolution failed and the statements must not run.
func analyze(source string, offset int) (stmts []ast.Statement, locals resolver.Locals, diags []Diagnostic, ok bool) {
	stmts, lexErrs, parseErrs := parser.ParseSource(source, lexer.WithLineOffset(offset))
	for _, e := range lexErrs {
		diags = append(diags, Diagnostic{Phase: PhaseLex, Line: e.Pos.Line, Column: e.Pos.Column, Message: e.Message})
	}
	for _, e := range parseErrs {
		diags = append(diags, Diagnostic{Phase: PhaseParse, Line: e.Token.Line, Column: e.Token.Column, Message: e.Message})
	}

	locals, resolveErrs := resolver.Resolve(stmts)
	for _, e := range resolveErrs {
		diags = append(diags, Diagnostic{Phase: PhaseResolve, Line: e.Token.Line, Column: e.Token.Column, Message: e.Message})
	}
	return stmts, locals, diags, len(resolveErrs) == 0
}

// execute runs top-level statements in the global frame.
func (i *Interpreter) execute(stmts []ast.Statement) error {
	for _, stmt := range stmts {
		if _, err := i.evaluateStatement(stmt, i.global); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) callContext(env *runtime.Environment) *runtime.NativeCallContext {
	return &runtime.NativeCallContext{
		Env:    env,
		Out:    i.out,
		In:     i.in,
		Exit:   i.exit,
		Now:    i.now,
		Sleep:  i.sleep,
		Logger: i.logger,
	}
}
