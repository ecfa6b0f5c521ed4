// Package resolver computes, for every local variable reference, how many
// environment frames separate the use from its declaration.
package resolver

import (
	"fmt"

	"crispy/interpreter-go/pkg/ast"
	"crispy/interpreter-go/pkg/token"
)

// Locals maps each resolved variable occurrence to its frame distance.
// References that are absent are globals.
type Locals map[*ast.Variable]int

// Error is a static scoping error.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
}

type scope map[string]bool

// Resolver walks a program once. It is not reusable.
type Resolver struct {
	scopes    []scope
	locals    Locals
	errors    []*Error
	loopDepth int
	funcDepth int
}

// Resolve resolves a whole chunk. The chunk's top level gets its own scope.
func Resolve(stmts []ast.Statement) (Locals, []*Error) {
	r := &Resolver{locals: make(Locals)}
	r.beginScope()
	r.statements(stmts)
	r.endScope()
	return r.locals, r.errors
}

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, make(scope)) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) fail(tok token.Token, format string, args ...any) {
	r.errors = append(r.errors, &Error{Token: tok, Message: fmt.Sprintf(format, args...)})
}

func (r *Resolver) declare(name token.Token) {
	current := r.scopes[len(r.scopes)-1]
	if _, exists := current[name.Lexeme]; exists {
		r.fail(name, "Variable '%s' already defined in this scope", name.Lexeme)
		return
	}
	current[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(v *ast.Variable) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][v.Name.Lexeme]; ok {
			r.locals[v] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) statements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		r.statement(stmt)
	}
}

func (r *Resolver) statement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		r.expression(s.Expression)
	case *ast.ValDeclaration:
		r.declare(s.Name)
		r.expression(s.Initializer)
		r.define(s.Name)
	case *ast.VarDeclaration:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.expression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Block:
		r.beginScope()
		r.statements(s.Statements)
		r.endScope()
	case *ast.IfStatement:
		r.expression(s.Condition)
		r.statement(s.Then)
		if s.Else != nil {
			r.statement(s.Else)
		}
	case *ast.WhileLoop:
		r.expression(s.Condition)
		r.loopDepth++
		r.statement(s.Body)
		r.loopDepth--
		if s.Increment != nil {
			r.statement(s.Increment)
		}
	case *ast.ReturnStatement:
		if r.funcDepth == 0 {
			r.fail(s.Keyword, "Cannot return from top-level code")
		}
		if s.Value != nil {
			r.expression(s.Value)
		}
	case *ast.BreakStatement:
		if r.loopDepth == 0 {
			r.fail(s.Keyword, "Cannot use 'break' outside of a loop")
		}
	case *ast.ContinueStatement:
		if r.loopDepth == 0 {
			r.fail(s.Keyword, "Cannot use 'continue' outside of a loop")
		}
	case *ast.Assignment:
		r.expression(s.Value)
		r.resolveLocal(s.Target)
	case *ast.SetStatement:
		r.expression(s.Value)
		r.expression(s.Target)
	case *ast.Increment:
		r.expression(s.Target)
	case *ast.Decrement:
		r.expression(s.Target)
	}
}

func (r *Resolver) expression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.fail(e.Name, "Cannot read local variable '%s' in its own initializer", e.Name.Lexeme)
			}
		}
		r.resolveLocal(e)
	case *ast.Grouping:
		r.expression(e.Expression)
	case *ast.Binary:
		r.expression(e.Left)
		r.expression(e.Right)
	case *ast.Unary:
		r.expression(e.Operand)
	case *ast.Call:
		r.expression(e.Callee)
		for _, arg := range e.Arguments {
			r.expression(arg)
		}
	case *ast.Get:
		r.expression(e.Object)
	case *ast.Index:
		r.expression(e.Object)
		r.expression(e.Key)
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			r.expression(el)
		}
	case *ast.DictionaryLiteral:
		for _, entry := range e.Entries {
			r.expression(entry.Key)
			r.expression(entry.Value)
		}
	case *ast.Lambda:
		r.lambda(e)
	}
}

// lambda resolves parameters and body in one scope, matching the single
// activation frame a call creates. Loop depth does not cross the function
// boundary.
func (r *Resolver) lambda(fn *ast.Lambda) {
	enclosingLoops := r.loopDepth
	r.loopDepth = 0
	r.funcDepth++
	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	if fn.Body != nil {
		r.statements(fn.Body.Statements)
	} else {
		r.expression(fn.Result)
	}
	r.endScope()
	r.funcDepth--
	r.loopDepth = enclosingLoops
}
