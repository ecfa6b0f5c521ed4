package ast

import "crispy/interpreter-go/pkg/token"

// Shorthand constructors for building trees by hand, mostly in tests.
// Synthesized tokens carry line 1 and no offsets.

var operatorKinds = map[string]token.Kind{
	"+": token.Plus, "-": token.Minus, "*": token.Star, "/": token.Slash, "%": token.Percent,
	"!": token.Bang, "==": token.EqualsEquals, "!=": token.BangEquals,
	"<": token.Smaller, "<=": token.SmallerEquals, ">": token.Greater, ">=": token.GreaterEquals,
	"and": token.And, "or": token.Or, "++": token.PlusPlus, "--": token.MinusMinus,
	"=": token.Equals,
}

// Tok synthesizes a token for an operator or keyword lexeme.
func Tok(lexeme string) token.Token {
	kind, ok := operatorKinds[lexeme]
	if !ok {
		if kw, isKeyword := token.Keywords[lexeme]; isKeyword {
			kind = kw
		} else {
			kind = token.Identifier
		}
	}
	return token.Token{Kind: kind, Lexeme: lexeme, Line: 1, Column: 1}
}

// Ident synthesizes an identifier token.
func Ident(name string) token.Token {
	return token.Token{Kind: token.Identifier, Lexeme: name, Literal: name, Line: 1, Column: 1}
}

func Num(v float64) *NumberLiteral { return NewNumberLiteral(v) }
func Str(s string) *StringLiteral  { return NewStringLiteral(s) }
func Bool(b bool) *BooleanLiteral  { return NewBooleanLiteral(b) }
func Nil() *NilLiteral             { return NewNilLiteral() }
func Var(name string) *Variable    { return NewVariable(Ident(name)) }

func Bin(op string, left, right Expression) *Binary {
	return NewBinary(left, Tok(op), right)
}

func Un(op string, operand Expression) *Unary {
	return NewUnary(Tok(op), operand)
}

func CallExpr(callee Expression, args ...Expression) *Call {
	return NewCall(callee, Tok("("), args)
}

func Member(object Expression, name string) *Get {
	return NewGet(object, Ident(name))
}

func At(object, key Expression) *Index {
	return NewIndex(object, Tok("["), key)
}

func List(elements ...Expression) *ListLiteral {
	return NewListLiteral(Tok("["), elements)
}

// Dict builds a dictionary literal from alternating key/value expressions.
func Dict(kv ...Expression) *DictionaryLiteral {
	entries := make([]*DictionaryEntry, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		entries = append(entries, &DictionaryEntry{Key: kv[i], Value: kv[i+1]})
	}
	return NewDictionaryLiteral(Tok("{"), entries)
}

func Fn(params []string, body ...Statement) *Lambda {
	return NewLambda(Tok("fun"), idents(params), NewBlock(body...), nil)
}

func FnExpr(params []string, result Expression) *Lambda {
	return NewLambda(Tok("fun"), idents(params), nil, result)
}

func Expr(e Expression) *ExpressionStatement { return NewExpressionStatement(e) }

func Val(name string, init Expression) *ValDeclaration {
	return NewValDeclaration(Ident(name), init)
}

func VarDecl(name string, init Expression) *VarDeclaration {
	return NewVarDeclaration(Ident(name), init)
}

func Assign(name string, value Expression) *Assignment {
	return NewAssignment(Var(name), Tok("="), value)
}

func Set(target AssignmentTarget, value Expression) *SetStatement {
	return NewSetStatement(target, Tok("="), value)
}

func Inc(target AssignmentTarget) *Increment { return NewIncrement(target, Tok("++")) }
func Dec(target AssignmentTarget) *Decrement { return NewDecrement(target, Tok("--")) }

func Ret(value Expression) *ReturnStatement { return NewReturnStatement(Tok("return"), value) }
func Brk() *BreakStatement                  { return NewBreakStatement(Tok("break")) }
func Cont() *ContinueStatement              { return NewContinueStatement(Tok("continue")) }

func If(cond Expression, then *Block, elseBranch Statement) *IfStatement {
	return NewIfStatement(Tok("if"), cond, then, elseBranch)
}

func While(cond Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(Tok("while"), cond, NewBlock(body...))
}

func idents(names []string) []token.Token {
	out := make([]token.Token, len(names))
	for i, n := range names {
		out[i] = Ident(n)
	}
	return out
}
