package ast

import "crispy/interpreter-go/pkg/token"

// Functions

// Lambda is an anonymous function. Exactly one of Body and Result is set:
// `fun (a) -> { ... }` fills Body, `fun (a) -> a + 1` fills Result, whose
// value is returned implicitly.
type Lambda struct {
	nodeImpl
	expressionMarker

	Keyword token.Token   `json:"keyword"`
	Params  []token.Token `json:"params"`
	Body    *Block        `json:"body,omitempty"`
	Result  Expression    `json:"result,omitempty"`
}

func NewLambda(keyword token.Token, params []token.Token, body *Block, result Expression) *Lambda {
	return &Lambda{nodeImpl: newNodeImpl(NodeLambda), Keyword: keyword, Params: params, Body: body, Result: result}
}

// ParamNames lists the parameter identifiers in order.
func (l *Lambda) ParamNames() []string {
	names := make([]string, len(l.Params))
	for i, p := range l.Params {
		names[i] = p.Lexeme
	}
	return names
}

// Declarations

type ValDeclaration struct {
	nodeImpl
	statementMarker

	Name        token.Token `json:"name"`
	Initializer Expression  `json:"initializer"`
}

func NewValDeclaration(name token.Token, initializer Expression) *ValDeclaration {
	return &ValDeclaration{nodeImpl: newNodeImpl(NodeValDeclaration), Name: name, Initializer: initializer}
}

// VarDeclaration declares a mutable binding; Initializer may be nil.
type VarDeclaration struct {
	nodeImpl
	statementMarker

	Name        token.Token `json:"name"`
	Initializer Expression  `json:"initializer,omitempty"`
}

func NewVarDeclaration(name token.Token, initializer Expression) *VarDeclaration {
	return &VarDeclaration{nodeImpl: newNodeImpl(NodeVarDeclaration), Name: name, Initializer: initializer}
}

// Statements

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

// ReturnStatement leaves the enclosing function; Value may be nil.
type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
	Value   Expression  `json:"value,omitempty"`
}

func NewReturnStatement(keyword token.Token, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}

type BreakStatement struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
}

func NewBreakStatement(keyword token.Token) *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement), Keyword: keyword}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
}

func NewContinueStatement(keyword token.Token) *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement), Keyword: keyword}
}

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlock(statements ...Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: statements}
}

// IfStatement's Else is nil, a *Block, or a nested *IfStatement.
type IfStatement struct {
	nodeImpl
	statementMarker

	Keyword   token.Token `json:"keyword"`
	Condition Expression  `json:"condition"`
	Then      *Block      `json:"then"`
	Else      Statement   `json:"else,omitempty"`
}

func NewIfStatement(keyword token.Token, condition Expression, then *Block, elseBranch Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Keyword: keyword, Condition: condition, Then: then, Else: elseBranch}
}

// WhileLoop repeats Body while Condition is truthy. Increment is only set
// for loops lowered from `for`; it runs after each pass through Body.
type WhileLoop struct {
	nodeImpl
	statementMarker

	Keyword   token.Token `json:"keyword"`
	Condition Expression  `json:"condition"`
	Body      *Block      `json:"body"`
	Increment Statement   `json:"increment,omitempty"`
}

func NewWhileLoop(keyword token.Token, condition Expression, body *Block) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Keyword: keyword, Condition: condition, Body: body}
}

// Assignment rebinds a variable: `name = value;`.
type Assignment struct {
	nodeImpl
	statementMarker

	Target *Variable   `json:"target"`
	Equals token.Token `json:"equals"`
	Value  Expression  `json:"value"`
}

func NewAssignment(target *Variable, equals token.Token, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Target: target, Equals: equals, Value: value}
}

type Increment struct {
	nodeImpl
	statementMarker

	Target   AssignmentTarget `json:"target"`
	Operator token.Token      `json:"operator"`
}

func NewIncrement(target AssignmentTarget, operator token.Token) *Increment {
	return &Increment{nodeImpl: newNodeImpl(NodeIncrement), Target: target, Operator: operator}
}

type Decrement struct {
	nodeImpl
	statementMarker

	Target   AssignmentTarget `json:"target"`
	Operator token.Token      `json:"operator"`
}

func NewDecrement(target AssignmentTarget, operator token.Token) *Decrement {
	return &Decrement{nodeImpl: newNodeImpl(NodeDecrement), Target: target, Operator: operator}
}

// SetStatement writes into a container: Target is a *Get or an *Index.
type SetStatement struct {
	nodeImpl
	statementMarker

	Target AssignmentTarget `json:"target"`
	Equals token.Token      `json:"equals"`
	Value  Expression       `json:"value"`
}

func NewSetStatement(target AssignmentTarget, equals token.Token, value Expression) *SetStatement {
	return &SetStatement{nodeImpl: newNodeImpl(NodeSetStatement), Target: target, Equals: equals, Value: value}
}
