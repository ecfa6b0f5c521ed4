package ast

import "crispy/interpreter-go/pkg/token"

type NodeType string

const (
	NodeBinary              NodeType = "Binary"
	NodeUnary               NodeType = "Unary"
	NodeLambda              NodeType = "Lambda"
	NodeCall                NodeType = "Call"
	NodeGet                 NodeType = "Get"
	NodeIndex               NodeType = "Index"
	NodeNumberLiteral       NodeType = "NumberLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeNilLiteral          NodeType = "NilLiteral"
	NodeVariable            NodeType = "Variable"
	NodeGrouping            NodeType = "Grouping"
	NodeDictionaryLiteral   NodeType = "DictionaryLiteral"
	NodeListLiteral         NodeType = "ListLiteral"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeBreakStatement      NodeType = "BreakStatement"
	NodeContinueStatement   NodeType = "ContinueStatement"
	NodeBlock               NodeType = "Block"
	NodeIfStatement         NodeType = "IfStatement"
	NodeValDeclaration      NodeType = "ValDeclaration"
	NodeVarDeclaration      NodeType = "VarDeclaration"
	NodeWhileLoop           NodeType = "WhileLoop"
	NodeAssignment          NodeType = "Assignment"
	NodeIncrement           NodeType = "Increment"
	NodeDecrement           NodeType = "Decrement"
	NodeSetStatement        NodeType = "SetStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// AssignmentTarget is implemented by the expressions that may appear on the
// left of `=`, `++` and `--`.
type AssignmentTarget interface {
	Expression
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NilLiteral struct {
	nodeImpl
	expressionMarker
	literalMarker
}

func NewNilLiteral() *NilLiteral {
	return &NilLiteral{nodeImpl: newNodeImpl(NodeNilLiteral)}
}

// Variable is a reference to a named binding. Each occurrence in the source
// gets its own node; the resolver keys its distance table on that identity.
type Variable struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Name token.Token `json:"name"`
}

func NewVariable(name token.Token) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Identifier returns the referenced name.
func (v *Variable) Identifier() string { return v.Name.Lexeme }

type Grouping struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGrouping(expr Expression) *Grouping {
	return &Grouping{nodeImpl: newNodeImpl(NodeGrouping), Expression: expr}
}

// Operators

type Binary struct {
	nodeImpl
	expressionMarker

	Left     Expression  `json:"left"`
	Operator token.Token `json:"operator"`
	Right    Expression  `json:"right"`
}

func NewBinary(left Expression, operator token.Token, right Expression) *Binary {
	return &Binary{nodeImpl: newNodeImpl(NodeBinary), Left: left, Operator: operator, Right: right}
}

type Unary struct {
	nodeImpl
	expressionMarker

	Operator token.Token `json:"operator"`
	Operand  Expression  `json:"operand"`
}

func NewUnary(operator token.Token, operand Expression) *Unary {
	return &Unary{nodeImpl: newNodeImpl(NodeUnary), Operator: operator, Operand: operand}
}

// Postfix chain

type Call struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     token.Token  `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCall(callee Expression, paren token.Token, args []Expression) *Call {
	return &Call{nodeImpl: newNodeImpl(NodeCall), Callee: callee, Paren: paren, Arguments: args}
}

// Get is property access `object.name`; only dictionaries support it.
type Get struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Object Expression  `json:"object"`
	Name   token.Token `json:"name"`
}

func NewGet(object Expression, name token.Token) *Get {
	return &Get{nodeImpl: newNodeImpl(NodeGet), Object: object, Name: name}
}

// Index is `object[key]` on a dictionary or a list.
type Index struct {
	nodeImpl
	expressionMarker
	assignmentTargetMarker

	Object  Expression  `json:"object"`
	Bracket token.Token `json:"bracket"`
	Key     Expression  `json:"key"`
}

func NewIndex(object Expression, bracket token.Token, key Expression) *Index {
	return &Index{nodeImpl: newNodeImpl(NodeIndex), Object: object, Bracket: bracket, Key: key}
}

// Composite literals

type DictionaryEntry struct {
	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

type DictionaryLiteral struct {
	nodeImpl
	expressionMarker

	Brace   token.Token        `json:"brace"`
	Entries []*DictionaryEntry `json:"entries"`
}

func NewDictionaryLiteral(brace token.Token, entries []*DictionaryEntry) *DictionaryLiteral {
	return &DictionaryLiteral{nodeImpl: newNodeImpl(NodeDictionaryLiteral), Brace: brace, Entries: entries}
}

type ListLiteral struct {
	nodeImpl
	expressionMarker

	Bracket  token.Token  `json:"bracket"`
	Elements []Expression `json:"elements"`
}

func NewListLiteral(bracket token.Token, elements []Expression) *ListLiteral {
	return &ListLiteral{nodeImpl: newNodeImpl(NodeListLiteral), Bracket: bracket, Elements: elements}
}
