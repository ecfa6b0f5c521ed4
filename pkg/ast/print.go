package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a node as a parenthesized prefix form, e.g.
// `(+ 1 (* 2 3))`. Positions are omitted so that the output only depends on
// tree shape.
func Print(node Node) string {
	var sb strings.Builder
	writeNode(&sb, node)
	return sb.String()
}

// PrintProgram renders each statement on its own line.
func PrintProgram(stmts []Statement) string {
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = Print(s)
	}
	return strings.Join(lines, "\n")
}

func writeNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("<nil>")
	case *NumberLiteral:
		sb.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	case *StringLiteral:
		sb.WriteString(strconv.Quote(n.Value))
	case *BooleanLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *NilLiteral:
		sb.WriteString("nil")
	case *Variable:
		sb.WriteString(n.Name.Lexeme)
	case *Grouping:
		writeList(sb, "group", n.Expression)
	case *Binary:
		writeList(sb, n.Operator.Lexeme, n.Left, n.Right)
	case *Unary:
		writeList(sb, n.Operator.Lexeme, n.Operand)
	case *Call:
		writeList(sb, "call", append([]Node{n.Callee}, exprNodes(n.Arguments)...)...)
	case *Get:
		writeList(sb, "."+n.Name.Lexeme, n.Object)
	case *Index:
		writeList(sb, "[]", n.Object, n.Key)
	case *ListLiteral:
		writeList(sb, "list", exprNodes(n.Elements)...)
	case *DictionaryLiteral:
		sb.WriteString("(dict")
		for _, e := range n.Entries {
			sb.WriteString(" ")
			writeList(sb, ":", e.Key, e.Value)
		}
		sb.WriteString(")")
	case *Lambda:
		sb.WriteString("(fun (")
		sb.WriteString(strings.Join(n.ParamNames(), " "))
		sb.WriteString(") ")
		if n.Body != nil {
			writeNode(sb, n.Body)
		} else {
			writeNode(sb, n.Result)
		}
		sb.WriteString(")")
	case *ExpressionStatement:
		writeList(sb, "expr", n.Expression)
	case *ValDeclaration:
		writeList(sb, "val "+n.Name.Lexeme, n.Initializer)
	case *VarDeclaration:
		if n.Initializer == nil {
			writeList(sb, "var "+n.Name.Lexeme)
		} else {
			writeList(sb, "var "+n.Name.Lexeme, n.Initializer)
		}
	case *Assignment:
		writeList(sb, "= "+n.Target.Name.Lexeme, n.Value)
	case *SetStatement:
		writeList(sb, "set", n.Target, n.Value)
	case *Increment:
		writeList(sb, "++", n.Target)
	case *Decrement:
		writeList(sb, "--", n.Target)
	case *ReturnStatement:
		if n.Value == nil {
			writeList(sb, "return")
		} else {
			writeList(sb, "return", n.Value)
		}
	case *BreakStatement:
		sb.WriteString("(break)")
	case *ContinueStatement:
		sb.WriteString("(continue)")
	case *Block:
		nodes := make([]Node, len(n.Statements))
		for i, s := range n.Statements {
			nodes[i] = s
		}
		writeList(sb, "block", nodes...)
	case *IfStatement:
		if n.Else == nil {
			writeList(sb, "if", n.Condition, n.Then)
		} else {
			writeList(sb, "if", n.Condition, n.Then, n.Else)
		}
	case *WhileLoop:
		if n.Increment == nil {
			writeList(sb, "while", n.Condition, n.Body)
		} else {
			writeList(sb, "while", n.Condition, n.Body, n.Increment)
		}
	default:
		fmt.Fprintf(sb, "<%s>", node.NodeType())
	}
}

func writeList(sb *strings.Builder, head string, children ...Node) {
	sb.WriteString("(")
	sb.WriteString(head)
	for _, c := range children {
		sb.WriteString(" ")
		writeNode(sb, c)
	}
	sb.WriteString(")")
}

func exprNodes(exprs []Expression) []Node {
	nodes := make([]Node, len(exprs))
	for i, e := range exprs {
		nodes[i] = e
	}
	return nodes
}
