// Package ast defines the syntax tree produced by the sorrel parser.
//
// The node set is closed: consumers discriminate variants with a type
// switch over the concrete node types, so the compiler enforces that a
// new node kind updates every consumer. Nodes own their children
// exclusively (a tree, never a cycle), hold no parent references, and
// are not mutated after construction.
package ast

import (
	"bytes"
	"strings"

	"github.com/sorrel-lang/sorrel/pkg/sorrel/lexer"
)

// Node represents any node in the AST
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression represents expression nodes
type Expression interface {
	Node
	expressionNode()
}

// LiteralKind tags a Literal node with its lexical category.
type LiteralKind int

const (
	IntegerLiteral LiteralKind = iota
	DecimalLiteral
	StringLiteral
	BooleanLiteral
	NullLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case IntegerLiteral:
		return "integer"
	case DecimalLiteral:
		return "decimal"
	case StringLiteral:
		return "string"
	case BooleanLiteral:
		return "boolean"
	case NullLiteral:
		return "null"
	}
	return "unknown"
}

// Literal is a constant: a number, string, boolean, or null. Value is
// the exact source substring; no numeric normalization is performed.
type Literal struct {
	Token lexer.Token
	Kind  LiteralKind
	Value string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) String() string {
	if l.Kind == StringLiteral {
		return `"` + l.Value + `"`
	}
	return l.Value
}

// Identifier is a symbol reference (including 'this' and 'super').
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// UnaryExpression is a prefix operator applied to a single operand.
type UnaryExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator + ue.Operand.String() + ")"
}

// BinaryExpression is an infix operator with two operands. Chains of
// three or more comparison operands become a RelationalExpression
// instead.
type BinaryExpression struct {
	Token    lexer.Token // the operator token
	Operator string
	OpType   lexer.TokenType
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// RelationalExpression is a chained comparison of three or more
// operands, e.g. 'a < b < c'. Operators holds the n comparison tokens
// in order; Operands holds the n+1 operands. Two-operand comparisons
// stay plain BinaryExpressions.
type RelationalExpression struct {
	Token     lexer.Token // the first comparison operator token
	Operators []lexer.Token
	Operands  []Expression
}

func (re *RelationalExpression) expressionNode()      {}
func (re *RelationalExpression) TokenLiteral() string { return re.Token.Literal }
func (re *RelationalExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, operand := range re.Operands {
		if i > 0 {
			out.WriteString(" " + re.Operators[i-1].Literal + " ")
		}
		out.WriteString(operand.String())
	}
	out.WriteString(")")
	return out.String()
}

// ConditionalExpression is the postfix 'if' form: the prior operand is
// the then-branch, the expression after the condition (optionally
// introduced by 'else') is the alternative.
type ConditionalExpression struct {
	Token     lexer.Token // the 'if' token
	Condition Expression
	Then      Expression
	Else      Expression // may be nil
}

func (ce *ConditionalExpression) expressionNode()      {}
func (ce *ConditionalExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *ConditionalExpression) String() string {
	var out bytes.Buffer
	out.WriteString(ce.Then.String())
	out.WriteString(" if (")
	out.WriteString(ce.Condition.String())
	out.WriteString(")")
	if ce.Else != nil {
		out.WriteString(" else ")
		out.WriteString(ce.Else.String())
	}
	return out.String()
}

// WhileExpression is a loop: 'while (condition) { body }'.
type WhileExpression struct {
	Token     lexer.Token // the 'while' token
	Condition Expression
	Body      *Block
}

func (we *WhileExpression) expressionNode()      {}
func (we *WhileExpression) TokenLiteral() string { return we.Token.Literal }
func (we *WhileExpression) String() string {
	return "while (" + we.Condition.String() + ") " + we.Body.String()
}

// Block is an ordered sequence of expressions. An empty block is
// invalid: the parser requires at least one expression.
type Block struct {
	Token       lexer.Token // the token opening the block
	Expressions []Expression
}

func (b *Block) expressionNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for i, e := range b.Expressions {
		if i > 0 {
			out.WriteString("; ")
		}
		out.WriteString(e.String())
	}
	out.WriteString(" }")
	return out.String()
}

// Assignment binds a value to a target. Target is an Identifier or an
// Accessor; IsDeclaration is set for 'var' declarations.
type Assignment struct {
	Token         lexer.Token // the '=' token
	Target        Expression
	Value         Expression
	IsDeclaration bool
}

func (a *Assignment) expressionNode()      {}
func (a *Assignment) TokenLiteral() string { return a.Token.Literal }
func (a *Assignment) String() string {
	var out bytes.Buffer
	if a.IsDeclaration {
		out.WriteString("var ")
	}
	out.WriteString(a.Target.String())
	out.WriteString(" = ")
	out.WriteString(a.Value.String())
	return out.String()
}

// FunctionCall invokes a callee with ordered arguments. The callee may
// itself be a FunctionCall or Accessor, so call chains nest leftward.
type FunctionCall struct {
	Token     lexer.Token // the '(' token
	Callee    Expression
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()      {}
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) String() string {
	args := make([]string, len(fc.Arguments))
	for i, a := range fc.Arguments {
		args[i] = a.String()
	}
	return fc.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// Accessor is a postfix member access ('.') or index ('@') applied to a
// base expression. Operator distinguishes the two forms.
type Accessor struct {
	Token    lexer.Token // the '.' or '@' token
	Operator lexer.TokenType
	Object   Expression
	Member   Expression
}

func (ac *Accessor) expressionNode()      {}
func (ac *Accessor) TokenLiteral() string { return ac.Token.Literal }
func (ac *Accessor) String() string {
	if ac.Operator == lexer.AT {
		return ac.Object.String() + "@" + ac.Member.String()
	}
	return ac.Object.String() + "." + ac.Member.String()
}

// Array is an ordered element list: '[a, b, c]'.
type Array struct {
	Token    lexer.Token // the '[' token
	Elements []Expression
}

func (ar *Array) expressionNode()      {}
func (ar *Array) TokenLiteral() string { return ar.Token.Literal }
func (ar *Array) String() string {
	elems := make([]string, len(ar.Elements))
	for i, e := range ar.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// MapEntry is one key/value pair of a map literal.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// Map is an ordered list of key/value pairs: '{a: 1, b: 2}'.
type Map struct {
	Token   lexer.Token // the '{' token
	Entries []MapEntry
}

func (m *Map) expressionNode()      {}
func (m *Map) TokenLiteral() string { return m.Token.Literal }
func (m *Map) String() string {
	entries := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(entries, ", ") + "}"
}

// LetBinding is one 'identifier [: type] = initializer' pair inside a
// let construct.
type LetBinding struct {
	Name  *Identifier
	Type  *Identifier // nil when no annotation
	Value Expression
}

// Let introduces scoped bindings for a body expression:
// 'let a: Int = 2, b = 3 in a + b'.
type Let struct {
	Token    lexer.Token // the 'let' token
	Bindings []LetBinding
	Body     Expression
}

func (l *Let) expressionNode()      {}
func (l *Let) TokenLiteral() string { return l.Token.Literal }
func (l *Let) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	for i, b := range l.Bindings {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(b.Name.String())
		if b.Type != nil {
			out.WriteString(": " + b.Type.String())
		}
		out.WriteString(" = " + b.Value.String())
	}
	out.WriteString(" in ")
	out.WriteString(l.Body.String())
	return out.String()
}

// Parameter is a typed function or constructor parameter.
type Parameter struct {
	Name *Identifier
	Type *Identifier // nil for untyped parameters (definition shorthand)
}

func (p Parameter) String() string {
	if p.Type == nil {
		return p.Name.String()
	}
	return p.Name.String() + ": " + p.Type.String()
}

// FunctionDefinition declares a named function. Body is always a Block.
type FunctionDefinition struct {
	Token      lexer.Token // the 'func' token (or the name for shorthand)
	Name       *Identifier
	Parameters []Parameter
	ReturnType *Identifier // nil when omitted
	Body       *Block
	Override   bool
	Private    bool
}

func (fd *FunctionDefinition) expressionNode()      {}
func (fd *FunctionDefinition) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDefinition) String() string {
	var out bytes.Buffer
	if fd.Private {
		out.WriteString("private ")
	}
	if fd.Override {
		out.WriteString("override ")
	}
	out.WriteString("func " + fd.Name.String() + "(")
	params := make([]string, len(fd.Parameters))
	for i, p := range fd.Parameters {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if fd.ReturnType != nil {
		out.WriteString(": " + fd.ReturnType.String())
	}
	out.WriteString(" = " + fd.Body.String())
	return out.String()
}

// Property is a class property declaration.
type Property struct {
	Name    *Identifier
	Type    *Identifier
	Value   Expression // nil when no initializer
	Final   bool
	Private bool
}

func (p Property) String() string {
	var out bytes.Buffer
	if p.Private {
		out.WriteString("private ")
	}
	if p.Final {
		out.WriteString("final ")
	} else {
		out.WriteString("var ")
	}
	out.WriteString(p.Name.String() + ": " + p.Type.String())
	if p.Value != nil {
		out.WriteString(" = " + p.Value.String())
	}
	return out.String()
}

// ClassDefinition declares a class: constructor parameters, ordered
// properties, and ordered member functions.
type ClassDefinition struct {
	Token      lexer.Token // the 'class' token
	Name       *Identifier
	Parameters []Parameter
	Superclass *Identifier // nil without an 'extends' clause
	Properties []Property
	Functions  []*FunctionDefinition
}

func (cd *ClassDefinition) expressionNode()      {}
func (cd *ClassDefinition) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("class " + cd.Name.String() + "(")
	params := make([]string, len(cd.Parameters))
	for i, p := range cd.Parameters {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if cd.Superclass != nil {
		out.WriteString(" extends " + cd.Superclass.String())
	}
	out.WriteString(" { ")
	for _, p := range cd.Properties {
		out.WriteString(p.String() + "; ")
	}
	for _, f := range cd.Functions {
		out.WriteString(f.String() + "; ")
	}
	out.WriteString("}")
	return out.String()
}

// NewExpression constructs a class instance: 'new Point(1, 2)'.
type NewExpression struct {
	Token     lexer.Token // the 'new' token
	Class     *Identifier
	Arguments []Expression
}

func (ne *NewExpression) expressionNode()      {}
func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) String() string {
	args := make([]string, len(ne.Arguments))
	for i, a := range ne.Arguments {
		args[i] = a.String()
	}
	return "new " + ne.Class.String() + "(" + strings.Join(args, ", ") + ")"
}

// Program is a sequence of class definitions: the whole-file entry
// point of the grammar.
type Program struct {
	Classes []*ClassDefinition
}

func (p *Program) TokenLiteral() string {
	if len(p.Classes) > 0 {
		return p.Classes[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, c := range p.Classes {
		out.WriteString(c.String())
		out.WriteString("\n")
	}
	return out.String()
}
