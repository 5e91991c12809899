// Package ast defines the syntax tree produced by the mirror parser.
//
// A program is an ordered list of statements. Statements, types, literals and
// call arguments are closed sum types: each is an interface with an unexported
// marker method, so only the variants declared in this package can satisfy it.
// Parents own their children by value and nothing holds a back-reference.
package ast

import (
	"strconv"
	"strings"
)

// Program is the ordered sequence of top-level statements of one source text.
type Program []Statement

func (p Program) String() string {
	parts := make([]string, 0, len(p))
	for _, stmt := range p {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "\n")
}

// StatementKind tags the variant of a Statement
type StatementKind uint8

const (
	KindSignature StatementKind = iota + 1
	KindExample
	KindExpression
)

func (k StatementKind) String() string {
	switch k {
	case KindSignature:
		return "signature"
	case KindExample:
		return "example"
	case KindExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// Statement is one of Signature, Example or Expression.
type Statement interface {
	Kind() StatementKind
	StatementName() string
	String() string
	statementNode()
}

// Argument is a call argument: any Literal or a nested Expression.
type Argument interface {
	String() string
	argumentNode()
}

// Signature declares a function's typed parameters and return type:
//
//	signature name(a: number, b: list[string]) -> bool
type Signature struct {
	Name       string
	Parameters []Parameter
	ReturnType Type
}

func (Signature) statementNode()          {}
func (Signature) Kind() StatementKind     { return KindSignature }
func (s Signature) StatementName() string { return s.Name }

func (s Signature) String() string {
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.String()
	}
	return "signature " + s.Name + "(" + strings.Join(params, ", ") + ") -> " + typeString(s.ReturnType)
}

// Parameter is a single `name: type` entry of a signature
type Parameter struct {
	Name string
	Type Type
}

func (p Parameter) String() string {
	return p.Name + ": " + typeString(p.Type)
}

// Example is a literal input/output case:
//
//	example name(1, "a") = true
type Example struct {
	Name      string
	Arguments []Literal
	Result    Literal
}

func (Example) statementNode()          {}
func (Example) Kind() StatementKind     { return KindExample }
func (e Example) StatementName() string { return e.Name }

func (e Example) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		args[i] = literalString(a)
	}
	return "example " + e.Name + "(" + strings.Join(args, ", ") + ") = " + literalString(e.Result)
}

// Expression is a function call over literals and nested calls:
//
//	outer(inner(1), "x")
type Expression struct {
	Name      string
	Arguments []Argument
}

func (Expression) statementNode()          {}
func (Expression) argumentNode()           {}
func (Expression) Kind() StatementKind     { return KindExpression }
func (e Expression) StatementName() string { return e.Name }

func (e Expression) String() string {
	args := make([]string, len(e.Arguments))
	for i, a := range e.Arguments {
		if a == nil {
			args[i] = "<nil>"
			continue
		}
		args[i] = a.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// SignatureWithExamples is a signature joined with every example of the same
// name, in source order.
type SignatureWithExamples struct {
	Signature
	Examples []Example
}

// Type is one of PrimitiveType, ListType or DictType.
type Type interface {
	String() string
	typeNode()
}

// Primitive type names
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "bool"
)

// PrimitiveType holds the keyword text: "string", "number" or "bool"
type PrimitiveType struct {
	Name string
}

func (PrimitiveType) typeNode()          {}
func (t PrimitiveType) String() string { return t.Name }

// ListType is list[Elem]
type ListType struct {
	Elem Type
}

func (ListType) typeNode()          {}
func (t ListType) String() string { return "list[" + typeString(t.Elem) + "]" }

// DictType is dict[Key, Value]
type DictType struct {
	Key   Type
	Value Type
}

func (DictType) typeNode() {}
func (t DictType) String() string {
	return "dict[" + typeString(t.Key) + ", " + typeString(t.Value) + "]"
}

// Literal is one of BoolLiteral, NumberLiteral, StringLiteral, ListLiteral or
// DictLiteral. Every literal is also a valid call Argument.
type Literal interface {
	Argument
	literalNode()
}

// BoolLiteral is true or false
type BoolLiteral struct {
	Value bool
}

func (BoolLiteral) literalNode()     {}
func (BoolLiteral) argumentNode()    {}
func (l BoolLiteral) String() string { return strconv.FormatBool(l.Value) }

// NumberLiteral holds every numeric literal as float64; 3 and 3.0 are equal.
type NumberLiteral struct {
	Value float64
}

func (NumberLiteral) literalNode()  {}
func (NumberLiteral) argumentNode() {}
func (l NumberLiteral) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64)
}

// StringLiteral keeps the token text verbatim, surrounding quotes included.
// No unescaping is performed.
type StringLiteral struct {
	Raw string
}

func (StringLiteral) literalNode()     {}
func (StringLiteral) argumentNode()    {}
func (l StringLiteral) String() string { return l.Raw }

// ListLiteral is [a, b, ...]
type ListLiteral struct {
	Items []Literal
}

func (ListLiteral) literalNode()  {}
func (ListLiteral) argumentNode() {}
func (l ListLiteral) String() string {
	items := make([]string, len(l.Items))
	for i, item := range l.Items {
		items[i] = literalString(item)
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// DictLiteral is a single-entry mapping {key: value}. The grammar has no
// multi-entry dictionary literal.
type DictLiteral struct {
	Key   Literal
	Value Literal
}

func (DictLiteral) literalNode()  {}
func (DictLiteral) argumentNode() {}
func (l DictLiteral) String() string {
	return "{" + literalString(l.Key) + ": " + literalString(l.Value) + "}"
}

func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func literalString(l Literal) string {
	if l == nil {
		return "<nil>"
	}
	return l.String()
}
