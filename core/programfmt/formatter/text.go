// Package formatter renders programs back to source text.
// This includes canonical text output, diffs, and tree displays.
package formatter

import (
	"strconv"
	"strings"

	"github.com/opal-lang/mirror/core/ast"
)

// Format returns the canonical source text of program, one statement per
// line. Parsing the result yields an equal program.
//
// Format:
//
//	signature <name>(<param>: <type>, ...) -> <type>
//	example <name>(<literal>, ...) = <literal>
//	<name>(<argument>, ...)
func Format(program ast.Program) string {
	return render(program, false)
}

// Highlight is Format with ANSI colors for keywords, names, types and literals
func Highlight(program ast.Program) string {
	return render(program, true)
}

func render(program ast.Program, useColor bool) string {
	var b strings.Builder
	p := printer{useColor: useColor}
	for _, stmt := range program {
		b.WriteString(p.statement(stmt))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatStatement returns a single statement as source text
func FormatStatement(stmt ast.Statement) string {
	return printer{}.statement(stmt)
}

// FormatType returns a type as source text
func FormatType(typ ast.Type) string {
	return printer{}.typ(typ)
}

// FormatLiteral returns a literal as source text
func FormatLiteral(lit ast.Literal) string {
	return printer{}.argument(lit)
}

// printer renders nodes, optionally colored
type printer struct {
	useColor bool
}

func (p printer) color(text, color string) string {
	return Colorize(text, color, p.useColor)
}

func (p printer) statement(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case ast.Signature:
		params := make([]string, len(s.Parameters))
		for i, param := range s.Parameters {
			params[i] = p.color(param.Name, ColorCyan) + ": " + p.typ(param.Type)
		}
		return p.color("signature", ColorBlue) + " " + p.color(s.Name, ColorYellow) +
			"(" + strings.Join(params, ", ") + ") -> " + p.typ(s.ReturnType)
	case ast.Example:
		args := make([]string, len(s.Arguments))
		for i, arg := range s.Arguments {
			args[i] = p.argument(arg)
		}
		return p.color("example", ColorBlue) + " " + p.color(s.Name, ColorYellow) +
			"(" + strings.Join(args, ", ") + ") = " + p.argument(s.Result)
	case ast.Expression:
		return p.call(s)
	case nil:
		return "<nil>"
	default:
		return "(unknown: " + stmt.String() + ")"
	}
}

func (p printer) call(e ast.Expression) string {
	args := make([]string, len(e.Arguments))
	for i, arg := range e.Arguments {
		args[i] = p.argument(arg)
	}
	return p.color(e.Name, ColorYellow) + "(" + strings.Join(args, ", ") + ")"
}

func (p printer) typ(typ ast.Type) string {
	switch t := typ.(type) {
	case ast.PrimitiveType:
		return p.color(t.Name, ColorGreen)
	case ast.ListType:
		return p.color("list", ColorGreen) + "[" + p.typ(t.Elem) + "]"
	case ast.DictType:
		return p.color("dict", ColorGreen) + "[" + p.typ(t.Key) + ", " + p.typ(t.Value) + "]"
	case nil:
		return "<nil>"
	default:
		return "(unknown: " + typ.String() + ")"
	}
}

func (p printer) argument(arg ast.Argument) string {
	switch a := arg.(type) {
	case ast.BoolLiteral:
		return p.color(strconv.FormatBool(a.Value), ColorCyan)
	case ast.NumberLiteral:
		return p.color(strconv.FormatFloat(a.Value, 'f', -1, 64), ColorCyan)
	case ast.StringLiteral:
		return p.color(a.Raw, ColorRed)
	case ast.ListLiteral:
		items := make([]string, len(a.Items))
		for i, item := range a.Items {
			items[i] = p.argument(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case ast.DictLiteral:
		return "{" + p.argument(a.Key) + ": " + p.argument(a.Value) + "}"
	case ast.Expression:
		return p.call(a)
	case nil:
		return "<nil>"
	default:
		return "(unknown: " + arg.String() + ")"
	}
}
