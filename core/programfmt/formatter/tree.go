package formatter

import (
	"fmt"
	"io"

	"github.com/opal-lang/mirror/core/ast"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
)

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// FormatTree renders a program as a tree, one root per statement.
//
//	signature add -> number
//	├─ a: number
//	└─ b: number
//	add
//	├─ 1
//	└─ neg
//	   └─ 2
func FormatTree(w io.Writer, program ast.Program, useColor bool) {
	if len(program) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Colorize("(no statements)", ColorGray, useColor))
		return
	}

	p := printer{useColor: useColor}
	for _, stmt := range program {
		switch s := stmt.(type) {
		case ast.Signature:
			_, _ = fmt.Fprintf(w, "%s %s -> %s\n",
				p.color("signature", ColorBlue), p.color(s.Name, ColorYellow), p.typ(s.ReturnType))
			for i, param := range s.Parameters {
				_, _ = fmt.Fprintf(w, "%s%s: %s\n",
					branch(i == len(s.Parameters)-1), p.color(param.Name, ColorCyan), p.typ(param.Type))
			}
		case ast.Example:
			_, _ = fmt.Fprintf(w, "%s %s = %s\n",
				p.color("example", ColorBlue), p.color(s.Name, ColorYellow), p.argument(s.Result))
			for i, arg := range s.Arguments {
				_, _ = fmt.Fprintf(w, "%s%s\n", branch(i == len(s.Arguments)-1), p.argument(arg))
			}
		case ast.Expression:
			_, _ = fmt.Fprintf(w, "%s\n", p.color(s.Name, ColorYellow))
			renderArguments(w, p, s.Arguments, "")
		}
	}
}

// renderArguments renders call arguments, expanding nested calls
func renderArguments(w io.Writer, p printer, args []ast.Argument, indent string) {
	for i, arg := range args {
		isLast := i == len(args)-1
		nested, ok := arg.(ast.Expression)
		if !ok {
			_, _ = fmt.Fprintf(w, "%s%s%s\n", indent, branch(isLast), p.argument(arg))
			continue
		}

		_, _ = fmt.Fprintf(w, "%s%s%s\n", indent, branch(isLast), p.color(nested.Name, ColorYellow))
		childIndent := indent + "│  "
		if isLast {
			childIndent = indent + "   "
		}
		renderArguments(w, p, nested.Arguments, childIndent)
	}
}

func branch(isLast bool) string {
	if isLast {
		return "└─ "
	}
	return "├─ "
}
