// Package analysis builds derived views over a parsed program.
//
// Every function here is pure: the program is read, never modified, and
// results are recomputed on each call.
package analysis

import (
	"github.com/opal-lang/mirror/core/ast"
)

// ExtractExpressions returns every expression statement in source order
func ExtractExpressions(program ast.Program) []ast.Expression {
	exprs := []ast.Expression{}
	for _, stmt := range program {
		if expr, ok := stmt.(ast.Expression); ok {
			exprs = append(exprs, expr)
		}
	}
	return exprs
}

// GroupSignaturesWithExamples pairs every signature, in source order, with
// all examples carrying exactly its name, in source order. Signatures without
// examples get an empty slice. Signatures sharing a name each receive the
// same examples.
func GroupSignaturesWithExamples(program ast.Program) []ast.SignatureWithExamples {
	var signatures []ast.Signature
	byName := make(map[string][]ast.Example)
	for _, stmt := range program {
		switch s := stmt.(type) {
		case ast.Signature:
			signatures = append(signatures, s)
		case ast.Example:
			byName[s.Name] = append(byName[s.Name], s)
		}
	}

	grouped := make([]ast.SignatureWithExamples, 0, len(signatures))
	for _, sig := range signatures {
		examples := make([]ast.Example, len(byName[sig.Name]))
		copy(examples, byName[sig.Name])
		grouped = append(grouped, ast.SignatureWithExamples{
			Signature: sig,
			Examples:  examples,
		})
	}
	return grouped
}
