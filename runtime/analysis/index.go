package analysis

import (
	"sort"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/core/invariant"
)

// Index is a lookup view over a program's signatures and examples.
type Index struct {
	signatures map[string][]ast.SignatureWithExamples
	names      []string
	orphans    []ast.Example
	calls      map[string]int
}

// NewIndex builds an Index from program
func NewIndex(program ast.Program) *Index {
	idx := &Index{
		signatures: make(map[string][]ast.SignatureWithExamples),
		calls:      make(map[string]int),
	}

	for _, group := range GroupSignaturesWithExamples(program) {
		if _, seen := idx.signatures[group.Name]; !seen {
			idx.names = append(idx.names, group.Name)
		}
		idx.signatures[group.Name] = append(idx.signatures[group.Name], group)
	}

	for _, stmt := range program {
		switch s := stmt.(type) {
		case ast.Example:
			if _, ok := idx.signatures[s.Name]; !ok {
				idx.orphans = append(idx.orphans, s)
			}
		case ast.Expression:
			idx.countCalls(s)
		}
	}

	return idx
}

func (idx *Index) countCalls(expr ast.Expression) {
	idx.calls[expr.Name]++
	for _, arg := range expr.Arguments {
		invariant.NotNil(arg, "call argument")
		if nested, ok := arg.(ast.Expression); ok {
			idx.countCalls(nested)
		}
	}
}

// Names returns the distinct signature names in order of first declaration
func (idx *Index) Names() []string {
	return append([]string(nil), idx.names...)
}

// Lookup returns every signature declared as name, with its examples
func (idx *Index) Lookup(name string) ([]ast.SignatureWithExamples, bool) {
	groups, ok := idx.signatures[name]
	return groups, ok
}

// OrphanExamples returns the examples whose name matches no signature
func (idx *Index) OrphanExamples() []ast.Example {
	return append([]ast.Example(nil), idx.orphans...)
}

// CallCount returns how often name is called across all expressions,
// nested calls included
func (idx *Index) CallCount(name string) int {
	return idx.calls[name]
}

// UndeclaredCalls returns, sorted, the called names that have no signature
func (idx *Index) UndeclaredCalls() []string {
	var names []string
	for name := range idx.calls {
		if _, ok := idx.signatures[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
