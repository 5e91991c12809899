package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/runtime/parser"
)

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	program, err := parser.Parse(src)
	require.NoError(t, err)
	return program
}

func TestGroupSignaturesWithExamples(t *testing.T) {
	program := mustParse(t, `
signature f(a:number)->bool
example f(1)=true
example f(2)=false
signature g()->string
`)

	groups := GroupSignaturesWithExamples(program)
	require.Len(t, groups, 2)

	assert.Equal(t, "f", groups[0].Name)
	require.Len(t, groups[0].Examples, 2)
	assert.Equal(t, ast.NumberLiteral{Value: 1}, groups[0].Examples[0].Arguments[0])
	assert.Equal(t, ast.BoolLiteral{Value: true}, groups[0].Examples[0].Result)
	assert.Equal(t, ast.BoolLiteral{Value: false}, groups[0].Examples[1].Result)

	assert.Equal(t, "g", groups[1].Name)
	assert.NotNil(t, groups[1].Examples)
	assert.Empty(t, groups[1].Examples)
}

func TestGroupMatchesExactNamesOnly(t *testing.T) {
	// Examples named e1/e2 do not belong to f: grouping is by exact name.
	program := mustParse(t, `signature f(a:number)->bool  example e1(1)=true  example e2(2)=false`)

	groups := GroupSignaturesWithExamples(program)
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Examples)

	program = mustParse(t, `
signature e1(a:number)->bool
example e1(1)=true
example E1(2)=false
example e1(3)=false
`)
	groups = GroupSignaturesWithExamples(program)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Examples, 2)
	assert.Equal(t, ast.NumberLiteral{Value: 1}, groups[0].Examples[0].Arguments[0])
	assert.Equal(t, ast.NumberLiteral{Value: 3}, groups[0].Examples[1].Arguments[0])
}

func TestGroupExamplesBeforeSignature(t *testing.T) {
	program := mustParse(t, `example f(1)=true signature f(a:number)->bool`)
	groups := GroupSignaturesWithExamples(program)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Examples, 1)
}

func TestGroupSharedNames(t *testing.T) {
	program := mustParse(t, `
signature f(a:number)->bool
signature f(a:string)->bool
example f(1)=true
`)

	groups := GroupSignaturesWithExamples(program)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Examples, 1)
	assert.Len(t, groups[1].Examples, 1)
	assert.Equal(t, groups[0].Examples, groups[1].Examples)

	// Each group owns its slice.
	groups[0].Examples[0].Name = "changed"
	assert.Equal(t, "f", groups[1].Examples[0].Name)
}

func TestGroupDoesNotMutateProgram(t *testing.T) {
	program := mustParse(t, `signature f()->bool example f()=true`)
	before := program.String()

	groups := GroupSignaturesWithExamples(program)
	groups[0].Examples[0].Name = "mutated"
	groups[0].Name = "mutated"

	assert.Equal(t, before, program.String())
}

func TestExtractExpressions(t *testing.T) {
	program := mustParse(t, `signature f()->bool  f(1)  g(2)`)

	got := ExtractExpressions(program)
	want := []ast.Expression{
		{Name: "f", Arguments: []ast.Argument{ast.NumberLiteral{Value: 1}}},
		{Name: "g", Arguments: []ast.Argument{ast.NumberLiteral{Value: 2}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractExpressions mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractExpressionsEmpty(t *testing.T) {
	assert.Empty(t, ExtractExpressions(ast.Program{}))
	assert.Empty(t, ExtractExpressions(mustParse(t, `signature f()->bool example f()=true`)))
}

func TestIndex(t *testing.T) {
	program := mustParse(t, `
signature add(a: number, b: number) -> number
example add(1, 2) = 3
example sub(3, 1) = 2
signature neg(a: number) -> number
signature add(a: string, b: string) -> string
add(neg(1), add(2, 3))
mul(2, 2)
`)

	idx := NewIndex(program)

	assert.Equal(t, []string{"add", "neg"}, idx.Names())

	adds, ok := idx.Lookup("add")
	require.True(t, ok)
	require.Len(t, adds, 2)
	assert.Len(t, adds[0].Examples, 1)
	assert.Equal(t, "string", adds[1].ReturnType.String())

	_, ok = idx.Lookup("sub")
	assert.False(t, ok)

	orphans := idx.OrphanExamples()
	require.Len(t, orphans, 1)
	assert.Equal(t, "sub", orphans[0].Name)

	assert.Equal(t, 2, idx.CallCount("add"))
	assert.Equal(t, 1, idx.CallCount("neg"))
	assert.Equal(t, 0, idx.CallCount("sub"))
	assert.Equal(t, []string{"mul"}, idx.UndeclaredCalls())
}
