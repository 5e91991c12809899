package ast

import "testing"

func TestStringRendering(t *testing.T) {
	tests := []struct {
		name string
		node interface{ String() string }
		want string
	}{
		{
			name: "signature",
			node: Signature{
				Name: "lookup",
				Parameters: []Parameter{
					{Name: "table", Type: DictType{Key: PrimitiveType{Name: TypeString}, Value: ListType{Elem: PrimitiveType{Name: TypeNumber}}}},
					{Name: "key", Type: PrimitiveType{Name: TypeString}},
				},
				ReturnType: PrimitiveType{Name: TypeBool},
			},
			want: "signature lookup(table: dict[string, list[number]], key: string) -> bool",
		},
		{
			name: "example",
			node: Example{
				Name:      "e",
				Arguments: []Literal{NumberLiteral{Value: 1.5}, StringLiteral{Raw: `"a"`}},
				Result:    ListLiteral{Items: []Literal{BoolLiteral{Value: true}, DictLiteral{Key: NumberLiteral{Value: 1}, Value: BoolLiteral{}}}},
			},
			want: `example e(1.5, "a") = [true, {1: false}]`,
		},
		{
			name: "nested expression",
			node: Expression{Name: "f", Arguments: []Argument{Expression{Name: "g"}, NumberLiteral{Value: 3}}},
			want: "f(g(), 3)",
		},
		{
			name: "program",
			node: Program{Expression{Name: "a"}, Expression{Name: "b"}},
			want: "a()\nb()",
		},
		{
			name: "missing children",
			node: Signature{Name: "f"},
			want: "signature f() -> <nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatementKinds(t *testing.T) {
	program := Program{Signature{Name: "s"}, Example{Name: "e"}, Expression{Name: "x"}}
	want := []struct {
		kind StatementKind
		name string
		str  string
	}{
		{KindSignature, "s", "signature"},
		{KindExample, "e", "example"},
		{KindExpression, "x", "expression"},
	}

	for i, stmt := range program {
		if stmt.Kind() != want[i].kind {
			t.Errorf("statement %d: Kind() = %v, want %v", i, stmt.Kind(), want[i].kind)
		}
		if stmt.StatementName() != want[i].name {
			t.Errorf("statement %d: StatementName() = %q, want %q", i, stmt.StatementName(), want[i].name)
		}
		if stmt.Kind().String() != want[i].str {
			t.Errorf("statement %d: Kind().String() = %q, want %q", i, stmt.Kind().String(), want[i].str)
		}
	}

	if got := StatementKind(0).String(); got != "unknown" {
		t.Errorf("zero kind = %q, want unknown", got)
	}
}

func TestNumberRendering(t *testing.T) {
	tests := map[float64]string{
		0:       "0",
		3:       "3",
		2.5:     "2.5",
		0.125:   "0.125",
		1e21:    "1000000000000000000000",
		1234.50: "1234.5",
	}
	for value, want := range tests {
		if got := (NumberLiteral{Value: value}).String(); got != want {
			t.Errorf("NumberLiteral{%v}.String() = %q, want %q", value, got, want)
		}
	}
}
