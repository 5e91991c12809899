package formatter_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/core/programfmt/formatter"
)

func TestFormatTree(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "(no statements)\n",
		},
		{
			name:  "signature",
			input: "signature add(a: number, b: list[number]) -> number",
			want: "signature add -> number\n" +
				"├─ a: number\n" +
				"└─ b: list[number]\n",
		},
		{
			name:  "example",
			input: `example add(1, [2]) = 3`,
			want: "example add = 3\n" +
				"├─ 1\n" +
				"└─ [2]\n",
		},
		{
			name:  "nested calls",
			input: `add(neg(2, sub(1)), 3) ping()`,
			want: "add\n" +
				"├─ neg\n" +
				"│  ├─ 2\n" +
				"│  └─ sub\n" +
				"│     └─ 1\n" +
				"└─ 3\n" +
				"ping\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter.FormatTree(&buf, mustParse(t, tt.input), false)
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("FormatTree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatTreeColor(t *testing.T) {
	var buf bytes.Buffer
	formatter.FormatTree(&buf, ast.Program{ast.Expression{Name: "f", Arguments: []ast.Argument{}}}, true)
	if diff := cmp.Diff(formatter.ColorYellow+"f"+formatter.ColorReset+"\n", buf.String()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
