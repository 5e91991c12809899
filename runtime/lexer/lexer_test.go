package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			input: " \t\n  \r\n",
			want:  []string{},
		},
		{
			name:  "signature",
			input: "signature myFunc(a: string, b: number) -> bool",
			want: []string{
				"signature", "myFunc", "(", "a", ":", "string", ",",
				"b", ":", "number", ")", "->", "bool",
			},
		},
		{
			name:  "example with string and number",
			input: `example test1("hello", 123) = true`,
			want:  []string{"example", "test1", "(", `"hello"`, ",", "123", ")", "=", "true"},
		},
		{
			name:  "decimal number is one token",
			input: "f(3.0, 12.25)",
			want:  []string{"f", "(", "3.0", ",", "12.25", ")"},
		},
		{
			name:  "trailing dot is punctuation",
			input: "3.",
			want:  []string{"3", "."},
		},
		{
			name:  "escaped quote stays inside string",
			input: `f("say \"hi\"")`,
			want:  []string{"f", "(", `"say \"hi\""`, ")"},
		},
		{
			name:  "string keeps inner whitespace",
			input: `"a  b"`,
			want:  []string{`"a  b"`},
		},
		{
			name:  "nested types",
			input: "list[dict[string,number]]",
			want:  []string{"list", "[", "dict", "[", "string", ",", "number", "]", "]"},
		},
		{
			name:  "dict literal",
			input: `{"k": [1, 2]}`,
			want:  []string{"{", `"k"`, ":", "[", "1", ",", "2", "]", "}"},
		},
		{
			name:  "fallback single characters",
			input: "a = -b ! #",
			want:  []string{"a", "=", "-", "b", "!", "#"},
		},
		{
			name:  "arrow wins over minus",
			input: "->-",
			want:  []string{"->", "-"},
		},
		{
			name:  "unterminated string falls back to quote token",
			input: `"abc`,
			want:  []string{`"`, "abc"},
		},
		{
			name:  "digits glued to letters",
			input: "x1 1x",
			want:  []string{"x1", "1", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenPredicates(t *testing.T) {
	tests := []struct {
		tok        string
		identifier bool
		number     bool
		str        bool
	}{
		{"abc", true, false, false},
		{"_x9", true, false, false},
		{"signature", true, false, false},
		{"9x", false, false, false},
		{"123", false, true, false},
		{"3.0", false, true, false},
		{"3.", false, false, false},
		{".5", false, false, false},
		{`"hi"`, false, false, true},
		{`""`, false, false, true},
		{`"`, false, false, false},
		{"->", false, false, false},
		{"", false, false, false},
		{"é", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			if got := IsIdentifier(tt.tok); got != tt.identifier {
				t.Errorf("IsIdentifier(%q) = %v, want %v", tt.tok, got, tt.identifier)
			}
			if got := IsNumber(tt.tok); got != tt.number {
				t.Errorf("IsNumber(%q) = %v, want %v", tt.tok, got, tt.number)
			}
			if got := IsString(tt.tok); got != tt.str {
				t.Errorf("IsString(%q) = %v, want %v", tt.tok, got, tt.str)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(EndToken); got != "end of input" {
		t.Errorf("Describe(EndToken) = %q", got)
	}
	if got := Describe(")"); got != "')'" {
		t.Errorf("Describe(\")\") = %q", got)
	}
}

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"signature", "example", "string", "number", "bool", "list", "dict", "true", "false"} {
		if !IsKeyword(kw) {
			t.Errorf("IsKeyword(%q) = false, want true", kw)
		}
	}
	for _, word := range []string{"sig", "f", "String", ""} {
		if IsKeyword(word) {
			t.Errorf("IsKeyword(%q) = true, want false", word)
		}
	}
}
