package main

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/opal-lang/mirror/core/programfmt"
	"github.com/opal-lang/mirror/runtime/parser"
)

func TestExitCode(t *testing.T) {
	_, parseErr := parser.Parse("signature")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"parse error", parseErr, ExitParseError},
		{"wrapped parse error", errors.Wrap(parseErr, "a.mirror"), ExitParseError},
		{"schema error", &programfmt.SchemaError{Location: "/version"}, ExitValidationError},
		{"cli error", &CLIError{Message: "x", Code: ExitIOError}, ExitIOError},
		{"other", fmt.Errorf("unknown flag"), ExitInvalidArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFormatError(t *testing.T) {
	_, parseErr := parser.Parse("sgnature f() -> bool")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "parse error with suggestion",
			err:  parseErr,
			want: "Error: expected '(', got 'f'\n" +
				"  Context: call to sgnature (token 1)\n" +
				"  did you mean 'signature'?\n",
		},
		{
			name: "schema error",
			err:  &programfmt.SchemaError{Message: "missing properties: 'version'"},
			want: "Error: missing properties: 'version'\n  Location: /\n",
		},
		{
			name: "cli error",
			err:  &CLIError{Message: "defs.mirror is not formatted", Hint: "run 'mirror fmt -w'"},
			want: "Error: defs.mirror is not formatted\nHint: run 'mirror fmt -w'\n",
		},
		{
			name: "generic",
			err:  fmt.Errorf("boom"),
			want: "Error: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatError(&buf, tt.err, false)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestFormatErrorColor(t *testing.T) {
	var buf bytes.Buffer
	FormatError(&buf, fmt.Errorf("boom"), true)
	assert.Equal(t, ColorRed+"Error: "+ColorReset+"boom\n", buf.String())
}
