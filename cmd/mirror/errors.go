package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/opal-lang/mirror/core/programfmt"
	"github.com/opal-lang/mirror/runtime/parser"
)

// Exit code constants
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitParseError       = 3
	ExitValidationError  = 4
)

// CLIError represents a formatted CLI error with context
type CLIError struct {
	Type    string // "io", "config", "validation", "format", "diff"
	Message string
	Details string // Additional context
	Hint    string // How to fix it
	Code    int    // Process exit code
	Err     error  // Underlying cause, if any
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Details != "" {
		b.WriteString("\n")
		b.WriteString(e.Details)
	}
	if e.Hint != "" {
		b.WriteString("\n")
		b.WriteString(e.Hint)
	}
	return b.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Code != 0 {
		return cliErr.Code
	}
	if errors.Is(err, parser.ErrSyntax) {
		return ExitParseError
	}
	var schemaErr *programfmt.SchemaError
	if errors.As(err, &schemaErr) {
		return ExitValidationError
	}
	return ExitInvalidArguments
}

// FormatError formats an error for CLI output with colors
func FormatError(w io.Writer, err error, useColor bool) {
	if err == nil {
		return
	}

	var (
		parseErr  *parser.ParseError
		schemaErr *programfmt.SchemaError
		cliErr    *CLIError
	)
	switch {
	case errors.As(err, &parseErr):
		formatParseError(w, parseErr, useColor)
	case errors.As(err, &schemaErr):
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), schemaErr.Message)
		_, _ = fmt.Fprintf(w, "%s\n", Colorize("  Location: "+locationOf(schemaErr), ColorGray, useColor))
	case errors.As(err, &cliErr):
		formatCLIError(w, cliErr, useColor)
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
	}
}

// formatParseError formats parser errors with suggestions
func formatParseError(w io.Writer, err *parser.ParseError, useColor bool) {
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Message)

	if err.Context != "" {
		_, _ = fmt.Fprintf(w, "%s\n", Colorize(fmt.Sprintf("  Context: %s (token %d)", err.Context, err.Pos), ColorGray, useColor))
	}

	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", Colorize(err.Suggestion, ColorYellow, useColor))
	}
}

// formatCLIError formats CLI errors
func formatCLIError(w io.Writer, err *CLIError, useColor bool) {
	msg := err.Message
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), msg)

	if err.Details != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", err.Details)
	}

	if err.Hint != "" {
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), err.Hint)
	}
}

func locationOf(err *programfmt.SchemaError) string {
	if err.Location == "" {
		return "/"
	}
	return err.Location
}
