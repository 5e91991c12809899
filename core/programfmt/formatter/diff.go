package formatter

import (
	"fmt"
	"strings"

	"github.com/opal-lang/mirror/core/ast"
)

// DiffResult represents the differences between two programs.
type DiffResult struct {
	Added    []StatementDiff // Statements added in actual
	Removed  []StatementDiff // Statements removed from expected
	Modified []StatementDiff // Statements that changed
}

// Empty reports whether the programs render identically
func (r *DiffResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Modified) == 0
}

// StatementDiff represents a difference in a single statement.
type StatementDiff struct {
	Line     int    // Statement number (1-indexed)
	Expected string // Formatted expected statement (empty for added statements)
	Actual   string // Formatted actual statement (empty for removed statements)
}

// Diff compares two programs statement by statement, using the canonical
// text of each statement, so layout differences in the source never show up.
func Diff(expected, actual ast.Program) *DiffResult {
	result := &DiffResult{}

	maxStatements := len(expected)
	if len(actual) > maxStatements {
		maxStatements = len(actual)
	}

	for i := 0; i < maxStatements; i++ {
		line := i + 1

		if i >= len(actual) {
			result.Removed = append(result.Removed, StatementDiff{
				Line:     line,
				Expected: FormatStatement(expected[i]),
			})
			continue
		}

		if i >= len(expected) {
			result.Added = append(result.Added, StatementDiff{
				Line:   line,
				Actual: FormatStatement(actual[i]),
			})
			continue
		}

		expectedStr := FormatStatement(expected[i])
		actualStr := FormatStatement(actual[i])
		if expectedStr != actualStr {
			result.Modified = append(result.Modified, StatementDiff{
				Line:     line,
				Expected: expectedStr,
				Actual:   actualStr,
			})
		}
	}

	return result
}

// FormatDiff returns a human-readable diff display.
func FormatDiff(result *DiffResult, useColor bool) string {
	var b strings.Builder

	if len(result.Modified) > 0 {
		fmt.Fprintln(&b, Colorize("Modified statements:", ColorYellow, useColor))
		for _, diff := range result.Modified {
			fmt.Fprintf(&b, "  statement %d:\n", diff.Line)
			fmt.Fprintf(&b, "    %s\n", Colorize("- "+diff.Expected, ColorRed, useColor))
			fmt.Fprintf(&b, "    %s\n", Colorize("+ "+diff.Actual, ColorGreen, useColor))
		}
		fmt.Fprintln(&b)
	}

	if len(result.Added) > 0 {
		fmt.Fprintln(&b, Colorize("Added statements:", ColorGreen, useColor))
		for _, diff := range result.Added {
			fmt.Fprintf(&b, "  %s\n", Colorize(fmt.Sprintf("+ statement %d: %s", diff.Line, diff.Actual), ColorGreen, useColor))
		}
		fmt.Fprintln(&b)
	}

	if len(result.Removed) > 0 {
		fmt.Fprintln(&b, Colorize("Removed statements:", ColorRed, useColor))
		for _, diff := range result.Removed {
			fmt.Fprintf(&b, "  %s\n", Colorize(fmt.Sprintf("- statement %d: %s", diff.Line, diff.Expected), ColorRed, useColor))
		}
		fmt.Fprintln(&b)
	}

	if result.Empty() {
		fmt.Fprintln(&b, "No differences found.")
	}

	return b.String()
}
