package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/mirror/runtime/lexer"
)

// ErrSyntax matches every ParseError with errors.Is
var ErrSyntax = errors.New("syntax error")

// maxSuggestDistance is the largest edit distance still offered as a "did you mean"
const maxSuggestDistance = 3

// ParseError reports the first grammar violation in a source text.
type ParseError struct {
	Pos        int    // Index of the offending token; len(tokens) at end of input
	Message    string // "expected ')', got end of input"
	Context    string // What was being parsed: "signature parameters"
	Expected   string // Expected token or class, empty for "unexpected ..." errors
	Got        string // Token found, lexer.EndToken at end of input
	Suggestion string // Optional fix: "did you mean 'string'?"
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("syntax error: ")
	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (in %s)", e.Context)
	}
	if e.Suggestion != "" {
		b.WriteString("; ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// Is lets errors.Is(err, ErrSyntax) match any ParseError
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

// errorExpected builds the error for a missing token or token class
func (p *Parser) errorExpected(expected, context string) *ParseError {
	got := p.peek()
	what := expected
	if expected != "identifier" {
		what = "'" + expected + "'"
	}
	return &ParseError{
		Pos:      p.pos,
		Message:  fmt.Sprintf("expected %s, got %s", what, lexer.Describe(got)),
		Context:  context,
		Expected: expected,
		Got:      got,
	}
}

// errorUnexpected builds the error for a token no rule alternative accepts.
// what names the rule: "token", "type", "literal".
func (p *Parser) errorUnexpected(what, context string, candidates []string) *ParseError {
	got := p.peek()
	msg := fmt.Sprintf("unexpected %s %s", what, lexer.Describe(got))
	if got == lexer.EndToken {
		msg = fmt.Sprintf("unexpected end of input, expected %s", what)
	}
	return &ParseError{
		Pos:        p.pos,
		Message:    msg,
		Context:    context,
		Got:        got,
		Suggestion: suggest(got, candidates),
	}
}

// suggest returns "did you mean 'x'?" for the closest candidate, or "".
func suggest(word string, candidates []string) string {
	if word == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)

	best := ranks[0]
	if best.Target == word || best.Distance > maxSuggestDistance {
		return ""
	}
	return fmt.Sprintf("did you mean '%s'?", best.Target)
}
