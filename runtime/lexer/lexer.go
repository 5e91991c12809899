// Package lexer splits mirror DSL text into tokens.
//
// Tokens are plain strings. No kind tag or position is attached; the parser
// classifies a token at the point it consumes it, using the predicates in
// tokens.go.
package lexer

import "regexp"

// tokenPattern lists the token rules in priority order:
//
//	decimal number   3, 3.0
//	word run         identifiers, keywords, digit runs glued to letters
//	arrow            ->
//	punctuation      . , : ( ) [ ] { }
//	string           "..." with \" escapes
//	fallback         any other single non-space character
//
// Decimal numbers come first so that 3.0 stays a single token instead of
// splitting into 3 . 0 at the dot.
var tokenPattern = regexp.MustCompile(`\d+(?:\.\d+)?|\w+|->|[.,:()\[\]{}]|"(?:\\"|[^"])*"|\S`)

// Tokenize returns the tokens of input in source order.
// Whitespace produces no tokens and empty input yields an empty slice.
// Tokenize never fails: every non-space character ends up in some token.
func Tokenize(input string) []string {
	tokens := tokenPattern.FindAllString(input, -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}
