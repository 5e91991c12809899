package lexer

// Statement keywords
const (
	Signature = "signature"
	Example   = "example"
)

// Type keywords
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "bool"
	TypeList   = "list"
	TypeDict   = "dict"
)

// Literal keywords
const (
	True  = "true"
	False = "false"
)

// Punctuation
const (
	Arrow    = "->"
	LParen   = "("
	RParen   = ")"
	LSquare  = "["
	RSquare  = "]"
	LBrace   = "{"
	RBrace   = "}"
	Comma    = ","
	Colon    = ":"
	Equals   = "="
	Dot      = "."
	EndToken = "" // returned by a cursor that ran out of tokens
)

// StatementKeywords are the words that start a non-expression statement
var StatementKeywords = []string{Signature, Example}

// TypeKeywords are the words that start a type
var TypeKeywords = []string{TypeString, TypeNumber, TypeBool, TypeList, TypeDict}

// IsIdentifier reports whether tok matches ^[a-zA-Z_]\w*$.
// Keywords are identifiers too; the grammar decides by position.
func IsIdentifier(tok string) bool {
	if tok == "" || !letter(tok[0]) {
		return false
	}
	for i := 1; i < len(tok); i++ {
		if !identPart(tok[i]) {
			return false
		}
	}
	return true
}

// IsNumber reports whether tok matches ^\d+(\.\d+)?$
func IsNumber(tok string) bool {
	i := 0
	for i < len(tok) && digit(tok[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	if i == len(tok) {
		return true
	}
	if tok[i] != '.' {
		return false
	}
	i++
	frac := i
	for i < len(tok) && digit(tok[i]) {
		i++
	}
	return i > frac && i == len(tok)
}

// IsString reports whether tok is a double-quoted string token.
// The quotes are part of the token.
func IsString(tok string) bool {
	return len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"'
}

// IsKeyword reports whether tok is reserved as a statement, type or literal keyword
func IsKeyword(tok string) bool {
	switch tok {
	case Signature, Example, TypeString, TypeNumber, TypeBool, TypeList, TypeDict, True, False:
		return true
	}
	return false
}

// Describe renders a token for error messages
func Describe(tok string) string {
	if tok == EndToken {
		return "end of input"
	}
	return "'" + tok + "'"
}
