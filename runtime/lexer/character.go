package lexer

// ASCII classification tables used by the token predicates.
// The DSL's word characters are ASCII only, matching regexp's \w.
var (
	isLetter    [128]bool // a-z, A-Z, _
	isDigit     [128]bool // 0-9
	isIdentPart [128]bool // letter or digit
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentPart[i] = isLetter[i] || isDigit[i]
	}
}

func letter(ch byte) bool    { return ch < 128 && isLetter[ch] }
func digit(ch byte) bool     { return ch < 128 && isDigit[ch] }
func identPart(ch byte) bool { return ch < 128 && isIdentPart[ch] }
