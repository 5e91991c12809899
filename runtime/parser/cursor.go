package parser

import (
	"github.com/opal-lang/mirror/core/invariant"
	"github.com/opal-lang/mirror/runtime/lexer"
)

// peek returns the current token, or lexer.EndToken when the input is exhausted
func (p *Parser) peek() string {
	if p.isAtEnd() {
		return lexer.EndToken
	}
	return p.tokens[p.pos]
}

// previous returns the token before the cursor
func (p *Parser) previous() string {
	invariant.InRange(p.pos-1, 0, len(p.tokens)-1, "previous token index")
	return p.tokens[p.pos-1]
}

// advance returns the current token and moves past it.
// At end of input it stays put and returns lexer.EndToken.
func (p *Parser) advance() string {
	if p.isAtEnd() {
		return lexer.EndToken
	}
	tok := p.tokens[p.pos]
	p.pos++
	if p.config.debug >= DebugDetailed {
		p.recordDebugEvent("token", tok)
	}
	return tok
}

func (p *Parser) isAtEnd() bool {
	return p.pos >= len(p.tokens)
}

// check reports whether the current token equals expected
func (p *Parser) check(expected string) bool {
	if p.isAtEnd() {
		return false
	}
	return p.tokens[p.pos] == expected
}

// match consumes the current token if it equals any of expected.
// Nothing is consumed when no alternative matches.
func (p *Parser) match(expected ...string) bool {
	for _, e := range expected {
		if p.check(e) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past expected or fails naming what was found
func (p *Parser) consume(expected, context string) (string, error) {
	if p.check(expected) {
		return p.advance(), nil
	}
	return "", p.errorExpected(expected, context)
}

// consumeIdentifier advances past an identifier or fails
func (p *Parser) consumeIdentifier(context string) (string, error) {
	if p.peekIdentifier() {
		return p.advance(), nil
	}
	return "", p.errorExpected("identifier", context)
}

// peekIdentifier reports whether the current token is an identifier without consuming it
func (p *Parser) peekIdentifier() bool {
	return !p.isAtEnd() && lexer.IsIdentifier(p.tokens[p.pos])
}

// matchNumber consumes the current token if it is a number
func (p *Parser) matchNumber() bool {
	if !p.isAtEnd() && lexer.IsNumber(p.tokens[p.pos]) {
		p.advance()
		return true
	}
	return false
}

// matchString consumes the current token if it is a quoted string
func (p *Parser) matchString() bool {
	if !p.isAtEnd() && lexer.IsString(p.tokens[p.pos]) {
		p.advance()
		return true
	}
	return false
}
