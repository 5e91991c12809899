// Package parser implements the recursive-descent parser for the mirror DSL.
//
// A source text is tokenized once when the Parser is built, then Parse walks
// the tokens with a single cursor and no backtracking. The first grammar
// violation aborts the whole parse: callers get either a complete program or
// a *ParseError, never a partial tree.
//
// Grammar:
//
//	program    = { statement }
//	statement  = "signature" signature | "example" example | expression
//	signature  = ident "(" [ param { "," param } ] ")" "->" type
//	param      = ident ":" type
//	example    = ident "(" [ literal { "," literal } ] ")" "=" literal
//	expression = ident "(" [ arg { "," arg } ] ")"
//	arg        = expression | literal
//	type       = "string" | "number" | "bool"
//	           | "list" "[" type "]"
//	           | "dict" "[" type "," type "]"
//	literal    = "true" | "false" | number | string
//	           | "[" [ literal { "," literal } ] "]"
//	           | "{" literal ":" literal "}"
package parser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/opal-lang/mirror/core/ast"
	"github.com/opal-lang/mirror/core/invariant"
	"github.com/opal-lang/mirror/runtime/lexer"
)

// Parser holds the tokens of one source text and a cursor into them.
// A Parser is single-use: build one per input and call Parse once.
// It is not safe for concurrent use.
type Parser struct {
	tokens []string
	pos    int
	config *ParserConfig

	depth    int
	maxDepth int
	parsed   bool

	lexTime     time.Duration
	telemetry   *ParseTelemetry
	debugEvents []DebugEvent
}

// New tokenizes source and returns a parser positioned at the first token
func New(source string, opts ...ParserOpt) *Parser {
	config := newConfig(opts)

	var start time.Time
	if config.telemetry >= TelemetryTiming {
		start = time.Now()
	}

	p := &Parser{
		tokens: lexer.Tokenize(source),
		config: config,
	}

	if config.telemetry >= TelemetryTiming {
		p.lexTime = time.Since(start)
	}
	if config.debug > DebugOff {
		p.debugEvents = make([]DebugEvent, 0, 64)
	}
	return p
}

// Parse parses source into a program. It is shorthand for New(source, opts...).Parse().
func Parse(source string, opts ...ParserOpt) (ast.Program, error) {
	return New(source, opts...).Parse()
}

// Parse parses every statement up to the end of input.
// On failure it returns a nil program and a *ParseError.
func (p *Parser) Parse() (ast.Program, error) {
	invariant.Precondition(!p.parsed, "Parse called twice on the same parser")
	p.parsed = true

	var start time.Time
	if p.config.telemetry >= TelemetryTiming {
		start = time.Now()
	}

	program, err := p.program()

	if p.config.telemetry >= TelemetryBasic {
		p.telemetry = &ParseTelemetry{
			TokenCount:     len(p.tokens),
			StatementCount: len(program),
			MaxDepth:       p.maxDepth,
		}
		if err != nil {
			p.telemetry.ErrorCount = 1
		}
		if p.config.telemetry >= TelemetryTiming {
			p.telemetry.LexTime = p.lexTime
			p.telemetry.ParseTime = time.Since(start)
			p.telemetry.TotalTime = p.lexTime + p.telemetry.ParseTime
		}
	}

	if err != nil {
		return nil, err
	}
	return program, nil
}

// Tokens returns the token sequence the parser reads
func (p *Parser) Tokens() []string {
	return p.tokens
}

// Telemetry returns metrics of the finished parse, nil if telemetry is off
func (p *Parser) Telemetry() *ParseTelemetry {
	return p.telemetry
}

// DebugEvents returns the trace of the finished parse, nil if debugging is off
func (p *Parser) DebugEvents() []DebugEvent {
	return p.debugEvents
}

// recordDebugEvent records debug events when debug tracing is enabled
func (p *Parser) recordDebugEvent(event, context string) {
	if p.config.debug == DebugOff || p.debugEvents == nil {
		return
	}

	p.debugEvents = append(p.debugEvents, DebugEvent{
		Timestamp: time.Now(),
		Event:     event,
		TokenPos:  p.pos,
		Context:   context,
	})
}

// enter opens a nested rule and enforces the depth limit
func (p *Parser) enter(rule string) error {
	p.depth++
	if p.depth > p.maxDepth {
		p.maxDepth = p.depth
	}
	if p.config.debug > DebugOff {
		p.recordDebugEvent("enter_"+rule, "")
	}
	if limit := p.config.maxDepth; limit > 0 && p.depth > limit {
		return &ParseError{
			Pos:     p.pos,
			Message: fmt.Sprintf("maximum nesting depth %d exceeded", limit),
			Context: rule,
			Got:     p.peek(),
		}
	}
	return nil
}

func (p *Parser) exit(rule string) {
	p.depth--
	invariant.Invariant(p.depth >= 0, "unbalanced rule exit for %s", rule)
	if p.config.debug > DebugOff {
		p.recordDebugEvent("exit_"+rule, "")
	}
}

// program parses statements until the end of input
func (p *Parser) program() (ast.Program, error) {
	program := ast.Program{}
	for !p.isAtEnd() {
		before := p.pos
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		invariant.Invariant(p.pos > before, "statement at token %d consumed nothing", before)
		program = append(program, stmt)
	}
	return program, nil
}

// statement dispatches on the leading token
func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(lexer.Signature):
		sig, err := p.signature()
		if err != nil {
			return nil, err
		}
		return sig, nil
	case p.match(lexer.Example):
		ex, err := p.example()
		if err != nil {
			return nil, err
		}
		return ex, nil
	case p.peekIdentifier():
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.errorUnexpected("token", "statement", lexer.StatementKeywords)
	}
}

// signature parses the rest of `signature name(params) -> type`
func (p *Parser) signature() (ast.Signature, error) {
	if err := p.enter("signature"); err != nil {
		return ast.Signature{}, err
	}
	defer p.exit("signature")

	name, err := p.consumeIdentifier("signature name")
	if err != nil {
		return ast.Signature{}, err
	}
	if _, err := p.consume(lexer.LParen, "signature "+name); err != nil {
		return ast.Signature{}, err
	}
	params, err := p.parameters(name)
	if err != nil {
		return ast.Signature{}, err
	}
	if _, err := p.consume(lexer.RParen, "signature "+name+" parameters"); err != nil {
		return ast.Signature{}, err
	}
	if _, err := p.consume(lexer.Arrow, "signature "+name); err != nil {
		return ast.Signature{}, err
	}
	ret, err := p.parseType("signature " + name + " return type")
	if err != nil {
		return ast.Signature{}, err
	}

	return ast.Signature{Name: name, Parameters: params, ReturnType: ret}, nil
}

// parameters parses a possibly empty `name: type` list up to the closing paren
func (p *Parser) parameters(sig string) ([]ast.Parameter, error) {
	params := []ast.Parameter{}
	if p.check(lexer.RParen) {
		return params, nil
	}

	context := "signature " + sig + " parameters"
	for {
		name, err := p.consumeIdentifier(context)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Colon, "parameter "+name); err != nil {
			return nil, err
		}
		typ, err := p.parseType("parameter " + name)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Parameter{Name: name, Type: typ})

		if !p.match(lexer.Comma) {
			return params, nil
		}
	}
}

// example parses the rest of `example name(literals) = literal`
func (p *Parser) example() (ast.Example, error) {
	if err := p.enter("example"); err != nil {
		return ast.Example{}, err
	}
	defer p.exit("example")

	name, err := p.consumeIdentifier("example name")
	if err != nil {
		return ast.Example{}, err
	}
	context := "example " + name
	if _, err := p.consume(lexer.LParen, context); err != nil {
		return ast.Example{}, err
	}
	args, err := p.literalList(lexer.RParen, context+" arguments")
	if err != nil {
		return ast.Example{}, err
	}
	if _, err := p.consume(lexer.RParen, context+" arguments"); err != nil {
		return ast.Example{}, err
	}
	if _, err := p.consume(lexer.Equals, context); err != nil {
		return ast.Example{}, err
	}
	result, err := p.literal(context + " result")
	if err != nil {
		return ast.Example{}, err
	}

	return ast.Example{Name: name, Arguments: args, Result: result}, nil
}

// expression parses `name(args)` where each arg is a nested call or a literal
func (p *Parser) expression() (ast.Expression, error) {
	if err := p.enter("expression"); err != nil {
		return ast.Expression{}, err
	}
	defer p.exit("expression")

	name, err := p.consumeIdentifier("expression")
	if err != nil {
		return ast.Expression{}, err
	}
	context := "call to " + name
	if !p.check(lexer.LParen) {
		perr := p.errorExpected(lexer.LParen, context)
		perr.Suggestion = suggest(name, lexer.StatementKeywords)
		return ast.Expression{}, perr
	}
	p.advance()

	args, err := p.mix(context)
	if err != nil {
		return ast.Expression{}, err
	}
	if _, err := p.consume(lexer.RParen, context); err != nil {
		return ast.Expression{}, err
	}

	return ast.Expression{Name: name, Arguments: args}, nil
}

// mix parses a possibly empty, comma-separated list of calls and literals.
// An identifier starts a nested call unless it is a boolean keyword.
func (p *Parser) mix(context string) ([]ast.Argument, error) {
	args := []ast.Argument{}
	if p.check(lexer.RParen) {
		return args, nil
	}

	for {
		if p.peekIdentifier() && !p.check(lexer.True) && !p.check(lexer.False) {
			expr, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, expr)
		} else {
			lit, err := p.literal(context)
			if err != nil {
				return nil, err
			}
			args = append(args, lit)
		}

		if !p.match(lexer.Comma) {
			return args, nil
		}
	}
}

// parseType parses a primitive, list or dict type
func (p *Parser) parseType(context string) (ast.Type, error) {
	if err := p.enter("type"); err != nil {
		return nil, err
	}
	defer p.exit("type")

	switch {
	case p.match(lexer.TypeString, lexer.TypeNumber, lexer.TypeBool):
		return ast.PrimitiveType{Name: p.previous()}, nil

	case p.match(lexer.TypeList):
		if _, err := p.consume(lexer.LSquare, "list type"); err != nil {
			return nil, err
		}
		elem, err := p.parseType("list element type")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RSquare, "list type"); err != nil {
			return nil, err
		}
		return ast.ListType{Elem: elem}, nil

	case p.match(lexer.TypeDict):
		if _, err := p.consume(lexer.LSquare, "dict type"); err != nil {
			return nil, err
		}
		key, err := p.parseType("dict key type")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Comma, "dict type"); err != nil {
			return nil, err
		}
		value, err := p.parseType("dict value type")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RSquare, "dict type"); err != nil {
			return nil, err
		}
		return ast.DictType{Key: key, Value: value}, nil

	default:
		return nil, p.errorUnexpected("type", context, lexer.TypeKeywords)
	}
}

// literal parses a boolean, number, string, list or single-entry dict literal
func (p *Parser) literal(context string) (ast.Literal, error) {
	if err := p.enter("literal"); err != nil {
		return nil, err
	}
	defer p.exit("literal")

	switch {
	case p.match(lexer.True, lexer.False):
		return ast.BoolLiteral{Value: p.previous() == lexer.True}, nil

	case p.matchNumber():
		tok := p.previous()
		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{
				Pos:     p.pos - 1,
				Message: fmt.Sprintf("number '%s' out of range", tok),
				Context: context,
				Got:     tok,
			}
		}
		return ast.NumberLiteral{Value: value}, nil

	case p.matchString():
		return ast.StringLiteral{Raw: p.previous()}, nil

	case p.match(lexer.LSquare):
		items, err := p.literalList(lexer.RSquare, "list literal")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RSquare, "list literal"); err != nil {
			return nil, err
		}
		return ast.ListLiteral{Items: items}, nil

	case p.match(lexer.LBrace):
		key, err := p.literal("dict literal key")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Colon, "dict literal"); err != nil {
			return nil, err
		}
		value, err := p.literal("dict literal value")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RBrace, "dict literal"); err != nil {
			return nil, err
		}
		return ast.DictLiteral{Key: key, Value: value}, nil

	default:
		return nil, p.errorUnexpected("literal", context, []string{lexer.True, lexer.False})
	}
}

// literalList parses a possibly empty, comma-separated literal list ending before closing
func (p *Parser) literalList(closing, context string) ([]ast.Literal, error) {
	items := []ast.Literal{}
	if p.check(closing) {
		return items, nil
	}

	for {
		lit, err := p.literal(context)
		if err != nil {
			return nil, err
		}
		items = append(items, lit)

		if !p.match(lexer.Comma) {
			return items, nil
		}
	}
}
