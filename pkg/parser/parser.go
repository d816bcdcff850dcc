// Package parser provides lexing and recursive-descent parsing of the ESTree
// schema DSL.
//
// # Usage
//
//	defs, err := parser.Parse(src)
//	if err != nil {
//	    // *parser.ParseError or *parser.LexError
//	}
//
// # Grammar Overview
//
//	spec        → { declaration } EOF
//	declaration → { annotation } ( interface | enum )
//	annotation  → @es6 | @added(year, proposal) | @added(n)
//	            | @section(a > b) | @at-root | @headerless
//	interface   → "interface" IDENT [ "<:" base { "," base } ] object
//	base        → [ added ] IDENT
//	object      → "{" { property } "}"
//	property    → [ added ] name ":" type ";"
//	type        → alternative { "|" alternative }
//	alternative → [ added ] primary
//	primary     → IDENT | "[" type "]" | object | literal
//	literal     → null | true | false | STRING | NUMBER
//	enum        → "enum" IDENT "{" [ "|" ] [ value { "|" value } ] "}"
//	value       → [ added ] literal
//
// A block of // lines directly above a declaration or property becomes its
// doc. Block comments are ignored.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/estree/estreegen/pkg/spec"
	"github.com/estree/estreegen/pkg/token"
)

// Parser parses schema DSL source into definitions.
type Parser struct {
	lexer *Lexer
	token Token // current token
}

// NewParser creates a new parser for the given input.
func NewParser(src string) *Parser {
	p := &Parser{lexer: NewLexer(src)}
	p.nextToken()
	return p
}

// Parse parses src and returns its definitions in source order.
func Parse(src string) ([]spec.Definition, error) {
	return NewParser(src).ParseSpec()
}

// ParseSpec parses every declaration up to end of input. The first error
// aborts parsing.
func (p *Parser) ParseSpec() ([]spec.Definition, error) {
	var defs []spec.Definition
	for !p.check(token.EOF) {
		def, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if len(p.lexer.Errors) > 0 {
		return nil, p.lexer.Errors[0]
	}
	return defs, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise returns an error
// describing what was wanted.
func (p *Parser) expect(t TokenType, want string) (Token, error) {
	tok := p.token
	if !p.check(t) {
		return tok, p.unexpected(want)
	}
	p.nextToken()
	return tok, nil
}

// errorf returns a ParseError at the current token. An ILLEGAL token reports
// the lexer's error instead.
func (p *Parser) errorf(format string, args ...any) error {
	if p.check(token.ILLEGAL) && len(p.lexer.Errors) > 0 {
		return p.lexer.Errors[len(p.lexer.Errors)-1]
	}
	return &ParseError{
		Pos:     p.token.Pos,
		Token:   p.token.String(),
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *Parser) unexpected(want string) error {
	return p.errorf(ErrUnexpectedToken, p.token, want)
}

// ---------- Declarations ----------

// declHeader collects the annotations in front of a declaration.
type declHeader struct {
	doc        string
	added      *spec.Version
	section    []string
	headerless bool
}

func (p *Parser) parseDeclaration() (spec.Definition, error) {
	h := declHeader{doc: p.token.Doc}
	seen := make(map[string]bool)

	for p.check(token.ANNOTATION) {
		tok := p.token
		kind := tok.Literal
		if kind == "es6" {
			kind = "added"
		}
		if seen[kind] {
			return nil, p.errorf(ErrDuplicateAnnotation, tok.Literal)
		}
		seen[kind] = true

		switch tok.Literal {
		case "es6", "added":
			v, err := p.parseVersion(tok)
			if err != nil {
				return nil, err
			}
			h.added = v
		case "section", "at-root":
			if seen["placement"] {
				return nil, p.errorf(ErrDuplicateAnnotation, tok.Literal)
			}
			seen["placement"] = true
			section, err := p.parseSection(tok)
			if err != nil {
				return nil, err
			}
			h.section = section
		case "headerless":
			if tok.HasArgs {
				return nil, p.errorf(ErrUnexpectedToken, tok, "@headerless")
			}
			h.headerless = true
		default:
			return nil, p.errorf(ErrUnknownAnnotation, tok.Literal)
		}
		p.nextToken()
	}

	switch p.token.Type {
	case token.INTERFACE:
		return p.parseInterface(h)
	case token.ENUM:
		return p.parseEnum(h)
	case token.IDENT:
		return nil, p.errorf(ErrUnknownDeclaration, p.token.Literal)
	default:
		return nil, p.unexpected("interface or enum declaration")
	}
}

// parseVersion interprets an @es6 or @added annotation token.
func (p *Parser) parseVersion(tok Token) (*spec.Version, error) {
	if tok.Literal == "es6" {
		if tok.HasArgs {
			return nil, p.errorf(ErrInvalidVersion, tok.Literal, tok.Args, "@es6 takes no arguments")
		}
		return &spec.Version{Year: spec.BaselineYear}, nil
	}

	parts := strings.Split(tok.Args, ",")
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if !tok.HasArgs || err != nil {
		return nil, p.errorf(ErrInvalidVersion, tok.Literal, tok.Args, "expected a version number")
	}
	switch len(parts) {
	case 1:
		return &spec.Version{Year: year, Legacy: true}, nil
	case 2:
		proposal := strings.TrimSpace(parts[1])
		if proposal == "" {
			return nil, p.errorf(ErrInvalidVersion, tok.Literal, tok.Args, "empty proposal")
		}
		return &spec.Version{Year: year, Proposal: proposal}, nil
	default:
		return nil, p.errorf(ErrInvalidVersion, tok.Literal, tok.Args, "too many arguments")
	}
}

func (p *Parser) parseSection(tok Token) ([]string, error) {
	if tok.Literal == "at-root" {
		if tok.HasArgs {
			return nil, p.errorf(ErrUnexpectedToken, tok, "@at-root")
		}
		return []string{spec.RootSection}, nil
	}
	if !tok.HasArgs {
		return nil, p.errorf(ErrInvalidSection, "")
	}
	var path []string
	for _, name := range strings.Split(tok.Args, ">") {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, p.errorf(ErrInvalidSection, tok.Args)
		}
		path = append(path, name)
	}
	return path, nil
}

// parseAdded consumes an optional @es6/@added prefix. Any other annotation
// is rejected.
func (p *Parser) parseAdded() (*spec.Version, error) {
	if !p.check(token.ANNOTATION) {
		return nil, nil
	}
	tok := p.token
	if tok.Literal != "es6" && tok.Literal != "added" {
		if tok.Literal == "section" || tok.Literal == "at-root" || tok.Literal == "headerless" {
			return nil, p.errorf(ErrMisplacedAnnotation, tok.Literal)
		}
		return nil, p.errorf(ErrUnknownAnnotation, tok.Literal)
	}
	v, err := p.parseVersion(tok)
	if err != nil {
		return nil, err
	}
	p.nextToken()
	return v, nil
}

func (p *Parser) parseInterface(h declHeader) (*spec.Interface, error) {
	p.nextToken() // consume 'interface'

	name, err := p.expect(token.IDENT, "interface name")
	if err != nil {
		return nil, err
	}
	iface := &spec.Interface{
		Name:       name.Literal,
		Doc:        h.doc,
		Added:      h.added,
		Section:    h.section,
		Headerless: h.headerless,
	}

	if p.match(token.SUBTYPE) {
		for {
			added, err := p.parseAdded()
			if err != nil {
				return nil, err
			}
			base, err := p.expect(token.IDENT, "base interface name")
			if err != nil {
				return nil, err
			}
			iface.Bases = append(iface.Bases, spec.Base{Name: base.Literal, Added: added})
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	iface.Props, err = p.parseObject("interface " + iface.Name)
	if err != nil {
		return nil, err
	}
	return iface, nil
}

// parseObject parses a brace-delimited property list.
func (p *Parser) parseObject(what string) ([]*spec.Property, error) {
	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	var props []*spec.Property
	for !p.check(token.RBRACE) {
		if p.check(token.EOF) {
			return nil, p.errorf(ErrUnterminatedBlock, what)
		}
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
	}
	p.nextToken() // consume '}'
	return props, nil
}

func (p *Parser) parseProperty() (*spec.Property, error) {
	doc := p.token.Doc
	added, err := p.parseAdded()
	if err != nil {
		return nil, err
	}

	// Keywords are valid property names.
	if !p.check(token.IDENT) && !token.IsKeyword(p.token.Type) {
		return nil, p.unexpected("property name")
	}
	name := p.token.Literal
	p.nextToken()

	if _, err := p.expect(token.COLON, ":"); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI, ";"); err != nil {
		return nil, err
	}
	return &spec.Property{Name: name, Type: typ, Doc: doc, Added: added}, nil
}

// ---------- Types ----------

// parseType parses a union of alternatives. A single alternative without a
// version marker is returned as the bare type.
func (p *Parser) parseType() (spec.Type, error) {
	var alts []spec.Alternative
	for {
		added, err := p.parseAdded()
		if err != nil {
			return nil, err
		}
		t, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		alts = append(alts, spec.Alternative{Type: t, Added: added})
		if !p.match(token.PIPE) {
			break
		}
	}
	if len(alts) == 1 && alts[0].Added == nil {
		return alts[0].Type, nil
	}
	return &spec.Union{Alternatives: alts}, nil
}

func (p *Parser) parsePrimary() (spec.Type, error) {
	switch p.token.Type {
	case token.IDENT:
		name := p.token.Literal
		p.nextToken()
		return &spec.Reference{Name: name}, nil
	case token.LBRACKET:
		p.nextToken()
		base, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "]"); err != nil {
			return nil, err
		}
		return &spec.Array{Base: base}, nil
	case token.LBRACE:
		props, err := p.parseObject("object type")
		if err != nil {
			return nil, err
		}
		return &spec.Object{Props: props}, nil
	case token.NULL, token.TRUE, token.FALSE, token.STRING, token.NUMBER:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &lit, nil
	default:
		return nil, p.errorf(ErrUnknownType, p.token)
	}
}

func (p *Parser) parseLiteral() (spec.Literal, error) {
	tok := p.token
	var lit spec.Literal
	switch tok.Type {
	case token.NULL:
		lit.Value = nil
	case token.TRUE:
		lit.Value = true
	case token.FALSE:
		lit.Value = false
	case token.STRING:
		lit.Value = tok.Literal
	case token.NUMBER:
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return lit, p.errorf(ErrInvalidNumber, tok.Literal)
		}
		lit.Value = n
	default:
		return lit, p.errorf(ErrEnumValue, tok)
	}
	p.nextToken()
	return lit, nil
}

// ---------- Enums ----------

func (p *Parser) parseEnum(h declHeader) (*spec.Enum, error) {
	p.nextToken() // consume 'enum'

	name, err := p.expect(token.IDENT, "enum name")
	if err != nil {
		return nil, err
	}
	enum := &spec.Enum{
		Name:       name.Literal,
		Doc:        h.doc,
		Added:      h.added,
		Section:    h.section,
		Headerless: h.headerless,
	}

	if _, err := p.expect(token.LBRACE, "{"); err != nil {
		return nil, err
	}
	p.match(token.PIPE) // optional leading separator

	prevLine := 0
	for !p.check(token.RBRACE) {
		if p.check(token.EOF) {
			return nil, p.errorf(ErrUnterminatedBlock, "enum "+enum.Name)
		}
		line := p.token.Pos.Line
		added, err := p.parseAdded()
		if err != nil {
			return nil, err
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		enum.Values = append(enum.Values, &spec.EnumValue{
			Value: lit,
			Added: added,
			Break: len(enum.Values) > 0 && line != prevLine,
		})
		prevLine = line
		if !p.match(token.PIPE) {
			break
		}
	}
	if _, err := p.expect(token.RBRACE, "| or }"); err != nil {
		if p.check(token.EOF) {
			return nil, p.errorf(ErrUnterminatedBlock, "enum "+enum.Name)
		}
		return nil, err
	}
	return enum, nil
}
