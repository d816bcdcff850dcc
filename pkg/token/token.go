// Package token defines the lexical tokens of the ESTree schema DSL.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT      // Node, sourceType
	NUMBER     // 2015, 1.5, -1
	STRING     // "module"
	ANNOTATION // @added(2017, async-iteration), @es6, @headerless

	// Punctuation
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]
	COLON    // :
	SEMI     // ;
	COMMA    // ,
	PIPE     // |
	SUBTYPE  // <:

	// Keywords
	INTERFACE
	ENUM
	NULL
	TRUE
	FALSE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:      "IDENT",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	ANNOTATION: "ANNOTATION",

	LBRACE:   "{",
	RBRACE:   "}",
	LBRACKET: "[",
	RBRACKET: "]",
	COLON:    ":",
	SEMI:     ";",
	COMMA:    ",",
	PIPE:     "|",
	SUBTYPE:  "<:",

	INTERFACE: "interface",
	ENUM:      "enum",
	NULL:      "null",
	TRUE:      "true",
	FALSE:     "false",
}

var keywords = map[string]TokenType{
	"interface": INTERFACE,
	"enum":      ENUM,
	"null":      NULL,
	"true":      TRUE,
	"false":     FALSE,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
// Keywords are case-sensitive.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= INTERFACE && t <= FALSE
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position

	// Args holds the raw text between the parentheses of an annotation,
	// and HasArgs reports whether parentheses were present at all.
	Args    string
	HasArgs bool

	// Doc is the text of the doc comment block immediately preceding the token.
	Doc string
}

// String returns the token as it appears in error messages.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case STRING:
		return fmt.Sprintf("%q", t.Literal)
	case ANNOTATION:
		if t.HasArgs {
			return fmt.Sprintf("@%s(%s)", t.Literal, t.Args)
		}
		return "@" + t.Literal
	}
	if t.Literal != "" {
		return fmt.Sprintf("%q", t.Literal)
	}
	return t.Type.String()
}
