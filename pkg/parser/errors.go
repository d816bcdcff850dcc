package parser

import "fmt"

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     Position
	Token   string // offending token as written in messages
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected %s, expected %s"
	ErrUnexpectedChar      = "unexpected character %q"
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedComment = "unterminated block comment"
	ErrUnterminatedArgs    = "unterminated argument list for @%s"
	ErrInvalidEscape       = "invalid escape sequence in %s"
	ErrInvalidNumber       = "invalid number literal %q"
	ErrEmptyAnnotation     = "annotation name expected after @"

	ErrUnknownDeclaration  = "unknown declaration keyword %q, expected interface or enum"
	ErrUnknownAnnotation   = "unknown annotation @%s"
	ErrMisplacedAnnotation = "annotation @%s is not allowed here"
	ErrDuplicateAnnotation = "duplicate annotation @%s"
	ErrInvalidVersion      = "invalid version marker @%s(%s): %s"
	ErrInvalidSection      = "invalid section path %q"
	ErrUnknownType         = "unknown type %s"
	ErrEnumValue           = "enum values must be literals, got %s"
	ErrUnterminatedBlock   = "unterminated %s body, missing }"
)
