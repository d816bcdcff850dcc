package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/estree/estreegen/pkg/token"
)

// Lexer tokenizes schema DSL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments collected during lexing, doc lines and ignored blocks alike.
	Comments []*token.Comment

	// Errors holds every lexical error, in input order.
	Errors []error

	pending       []*token.Comment // doc lines waiting for the next token
	lastTokenLine int
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. The doc comment block directly above the
// token, if any, is attached as Token.Doc.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()
	tok := l.scan(pos)
	tok.Doc = l.takeDoc(pos.Line)
	l.lastTokenLine = pos.Line
	return tok
}

func (l *Lexer) scan(pos Position) Token {
	var tok Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = token.EOF
		return tok
	case '{':
		tok = l.newToken(token.LBRACE, "{")
	case '}':
		tok = l.newToken(token.RBRACE, "}")
	case '[':
		tok = l.newToken(token.LBRACKET, "[")
	case ']':
		tok = l.newToken(token.RBRACKET, "]")
	case ':':
		tok = l.newToken(token.COLON, ":")
	case ';':
		tok = l.newToken(token.SEMI, ";")
	case ',':
		tok = l.newToken(token.COMMA, ",")
	case '|':
		tok = l.newToken(token.PIPE, "|")
	case '<':
		if l.peekChar() == ':' {
			l.readChar()
			tok = Token{Type: token.SUBTYPE, Literal: "<:", Pos: pos}
		} else {
			tok = l.illegal(pos, string(l.ch), ErrUnexpectedChar, "<")
		}
	case '@':
		return l.readAnnotation(pos)
	case '"':
		return l.readString(pos)
	case '-':
		if isDigit(l.peekChar()) {
			return Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
		}
		tok = l.illegal(pos, "-", ErrUnexpectedChar, "-")
	default:
		switch {
		case isIdentStart(l.ch):
			literal := l.readIdentifier()
			return Token{Type: token.LookupIdent(literal), Literal: literal, Pos: pos}
		case isDigit(l.ch):
			return Token{Type: token.NUMBER, Literal: l.readNumber(), Pos: pos}
		default:
			tok = l.illegal(pos, string(l.ch), ErrUnexpectedChar, string(l.ch))
		}
	}

	l.readChar()
	return tok
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType TokenType, literal string) Token {
	return Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// illegal records a lexical error and returns an ILLEGAL token.
func (l *Lexer) illegal(pos Position, literal, format string, args ...any) Token {
	l.Errors = append(l.Errors, &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)})
	return Token{Type: token.ILLEGAL, Literal: literal, Pos: pos}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		// Skip whitespace
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		// Collect line comment (// ...)
		if l.ch == '/' && l.peekChar() == '/' {
			l.collectLineComment()
			continue
		}

		// Collect block comment (/* ... */)
		if l.ch == '/' && l.peekChar() == '*' {
			l.collectBlockComment()
			continue
		}

		break
	}
}

// collectLineComment collects a line comment. A comment that starts a line
// becomes part of the pending doc block; one that trails a token does not.
func (l *Lexer) collectLineComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	// Consume until end of line
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}

	c := &token.Comment{
		Kind: token.LineComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	}
	l.Comments = append(l.Comments, c)

	if startPos.Line == l.lastTokenLine {
		return
	}
	if n := len(l.pending); n > 0 && l.pending[n-1].Span.Start.Line+1 < startPos.Line {
		// A blank line separates doc blocks.
		l.pending = l.pending[:0]
	}
	l.pending = append(l.pending, c)
}

// collectBlockComment collects a block comment.
func (l *Lexer) collectBlockComment() {
	startPos := l.currentPos()
	startOffset := l.pos

	l.readChar() // skip '/'
	l.readChar() // skip '*'

	terminated := false
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // skip '*'
			l.readChar() // skip '/'
			terminated = true
			break
		}
		l.readChar()
	}
	if !terminated {
		l.Errors = append(l.Errors, &LexError{Pos: startPos, Message: ErrUnterminatedComment})
	}

	l.Comments = append(l.Comments, &token.Comment{
		Kind: token.BlockComment,
		Text: l.input[startOffset:l.pos],
		Span: token.Span{Start: startPos, End: l.currentPos()},
	})
}

// takeDoc returns the pending doc block if it ends on the line just above
// line, and clears it either way.
func (l *Lexer) takeDoc(line int) string {
	n := len(l.pending)
	if n == 0 {
		return ""
	}
	defer func() { l.pending = l.pending[:0] }()
	if l.pending[n-1].Span.Start.Line+1 != line {
		return ""
	}
	return token.JoinDoc(l.pending)
}

// readAnnotation reads @name with an optional parenthesized argument list.
// The raw argument text is kept for the parser to interpret.
func (l *Lexer) readAnnotation(pos Position) Token {
	l.readChar() // skip '@'

	start := l.pos
	for isIdentPart(l.ch) || l.ch == '-' {
		l.readChar()
	}
	name := l.input[start:l.pos]
	if name == "" {
		return l.illegal(pos, "@", ErrEmptyAnnotation)
	}

	tok := Token{Type: token.ANNOTATION, Literal: name, Pos: pos}
	if l.ch != '(' {
		return tok
	}

	l.readChar() // skip '('
	argStart := l.pos
	for l.ch != ')' {
		if l.ch == 0 || l.ch == '\n' {
			return l.illegal(pos, "@"+name, ErrUnterminatedArgs, name)
		}
		l.readChar()
	}
	tok.Args = strings.TrimSpace(l.input[argStart:l.pos])
	tok.HasArgs = true
	l.readChar() // skip ')'
	return tok
}

// readString reads a double-quoted string literal with Go-style escapes.
func (l *Lexer) readString(pos Position) Token {
	start := l.pos
	l.readChar() // skip opening quote

	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return l.illegal(pos, l.input[start:l.pos], ErrUnterminatedString)
		}
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar() // skip escape
		}
		l.readChar()
	}
	l.readChar() // skip closing quote

	raw := l.input[start:l.pos]
	value, err := strconv.Unquote(raw)
	if err != nil {
		return l.illegal(pos, raw, ErrInvalidEscape, raw)
	}
	return Token{Type: token.STRING, Literal: value, Pos: pos}
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer, decimal, or scientific) with
// an optional leading minus sign.
func (l *Lexer) readNumber() string {
	start := l.pos

	if l.ch == '-' {
		l.readChar()
	}

	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Read decimal part
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Read exponent part (e.g., 1e10, 1E-5)
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar() // skip 'e' or 'E'
		if l.ch == '+' || l.ch == '-' {
			l.readChar() // skip sign
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

func isIdentStart(ch byte) bool {
	return isLetter(ch) || ch == '_' || ch == '$'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

// isLetter returns true if ch is a letter.
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return tokens
}
