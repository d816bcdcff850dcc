package token

import "strings"

// CommentKind distinguishes doc lines from block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // // doc line
	BlockComment                    // /* ignored */
)

// Comment represents a source comment with position.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters
	Span Span
}

// IsLineComment returns true if this is a line comment.
func (c *Comment) IsLineComment() bool {
	return c.Kind == LineComment
}

// DocText returns the comment text without the leading "//" and at most one space.
func (c *Comment) DocText() string {
	text := strings.TrimPrefix(c.Text, "//")
	text = strings.TrimPrefix(text, " ")
	return strings.TrimRight(text, "\r")
}

// JoinDoc joins consecutive line comments into a doc string.
func JoinDoc(comments []*Comment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		if c.IsLineComment() {
			lines = append(lines, c.DocText())
		}
	}
	return strings.Join(lines, "\n")
}
