// Package render provides the per-invocation state shared by the emitters:
// the requested maximum version and the current indentation.
package render

import (
	"strings"

	"github.com/estree/estreegen/pkg/spec"
)

// IndentSize is the default indentation step in spaces.
const IndentSize = 2

// Context carries render state through one emitter invocation. It is not
// safe for concurrent use; create one per call.
type Context struct {
	MaxVersion int
	indent     string
}

// New returns a context rendering items visible at maxVersion.
func New(maxVersion int) *Context {
	return &Context{MaxVersion: maxVersion}
}

// Indent returns the current indentation prefix.
func (c *Context) Indent() string {
	return c.indent
}

// WithIndent runs body with the indentation increased by n spaces and
// restores the previous indentation when body returns or panics.
func (c *Context) WithIndent(n int, body func() error) error {
	old := c.indent
	defer func() { c.indent = old }()
	c.indent += strings.Repeat(" ", n)
	return body()
}

// Visible reports whether an item with marker v is rendered.
func (c *Context) Visible(v *spec.Version) bool {
	return spec.Visible(v, c.MaxVersion)
}

// Comment renders doc as // lines. Lines after the first are prefixed with
// the current indentation; empty lines are kept as a bare //.
func (c *Context) Comment(doc string) string {
	if doc == "" {
		return ""
	}
	var sb strings.Builder
	for i, line := range strings.Split(doc, "\n") {
		if i > 0 {
			sb.WriteString(c.indent)
		}
		if line == "" {
			sb.WriteString("//\n")
			continue
		}
		sb.WriteString("// ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// JSDoc renders doc as a /** */ block. Lines after the opener are prefixed
// with the current indentation, and */ inside the text is broken with a
// zero-width space.
func (c *Context) JSDoc(doc string) string {
	if doc == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("/**\n")
	for _, line := range strings.Split(doc, "\n") {
		sb.WriteString(c.indent)
		if line == "" {
			sb.WriteString(" *\n")
			continue
		}
		sb.WriteString(" * ")
		sb.WriteString(strings.ReplaceAll(line, "*/", "*\u200b/"))
		sb.WriteByte('\n')
	}
	sb.WriteString(c.indent)
	sb.WriteString(" */\n")
	return sb.String()
}
