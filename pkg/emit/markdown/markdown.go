// Package markdown renders a schema as Markdown documentation: a table of
// contents followed by nested sections holding each definition as a fenced
// code block and its prose.
//
// A definition is placed under its explicit @section path, else under the
// section named after its first visible base, else at the top level.
// Sections named by a single-element path are created on demand; a longer
// path must name existing sections.
package markdown

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/pkg/docs"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/estree/estreegen/pkg/render"
	"github.com/estree/estreegen/pkg/spec"
)

// objectIndent is the property indentation inside code blocks.
const objectIndent = 4

// ErrMissingSection is returned when a placement path runs through a
// section that does not exist.
var ErrMissingSection = errors.New("missing section")

func init() {
	emit.Register(Emitter{})
}

// Emitter implements emit.Emitter for Markdown documentation.
type Emitter struct{}

// Name implements emit.Emitter.
func (Emitter) Name() string { return "markdown" }

// FileExtension implements emit.Emitter.
func (Emitter) FileExtension() string { return ".md" }

// Emit implements emit.Emitter.
func (Emitter) Emit(defs []spec.Definition, maxVersion int) (string, error) {
	return Emit(defs, maxVersion)
}

// node is an entry of the section tree: *section or *leaf.
type node interface {
	isNode()
}

type section struct {
	name    string
	content []node
}

type leaf struct {
	def spec.Definition
}

func (*section) isNode() {}
func (*leaf) isNode()    {}

// Emit renders the documentation for defs at maxVersion.
func Emit(defs []spec.Definition, maxVersion int) (string, error) {
	ctx := render.New(maxVersion)

	root, err := buildTree(ctx, defs)
	if err != nil {
		return "", err
	}

	var toc strings.Builder
	for _, sec := range root {
		writeTOC(ctx, &toc, sec)
	}

	bodies := make([]string, 0, len(root))
	for _, sec := range root {
		body, err := printNode(ctx, sec, 1)
		if err != nil {
			return "", err
		}
		bodies = append(bodies, body)
	}
	return toc.String() + "\n" + strings.Join(bodies, "\n\n"), nil
}

// SectionPath returns where def is placed at maxVersion.
func SectionPath(def spec.Definition, maxVersion int) []string {
	if section, _ := def.Placement(); len(section) > 0 {
		return section
	}
	if iface, ok := def.(*spec.Interface); ok {
		if bases := iface.VisibleBases(maxVersion); len(bases) > 0 {
			return bases[:1]
		}
	}
	return []string{spec.RootSection}
}

func buildTree(ctx *render.Context, defs []spec.Definition) ([]*section, error) {
	var root []node
	for _, def := range defs {
		if !ctx.Visible(def.DefAdded()) {
			continue
		}
		path := SectionPath(def, ctx.MaxVersion)
		own := &section{name: def.DefName(), content: []node{&leaf{def: def}}}

		if path[0] == spec.RootSection {
			root = append(root, own)
			continue
		}

		var entry node = own
		if _, headerless := def.Placement(); headerless {
			entry = &leaf{def: def}
		}
		if err := addEntry(&root, path, path, entry); err != nil {
			return nil, errors.Wrapf(err, "placing %s", def.DefName())
		}
	}

	sections := make([]*section, 0, len(root))
	for _, n := range root {
		sections = append(sections, n.(*section))
	}
	return sections, nil
}

// addEntry inserts entry at path below current. Only the last path element
// may name a section that does not exist yet.
func addEntry(current *[]node, fullPath, path []string, entry node) error {
	for _, n := range *current {
		sec, ok := n.(*section)
		if !ok || sec.name != path[0] {
			continue
		}
		if len(path) == 1 {
			sec.content = append(sec.content, entry)
			return nil
		}
		return addEntry(&sec.content, fullPath, path[1:], entry)
	}

	if len(path) > 1 {
		return errors.WithDetail(
			errors.Wrapf(ErrMissingSection, "section %q", path[0]),
			"placement path: "+strings.Join(fullPath, " -> "),
		)
	}
	*current = append(*current, &section{name: path[0], content: []node{entry}})
	return nil
}

func writeTOC(ctx *render.Context, out *strings.Builder, sec *section) {
	out.WriteString(ctx.Indent())
	out.WriteString("- [" + sec.name + "](#" + Anchor(sec.name) + ")\n")
	_ = ctx.WithIndent(render.IndentSize, func() error {
		for _, n := range sec.content {
			if child, ok := n.(*section); ok {
				writeTOC(ctx, out, child)
			}
		}
		return nil
	})
}

// Anchor returns the link anchor for a heading: the lower-cased name with
// every character outside [A-Za-z0-9_] replaced by '-'.
func Anchor(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(name))
}

func printNode(ctx *render.Context, n node, depth int) (string, error) {
	switch n := n.(type) {
	case *section:
		parts := []string{strings.Repeat("#", depth) + " " + n.name}
		for _, child := range n.content {
			s, err := printNode(ctx, child, depth+1)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, "\n\n"), nil
	case *leaf:
		return printLeaf(ctx, n.def)
	default:
		return "", emit.UnsupportedNode(n)
	}
}

func printLeaf(ctx *render.Context, def spec.Definition) (string, error) {
	var code string
	switch def := def.(type) {
	case *spec.Interface:
		head := "interface " + def.Name
		if bases := def.VisibleBases(ctx.MaxVersion); len(bases) > 0 {
			head += " <: " + strings.Join(bases, ", ")
		}
		body, err := object(ctx, def.Props)
		if err != nil {
			return "", err
		}
		code = head + " " + body
	case *spec.Enum:
		var values []string
		for _, v := range def.Values {
			if ctx.Visible(v.Added) {
				values = append(values, emit.FormatLiteral(v.Value.Value))
			}
		}
		if len(values) == 0 {
			code = "enum " + def.Name + " { }"
		} else {
			code = "enum " + def.Name + " {\n    " + strings.Join(values, " | ") + "\n}"
		}
	default:
		return "", emit.UnsupportedNode(def)
	}

	out := "```jsx\n" + code + "\n```"
	if doc := docs.Resolve(def, ctx.MaxVersion, docs.Options{PropertyNotes: true}); doc != "" {
		out += "\n\n" + doc
	}
	return out, nil
}

func object(ctx *render.Context, props []*spec.Property) (string, error) {
	var visible []*spec.Property
	for _, p := range props {
		if ctx.Visible(p.Added) {
			visible = append(visible, p)
		}
	}
	if len(visible) == 0 {
		return "{ }", nil
	}

	var out strings.Builder
	out.WriteString("{\n")
	err := ctx.WithIndent(objectIndent, func() error {
		for _, p := range visible {
			typ, err := typeExpr(ctx, p.Type)
			if err != nil {
				return err
			}
			out.WriteString(ctx.Indent() + p.Name + ": " + typ + ";\n")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	out.WriteString(ctx.Indent() + "}")
	return out.String(), nil
}

func typeExpr(ctx *render.Context, t spec.Type) (string, error) {
	switch t := t.(type) {
	case *spec.Literal:
		return emit.FormatLiteral(t.Value), nil
	case *spec.Reference:
		return t.Name, nil
	case *spec.Array:
		base, err := typeExpr(ctx, t.Base)
		if err != nil {
			return "", err
		}
		return "[ " + base + " ]", nil
	case *spec.Union:
		var members []string
		for _, a := range t.Alternatives {
			if !ctx.Visible(a.Added) {
				continue
			}
			s, err := typeExpr(ctx, a.Type)
			if err != nil {
				return "", err
			}
			members = append(members, s)
		}
		if len(members) == 0 {
			return "any", nil
		}
		return strings.Join(members, " | "), nil
	case *spec.Object:
		return object(ctx, t.Props)
	default:
		return "", emit.UnsupportedNode(t)
	}
}
