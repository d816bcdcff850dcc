// Package estree renders a schema back into DSL source. The output parses to
// the version-filtered input model, and emitting it again is a no-op, so it
// doubles as the formatter for spec sources.
package estree

import (
	"strings"

	"github.com/estree/estreegen/pkg/emit"
	"github.com/estree/estreegen/pkg/render"
	"github.com/estree/estreegen/pkg/spec"
)

// propertyIndent is the indentation step for object properties.
const propertyIndent = 4

func init() {
	emit.Register(Emitter{})
}

// Emitter implements emit.Emitter for DSL source.
type Emitter struct{}

// Name implements emit.Emitter.
func (Emitter) Name() string { return "estree" }

// FileExtension implements emit.Emitter.
func (Emitter) FileExtension() string { return ".estree" }

// Emit implements emit.Emitter.
func (Emitter) Emit(defs []spec.Definition, maxVersion int) (string, error) {
	return Emit(defs, maxVersion)
}

// Emit renders the definitions visible at maxVersion as DSL source.
func Emit(defs []spec.Definition, maxVersion int) (string, error) {
	return Print(spec.Filter(defs, maxVersion))
}

// Print renders defs as DSL source without filtering.
func Print(defs []spec.Definition) (string, error) {
	ctx := render.New(spec.Latest)
	decls := make([]string, 0, len(defs))
	for _, def := range defs {
		decl, err := definition(ctx, def)
		if err != nil {
			return "", err
		}
		decls = append(decls, decl)
	}
	return strings.Join(decls, "\n\n") + "\n", nil
}

func definition(ctx *render.Context, def spec.Definition) (string, error) {
	head := ctx.Comment(def.DefDoc()) + placement(def) + added(def.DefAdded(), true)

	switch def := def.(type) {
	case *spec.Interface:
		var out strings.Builder
		out.WriteString(head + "interface " + def.Name)
		for i, b := range def.Bases {
			if i == 0 {
				out.WriteString(" <: ")
			} else {
				out.WriteString(", ")
			}
			out.WriteString(added(b.Added, false) + b.Name)
		}
		body, err := object(ctx, def.Props)
		if err != nil {
			return "", err
		}
		out.WriteString(" " + body)
		return out.String(), nil
	case *spec.Enum:
		return head + enum(def), nil
	default:
		return "", emit.UnsupportedNode(def)
	}
}

// placement renders the section annotations on their own line.
func placement(def spec.Definition) string {
	section, headerless := def.Placement()
	var parts []string
	switch {
	case len(section) == 1 && section[0] == spec.RootSection:
		parts = append(parts, "@at-root")
	case len(section) > 0:
		parts = append(parts, "@section("+strings.Join(section, " > ")+")")
	}
	if headerless {
		parts = append(parts, "@headerless")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + "\n"
}

// added renders a version marker. @es6 always shares the line with what it
// marks; other declaration markers get a line of their own.
func added(v *spec.Version, declaration bool) string {
	switch {
	case v == nil:
		return ""
	case v.IsBaseline():
		return v.String() + " "
	case declaration:
		return v.String() + "\n"
	default:
		return v.String() + " "
	}
}

func enum(def *spec.Enum) string {
	if len(def.Values) == 0 {
		return "enum " + def.Name + " { }"
	}
	var lines []string
	var line []string
	for i, v := range def.Values {
		if i > 0 && v.Break {
			lines = append(lines, strings.Join(line, " | "))
			line = nil
		}
		line = append(line, added(v.Added, false)+emit.FormatLiteral(v.Value.Value))
	}
	lines = append(lines, strings.Join(line, " | "))
	return "enum " + def.Name + " {\n    " + strings.Join(lines, "\n    | ") + "\n}"
}

func object(ctx *render.Context, props []*spec.Property) (string, error) {
	if len(props) == 0 {
		return "{ }", nil
	}
	var out strings.Builder
	out.WriteString("{\n")
	err := ctx.WithIndent(propertyIndent, func() error {
		for _, p := range props {
			if p.Doc != "" {
				out.WriteString(ctx.Indent() + ctx.Comment(p.Doc))
			}
			typ, err := typeExpr(ctx, p.Type)
			if err != nil {
				return err
			}
			out.WriteString(ctx.Indent() + added(p.Added, false) + p.Name + ": " + typ + ";\n")
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
		if len(t.Alternatives) == 0 {
			return "any", nil
		}
		members := make([]string, 0, len(t.Alternatives))
		for _, a := range t.Alternatives {
			s, err := typeExpr(ctx, a.Type)
			if err != nil {
				return "", err
			}
			members = append(members, added(a.Added, false)+s)
		}
		return strings.Join(members, " | "), nil
	case *spec.Object:
		return object(ctx, t.Props)
	default:
		return "", emit.UnsupportedNode(t)
	}
}
