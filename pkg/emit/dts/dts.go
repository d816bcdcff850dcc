// Package dts renders a schema as an ambient TypeScript declaration module.
//
// Enums become string-literal union aliases, interfaces keep their declared
// own properties and express inheritance through extends clauses. A property
// whose type is a union with a visible null alternative is declared optional
// and the null is dropped.
package dts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/estree/estreegen/pkg/docs"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/estree/estreegen/pkg/render"
	"github.com/estree/estreegen/pkg/spec"
)

// ModuleName is the name of the generated module block.
const ModuleName = "ESTree"

// rootNode is the only interface that keeps its literal "type" field.
const rootNode = "Node"

func init() {
	emit.Register(Emitter{})
}

// Emitter implements emit.Emitter for TypeScript declarations.
type Emitter struct{}

// Name implements emit.Emitter.
func (Emitter) Name() string { return "dts" }

// FileExtension implements emit.Emitter.
func (Emitter) FileExtension() string { return ".d.ts" }

// Emit implements emit.Emitter.
func (Emitter) Emit(defs []spec.Definition, maxVersion int) (string, error) {
	return Emit(defs, maxVersion)
}

// Emit renders the declaration module for defs at maxVersion.
func Emit(defs []spec.Definition, maxVersion int) (string, error) {
	ctx := render.New(maxVersion)
	var decls []string
	err := ctx.WithIndent(render.IndentSize, func() error {
		for _, def := range defs {
			if !ctx.Visible(def.DefAdded()) {
				continue
			}
			decl, err := definition(ctx, def)
			if err != nil {
				return err
			}
			decls = append(decls, ctx.Indent()+decl)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return "declare module " + ModuleName + " {\n" + strings.Join(decls, "\n\n") + "\n}", nil
}

func definition(ctx *render.Context, def spec.Definition) (string, error) {
	var out strings.Builder
	if doc := docs.Resolve(def, ctx.MaxVersion, docs.Options{}); doc != "" {
		out.WriteString(ctx.JSDoc(doc))
		out.WriteString(ctx.Indent())
	}

	switch def := def.(type) {
	case *spec.Enum:
		out.WriteString(enum(ctx, def))
	case *spec.Interface:
		body, err := iface(ctx, def)
		if err != nil {
			return "", err
		}
		out.WriteString(body)
	default:
		return "", emit.UnsupportedNode(def)
	}
	return out.String(), nil
}

// enum renders a type alias over the visible values; TypeScript enums cannot
// hold literal members.
func enum(ctx *render.Context, def *spec.Enum) string {
	var values []string
	for _, v := range def.Values {
		if ctx.Visible(v.Added) {
			values = append(values, emit.FormatLiteral(v.Value.Value))
		}
	}
	if len(values) == 0 {
		return fmt.Sprintf("type %s = never;", def.Name)
	}
	return fmt.Sprintf("type %s = %s;", def.Name, strings.Join(values, " | "))
}

func iface(ctx *render.Context, def *spec.Interface) (string, error) {
	head := "interface " + def.Name + " "
	if bases := def.VisibleBases(ctx.MaxVersion); len(bases) > 0 {
		head += "extends " + strings.Join(bases, ", ") + " "
	}

	var props []*spec.Property
	for _, p := range def.Props {
		if !ctx.Visible(p.Added) {
			continue
		}
		// Descendants inherit the discriminant from Node.
		if def.Name == rootNode || p.Name != "type" {
			props = append(props, p)
		}
	}
	if len(props) == 0 {
		return head + "{}", nil
	}
	body, err := object(ctx, props)
	if err != nil {
		return "", err
	}
	return head + body, nil
}

func object(ctx *render.Context, props []*spec.Property) (string, error) {
	var out strings.Builder
	out.WriteString("{\n")
	err := ctx.WithIndent(render.IndentSize, func() error {
		for _, p := range props {
			if doc := docs.Resolve(p, ctx.MaxVersion, docs.Options{}); doc != "" {
				out.WriteString(ctx.Indent())
				out.WriteString(ctx.JSDoc(doc))
			}
			name := p.Name
			if optional(ctx, p.Type) {
				name += "?"
			}
			typ, err := typeExpr(ctx, p.Type)
			if err != nil {
				return err
			}
			fmt.Fprintf(&out, "%s%s: %s;\n", ctx.Indent(), name, typ)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	out.WriteString(ctx.Indent())
	out.WriteString("}")
	return out.String(), nil
}

// optional reports whether t is a union with a visible null alternative.
func optional(ctx *render.Context, t spec.Type) bool {
	u, ok := t.(*spec.Union)
	if !ok {
		return false
	}
	for _, a := range u.Alternatives {
		if ctx.Visible(a.Added) && spec.IsNull(a.Type) {
			return true
		}
	}
	return false
}

func typeExpr(ctx *render.Context, t spec.Type) (string, error) {
	switch t := t.(type) {
	case *spec.Literal:
		return literalType(t.Value), nil
	case *spec.Reference:
		return t.Name, nil
	case *spec.Array:
		base, err := typeExpr(ctx, t.Base)
		if err != nil {
			return "", err
		}
		return "Array<" + base + ">", nil
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
			if s != "any" && !slices.Contains(members, s) {
				members = append(members, s)
			}
		}
		if len(members) == 0 {
			return "any", nil
		}
		return strings.Join(members, " | "), nil
	case *spec.Object:
		var visible []*spec.Property
		for _, p := range t.Props {
			if ctx.Visible(p.Added) {
				visible = append(visible, p)
			}
		}
		if len(visible) == 0 {
			return "{}", nil
		}
		return object(ctx, visible)
	default:
		return "", emit.UnsupportedNode(t)
	}
}

// literalType maps a literal to its JavaScript typeof; null is any.
func literalType(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "any"
	}
}
