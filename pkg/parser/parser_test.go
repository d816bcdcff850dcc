package parser

import (
	"testing"

	"github.com/estree/estreegen/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(name string) *spec.Reference {
	return &spec.Reference{Name: name}
}

func TestParseInterface(t *testing.T) {
	src := `// Every AST node.
interface Node {
  type: string;
  // The source location.
  loc: SourceLocation | null;
}

@section(Node > Expressions) @headerless
@added(2020, optional-chaining)
interface ChainExpression <: Expression, @added(2022, class-fields) Private {
  expression: [ CallExpression | @es6 MemberExpression ];
  regex: { pattern: string; flags: string; };
  optional: true;
  interface: "kw";
}`

	defs, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	node := defs[0].(*spec.Interface)
	assert.Equal(t, &spec.Interface{
		Name: "Node",
		Doc:  "Every AST node.",
		Props: []*spec.Property{
			{Name: "type", Type: ref("string")},
			{
				Name: "loc",
				Doc:  "The source location.",
				Type: &spec.Union{Alternatives: []spec.Alternative{
					{Type: ref("SourceLocation")},
					{Type: &spec.Literal{}},
				}},
			},
		},
	}, node)

	chain := defs[1].(*spec.Interface)
	assert.Equal(t, []string{"Node", "Expressions"}, chain.Section)
	assert.True(t, chain.Headerless)
	assert.Equal(t, &spec.Version{Year: 2020, Proposal: "optional-chaining"}, chain.Added)
	assert.Equal(t, []spec.Base{
		{Name: "Expression"},
		{Name: "Private", Added: &spec.Version{Year: 2022, Proposal: "class-fields"}},
	}, chain.Bases)

	require.Len(t, chain.Props, 4)
	assert.Equal(t, &spec.Array{Base: &spec.Union{Alternatives: []spec.Alternative{
		{Type: ref("CallExpression")},
		{Type: ref("MemberExpression"), Added: &spec.Version{Year: 2015}},
	}}}, chain.Props[0].Type)
	assert.Equal(t, &spec.Object{Props: []*spec.Property{
		{Name: "pattern", Type: ref("string")},
		{Name: "flags", Type: ref("string")},
	}}, chain.Props[1].Type)
	assert.Equal(t, &spec.Literal{Value: true}, chain.Props[2].Type)
	assert.Equal(t, "interface", chain.Props[3].Name)
	assert.Equal(t, &spec.Literal{Value: "kw"}, chain.Props[3].Type)
}

func TestParseVersions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want *spec.Version
	}{
		{"none", "interface A {}", nil},
		{"es6", "@es6 interface A {}", &spec.Version{Year: 2015}},
		{"proposal", "@added(2019, optional-catch) interface A {}", &spec.Version{Year: 2019, Proposal: "optional-catch"}},
		{"proposal url", "@added(2022, github.com/tc39/x) interface A {}", &spec.Version{Year: 2022, Proposal: "github.com/tc39/x"}},
		{"legacy", "@added(5) interface A {}", &spec.Version{Year: 5, Legacy: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Parse(tt.src)
			require.NoError(t, err)
			require.Len(t, defs, 1)
			assert.Equal(t, tt.want, defs[0].DefAdded())
		})
	}
}

func TestParseEnum(t *testing.T) {
	src := `// Declaration kinds.
@at-root
enum VariableKind {
    "var"
  | @es6 "let" | @es6 "const"
  | @added(2024, explicit-resource-management) "using"
}

enum Mixed { 1 | -2.5 | true | null }
enum Empty { }`

	defs, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, defs, 3)

	kind := defs[0].(*spec.Enum)
	assert.Equal(t, "Declaration kinds.", kind.Doc)
	assert.Equal(t, []string{spec.RootSection}, kind.Section)
	es6 := &spec.Version{Year: 2015}
	assert.Equal(t, []*spec.EnumValue{
		{Value: spec.Literal{Value: "var"}},
		{Value: spec.Literal{Value: "let"}, Added: es6, Break: true},
		{Value: spec.Literal{Value: "const"}, Added: es6},
		{Value: spec.Literal{Value: "using"}, Added: &spec.Version{Year: 2024, Proposal: "explicit-resource-management"}, Break: true},
	}, kind.Values)

	mixed := defs[1].(*spec.Enum)
	require.Len(t, mixed.Values, 4)
	assert.Equal(t, 1.0, mixed.Values[0].Value.Value)
	assert.Equal(t, -2.5, mixed.Values[1].Value.Value)
	assert.Equal(t, true, mixed.Values[2].Value.Value)
	assert.Nil(t, mixed.Values[3].Value.Value)

	assert.Empty(t, defs[2].(*spec.Enum).Values)
}

func TestParseEnumLeadingPipe(t *testing.T) {
	defs, err := Parse(`enum K { | "a" | "b" }`)
	require.NoError(t, err)
	assert.Len(t, defs[0].(*spec.Enum).Values, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{"unknown keyword", "type A {}", `unknown declaration keyword "type"`},
		{"missing declaration", "@es6", "expected interface or enum declaration"},
		{"unknown annotation", "@deprecated interface A {}", "unknown annotation @deprecated"},
		{"misplaced annotation", "interface A { @section(B) x: string; }", "annotation @section is not allowed here"},
		{"duplicate marker", "@es6 @added(2016, x) interface A {}", "duplicate annotation @added"},
		{"duplicate placement", "@section(A) @at-root interface A {}", "duplicate annotation @at-root"},
		{"invalid version", "@added(next, x) interface A {}", "invalid version marker @added(next, x)"},
		{"too many version args", "@added(2020, a, b) interface A {}", "too many arguments"},
		{"empty section", "@section(A >) interface A {}", `invalid section path "A >"`},
		{"unterminated interface", "interface A { x: string;", "unterminated interface A body"},
		{"unterminated object", "interface A { x: { y: string; ", "unterminated object type body"},
		{"unterminated enum", `enum K { "a" |`, "unterminated enum K body"},
		{"missing semicolon", "interface A { x: string }", `unexpected "}", expected ;`},
		{"unknown type", "interface A { x: ; }", `unknown type ";"`},
		{"enum reference", "enum K { A }", `enum values must be literals, got "A"`},
		{"missing brace", "interface A x: string; }", `expected {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Message, tt.wantMsg)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("interface A { x: ; }")
	require.Error(t, err)
	assert.Equal(t, `parse error at line 1, column 18: unknown type ";"`, err.Error())
}

func TestParseLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unterminated string", "interface A { x: \"abc; }"},
		{"illegal character", "interface A { x: # ; }"},
		{"unterminated comment after declarations", "interface A {} /* open"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var lexErr *LexError
			assert.ErrorAs(t, err, &lexErr)
		})
	}
}
