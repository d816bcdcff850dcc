package estree_test

import (
	"strconv"
	"testing"

	"github.com/estree/estreegen/pkg/emit/estree"
	"github.com/estree/estreegen/pkg/parser"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `// ESTree AST nodes are represented as Node objects.
//
// They implement this interface.
interface Node {
    // A string representing the AST variant type.
    type: string;
    loc: SourceLocation | null;
}

@at-root
interface SourceLocation {
    source: string | null;
    start: Position;
    end: Position;
}

interface Position {
    // Line number (1-indexed)
    line: number;
    column: number;
}

interface Literal <: Expression {
    type: "Literal";
    value: string | boolean | null | number | RegExp | @added(2020, bigint) bigint;
    regex: {
        pattern: string;
        flags: string;
    };
}

@section(Statements > Loops) @headerless
@added(2018, async-iteration)
interface ForOfStatement <: ForInStatement, @added(2019, example.com/p) Extra {
    @added(2018, async-iteration) await: boolean;
    @es6 body: [ Statement | @es6 Directive ];
}

@es6 interface Class <: Node {
    id: Identifier | null;
    decorators: [ Decorator ];
}

enum VariableKind {
    "var" | "let" | "const"
    | @added(2026, explicit-resource-management) "using" | @added(2026, explicit-resource-management) "await using"
}

@added(5)
enum Numbers {
    1 | -2.5 | true | false | null
}

enum Empty { }
`

func TestPrintIsStable(t *testing.T) {
	defs, err := parser.Parse(sample)
	require.NoError(t, err)

	out, err := estree.Emit(defs, spec.Latest)
	require.NoError(t, err)
	assert.Equal(t, sample, out)
}

func TestRoundTrip(t *testing.T) {
	defs, err := parser.Parse(sample)
	require.NoError(t, err)

	for _, maxVersion := range []int{4, 5, 2014, 2015, 2017, 2018, 2019, 2020, 2025, 2026, spec.Latest} {
		t.Run(strconv.Itoa(maxVersion), func(t *testing.T) {
			out, err := estree.Emit(defs, maxVersion)
			require.NoError(t, err)

			reparsed, err := parser.Parse(out)
			require.NoError(t, err, out)
			assert.Equal(t, spec.Filter(defs, maxVersion), reparsed)

			again, err := estree.Emit(reparsed, maxVersion)
			require.NoError(t, err)
			assert.Equal(t, out, again)
		})
	}
}

func TestEmitFiltersByVersion(t *testing.T) {
	defs, err := parser.Parse(sample)
	require.NoError(t, err)

	out, err := estree.Emit(defs, 2017)
	require.NoError(t, err)
	assert.NotContains(t, out, "ForOfStatement")
	assert.NotContains(t, out, "bigint")
	assert.NotContains(t, out, "using")
	assert.Contains(t, out, "enum VariableKind {\n    \"var\" | \"let\" | \"const\"\n}")

	out, err = estree.Emit(defs, 2018)
	require.NoError(t, err)
	assert.Contains(t, out, "interface ForOfStatement <: ForInStatement {\n")
	assert.Contains(t, out, "    @es6 body: [ Statement | @es6 Directive ];\n")

	out, err = estree.Emit(defs, 4)
	require.NoError(t, err)
	assert.NotContains(t, out, "enum Numbers")
	assert.NotContains(t, out, "interface Class")
}

func TestEmitCollapsesUnions(t *testing.T) {
	defs, err := parser.Parse(`interface A {
    x: @added(2020, p) string;
    y: string | @added(2020, p) number;
}
`)
	require.NoError(t, err)

	out, err := estree.Emit(defs, 2019)
	require.NoError(t, err)
	assert.Equal(t, "interface A {\n    x: any;\n    y: string;\n}\n", out)
}

func TestEmitEnumBreakCarriesOver(t *testing.T) {
	defs, err := parser.Parse(`enum E {
    "a"
    | @added(2020, p) "b" | "c"
    | "d"
}
`)
	require.NoError(t, err)

	out, err := estree.Emit(defs, 2019)
	require.NoError(t, err)
	assert.Equal(t, "enum E {\n    \"a\"\n    | \"c\"\n    | \"d\"\n}\n", out)
}

func TestEmitVersionMonotonicity(t *testing.T) {
	defs, err := parser.Parse(`@added(2019, optional-catch-binding)
interface CatchClause { param: Pattern | null; }
`)
	require.NoError(t, err)

	for _, tt := range []struct {
		max     int
		visible bool
	}{
		{2015, false}, {2018, false}, {2019, true}, {2020, true}, {spec.Latest, true},
	} {
		out, err := estree.Emit(defs, tt.max)
		require.NoError(t, err)
		assert.Equal(t, tt.visible, out != "\n", "max version %d", tt.max)
	}
}
