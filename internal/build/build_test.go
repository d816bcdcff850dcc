package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/testutil"
	"github.com/estree/estreegen/pkg/emit"
	_ "github.com/estree/estreegen/pkg/emit/data"
	_ "github.com/estree/estreegen/pkg/emit/dts"
	_ "github.com/estree/estreegen/pkg/emit/estree"
	_ "github.com/estree/estreegen/pkg/emit/markdown"
	"github.com/estree/estreegen/pkg/parser"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const es5 = `interface Node {
    type: string;
}

interface Identifier <: Node {
    type: "Identifier";
    name: string;
}
`

const es2015 = `interface Identifier {
    name: string | null;
}

@es6
interface Super <: Node {
    type: "Super";
}
`

type failingEmitter struct{}

func (failingEmitter) Name() string          { return "failing" }
func (failingEmitter) FileExtension() string { return ".fail" }
func (failingEmitter) Emit([]spec.Definition, int) (string, error) {
	return "", errors.New("boom")
}

func init() {
	emit.Register(failingEmitter{})
}

func TestLoadMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "es5.estree", es5)
	b := testutil.WriteFile(t, dir, "es2015.estree", es2015)

	defs, err := Load(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, defs, 3)

	id := defs[1].(*spec.Interface)
	require.Len(t, id.Props, 2)
	assert.Equal(t, "type", id.Props[0].Name)
	assert.IsType(t, &spec.Union{}, id.Props[1].Type)
	assert.Equal(t, "Super", defs[2].DefName())
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "b.estree", es2015)
	testutil.WriteFile(t, dir, "a.estree", es5)
	testutil.WriteFile(t, dir, ".hidden.estree", "garbage")
	testutil.WriteFile(t, dir, "notes.txt", "garbage")

	files, err := ExpandSources([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.estree"), filepath.Join(dir, "b.estree")}, files)

	defs, err := Load(context.Background(), []string{dir})
	require.NoError(t, err)
	assert.Len(t, defs, 3)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := testutil.WriteFile(t, dir, "bad.estree", "interface A { x: ; }")

	_, err := Load(context.Background(), []string{bad})
	require.Error(t, err)
	var parseErr *parser.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Contains(t, err.Error(), bad)

	_, err = Load(context.Background(), []string{filepath.Join(dir, "missing.estree")})
	assert.ErrorContains(t, err, "missing.estree")

	_, err = Load(context.Background(), []string{t.TempDir()})
	assert.ErrorContains(t, err, "no schema sources")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx, []string{bad})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "es5.estree", es5)
	out := filepath.Join(dir, "out", "nested")

	res, err := Run(context.Background(), Config{
		Sources: []string{src},
		Outputs: map[string]string{
			"dts":    filepath.Join(out, "estree.d.ts"),
			"estree": filepath.Join(out, "estree.estree"),
			"json":   filepath.Join(out, "estree.json"),
		},
		MaxVersion: spec.Latest,
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Definitions)
	require.Len(t, res.Outputs, 3)
	assert.Equal(t, "dts", res.Outputs[0].Target)

	for _, o := range res.Outputs {
		got, err := os.ReadFile(o.Path)
		require.NoError(t, err)
		assert.Equal(t, o.Content, string(got))
	}

	canonical, err := os.ReadFile(filepath.Join(out, "estree.estree"))
	require.NoError(t, err)
	assert.Equal(t, es5, string(canonical))
}

func TestRunWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "es5.estree", es5)
	dts := filepath.Join(dir, "out", "estree.d.ts")

	_, err := Run(context.Background(), Config{
		Sources:    []string{src},
		Outputs:    map[string]string{"dts": dts, "failing": filepath.Join(dir, "out", "x.fail")},
		MaxVersion: spec.Latest,
	}, testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emitting failing")

	_, statErr := os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr), "no output directory should be created")
}

func TestRunUnknownTarget(t *testing.T) {
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "es5.estree", es5)

	_, err := Run(context.Background(), Config{
		Sources: []string{src},
		Outputs: map[string]string{"flow": filepath.Join(dir, "x.flow")},
	}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, emit.ErrUnknownEmitter)
}
