package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/estree/estreegen/pkg/emit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedent(t *testing.T) {
	in := "  # Build\n  estreegen build\n\n    indented\n"
	assert.Equal(t, "# Build\nestreegen build\n\n  indented", dedent(in))
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "ESTREEGEN_MAX_VERSION", envVar("max_version"))
	assert.Equal(t, "ESTREEGEN_SERVE__PORT", envVar("serve.port"))
	assert.Equal(t, "ESTREEGEN_OUTPUTS__<KEY>", ConfigField{Name: "outputs", Type: "map[string]string"}.EnvVar())
}

func TestMarkdownWriter(t *testing.T) {
	w := NewMarkdownWriter()
	w.Header(2, "Options")
	w.Table([]string{"Option", "Description"}, [][]string{{InlineCode("--port"), "Port to serve on"}})
	w.CodeBlock("bash", "estreegen serve\n")

	out := string(w.Bytes())
	assert.Contains(t, out, "## Options\n\n")
	assert.Contains(t, out, "| Option | Description |")
	assert.Contains(t, out, "| `--port` | Port to serve on |")
	assert.Contains(t, out, "```bash\nestreegen serve\n```\n")
}

func TestGenerateDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))
	require.NoError(t, generateConfigDocs(dir))

	for _, name := range []string{"index.md", "build.md", "emit.md", "serve.md", "configuration.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "`--max-version`")
	assert.Contains(t, string(index), "`ESTREEGEN_SERVE__PORT`")
	assert.Contains(t, string(index), "| `dts` | `.d.ts` | `ESTREEGEN_OUTPUTS__DTS` |")
	assert.Contains(t, string(index), "| `1` | Any failure")
	for _, f := range getConfigSchema() {
		assert.Contains(t, string(index), f.EnvVar())
	}

	emitPage, err := os.ReadFile(filepath.Join(dir, "emit.md"))
	require.NoError(t, err)
	for _, name := range emit.List() {
		assert.Contains(t, string(emitPage), "| `"+name+"` |")
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "`serve.port`")
	assert.Contains(t, string(cfg), "dts")
}
