package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/estree/estreegen/pkg/spec"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "estreegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return dir, path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-version", 0, "")
	flags.StringSlice("source", nil, "")
	flags.Int("port", 0, "")
	flags.String("log-format", "", "")
	return flags
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	dir, path := writeConfig(t, `sources: [spec/es5.estree, spec/es2015.estree]
max_version: 2015
outputs:
  dts: out/estree.d.ts
  markdown: /abs/estree.md
serve:
  port: 9000
log_format: json
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "spec/es5.estree"),
		filepath.Join(dir, "spec/es2015.estree"),
	}, cfg.Sources)
	assert.Equal(t, 2015, cfg.MaxVersion)
	assert.Equal(t, 2015, cfg.EffectiveMaxVersion())
	assert.Equal(t, filepath.Join(dir, "out/estree.d.ts"), cfg.Outputs["dts"])
	assert.Equal(t, "/abs/estree.md", cfg.Outputs["markdown"])
	assert.Equal(t, 9000, cfg.Serve.Port)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "sources: [a.estree]\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.MaxVersion)
	assert.Equal(t, spec.Latest, cfg.EffectiveMaxVersion())
	assert.Equal(t, DefaultPort, cfg.Serve.Port)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "max_version: 2015\nserve:\n  port: 9000\n")
	t.Setenv("ESTREEGEN_MAX_VERSION", "2018")
	t.Setenv("ESTREEGEN_SERVE__PORT", "9100")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 2018, cfg.MaxVersion, "env var should override config file")
	assert.Equal(t, 9100, cfg.Serve.Port)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "max_version: 2015\nsources: [from_file.estree]\n")
	t.Setenv("ESTREEGEN_MAX_VERSION", "2018")

	cwd := t.TempDir()
	t.Chdir(cwd)

	flags := testFlags()
	require.NoError(t, flags.Set("max-version", "2020"))
	require.NoError(t, flags.Set("source", "from_flag.estree"))
	require.NoError(t, flags.Set("port", "7000"))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 2020, cfg.MaxVersion, "flag value should override config file and env var")
	// Flag paths resolve against the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(wd, "from_flag.estree")}, cfg.Sources)
	assert.Equal(t, 7000, cfg.Serve.Port)
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "max_version: 2015\n")
	t.Setenv("ESTREEGEN_MAX_VERSION", "2018")

	cfg, err := LoadConfig(path, testFlags())
	require.NoError(t, err)

	assert.Equal(t, 2018, cfg.MaxVersion, "env var should be used when flag is not set")
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	ResetConfig()
	dir, _ := writeConfig(t, "sources: [root.estree]\n")
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	wantRoot, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotRoot, err := filepath.EvalSymlinks(cfg.ProjectRoot)
	require.NoError(t, err)
	assert.Equal(t, wantRoot, gotRoot)
	assert.Equal(t, "root.estree", filepath.Base(cfg.Sources[0]))
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	ResetConfig()
	_, path := writeConfig(t, "sources: [unterminated\n")

	_, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	known := []string{"dts", "estree", "markdown"}
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{name: "valid", cfg: Config{Outputs: map[string]string{"dts": "x.d.ts"}, LogFormat: "json"}},
		{name: "negative version", cfg: Config{MaxVersion: -1}, errSubstr: "max_version"},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, errSubstr: "unknown log_format"},
		{name: "unknown target", cfg: Config{Outputs: map[string]string{"flow": "x"}}, errSubstr: `unknown target "flow"`},
		{name: "empty path", cfg: Config{Outputs: map[string]string{"dts": ""}}, errSubstr: "empty path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(known)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConfig_ValidateSources(t *testing.T) {
	cfg := Config{}
	assert.ErrorContains(t, cfg.ValidateSources(), "no sources configured")

	cfg.Sources = []string{filepath.Join(t.TempDir(), "missing.estree")}
	assert.ErrorContains(t, cfg.ValidateSources(), "missing.estree")
}

func TestGetLogger(t *testing.T) {
	// Falls back to a discard logger.
	assert.NotNil(t, GetLogger(context.Background()))

	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", true)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	GetLogger(ctx).Debug("hello", "n", 1)
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"n":1`)

	buf.Reset()
	NewLogger(&buf, "text", false).Debug("hidden")
	assert.Empty(t, buf.String())
}
