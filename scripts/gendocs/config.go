package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/estree/estreegen/internal/cli/config"
	"github.com/estree/estreegen/internal/cli/output"
	"github.com/estree/estreegen/pkg/emit"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the configuration schema definition.
// This follows internal/cli/config/types.go.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "sources", Type: "[]string", Description: "Schema files or directories, merged in order. Directories contribute their .estree files sorted by name"},
		{Name: "max_version", Type: "int", Default: "0", Description: "Highest ECMAScript year to include; 0 includes everything"},
		{Name: "outputs", Type: "map[string]string", Description: "Output path per target: " + strings.Join(emit.List(), ", ")},
		{Name: "serve.port", Type: "int", Default: strconv.Itoa(config.DefaultPort), Description: "Port of the preview server"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging"},
		{Name: "log_format", Type: "string", Default: config.DefaultLogFormat, Description: "Log format: text or json"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Command output format: " + strings.Join(output.Modes, ", ")},
	}
}

// envVar returns the environment variable read for the config key name.
func envVar(name string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, ".", "__"))
}

// EnvVar is envVar for the field; map fields take one variable per key.
func (f ConfigField) EnvVar() string {
	if strings.HasPrefix(f.Type, "map[") {
		return envVar(f.Name) + "__<KEY>"
	}
	return envVar(f.Name)
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "estreegen configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("estreegen reads %s from the working directory or the nearest parent directory. "+
		"Relative paths in the file resolve against the file's directory.", InlineCode(config.ConfigFileNames[0])))

	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal := "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `sources:
  - schema/es5.estree
  - schema/es2015.estree
max_version: 2020
outputs:
  dts: build/estree.d.ts
  markdown: build/estree.md
serve:
  port: 8080`)

	w.Header(2, "Environment Variables")
	w.Paragraph(fmt.Sprintf("Every field can be set with the %s prefix; nested keys use a double underscore, as in %s.",
		InlineCode(config.EnvPrefix), InlineCode(envVar("serve.port"))))
	w.Paragraph("Precedence, highest first: flags, environment, config file, defaults.")

	log.Printf("  Generated configuration.md")
	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
