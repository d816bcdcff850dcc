// Package config provides configuration management for the estreegen CLI.
package config

import "github.com/estree/estreegen/pkg/spec"

// ServeConfig holds configuration for the preview server.
type ServeConfig struct {
	Port int `koanf:"port"`
}

// Config holds all CLI configuration options.
type Config struct {
	// Sources are the schema files, merged in order.
	Sources []string `koanf:"sources"`

	// MaxVersion limits output to items added at or before it. Zero selects
	// every version.
	MaxVersion int `koanf:"max_version"`

	// Outputs maps an emitter name to the file it writes.
	Outputs map[string]string `koanf:"outputs"`

	Serve        ServeConfig `koanf:"serve"`
	Verbose      bool        `koanf:"verbose"`
	LogFormat    string      `koanf:"log_format"`
	OutputFormat string      `koanf:"output"`

	// ProjectRoot is the directory relative paths resolve against.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultPort      = 8080
	DefaultLogFormat = "text"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ConfigFileNames are searched in order when no config file is given.
var ConfigFileNames = []string{"estreegen.yaml", "estreegen.yml"}

// EffectiveMaxVersion returns the maximum version to emit at.
func (c *Config) EffectiveMaxVersion() int {
	if c.MaxVersion <= 0 {
		return spec.Latest
	}
	return c.MaxVersion
}
