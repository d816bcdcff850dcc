package commands

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/estree/estreegen/internal/build"
	"github.com/estree/estreegen/internal/cli/config"
	"github.com/estree/estreegen/internal/cli/output"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// BuildConfig returns the build inputs described by the configuration.
func (c *CommandContext) BuildConfig() build.Config {
	return build.Config{
		Sources:    c.Cfg.Sources,
		Outputs:    c.Cfg.Outputs,
		MaxVersion: c.Cfg.EffectiveMaxVersion(),
	}
}

// LoadDefinitions validates the configured sources and loads the merged
// model.
func (c *CommandContext) LoadDefinitions(ctx context.Context) ([]spec.Definition, error) {
	if err := c.Cfg.ValidateSources(); err != nil {
		return nil, err
	}
	return build.Load(ctx, c.Cfg.Sources)
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	var sources []string
	if v := os.Getenv(config.EnvPrefix + "SOURCES"); v != "" {
		sources = strings.Split(v, ",")
	}
	maxVersion, _ := strconv.Atoi(os.Getenv(config.EnvPrefix + "MAX_VERSION"))

	return &config.Config{
		Sources:      sources,
		MaxVersion:   maxVersion,
		Serve:        config.ServeConfig{Port: config.DefaultPort},
		Verbose:      os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		LogFormat:    getEnvOrDefault(config.EnvPrefix+"LOG_FORMAT", config.DefaultLogFormat),
		OutputFormat: getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
