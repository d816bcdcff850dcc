// Package cli provides the command-line interface for estreegen.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/estree/estreegen/internal/cli/commands"
	"github.com/estree/estreegen/internal/cli/config"
	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Process exit statuses.
const (
	ExitOK    = 0
	ExitError = 1
)

// ExitCode describes one process exit status.
type ExitCode struct {
	Code    int
	Meaning string
}

// ExitCodes lists every status the estreegen command exits with.
var ExitCodes = []ExitCode{
	{Code: ExitOK, Meaning: "Success"},
	{Code: ExitError, Meaning: "Any failure, including a check that reported problems; details and hints go to stderr"},
}

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "estreegen",
		Short: "estreegen - ESTree schema compiler",
		Long: `estreegen reads ESTree node schemas written in a small declaration language
and generates TypeScript type declarations, Markdown reference documentation
and canonical schema source, optionally limited to what existed in a given
ECMAScript edition.

Sources listed later extend or override earlier ones, so a base schema can
be followed by per-edition additions.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Verbose)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, configKey{}, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
ESTree schema compiler
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./estreegen.yaml, searched upward)")
	rootCmd.PersistentFlags().StringSlice("source", nil, "Schema source file or directory (repeatable, merged in order)")
	rootCmd.PersistentFlags().Int("max-version", 0, "Highest ECMAScript year to include (0 for all)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text|json)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("max-version", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var years []string
		for year := 2015; year <= 2026; year++ {
			years = append(years, strconv.Itoa(year))
		}
		return years, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("source", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"estree"}, cobra.ShellCompDirectiveFilterFileExt
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewEmitCommand())
	rootCmd.AddCommand(commands.NewFmtCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		WriteError(os.Stderr, err)
		return err
	}
	return nil
}

// WriteError prints err followed by any details and hints attached to it.
func WriteError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	if detail := errors.FlattenDetails(err); detail != "" {
		_, _ = fmt.Fprintf(w, "%s\n", detail)
	}
	for _, hint := range errors.GetAllHints(err) {
		_, _ = fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Serve:        config.ServeConfig{Port: config.DefaultPort},
		LogFormat:    config.DefaultLogFormat,
		OutputFormat: config.DefaultOutput,
	}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for estreegen.

To load completions:

Bash:
  $ source <(estreegen completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ estreegen completion bash > /etc/bash_completion.d/estreegen
  # macOS:
  $ estreegen completion bash > $(brew --prefix)/etc/bash_completion.d/estreegen

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ estreegen completion zsh > "${fpath[1]}/_estreegen"

Fish:
  $ estreegen completion fish | source

  # To load completions for each session, execute once:
  $ estreegen completion fish > ~/.config/fish/completions/estreegen.fish

PowerShell:
  PS> estreegen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
	return cmd
}
