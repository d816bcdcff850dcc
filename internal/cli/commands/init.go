package commands

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/cli/config"
	"github.com/estree/estreegen/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new estreegen project",
		Long: `Initialize a new estreegen project.

This creates:
  - estreegen.yaml configuration file
  - schema/ directory with a starter core.estree
  - .gitignore excluding the build/ output directory`,
		Example: `  # Initialize in current directory
  estreegen init

  # Initialize in a new directory
  estreegen init my-schema

  # Force overwrite existing files
  estreegen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", config.ConfigFileNames[0]),
			"use --force to overwrite",
		)
	}

	if err := copyTemplate("minimal", dir, force); err != nil {
		return errors.Wrap(err, "failed to initialize project")
	}

	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.Success(f)
	}

	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Describe your nodes in schema/")
	r.Println("  2. Run 'estreegen check' to lint them")
	r.Println("  3. Run 'estreegen build' to generate build/estree.d.ts")
	r.Println("  4. Run 'estreegen serve' to preview the outputs")

	return nil
}
