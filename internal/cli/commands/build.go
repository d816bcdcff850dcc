package commands

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/build"
	"github.com/estree/estreegen/pkg/emit"
	_ "github.com/estree/estreegen/pkg/emit/data"     // register json and yaml
	_ "github.com/estree/estreegen/pkg/emit/dts"      // register dts
	_ "github.com/estree/estreegen/pkg/emit/estree"   // register estree
	_ "github.com/estree/estreegen/pkg/emit/markdown" // register markdown
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate every configured output",
		Long: `Read and merge the schema sources, render every target listed under
outputs in estreegen.yaml, then write the files.

All targets are rendered before anything is written; if any target fails,
no file is touched.`,
		Example: `  # Build with ./estreegen.yaml
  estreegen build

  # Build only what existed in ES2017
  estreegen build --max-version 2017

  # Build from explicit sources
  estreegen build --source es5.estree --source es2015.estree`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd)
		},
	}

	return cmd
}

func runBuild(cmd *cobra.Command) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if err := cmdCtx.Cfg.Validate(emit.List()); err != nil {
		return err
	}
	if err := cmdCtx.Cfg.ValidateSources(); err != nil {
		return err
	}
	if len(cmdCtx.Cfg.Outputs) == 0 {
		return errors.WithHint(
			errors.New("no outputs configured"),
			"add an outputs map to estreegen.yaml, or use `estreegen emit <target>`",
		)
	}

	res, err := build.Run(cmd.Context(), cmdCtx.BuildConfig(), cmdCtx.Logger)
	if err != nil {
		return err
	}

	styles := r.Styles()
	for _, out := range res.Outputs {
		r.Success(fmt.Sprintf("%-8s %s", out.Target, styles.Path.Render(out.Path)))
	}
	r.Muted(fmt.Sprintf("%d definitions, %d outputs in %s", res.Definitions, len(res.Outputs), res.Duration.Round(time.Millisecond)))
	return nil
}
