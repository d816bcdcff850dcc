package commands

import (
	"strings"

	"github.com/estree/estreegen/internal/build"
	"github.com/estree/estreegen/pkg/emit"
	"github.com/spf13/cobra"
)

// EmitOptions holds options for the emit command.
type EmitOptions struct {
	Out string // Write to this file instead of stdout
}

// NewEmitCommand creates the emit command.
func NewEmitCommand() *cobra.Command {
	opts := &EmitOptions{}
	cmd := &cobra.Command{
		Use:   "emit <target>",
		Short: "Render one target to stdout",
		Long: `Render the merged schema with a single emitter.

Targets: dts (TypeScript declarations), markdown (documentation),
estree (canonical schema source), json and yaml (model dump).`,
		Example: `  # TypeScript declarations for ES2020
  estreegen emit dts --max-version 2020

  # Canonical schema into a file
  estreegen emit estree --out merged.estree`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return emit.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Write to a file instead of stdout")

	return cmd
}

func runEmit(cmd *cobra.Command, target string, opts *EmitOptions) error {
	cmdCtx := NewCommandContext(cmd)

	e, err := emit.Lookup(target)
	if err != nil {
		return err
	}
	defs, err := cmdCtx.LoadDefinitions(cmd.Context())
	if err != nil {
		return err
	}

	maxVersion := cmdCtx.Cfg.EffectiveMaxVersion()
	text, err := e.Emit(defs, maxVersion)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Debug("emitted", "target", e.Name(), "max_version", maxVersion, "bytes", len(text))

	if opts.Out != "" {
		return build.Write(cmd.Context(), []build.Output{{Target: e.Name(), Path: opts.Out, Content: text}})
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	cmdCtx.Renderer.Printf("%s", text)
	return nil
}
