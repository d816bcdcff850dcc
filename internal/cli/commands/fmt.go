package commands

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/build"
	"github.com/estree/estreegen/pkg/emit/estree"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/spf13/cobra"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool // Rewrite files in place
	List  bool // Only list files whose formatting differs
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [file...]",
		Short: "Canonicalize schema sources",
		Long: `Print schema sources in canonical form.

Without arguments the configured sources are formatted. Formatting keeps
every definition, marker and doc comment; only layout changes.`,
		Example: `  # Show the canonical form of the configured sources
  estreegen fmt

  # Rewrite files in place
  estreegen fmt -w spec/*.estree

  # List files that need formatting
  estreegen fmt -l`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to source files instead of stdout")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "List files whose formatting differs")

	return cmd
}

// formatFile returns the source, canonical form and definitions of path.
func formatFile(path string) (src, formatted string, defs []spec.Definition, err error) {
	raw, err := os.ReadFile(path) //nolint:gosec // path comes from the command line or configuration
	if err != nil {
		return "", "", nil, errors.Wrapf(err, "reading %s", path)
	}
	defs, err = build.ParseFile(path)
	if err != nil {
		return "", "", nil, err
	}
	formatted, err = estree.Print(defs)
	if err != nil {
		return "", "", nil, errors.Wrapf(err, "formatting %s", path)
	}
	return string(raw), formatted, defs, nil
}

// sourceFiles returns the files named by args, or the configured sources.
func sourceFiles(cmdCtx *CommandContext, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if err := cmdCtx.Cfg.ValidateSources(); err != nil {
		return nil, err
	}
	return build.ExpandSources(cmdCtx.Cfg.Sources)
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	files, err := sourceFiles(cmdCtx, args)
	if err != nil {
		return err
	}

	for _, path := range files {
		src, formatted, _, err := formatFile(path)
		if err != nil {
			return err
		}
		changed := src != formatted

		switch {
		case opts.List:
			if changed {
				r.Println(path)
			}
		case opts.Write:
			if !changed {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return errors.Wrapf(err, "stat %s", path)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return errors.Wrapf(err, "writing %s", path)
			}
			cmdCtx.Logger.Info("formatted", "file", path)
		default:
			if len(files) > 1 {
				r.Printf("==> %s <==\n", path)
			}
			r.Printf("%s", formatted)
		}
	}
	return nil
}

// firstDifference returns the 1-based line where a and b first differ, or 0.
func firstDifference(a, b string) int {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; i < len(al) || i < len(bl); i++ {
		if i >= len(al) || i >= len(bl) || al[i] != bl[i] {
			return i + 1
		}
	}
	return 0
}
