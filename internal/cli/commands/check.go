package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/estree/estreegen/internal/cli/output"
	"github.com/estree/estreegen/pkg/spec"
	"github.com/spf13/cobra"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Strict bool // Fail on lint findings too
}

// FileStatus is the check result of one source file.
type FileStatus struct {
	Path      string `json:"path"`
	Canonical bool   `json:"canonical"`
	Line      int    `json:"first_difference,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckReport is the JSON form of a check run.
type CheckReport struct {
	Files    []FileStatus   `json:"files"`
	Findings []spec.Finding `json:"findings"`
	Errors   []string       `json:"errors,omitempty"`
	Passed   bool           `json:"passed"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Verify sources are canonical and lint the schema",
		Long: `Check that every source parses and is already in canonical form
(what estreegen fmt would print), then lint the merged schema.

Lint findings are warnings: duplicate names, unresolved references and
inconsistent version markers. Use --strict to fail on them.`,
		Example: `  # Check the configured sources
  estreegen check

  # Machine-readable report
  estreegen check --output json

  # Fail on lint findings
  estreegen check --strict`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat lint findings as errors")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	files, err := sourceFiles(cmdCtx, args)
	if err != nil {
		return err
	}

	report := CheckReport{Findings: []spec.Finding{}}
	var defs []spec.Definition
	parsed := true
	for _, path := range files {
		status := FileStatus{Path: path}
		src, formatted, fileDefs, err := formatFile(path)
		if err != nil {
			status.Error = err.Error()
			parsed = false
		} else {
			status.Canonical = src == formatted
			if !status.Canonical {
				status.Line = firstDifference(src, formatted)
			}
			defs = spec.Merge(defs, fileDefs)
		}
		report.Files = append(report.Files, status)
	}

	if parsed {
		report.Findings = append(report.Findings, spec.Check(defs)...)
		report.Errors = resolveErrors(defs)
	}

	report.Passed = parsed && len(report.Errors) == 0 && (!opts.Strict || len(report.Findings) == 0)
	for _, f := range report.Files {
		if !f.Canonical {
			report.Passed = false
		}
	}

	cmdCtx.Logger.Debug("check finished", "files", len(files), "findings", len(report.Findings), "passed", report.Passed)

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(report); err != nil {
			return err
		}
	} else {
		printCheckReport(r, &report)
	}

	if !report.Passed {
		return errors.New("check failed")
	}
	return nil
}

// resolveErrors reports interfaces whose effective properties cannot be
// computed.
func resolveErrors(defs []spec.Definition) []string {
	idx := spec.NewIndex(defs)
	var errs []string
	for _, d := range defs {
		if _, ok := d.(*spec.Interface); !ok {
			continue
		}
		if _, err := idx.Properties(d.DefName(), spec.Latest); err != nil {
			msg := err.Error()
			if detail := errors.FlattenDetails(err); detail != "" {
				msg += " (" + detail + ")"
			}
			errs = append(errs, msg)
		}
	}
	return errs
}

func printCheckReport(r *output.Renderer, report *CheckReport) {
	for _, f := range report.Files {
		switch {
		case f.Error != "":
			r.Error(f.Error)
		case !f.Canonical:
			r.Error(fmt.Sprintf("%s: not in canonical form (first difference at line %d); run estreegen fmt -w", f.Path, f.Line))
		default:
			r.Success(f.Path)
		}
	}
	for _, e := range report.Errors {
		r.Error(e)
	}
	for _, finding := range report.Findings {
		r.Warning(finding.String())
	}
}
