package commands

import (
	"fmt"

	"github.com/estree/estreegen/pkg/emit"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display estreegen version and the output targets compiled in.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "estreegen v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ESTree schema compiler; targets: %v\n", emit.List())
		},
	}
}
